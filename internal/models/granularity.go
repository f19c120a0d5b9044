package models

import (
	"fmt"
	"strings"
	"time"
)

// Granularity is the width of an aggregation bucket.
type Granularity string

const (
	Granularity5Min  Granularity = "5min"
	Granularity15Min Granularity = "15min"
	GranularityHour  Granularity = "hour"
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
	GranularityYear  Granularity = "year"
)

// Granularities lists every supported granularity from finest to coarsest.
var Granularities = []Granularity{
	Granularity5Min,
	Granularity15Min,
	GranularityHour,
	GranularityDay,
	GranularityWeek,
	GranularityMonth,
	GranularityYear,
}

// ParseGranularity converts user input into a Granularity.
// Matching is case-insensitive; unknown values are rejected.
func ParseGranularity(s string) (Granularity, error) {
	g := Granularity(strings.ToLower(strings.TrimSpace(s)))
	if !g.IsValid() {
		return "", fmt.Errorf("invalid granularity: %q", s)
	}
	return g, nil
}

func (g Granularity) IsValid() bool {
	for _, known := range Granularities {
		if g == known {
			return true
		}
	}
	return false
}

// BucketStart returns the start of the bucket containing t, evaluated in loc.
// Sub-day buckets step back from the instant itself, so a repeated wall-clock
// hour at a DST change still yields a start at or before t. Calendar
// granularities (day and coarser) align to local midnight in loc.
//
// BucketStart panics on an unknown granularity: callers are expected to
// validate user input with ParseGranularity first.
func (g Granularity) BucketStart(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	year, month, day := local.Date()

	switch g {
	case Granularity5Min:
		return floorMinutes(local, 5)
	case Granularity15Min:
		return floorMinutes(local, 15)
	case GranularityHour:
		return floorMinutes(local, 60)
	case GranularityDay:
		return time.Date(year, month, day, 0, 0, 0, 0, loc)
	case GranularityWeek:
		// ISO weeks start on Monday; Sunday (0) rolls back six days.
		offset := int(local.Weekday()) - int(time.Monday)
		if offset < 0 {
			offset += 7
		}
		return time.Date(year, month, day-offset, 0, 0, 0, 0, loc)
	case GranularityMonth:
		return time.Date(year, month, 1, 0, 0, 0, 0, loc)
	case GranularityYear:
		return time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	default:
		panic(fmt.Sprintf("invalid Granularity: %q", g))
	}
}

// WindowStart returns the instant one granularity before t. Calendar
// granularities step back in calendar units, so a month window ending on
// March 31 starts on (normalized) February 31.
func (g Granularity) WindowStart(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)

	switch g {
	case Granularity5Min:
		return local.Add(-5 * time.Minute)
	case Granularity15Min:
		return local.Add(-15 * time.Minute)
	case GranularityHour:
		return local.Add(-time.Hour)
	case GranularityDay:
		return local.AddDate(0, 0, -1)
	case GranularityWeek:
		return local.AddDate(0, 0, -7)
	case GranularityMonth:
		return local.AddDate(0, -1, 0)
	case GranularityYear:
		return local.AddDate(-1, 0, 0)
	default:
		panic(fmt.Sprintf("invalid Granularity: %q", g))
	}
}

func floorMinutes(t time.Time, step int) time.Time {
	elapsed := time.Duration(t.Minute()%step)*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())
	return t.Add(-elapsed)
}
