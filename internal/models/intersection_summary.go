package models

import (
	"fmt"
	"strings"
	"time"
)

// IntersectionSummary combines the IN and OUT rollups of one physical site.
type IntersectionSummary struct {
	DeviceID           string    `json:"deviceId"`
	Description        string    `json:"description"`
	InCount            float64   `json:"inCount"`
	OutCount           float64   `json:"outCount"`
	TotalCount         float64   `json:"totalCount"`
	InDetectorCount    int       `json:"inDetectorCount"`
	OutDetectorCount   int       `json:"outDetectorCount"`
	TotalDetectorCount int       `json:"totalDetectorCount"`
	LatestTime         time.Time `json:"latestTime"`
	Keywords           []string  `json:"keywords"`
}

// SortKey selects the summary column to sort by.
type SortKey string

const (
	SortByName SortKey = "name"
	SortByIn   SortKey = "in"
	SortByOut  SortKey = "out"
	SortByAll  SortKey = "all"
	SortByTime SortKey = "time"
)

func ParseSortKey(s string) (SortKey, error) {
	key := SortKey(strings.ToLower(strings.TrimSpace(s)))
	switch key {
	case SortByName, SortByIn, SortByOut, SortByAll, SortByTime:
		return key, nil
	}
	return "", fmt.Errorf("invalid sort key: %q", s)
}

// SortDirection is the ordering applied to a SortKey.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

func ParseSortDirection(s string) (SortDirection, error) {
	dir := SortDirection(strings.ToLower(strings.TrimSpace(s)))
	switch dir {
	case SortAsc, SortDesc:
		return dir, nil
	}
	return "", fmt.Errorf("invalid sort direction: %q", s)
}
