package aggregators

import (
	"sort"

	"traffic-analytics/internal/models"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

//go:generate mockgen -source=summary_sorter.go -destination=./mocks/summary_sorter_mock.go -package=mocks
type SummarySorter interface {
	// Sort returns a stably sorted copy of summaries. Nothing is dropped.
	Sort(summaries []*models.IntersectionSummary, key models.SortKey, direction models.SortDirection) []*models.IntersectionSummary
}

type summarySorter struct {
	collation language.Tag
}

// NewSummarySorter returns a sorter that compares descriptions using the
// collation rules of tag.
func NewSummarySorter(tag language.Tag) SummarySorter {
	return &summarySorter{collation: tag}
}

func (s *summarySorter) Sort(summaries []*models.IntersectionSummary, key models.SortKey, direction models.SortDirection) []*models.IntersectionSummary {
	sorted := make([]*models.IntersectionSummary, len(summaries))
	copy(sorted, summaries)

	compare := s.comparator(key)
	if compare == nil {
		return sorted
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if direction == models.SortDesc {
			return compare(sorted[j], sorted[i]) < 0
		}
		return compare(sorted[i], sorted[j]) < 0
	})
	return sorted
}

func (s *summarySorter) comparator(key models.SortKey) func(a, b *models.IntersectionSummary) int {
	switch key {
	case models.SortByName:
		// collate.Collator keeps internal buffers, so each sort gets its own.
		collator := collate.New(s.collation)
		return func(a, b *models.IntersectionSummary) int {
			return collator.CompareString(a.Description, b.Description)
		}
	case models.SortByIn:
		return func(a, b *models.IntersectionSummary) int {
			return compareFloat(a.InCount, b.InCount)
		}
	case models.SortByOut:
		return func(a, b *models.IntersectionSummary) int {
			return compareFloat(a.OutCount, b.OutCount)
		}
	case models.SortByAll:
		return func(a, b *models.IntersectionSummary) int {
			return compareFloat(a.TotalCount, b.TotalCount)
		}
	case models.SortByTime:
		return func(a, b *models.IntersectionSummary) int {
			return a.LatestTime.Compare(b.LatestTime)
		}
	}
	return nil
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// FilterSummariesByKeywords keeps the summaries that carry at least one of
// keywords. An empty keyword list keeps everything.
func FilterSummariesByKeywords(summaries []*models.IntersectionSummary, keywords []string) []*models.IntersectionSummary {
	wanted := models.KeywordSet(keywords)
	if len(wanted) == 0 {
		return summaries
	}

	filtered := make([]*models.IntersectionSummary, 0, len(summaries))
	for _, summary := range summaries {
		for _, kw := range summary.Keywords {
			if _, ok := wanted[kw]; ok {
				filtered = append(filtered, summary)
				break
			}
		}
	}
	return filtered
}
