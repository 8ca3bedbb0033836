// Package temporal groups classified users into monthly cohorts.
package temporal

import (
	"math"
	"sort"

	"github.com/hvaldez/ladacheck/internal/domain"
)

// Percentage returns part over total as a percentage rounded to two
// decimals, or 0 when total is zero.
func Percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*100*100) / 100
}

// Aggregate counts both classification lists per period and emits one bucket
// per period in ascending order. Records without a period (no parseable
// registration date) are excluded here but still count toward run totals.
func Aggregate(withoutPrefix, withPrefix []domain.ClassifiedUser) domain.TemporalAnalysis {
	sinCounts := countByPeriod(withoutPrefix)
	conCounts := countByPeriod(withPrefix)

	periods := make([]string, 0, len(sinCounts)+len(conCounts))
	seen := make(map[string]struct{}, len(sinCounts)+len(conCounts))
	for period := range sinCounts {
		seen[period] = struct{}{}
	}
	for period := range conCounts {
		seen[period] = struct{}{}
	}
	for period := range seen {
		periods = append(periods, period)
	}
	// Lexical order is chronological for zero-padded YYYY-MM keys.
	sort.Strings(periods)

	data := make([]domain.PeriodBucket, 0, len(periods))
	for _, period := range periods {
		sin := sinCounts[period]
		con := conCounts[period]
		total := sin + con
		data = append(data, domain.PeriodBucket{
			Period:           period,
			WithoutPrefix:    sin,
			WithPrefix:       con,
			Total:            total,
			PctWithoutPrefix: Percentage(sin, total),
			PctWithPrefix:    Percentage(con, total),
		})
	}

	return domain.TemporalAnalysis{Periods: periods, Data: data}
}

func countByPeriod(users []domain.ClassifiedUser) map[string]int {
	counts := make(map[string]int)
	for _, user := range users {
		if user.Period != "" {
			counts[user.Period]++
		}
	}
	return counts
}
