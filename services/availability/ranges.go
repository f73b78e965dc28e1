// File: services/availability/ranges.go
package availability

import (
	"context"
	"fmt"
	"time"

	"lengolf/models"
)

func (e *DefaultEngine) DaySummary(ctx context.Context, date string, duration int, class models.ResourceClass) (*models.DaySummary, error) {
	resources := models.ResourcesByClass(class)
	if len(resources) == 0 {
		return nil, fmt.Errorf("unknown resource class %q", class)
	}
	if _, err := time.ParseInLocation("2006-01-02", date, e.Loc); err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	summary, err := e.buildSummary(ctx, date, duration, class, resources)
	if err != nil {
		return nil, err
	}
	if len(summary.Ranges) > 0 || duration == FallbackDurationMin {
		return summary, nil
	}

	// Nothing free at the requested duration: retry at the fallback duration
	// so the caller can offer a shorter session instead of a flat no.
	fallback, err := e.buildSummary(ctx, date, FallbackDurationMin, class, resources)
	if err != nil {
		return nil, err
	}
	if len(fallback.Ranges) == 0 {
		return summary, nil
	}
	fallback.Fallback = true
	return fallback, nil
}

func (e *DefaultEngine) buildSummary(ctx context.Context, date string, duration int, class models.ResourceClass, resources []models.Resource) (*models.DaySummary, error) {
	summary := &models.DaySummary{
		Date:     date,
		Class:    class,
		Duration: duration,
	}

	probes := e.fetchIntervals(ctx, date, resources)
	for _, r := range resources {
		p := probes[r.ID]
		if p.err != nil {
			summary.Degraded = true
		}

		var freeStarts []int
		for start := OpenMinute; start+duration <= CloseMinute; start += StepMinutes {
			if p.err != nil || SlotFree(start, duration, p.intervals) {
				freeStarts = append(freeStarts, start)
			}
		}
		if len(freeStarts) == 0 {
			continue
		}
		summary.Ranges = append(summary.Ranges, models.ResourceRanges{
			ResourceName: r.Name,
			Ranges:       CompressStarts(freeStarts, duration),
		})
	}
	return summary, nil
}

// CompressStarts merges consecutive free start times into display ranges.
// Successive starts merge when the gap between them is exactly one
// granularity step; each range runs from its first start to the end of a
// session begun at its last start.
func CompressStarts(starts []int, duration int) []string {
	if len(starts) == 0 {
		return nil
	}

	var out []string
	runStart := starts[0]
	prev := starts[0]
	flush := func() {
		out = append(out, fmt.Sprintf("%s - %s", FormatMinute(runStart), FormatMinute(prev+duration)))
	}
	for _, s := range starts[1:] {
		if s-prev != StepMinutes {
			flush()
			runStart = s
		}
		prev = s
	}
	flush()
	return out
}
