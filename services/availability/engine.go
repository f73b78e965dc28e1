// File: services/availability/engine.go
package availability

import (
	"context"
	"fmt"
	"time"

	"lengolf/models"
	"lengolf/utils"

	"go.uber.org/zap"
)

// BusyIntervalSource supplies the committed intervals for one resource on one
// date. Implemented by the booking repository in production.
type BusyIntervalSource interface {
	BusyIntervals(ctx context.Context, resourceID, date string) ([]models.BusyInterval, error)
}

// Engine computes which resources are free for a candidate slot or across a
// whole business day.
type Engine interface {
	CheckSlot(ctx context.Context, date string, start, duration int, class models.ResourceClass) (*models.AvailabilitySlot, error)
	DaySummary(ctx context.Context, date string, duration int, class models.ResourceClass) (*models.DaySummary, error)
}

// DefaultEngine implements Engine with a fork-join fan-out per resource.
type DefaultEngine struct {
	Source    BusyIntervalSource
	Resources []models.Resource
	Loc       *time.Location
}

// NewDefaultEngine builds an engine over the venue's fixed catalogue. All
// interval math happens in the configured business timezone.
func NewDefaultEngine(source BusyIntervalSource, tz string) *DefaultEngine {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}
	return &DefaultEngine{
		Source:    source,
		Resources: models.Resources,
		Loc:       loc,
	}
}

type intervalProbe struct {
	resourceID string
	intervals  []models.BusyInterval
	err        error
}

// fetchIntervals fans out one busy-interval read per resource and joins.
// A failed read yields a nil interval set and marks the probe degraded; the
// caller treats that resource as available (fail-open).
func (e *DefaultEngine) fetchIntervals(ctx context.Context, date string, resources []models.Resource) map[string]intervalProbe {
	ch := make(chan intervalProbe, len(resources))
	for _, r := range resources {
		go func(resourceID string) {
			intervals, err := e.Source.BusyIntervals(ctx, resourceID, date)
			ch <- intervalProbe{resourceID: resourceID, intervals: intervals, err: err}
		}(r.ID)
	}

	probes := make(map[string]intervalProbe, len(resources))
	for range resources {
		p := <-ch
		probes[p.resourceID] = p
	}
	return probes
}

func (e *DefaultEngine) CheckSlot(ctx context.Context, date string, start, duration int, class models.ResourceClass) (*models.AvailabilitySlot, error) {
	logger := utils.GetLogger()

	resources := models.ResourcesByClass(class)
	if len(resources) == 0 {
		return nil, fmt.Errorf("unknown resource class %q", class)
	}
	if _, err := time.ParseInLocation("2006-01-02", date, e.Loc); err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	slot := &models.AvailabilitySlot{
		Date:     date,
		Start:    start,
		Duration: duration,
		Free:     make(map[string]bool, len(resources)),
	}

	probes := e.fetchIntervals(ctx, date, resources)
	for _, r := range resources {
		p := probes[r.ID]
		if p.err != nil {
			// Fail open: report available, flag the degradation.
			logger.Warn("availability: busy-interval source failed, reporting resource as available",
				zap.String("resourceID", r.ID), zap.String("date", date), zap.Error(p.err))
			slot.Free[r.ID] = true
			slot.Degraded = true
			continue
		}
		slot.Free[r.ID] = SlotFree(start, duration, p.intervals)
	}
	return slot, nil
}
