// File: services/approval/execute.go
package approval

import (
	"context"
	"fmt"
	"strings"

	"lengolf/models"
	"lengolf/services/assistant"
	"lengolf/services/availability"
	"lengolf/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// execute is the privileged commit path for an approved request. It re-runs
// the same parameter validation as the prepare path, then performs the real
// side effect exactly once. Returns the affected booking id.
func (s *DefaultApprovalService) execute(ctx context.Context, req *models.ApprovalRequest) (string, error) {
	switch req.Call.Name {
	case models.ActionCreateBooking:
		return s.executeCreate(ctx, req)
	case models.ActionModifyBooking:
		return s.executeModify(ctx, req)
	case models.ActionCancelBooking:
		return s.executeCancel(ctx, req)
	}
	return "", fmt.Errorf("action %q is not gated", req.Call.Name)
}

func (s *DefaultApprovalService) executeCreate(ctx context.Context, req *models.ApprovalRequest) (string, error) {
	p, err := assistant.ParseCreateBooking(req.Call.Params)
	if err != nil {
		return "", err
	}

	slot, err := s.Availability.CheckSlot(ctx, p.Date, p.Start, p.Duration, p.ResourceClass)
	if err != nil {
		return "", fmt.Errorf("availability check failed: %w", err)
	}
	resourceID := pickResource(slot, p.ResourceClass, p.CoachName)
	if resourceID == "" {
		return "", fmt.Errorf("no %s free on %s at %s anymore", p.ResourceClass, p.Date, availability.FormatMinute(p.Start))
	}

	if p.CustomerID == "" && !s.DryRun {
		p.CustomerID = s.ensureCustomer(ctx, p.CustomerName, p.Phone)
	}

	bookingType := models.TypeSimulator
	if p.CoachName != "" {
		bookingType = models.TypeCoaching
	}
	booking := models.Booking{
		CustomerID:    p.CustomerID,
		CustomerName:  p.CustomerName,
		Phone:         p.Phone,
		Date:          p.Date,
		Start:         p.Start,
		Duration:      p.Duration,
		ResourceID:    resourceID,
		ResourceClass: p.ResourceClass,
		Occupants:     p.Occupants,
		Status:        models.BookingConfirmed,
		Type:          bookingType,
		CoachName:     p.CoachName,
		RateCategory:  s.rateCategory(ctx, p.CustomerID, p.CoachName != ""),
		Notes:         p.Notes,
	}

	if s.DryRun {
		return "dryrun-" + uuid.New().String(), nil
	}

	bookingID, err := s.Bookings.Create(ctx, booking)
	if err != nil {
		return "", fmt.Errorf("failed to persist booking: %w", err)
	}

	// Receipt failure never rolls back a committed booking.
	if s.Receipts != nil {
		booking.ID = bookingID
		if _, err := s.Receipts.ReceiptForBooking(ctx, booking); err != nil {
			utils.GetLogger().Warn("approval: receipt generation failed",
				zap.String("bookingID", bookingID), zap.Error(err))
		}
	}

	s.notifyCustomer(ctx, req, fmt.Sprintf(
		"Your booking is confirmed: %s, %s - %s. See you at LENGOLF!",
		p.Date, availability.FormatMinute(p.Start), availability.FormatMinute(p.Start+p.Duration)))
	return bookingID, nil
}

func (s *DefaultApprovalService) executeModify(ctx context.Context, req *models.ApprovalRequest) (string, error) {
	p, err := assistant.ParseModifyBooking(req.Call.Params)
	if err != nil {
		return "", err
	}

	booking, err := s.Bookings.GetByID(ctx, p.BookingID)
	if err != nil {
		return "", fmt.Errorf("booking lookup failed: %w", err)
	}
	if booking == nil {
		return "", fmt.Errorf("booking %s not found", p.BookingID)
	}
	if booking.Status == models.BookingCancelled {
		return "", fmt.Errorf("booking %s is cancelled", p.BookingID)
	}

	updated := *booking
	if p.Date != "" {
		updated.Date = p.Date
	}
	if p.Start >= 0 {
		updated.Start = p.Start
	}
	if p.Duration > 0 {
		updated.Duration = p.Duration
	}
	if p.Notes != "" {
		updated.Notes = p.Notes
	}
	if updated.End() > availability.CloseMinute {
		return "", fmt.Errorf("updated session would run past closing time")
	}

	slotMoved := updated.Date != booking.Date || updated.Start != booking.Start || updated.Duration != booking.Duration
	if slotMoved {
		slot, err := s.Availability.CheckSlot(ctx, updated.Date, updated.Start, updated.Duration, updated.ResourceClass)
		if err != nil {
			return "", fmt.Errorf("availability check failed: %w", err)
		}
		resourceID := pickResource(slot, updated.ResourceClass, updated.CoachName)
		if resourceID == "" {
			// The new slot may conflict only with the booking's own current
			// interval, in which case the resource can be kept.
			if !s.ownResourceFree(ctx, booking, updated) {
				return "", fmt.Errorf("no %s free on %s at %s",
					updated.ResourceClass, updated.Date, availability.FormatMinute(updated.Start))
			}
			resourceID = booking.ResourceID
		}
		updated.ResourceID = resourceID
	}

	if s.DryRun {
		return "dryrun-" + uuid.New().String(), nil
	}

	if err := s.Bookings.Update(ctx, updated); err != nil {
		return "", fmt.Errorf("failed to update booking: %w", err)
	}

	s.notifyCustomer(ctx, req, fmt.Sprintf(
		"Your booking has been updated: %s, %s - %s.",
		updated.Date, availability.FormatMinute(updated.Start), availability.FormatMinute(updated.End())))
	return updated.ID, nil
}

func (s *DefaultApprovalService) executeCancel(ctx context.Context, req *models.ApprovalRequest) (string, error) {
	p, err := assistant.ParseCancelBooking(req.Call.Params)
	if err != nil {
		return "", err
	}

	booking, err := s.Bookings.GetByID(ctx, p.BookingID)
	if err != nil {
		return "", fmt.Errorf("booking lookup failed: %w", err)
	}
	if booking == nil {
		return "", fmt.Errorf("booking %s not found", p.BookingID)
	}
	if booking.Status == models.BookingCancelled {
		utils.GetLogger().Info("approval: booking already cancelled",
			zap.String("bookingID", p.BookingID))
		return booking.ID, nil
	}

	if s.DryRun {
		return "dryrun-" + uuid.New().String(), nil
	}

	if err := s.Bookings.SetStatus(ctx, p.BookingID, models.BookingCancelled); err != nil {
		return "", fmt.Errorf("failed to cancel booking: %w", err)
	}

	s.notifyCustomer(ctx, req, fmt.Sprintf(
		"Your booking on %s at %s has been cancelled. We hope to see you again soon!",
		booking.Date, availability.FormatMinute(booking.Start)))
	return booking.ID, nil
}

// pickResource chooses the committed resource from a slot's free map, in
// catalogue order. A named coach takes precedence over order.
func pickResource(slot *models.AvailabilitySlot, class models.ResourceClass, coachName string) string {
	resources := models.ResourcesByClass(class)
	if class == models.ClassCoach && coachName != "" {
		want := strings.ToLower(strings.TrimSpace(coachName))
		for _, r := range resources {
			if strings.Contains(strings.ToLower(r.Name), want) && slot.Free[r.ID] {
				return r.ID
			}
		}
		return ""
	}
	for _, r := range resources {
		if slot.Free[r.ID] {
			return r.ID
		}
	}
	return ""
}

// ownResourceFree reports whether the booking's current resource is free for
// the updated slot once the booking's own interval is excluded from the busy
// set. A source failure denies the move rather than double-booking.
func (s *DefaultApprovalService) ownResourceFree(ctx context.Context, current *models.Booking, updated models.Booking) bool {
	if current.Date != updated.Date {
		return false
	}
	intervals, err := s.Bookings.BusyIntervals(ctx, current.ResourceID, updated.Date)
	if err != nil {
		return false
	}
	others := intervals[:0]
	for _, iv := range intervals {
		if iv.Start == current.Start && iv.End == current.End() {
			continue
		}
		others = append(others, iv)
	}
	return availability.SlotFree(updated.Start, updated.Duration, others)
}

// ensureCustomer links the booking to an existing customer record by phone,
// creating a minimal one on first contact. Failures fall back to an unlinked
// booking rather than blocking the commit.
func (s *DefaultApprovalService) ensureCustomer(ctx context.Context, name, phone string) string {
	exists, err := s.Customers.PhoneExists(ctx, phone)
	if err != nil {
		return ""
	}
	if exists {
		cust, err := s.Customers.GetByPhone(ctx, phone)
		if err != nil || cust == nil {
			return ""
		}
		return cust.ID
	}
	id, err := s.Customers.Create(ctx, models.Customer{Name: name, Phone: phone})
	if err != nil {
		utils.GetLogger().Warn("approval: failed to create customer record",
			zap.String("phone", phone), zap.Error(err))
		return ""
	}
	return id
}

func (s *DefaultApprovalService) rateCategory(ctx context.Context, customerID string, coaching bool) string {
	if customerID == "" {
		return "walk-in"
	}
	cust, err := s.Customers.GetByID(ctx, customerID)
	if err != nil || cust == nil {
		return "walk-in"
	}
	for _, p := range cust.Packages {
		if coaching && p.CoversCoaching() {
			return p.Name
		}
		if !coaching && p.CoversSimulator() {
			return p.Name
		}
	}
	return "walk-in"
}

func (s *DefaultApprovalService) notifyCustomer(ctx context.Context, req *models.ApprovalRequest, text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.NotifyCustomer(ctx, req.Channel, req.ConversationID, text); err != nil {
		utils.GetLogger().Warn("approval: customer notification failed",
			zap.String("approvalID", req.ID), zap.Error(err))
	}
}
