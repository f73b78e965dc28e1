// File: services/assistant/executor.go
package assistant

import (
	"context"
	"fmt"
	"strings"

	bookingRepo "lengolf/database/repository/booking"
	customerRepo "lengolf/database/repository/customer"
	"lengolf/models"
	"lengolf/services/availability"
	"lengolf/utils"

	"go.uber.org/zap"
)

// ApprovalCreator is the slice of the approval gate the executor needs:
// opening a pending request. Resolution happens out-of-band.
type ApprovalCreator interface {
	Create(ctx context.Context, req models.ApprovalRequest) (string, error)
}

// CallMeta carries turn-level identity into each dispatched action.
type CallMeta struct {
	ConversationID string
	Channel        models.Channel
	CustomerID     string
}

// FunctionExecutor validates and dispatches one FunctionCall. Mutating
// actions are prepared here but only committed through the approval gate.
type FunctionExecutor interface {
	Execute(ctx context.Context, call models.FunctionCall, meta CallMeta) models.FunctionResult
}

// DefaultFunctionExecutor implements FunctionExecutor.
type DefaultFunctionExecutor struct {
	Availability availability.Engine
	Bookings     bookingRepo.BookingRepository
	Customers    customerRepo.CustomerRepository
	Approvals    ApprovalCreator
}

func (e *DefaultFunctionExecutor) Execute(ctx context.Context, call models.FunctionCall, meta CallMeta) models.FunctionResult {
	logger := utils.GetLogger()
	logger.Debug("executor: dispatching action",
		zap.String("action", string(call.Name)), zap.String("conversationID", meta.ConversationID))

	if !models.ValidAction(call.Name) {
		return failedResult(fmt.Sprintf("unknown action %q", call.Name))
	}

	switch call.Name {
	case models.ActionCheckAvailability:
		return e.checkAvailability(ctx, call)
	case models.ActionCreateBooking:
		return e.createBooking(ctx, call, meta)
	case models.ActionModifyBooking:
		return e.modifyBooking(ctx, call, meta)
	case models.ActionCancelBooking:
		return e.cancelBooking(ctx, call, meta)
	case models.ActionLookupBooking:
		return e.lookupBooking(ctx, call)
	case models.ActionLookupCustomer:
		return e.lookupCustomer(ctx, call)
	}
	return failedResult("unreachable action")
}

func failedResult(reason string) models.FunctionResult {
	return models.FunctionResult{Success: false, Error: reason}
}

func (e *DefaultFunctionExecutor) checkAvailability(ctx context.Context, call models.FunctionCall) models.FunctionResult {
	p, err := parseCheckAvailability(call.Params)
	if err != nil {
		return failedResult(err.Error())
	}

	// Specific time requested: answer with a minimal boolean view that never
	// exposes internal resource identifiers.
	if p.Start >= 0 {
		slot, err := e.Availability.CheckSlot(ctx, p.Date, p.Start, p.Duration, p.ResourceClass)
		if err != nil {
			return failedResult(err.Error())
		}
		payload := map[string]any{
			"date":           p.Date,
			"start_time":     availability.FormatMinute(p.Start),
			"duration_hours": float64(p.Duration) / 60,
			"resource_class": string(p.ResourceClass),
			"available":      slot.AnyFree(),
		}
		if slot.Degraded {
			payload["warning"] = "availability source degraded; treat as tentative"
		}
		return models.FunctionResult{Success: true, Payload: payload}
	}

	summary, err := e.Availability.DaySummary(ctx, p.Date, p.Duration, p.ResourceClass)
	if err != nil {
		return failedResult(err.Error())
	}
	payload := map[string]any{
		"date":           summary.Date,
		"resource_class": string(summary.Class),
		"summary":        renderDaySummary(summary),
	}
	if summary.Fallback {
		payload["note"] = fmt.Sprintf("no availability at the requested duration; showing %.1f-hour slots instead",
			float64(summary.Duration)/60)
	}
	if summary.Degraded {
		payload["warning"] = "availability source degraded; treat as tentative"
	}
	return models.FunctionResult{Success: true, Payload: payload}
}

func renderDaySummary(s *models.DaySummary) string {
	if len(s.Ranges) == 0 {
		return "fully booked"
	}
	var sb strings.Builder
	for i, rr := range s.Ranges {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(rr.ResourceName)
		sb.WriteString(": ")
		sb.WriteString(strings.Join(rr.Ranges, ", "))
	}
	return sb.String()
}

func (e *DefaultFunctionExecutor) createBooking(ctx context.Context, call models.FunctionCall, meta CallMeta) models.FunctionResult {
	p, err := ParseCreateBooking(call.Params)
	if err != nil {
		return failedResult(err.Error())
	}

	// Re-run availability for the exact requested slot before opening an
	// approval request. A degraded source does not block: the uncertainty is
	// surfaced in the summary for the human approver instead.
	slot, err := e.Availability.CheckSlot(ctx, p.Date, p.Start, p.Duration, p.ResourceClass)
	if err != nil {
		return failedResult(err.Error())
	}
	if !slot.AnyFree() {
		res := failedResult(fmt.Sprintf("no %s available on %s at %s for %.1f hours",
			p.ResourceClass, p.Date, availability.FormatMinute(p.Start), float64(p.Duration)/60))
		if alt := e.freeAlternateClass(ctx, p); alt != "" {
			res.Payload = map[string]any{"alternative_class": string(alt)}
			res.Error += fmt.Sprintf("; a %s is free at that time", alt)
		}
		return res
	}

	pkg := e.eligiblePackage(ctx, p.CustomerID, p.CoachName != "")
	summary := buildCreateSummary(p, pkg, slot.Degraded)

	approvalID, err := e.Approvals.Create(ctx, models.ApprovalRequest{
		ConversationID: meta.ConversationID,
		Channel:        meta.Channel,
		CustomerID:     p.CustomerID,
		Call:           call,
		Summary:        summary,
	})
	if err != nil {
		return failedResult(fmt.Sprintf("failed to open approval request: %v", err))
	}

	return models.FunctionResult{
		Success:          true,
		RequiresApproval: true,
		ApprovalSummary:  summary,
		ApprovalID:       approvalID,
		Payload:          map[string]any{"approval_id": approvalID, "status": "pending staff approval"},
	}
}

// freeAlternateClass checks whether the sibling simulator class is free for
// the same slot. Coaches have no alternate.
func (e *DefaultFunctionExecutor) freeAlternateClass(ctx context.Context, p models.CreateBookingParams) models.ResourceClass {
	var alt models.ResourceClass
	switch p.ResourceClass {
	case models.ClassBay:
		alt = models.ClassSim
	case models.ClassSim:
		alt = models.ClassBay
	default:
		return ""
	}
	if p.Occupants > models.MaxOccupantsFor(alt) {
		return ""
	}
	slot, err := e.Availability.CheckSlot(ctx, p.Date, p.Start, p.Duration, alt)
	if err != nil || !slot.AnyFree() {
		return ""
	}
	return alt
}

// eligiblePackage picks the first active package that can pay for the
// requested session type. Absence defaults the rate to walk-in.
func (e *DefaultFunctionExecutor) eligiblePackage(ctx context.Context, customerID string, coaching bool) *models.ActivePackage {
	if customerID == "" {
		return nil
	}
	cust, err := e.Customers.GetByID(ctx, customerID)
	if err != nil || cust == nil {
		return nil
	}
	for i := range cust.Packages {
		p := cust.Packages[i]
		if coaching && p.CoversCoaching() {
			return &p
		}
		if !coaching && p.CoversSimulator() {
			return &p
		}
	}
	return nil
}

func buildCreateSummary(p models.CreateBookingParams, pkg *models.ActivePackage, degraded bool) string {
	rate := "walk-in rate"
	if pkg != nil {
		if pkg.Unlimited {
			rate = fmt.Sprintf("package: %s (unlimited)", pkg.Name)
		} else {
			rate = fmt.Sprintf("package: %s (%.1f hours left)", pkg.Name, pkg.RemainingHours)
		}
	}
	session := "simulator session"
	if p.CoachName != "" {
		session = "coaching with " + p.CoachName
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "New booking: %s (%s)\n", p.CustomerName, p.Phone)
	fmt.Fprintf(&sb, "%s on %s, %s - %s (%s, %d player(s))\n",
		session, p.Date, availability.FormatMinute(p.Start),
		availability.FormatMinute(p.Start+p.Duration), p.ResourceClass, p.Occupants)
	fmt.Fprintf(&sb, "Rate: %s", rate)
	if p.Notes != "" {
		fmt.Fprintf(&sb, "\nNotes: %s", p.Notes)
	}
	if degraded {
		sb.WriteString("\nWarning: availability source was degraded during the check; verify the slot manually.")
	}
	return sb.String()
}

func (e *DefaultFunctionExecutor) modifyBooking(ctx context.Context, call models.FunctionCall, meta CallMeta) models.FunctionResult {
	p, err := ParseModifyBooking(call.Params)
	if err != nil {
		return failedResult(err.Error())
	}
	booking, err := e.Bookings.GetByID(ctx, p.BookingID)
	if err != nil {
		return failedResult(fmt.Sprintf("booking lookup failed: %v", err))
	}
	if booking == nil {
		return failedResult(fmt.Sprintf("booking %s not found", p.BookingID))
	}
	if booking.Status == models.BookingCancelled {
		return failedResult(fmt.Sprintf("booking %s is already cancelled", p.BookingID))
	}

	var changes []string
	if p.Date != "" && p.Date != booking.Date {
		changes = append(changes, fmt.Sprintf("date %s -> %s", booking.Date, p.Date))
	}
	if p.Start >= 0 && p.Start != booking.Start {
		changes = append(changes, fmt.Sprintf("time %s -> %s",
			availability.FormatMinute(booking.Start), availability.FormatMinute(p.Start)))
	}
	if p.Duration > 0 && p.Duration != booking.Duration {
		changes = append(changes, fmt.Sprintf("duration %.1fh -> %.1fh",
			float64(booking.Duration)/60, float64(p.Duration)/60))
	}
	if p.Notes != "" {
		changes = append(changes, "notes updated")
	}
	if len(changes) == 0 {
		return failedResult("requested changes match the existing booking")
	}

	summary := fmt.Sprintf("Modify booking %s: %s (%s)\n%s",
		booking.ID, booking.CustomerName, booking.Phone, strings.Join(changes, "; "))

	approvalID, err := e.Approvals.Create(ctx, models.ApprovalRequest{
		ConversationID: meta.ConversationID,
		Channel:        meta.Channel,
		CustomerID:     booking.CustomerID,
		Call:           call,
		Summary:        summary,
	})
	if err != nil {
		return failedResult(fmt.Sprintf("failed to open approval request: %v", err))
	}
	return models.FunctionResult{
		Success:          true,
		RequiresApproval: true,
		ApprovalSummary:  summary,
		ApprovalID:       approvalID,
		Payload:          map[string]any{"approval_id": approvalID, "status": "pending staff approval"},
	}
}

func (e *DefaultFunctionExecutor) cancelBooking(ctx context.Context, call models.FunctionCall, meta CallMeta) models.FunctionResult {
	p, err := ParseCancelBooking(call.Params)
	if err != nil {
		return failedResult(err.Error())
	}
	booking, err := e.Bookings.GetByID(ctx, p.BookingID)
	if err != nil {
		return failedResult(fmt.Sprintf("booking lookup failed: %v", err))
	}
	if booking == nil {
		return failedResult(fmt.Sprintf("booking %s not found", p.BookingID))
	}
	if booking.Status == models.BookingCancelled {
		return failedResult(fmt.Sprintf("booking %s is already cancelled", p.BookingID))
	}

	summary := fmt.Sprintf("Cancel booking %s: %s (%s)\n%s, %s - %s (%s)",
		booking.ID, booking.CustomerName, booking.Phone, booking.Date,
		availability.FormatMinute(booking.Start), availability.FormatMinute(booking.End()),
		booking.ResourceClass)
	if p.Reason != "" {
		summary += "\nReason: " + p.Reason
	}

	approvalID, err := e.Approvals.Create(ctx, models.ApprovalRequest{
		ConversationID: meta.ConversationID,
		Channel:        meta.Channel,
		CustomerID:     booking.CustomerID,
		Call:           call,
		Summary:        summary,
	})
	if err != nil {
		return failedResult(fmt.Sprintf("failed to open approval request: %v", err))
	}
	return models.FunctionResult{
		Success:          true,
		RequiresApproval: true,
		ApprovalSummary:  summary,
		ApprovalID:       approvalID,
		Payload:          map[string]any{"approval_id": approvalID, "status": "pending staff approval"},
	}
}

func (e *DefaultFunctionExecutor) lookupBooking(ctx context.Context, call models.FunctionCall) models.FunctionResult {
	p, err := parseLookupBooking(call.Params)
	if err != nil {
		return failedResult(err.Error())
	}

	if p.BookingID != "" {
		booking, err := e.Bookings.GetByID(ctx, p.BookingID)
		if err != nil {
			return failedResult(fmt.Sprintf("booking lookup failed: %v", err))
		}
		if booking == nil {
			// Not found is a successful read with an empty payload.
			return models.FunctionResult{Success: true, Payload: map[string]any{"found": false}}
		}
		return models.FunctionResult{Success: true, Payload: bookingPayload(*booking)}
	}

	date := p.Date
	bookings, err := e.Bookings.FindByCustomerAndDate(ctx, p.CustomerID, date)
	if err != nil {
		return failedResult(fmt.Sprintf("booking lookup failed: %v", err))
	}
	if len(bookings) == 0 {
		return models.FunctionResult{Success: true, Payload: map[string]any{"found": false}}
	}
	items := make([]map[string]any, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, bookingPayload(b))
	}
	return models.FunctionResult{Success: true, Payload: map[string]any{"found": true, "bookings": items}}
}

func bookingPayload(b models.Booking) map[string]any {
	return map[string]any{
		"found":          true,
		"booking_id":     b.ID,
		"customer_name":  b.CustomerName,
		"date":           b.Date,
		"start_time":     availability.FormatMinute(b.Start),
		"end_time":       availability.FormatMinute(b.End()),
		"resource_class": string(b.ResourceClass),
		"status":         string(b.Status),
		"coaching":       b.Type == models.TypeCoaching,
		"coach_name":     b.CoachName,
	}
}

func (e *DefaultFunctionExecutor) lookupCustomer(ctx context.Context, call models.FunctionCall) models.FunctionResult {
	p, err := parseLookupCustomer(call.Params)
	if err != nil {
		return failedResult(err.Error())
	}

	var cust *models.Customer
	if p.Phone != "" {
		cust, err = e.Customers.GetByPhone(ctx, p.Phone)
	} else {
		var matches []models.Customer
		matches, err = e.Customers.SearchByName(ctx, p.Name, 1)
		if err == nil && len(matches) > 0 {
			cust = &matches[0]
		}
	}
	if err != nil {
		return failedResult(fmt.Sprintf("customer lookup failed: %v", err))
	}
	if cust == nil {
		return models.FunctionResult{Success: true, Payload: map[string]any{"found": false}}
	}

	packages := make([]map[string]any, 0, len(cust.Packages))
	for _, pkg := range cust.Packages {
		packages = append(packages, map[string]any{
			"name":            pkg.Name,
			"category":        string(pkg.Category),
			"remaining_hours": pkg.RemainingHours,
			"unlimited":       pkg.Unlimited,
			"expires_at":      pkg.ExpiresAt,
		})
	}
	return models.FunctionResult{Success: true, Payload: map[string]any{
		"found":        true,
		"customer_id":  cust.ID,
		"name":         cust.Name,
		"phone":        cust.Phone,
		"total_visits": cust.TotalVisits,
		"packages":     packages,
	}}
}
