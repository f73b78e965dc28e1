// File: services/assistant/validate.go
package assistant

import (
	"strings"
	"time"

	"lengolf/models"
	"lengolf/services/availability"
)

// allowed session durations in minutes: 0.5h to 3h in half-hour steps.
var allowedDurations = map[int]bool{
	30: true, 60: true, 90: true, 120: true, 150: true, 180: true,
}

func strParam(params map[string]any, key string) string {
	if v, ok := params[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}

func numParam(params map[string]any, key string) (float64, bool) {
	switch v := params[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

func parseDate(params map[string]any) (string, error) {
	date := strParam(params, "date")
	if date == "" {
		return "", NewValidationError("date", "required")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return "", NewValidationError("date", "must be YYYY-MM-DD")
	}
	return date, nil
}

// parseStartTime validates the time-of-day window [09:00, 24:00).
func parseStartTime(params map[string]any, required bool) (int, error) {
	raw := strParam(params, "start_time")
	if raw == "" {
		if required {
			return 0, NewValidationError("start_time", "required")
		}
		return -1, nil
	}
	minute, err := availability.MinuteOfDay(raw)
	if err != nil {
		return 0, NewValidationError("start_time", "must be HH:MM")
	}
	if minute < availability.OpenMinute || minute >= availability.CloseMinute {
		return 0, NewValidationError("start_time", "must be between 09:00 and 24:00")
	}
	return minute, nil
}

// parseDuration validates membership in the discrete duration set and
// converts hours to minutes.
func parseDuration(params map[string]any, required bool) (int, error) {
	hours, ok := numParam(params, "duration")
	if !ok {
		if required {
			return 0, NewValidationError("duration", "required")
		}
		return 0, nil
	}
	if hours == 0 && !required {
		// Zero means "keep the current duration" on the modify path.
		return 0, nil
	}
	minutes := int(hours * 60)
	if !allowedDurations[minutes] {
		return 0, NewValidationError("duration", "must be 0.5 to 3.0 hours in half-hour steps")
	}
	return minutes, nil
}

func parseResourceClass(params map[string]any) (models.ResourceClass, error) {
	class := models.ResourceClass(strParam(params, "resource_class"))
	if !models.ValidResourceClass(class) {
		return "", NewValidationError("resource_class", "must be one of bay, sim, coach")
	}
	return class, nil
}

// parseOccupants enforces the per-class occupancy cap before any
// availability check runs.
func parseOccupants(params map[string]any, class models.ResourceClass) (int, error) {
	occ, ok := numParam(params, "occupants")
	if !ok || occ == 0 {
		return 1, nil
	}
	n := int(occ)
	if n < 1 {
		return 0, NewValidationError("occupants", "must be at least 1")
	}
	if cap := models.MaxOccupantsFor(class); cap > 0 && n > cap {
		return 0, NewValidationError("occupants", "exceeds the occupancy cap for this resource class")
	}
	return n, nil
}

func parseCheckAvailability(params map[string]any) (models.CheckAvailabilityParams, error) {
	var p models.CheckAvailabilityParams
	var err error
	if p.Date, err = parseDate(params); err != nil {
		return p, err
	}
	if p.Start, err = parseStartTime(params, false); err != nil {
		return p, err
	}
	if p.Duration, err = parseDuration(params, true); err != nil {
		return p, err
	}
	if p.ResourceClass, err = parseResourceClass(params); err != nil {
		return p, err
	}
	if p.Start >= 0 && p.Start+p.Duration > availability.CloseMinute {
		return p, NewValidationError("duration", "session would run past closing time")
	}
	return p, nil
}

func ParseCreateBooking(params map[string]any) (models.CreateBookingParams, error) {
	var p models.CreateBookingParams
	var err error
	if p.Date, err = parseDate(params); err != nil {
		return p, err
	}
	if p.Start, err = parseStartTime(params, true); err != nil {
		return p, err
	}
	if p.Duration, err = parseDuration(params, true); err != nil {
		return p, err
	}
	if p.ResourceClass, err = parseResourceClass(params); err != nil {
		return p, err
	}
	if p.Occupants, err = parseOccupants(params, p.ResourceClass); err != nil {
		return p, err
	}
	if p.Start+p.Duration > availability.CloseMinute {
		return p, NewValidationError("duration", "session would run past closing time")
	}
	if p.CustomerName = strParam(params, "customer_name"); p.CustomerName == "" {
		return p, NewValidationError("customer_name", "required")
	}
	if p.Phone = strParam(params, "phone"); p.Phone == "" {
		return p, NewValidationError("phone", "required")
	}
	p.CustomerID = strParam(params, "customer_id")
	p.CoachName = strParam(params, "coach_name")
	p.Notes = strParam(params, "notes")
	return p, nil
}

func ParseModifyBooking(params map[string]any) (models.ModifyBookingParams, error) {
	var p models.ModifyBookingParams
	var err error
	if p.BookingID = strParam(params, "booking_id"); p.BookingID == "" {
		return p, NewValidationError("booking_id", "required")
	}
	if date := strParam(params, "date"); date != "" {
		if p.Date, err = parseDate(params); err != nil {
			return p, err
		}
	}
	if p.Start, err = parseStartTime(params, false); err != nil {
		return p, err
	}
	if p.Duration, err = parseDuration(params, false); err != nil {
		return p, err
	}
	p.Notes = strParam(params, "notes")
	if p.Date == "" && p.Start < 0 && p.Duration == 0 && p.Notes == "" {
		return p, NewValidationError("booking_id", "no changes requested")
	}
	return p, nil
}

func ParseCancelBooking(params map[string]any) (models.CancelBookingParams, error) {
	var p models.CancelBookingParams
	if p.BookingID = strParam(params, "booking_id"); p.BookingID == "" {
		return p, NewValidationError("booking_id", "required")
	}
	p.Reason = strParam(params, "reason")
	return p, nil
}

func parseLookupBooking(params map[string]any) (models.LookupBookingParams, error) {
	var p models.LookupBookingParams
	p.BookingID = strParam(params, "booking_id")
	p.CustomerID = strParam(params, "customer_id")
	p.Date = strParam(params, "date")
	if p.BookingID == "" && p.CustomerID == "" {
		return p, NewValidationError("booking_id", "either booking_id or customer_id is required")
	}
	return p, nil
}

func parseLookupCustomer(params map[string]any) (models.LookupCustomerParams, error) {
	var p models.LookupCustomerParams
	p.Phone = strParam(params, "phone")
	p.Name = strParam(params, "name")
	if p.Phone == "" && p.Name == "" {
		return p, NewValidationError("phone", "either phone or name is required")
	}
	return p, nil
}
