package assistant

import (
	"context"
	"testing"

	"lengolf/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// slotEngine answers CheckSlot from a per-class free table.
type slotEngine struct {
	freeByClass map[models.ResourceClass]bool
	degraded    bool
}

func (e *slotEngine) CheckSlot(_ context.Context, date string, start, duration int, class models.ResourceClass) (*models.AvailabilitySlot, error) {
	slot := &models.AvailabilitySlot{
		Date: date, Start: start, Duration: duration,
		Free:     map[string]bool{},
		Degraded: e.degraded,
	}
	for _, r := range models.ResourcesByClass(class) {
		slot.Free[r.ID] = e.freeByClass[class]
	}
	return slot, nil
}

func (e *slotEngine) DaySummary(_ context.Context, date string, duration int, class models.ResourceClass) (*models.DaySummary, error) {
	return &models.DaySummary{
		Date: date, Class: class, Duration: duration,
		Ranges: []models.ResourceRanges{{ResourceName: "Bay 1", Ranges: []string{"09:00 - 12:00"}}},
	}, nil
}

type stubBookings struct {
	byID map[string]*models.Booking
}

func (s *stubBookings) Create(_ context.Context, _ models.Booking) (string, error) { return "", nil }
func (s *stubBookings) GetByID(_ context.Context, id string) (*models.Booking, error) {
	return s.byID[id], nil
}
func (s *stubBookings) Update(_ context.Context, _ models.Booking) error { return nil }
func (s *stubBookings) SetStatus(_ context.Context, _ string, _ models.BookingStatus) error {
	return nil
}
func (s *stubBookings) UpcomingByCustomer(_ context.Context, _, _ string, _ int) ([]models.Booking, error) {
	return nil, nil
}
func (s *stubBookings) RecentByCustomer(_ context.Context, _, _ string, _ int) ([]models.Booking, error) {
	return nil, nil
}
func (s *stubBookings) FindByCustomerAndDate(_ context.Context, _, _ string) ([]models.Booking, error) {
	return nil, nil
}
func (s *stubBookings) BusyIntervals(_ context.Context, _, _ string) ([]models.BusyInterval, error) {
	return nil, nil
}

type stubCustomers struct {
	byID    map[string]*models.Customer
	byPhone map[string]*models.Customer
}

func (s *stubCustomers) Create(_ context.Context, _ models.Customer) (string, error) { return "", nil }
func (s *stubCustomers) GetByID(_ context.Context, id string) (*models.Customer, error) {
	return s.byID[id], nil
}
func (s *stubCustomers) GetByPhone(_ context.Context, phone string) (*models.Customer, error) {
	return s.byPhone[phone], nil
}
func (s *stubCustomers) SearchByName(_ context.Context, _ string, _ int) ([]models.Customer, error) {
	return nil, nil
}
func (s *stubCustomers) PhoneExists(_ context.Context, _ string) (bool, error) { return false, nil }

type recordingApprovals struct {
	created []models.ApprovalRequest
}

func (r *recordingApprovals) Create(_ context.Context, req models.ApprovalRequest) (string, error) {
	r.created = append(r.created, req)
	return "ap-1", nil
}

func newTestExecutor(engine *slotEngine) (*DefaultFunctionExecutor, *recordingApprovals) {
	approvals := &recordingApprovals{}
	exec := &DefaultFunctionExecutor{
		Availability: engine,
		Bookings:     &stubBookings{byID: map[string]*models.Booking{}},
		Customers:    &stubCustomers{},
		Approvals:    approvals,
	}
	return exec, approvals
}

func testMeta() CallMeta {
	return CallMeta{ConversationID: "conv-1", Channel: models.ChannelLine}
}

func TestExecuteUnknownAction(t *testing.T) {
	exec, _ := newTestExecutor(&slotEngine{})
	result := exec.Execute(context.Background(), models.FunctionCall{Name: "teleport"}, testMeta())
	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "unknown action")
}

func TestCheckAvailabilitySpecificTime(t *testing.T) {
	exec, _ := newTestExecutor(&slotEngine{freeByClass: map[models.ResourceClass]bool{models.ClassBay: true}})

	result := exec.Execute(context.Background(), models.FunctionCall{
		Name: models.ActionCheckAvailability,
		Params: map[string]any{
			"date": "2025-03-10", "start_time": "14:00", "duration": 1.0, "resource_class": "bay",
		},
	}, testMeta())

	require.True(t, result.Success)
	assert.Equal(t, true, result.Payload["available"])
	// Internal resource identifiers never leak to the requester.
	for key := range result.Payload {
		assert.NotContains(t, key, "resource_id")
	}
	_, hasWarning := result.Payload["warning"]
	assert.False(t, hasWarning)
}

func TestCheckAvailabilityDegradedWarning(t *testing.T) {
	exec, _ := newTestExecutor(&slotEngine{
		freeByClass: map[models.ResourceClass]bool{models.ClassBay: true},
		degraded:    true,
	})

	result := exec.Execute(context.Background(), models.FunctionCall{
		Name: models.ActionCheckAvailability,
		Params: map[string]any{
			"date": "2025-03-10", "start_time": "14:00", "duration": 1.0, "resource_class": "bay",
		},
	}, testMeta())

	require.True(t, result.Success)
	assert.Contains(t, result.Payload, "warning")
}

func TestCheckAvailabilityDaySummary(t *testing.T) {
	exec, _ := newTestExecutor(&slotEngine{})

	result := exec.Execute(context.Background(), models.FunctionCall{
		Name: models.ActionCheckAvailability,
		Params: map[string]any{
			"date": "2025-03-10", "duration": 1.0, "resource_class": "bay",
		},
	}, testMeta())

	require.True(t, result.Success)
	assert.Contains(t, result.Payload["summary"], "Bay 1: 09:00 - 12:00")
}

func TestCreateBookingOpensApproval(t *testing.T) {
	exec, approvals := newTestExecutor(&slotEngine{freeByClass: map[models.ResourceClass]bool{models.ClassBay: true}})

	result := exec.Execute(context.Background(), models.FunctionCall{
		Name:   models.ActionCreateBooking,
		Params: validCreateParams(),
	}, testMeta())

	require.True(t, result.Success)
	assert.True(t, result.RequiresApproval)
	assert.Equal(t, "ap-1", result.ApprovalID)
	assert.Contains(t, result.ApprovalSummary, "Khun Somchai")
	assert.Contains(t, result.ApprovalSummary, "walk-in rate")

	require.Len(t, approvals.created, 1)
	assert.Equal(t, models.ActionCreateBooking, approvals.created[0].Call.Name)
	assert.Equal(t, "conv-1", approvals.created[0].ConversationID)
}

func TestCreateBookingRefusedWhenTaken(t *testing.T) {
	// Bays taken, sims free: the refusal suggests the alternate class.
	exec, approvals := newTestExecutor(&slotEngine{freeByClass: map[models.ResourceClass]bool{
		models.ClassBay: false,
		models.ClassSim: true,
	}})

	result := exec.Execute(context.Background(), models.FunctionCall{
		Name:   models.ActionCreateBooking,
		Params: validCreateParams(),
	}, testMeta())

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "sim is free at that time")
	assert.Equal(t, "sim", result.Payload["alternative_class"])
	assert.Empty(t, approvals.created)
}

func TestCreateBookingNoAlternateWhenOverCap(t *testing.T) {
	// A 4-person group cannot fall back to a 2-person sim.
	exec, _ := newTestExecutor(&slotEngine{freeByClass: map[models.ResourceClass]bool{
		models.ClassBay: false,
		models.ClassSim: true,
	}})

	params := validCreateParams()
	params["occupants"] = 4.0
	result := exec.Execute(context.Background(), models.FunctionCall{
		Name:   models.ActionCreateBooking,
		Params: params,
	}, testMeta())

	assert.False(t, result.Success)
	assert.NotContains(t, result.Error, "sim is free")
}

func TestCreateBookingShowsEligiblePackage(t *testing.T) {
	approvals := &recordingApprovals{}
	exec := &DefaultFunctionExecutor{
		Availability: &slotEngine{freeByClass: map[models.ResourceClass]bool{models.ClassBay: true}},
		Bookings:     &stubBookings{},
		Customers: &stubCustomers{byID: map[string]*models.Customer{
			"c-1": {ID: "c-1", Name: "Khun Somchai", Packages: []models.ActivePackage{
				{Name: "Coach Pack", Category: models.PackageCoaching, RemainingHours: 4},
				{Name: "Gold 20h", Category: models.PackageSimulator, RemainingHours: 7.5},
			}},
		}},
		Approvals: approvals,
	}

	params := validCreateParams()
	params["customer_id"] = "c-1"
	result := exec.Execute(context.Background(), models.FunctionCall{
		Name:   models.ActionCreateBooking,
		Params: params,
	}, testMeta())

	require.True(t, result.Success)
	// Simulator session picks the first simulator-eligible package, skipping
	// the coaching-only one.
	assert.Contains(t, result.ApprovalSummary, "Gold 20h")
	assert.NotContains(t, result.ApprovalSummary, "Coach Pack")
}

func TestModifyBookingUnknownID(t *testing.T) {
	exec, approvals := newTestExecutor(&slotEngine{})

	result := exec.Execute(context.Background(), models.FunctionCall{
		Name:   models.ActionModifyBooking,
		Params: map[string]any{"booking_id": "ghost", "start_time": "15:00"},
	}, testMeta())

	assert.False(t, result.Success)
	assert.Contains(t, result.Error, "not found")
	assert.Empty(t, approvals.created)
}

func TestCancelBookingOpensApproval(t *testing.T) {
	approvals := &recordingApprovals{}
	exec := &DefaultFunctionExecutor{
		Availability: &slotEngine{},
		Bookings: &stubBookings{byID: map[string]*models.Booking{
			"bk-1": {
				ID: "bk-1", CustomerID: "c-1", CustomerName: "Khun Somchai", Phone: "0812345678",
				Date: "2025-03-10", Start: 840, Duration: 60,
				ResourceClass: models.ClassBay, Status: models.BookingConfirmed,
			},
		}},
		Customers: &stubCustomers{},
		Approvals: approvals,
	}

	result := exec.Execute(context.Background(), models.FunctionCall{
		Name:   models.ActionCancelBooking,
		Params: map[string]any{"booking_id": "bk-1", "reason": "raining"},
	}, testMeta())

	require.True(t, result.Success)
	assert.True(t, result.RequiresApproval)
	assert.Contains(t, result.ApprovalSummary, "Cancel booking bk-1")
	assert.Contains(t, result.ApprovalSummary, "raining")
	require.Len(t, approvals.created, 1)
	assert.Equal(t, "c-1", approvals.created[0].CustomerID)
}

func TestLookupBookingNotFoundIsSuccess(t *testing.T) {
	exec, _ := newTestExecutor(&slotEngine{})

	result := exec.Execute(context.Background(), models.FunctionCall{
		Name:   models.ActionLookupBooking,
		Params: map[string]any{"booking_id": "ghost"},
	}, testMeta())

	require.True(t, result.Success)
	assert.Equal(t, false, result.Payload["found"])
	assert.Empty(t, result.Error)
}

func TestLookupCustomerByPhone(t *testing.T) {
	exec, _ := newTestExecutor(&slotEngine{})
	exec.Customers = &stubCustomers{byPhone: map[string]*models.Customer{
		"0812345678": {ID: "c-1", Name: "Khun Somchai", Phone: "0812345678", TotalVisits: 12},
	}}

	result := exec.Execute(context.Background(), models.FunctionCall{
		Name:   models.ActionLookupCustomer,
		Params: map[string]any{"phone": "0812345678"},
	}, testMeta())

	require.True(t, result.Success)
	assert.Equal(t, true, result.Payload["found"])
	assert.Equal(t, "c-1", result.Payload["customer_id"])
}

func TestValidationFailureHasNoSideEffects(t *testing.T) {
	exec, approvals := newTestExecutor(&slotEngine{freeByClass: map[models.ResourceClass]bool{models.ClassBay: true}})

	params := validCreateParams()
	params["start_time"] = "08:00" // before opening
	result := exec.Execute(context.Background(), models.FunctionCall{
		Name:   models.ActionCreateBooking,
		Params: params,
	}, testMeta())

	assert.False(t, result.Success)
	assert.Empty(t, approvals.created)
}
