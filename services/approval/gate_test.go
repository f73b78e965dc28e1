package approval

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"lengolf/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memApprovalRepo is an in-memory ApprovalRepository with the same atomic
// pending-to-terminal semantics as the production implementation.
type memApprovalRepo struct {
	mu   sync.Mutex
	reqs map[string]*models.ApprovalRequest
}

func newMemApprovalRepo() *memApprovalRepo {
	return &memApprovalRepo{reqs: make(map[string]*models.ApprovalRequest)}
}

func (r *memApprovalRepo) Create(_ context.Context, req models.ApprovalRequest) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	req.State = models.ApprovalPending
	req.CreatedAt = time.Now()
	r.reqs[req.ID] = &req
	return req.ID, nil
}

func (r *memApprovalRepo) GetByID(_ context.Context, id string) (*models.ApprovalRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.reqs[id]
	if !ok {
		return nil, nil
	}
	cp := *req
	return &cp, nil
}

func (r *memApprovalRepo) ListByState(_ context.Context, state models.ApprovalState, limit int) ([]models.ApprovalRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.ApprovalRequest
	for _, req := range r.reqs {
		if req.State == state && len(out) < limit {
			out = append(out, *req)
		}
	}
	return out, nil
}

func (r *memApprovalRepo) ResolvePending(_ context.Context, id string, state models.ApprovalState, staffID string) (*models.ApprovalRequest, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.reqs[id]
	if !ok {
		return nil, false, nil
	}
	if req.State != models.ApprovalPending {
		cp := *req
		return &cp, false, nil
	}
	now := time.Now()
	req.State = state
	req.ResolvedAt = &now
	req.ResolvedBy = staffID
	cp := *req
	return &cp, true, nil
}

func (r *memApprovalRepo) SetBookingID(_ context.Context, id, bookingID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if req, ok := r.reqs[id]; ok {
		req.BookingID = bookingID
	}
	return nil
}

// memBookingRepo counts side effects.
type memBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]*models.Booking
	creates  int
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{bookings: make(map[string]*models.Booking)}
}

func (r *memBookingRepo) Create(_ context.Context, b models.Booking) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	r.bookings[b.ID] = &b
	return b.ID, nil
}

func (r *memBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *memBookingRepo) Update(_ context.Context, b models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[b.ID] = &b
	return nil
}

func (r *memBookingRepo) SetStatus(_ context.Context, id string, status models.BookingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if b, ok := r.bookings[id]; ok {
		b.Status = status
	}
	return nil
}

func (r *memBookingRepo) UpcomingByCustomer(_ context.Context, _, _ string, _ int) ([]models.Booking, error) {
	return nil, nil
}

func (r *memBookingRepo) RecentByCustomer(_ context.Context, _, _ string, _ int) ([]models.Booking, error) {
	return nil, nil
}

func (r *memBookingRepo) FindByCustomerAndDate(_ context.Context, _, _ string) ([]models.Booking, error) {
	return nil, nil
}

func (r *memBookingRepo) BusyIntervals(_ context.Context, resourceID, date string) ([]models.BusyInterval, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.BusyInterval
	for _, b := range r.bookings {
		if b.ResourceID == resourceID && b.Date == date && b.Status == models.BookingConfirmed {
			out = append(out, models.BusyInterval{ResourceID: resourceID, Date: date, Start: b.Start, End: b.End()})
		}
	}
	return out, nil
}

// openEngine reports every resource free.
type openEngine struct{}

func (openEngine) CheckSlot(_ context.Context, date string, start, duration int, class models.ResourceClass) (*models.AvailabilitySlot, error) {
	slot := &models.AvailabilitySlot{Date: date, Start: start, Duration: duration, Free: map[string]bool{}}
	for _, r := range models.ResourcesByClass(class) {
		slot.Free[r.ID] = true
	}
	return slot, nil
}

func (openEngine) DaySummary(_ context.Context, date string, duration int, class models.ResourceClass) (*models.DaySummary, error) {
	return &models.DaySummary{Date: date, Class: class, Duration: duration}, nil
}

type nopCustomers struct{}

func (nopCustomers) Create(_ context.Context, _ models.Customer) (string, error) { return "", nil }
func (nopCustomers) GetByID(_ context.Context, _ string) (*models.Customer, error) {
	return nil, nil
}
func (nopCustomers) GetByPhone(_ context.Context, _ string) (*models.Customer, error) {
	return nil, nil
}
func (nopCustomers) SearchByName(_ context.Context, _ string, _ int) ([]models.Customer, error) {
	return nil, nil
}
func (nopCustomers) PhoneExists(_ context.Context, _ string) (bool, error) { return false, nil }

type recordingNotifier struct {
	mu            sync.Mutex
	customerTexts []string
	staffAlerts   []string
}

func (n *recordingNotifier) NotifyCustomer(_ context.Context, _ models.Channel, _, text string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.customerTexts = append(n.customerTexts, text)
	return nil
}

func (n *recordingNotifier) AlertStaff(_ context.Context, title, _ string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.staffAlerts = append(n.staffAlerts, title)
	return nil
}

func createParams() map[string]any {
	return map[string]any{
		"date":           "2025-03-10",
		"start_time":     "14:00",
		"duration":       1.0,
		"resource_class": "bay",
		"customer_name":  "Khun Somchai",
		"phone":          "0812345678",
	}
}

func newTestGate() (*DefaultApprovalService, *memApprovalRepo, *memBookingRepo, *recordingNotifier) {
	approvals := newMemApprovalRepo()
	bookings := newMemBookingRepo()
	notifier := &recordingNotifier{}
	svc := &DefaultApprovalService{
		Repo:         approvals,
		Bookings:     bookings,
		Customers:    nopCustomers{},
		Availability: openEngine{},
		Notifier:     notifier,
	}
	return svc, approvals, bookings, notifier
}

func pendingCreateRequest(t *testing.T, svc *DefaultApprovalService) string {
	t.Helper()
	id, err := svc.Create(context.Background(), models.ApprovalRequest{
		ConversationID: "conv-1",
		Channel:        models.ChannelLine,
		Call:           models.FunctionCall{Name: models.ActionCreateBooking, Params: createParams()},
		Summary:        "New booking: Khun Somchai",
	})
	require.NoError(t, err)
	return id
}

func TestCreateAlertsStaff(t *testing.T) {
	svc, _, _, notifier := newTestGate()
	id := pendingCreateRequest(t, svc)
	assert.NotEmpty(t, id)
	require.Len(t, notifier.staffAlerts, 1)
	assert.Contains(t, notifier.staffAlerts[0], "create_booking")
}

func TestApproveCommitsBookingOnce(t *testing.T) {
	svc, approvals, bookings, notifier := newTestGate()
	id := pendingCreateRequest(t, svc)

	req, err := svc.Resolve(context.Background(), id, "staff-1", true)
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalApproved, req.State)
	assert.Equal(t, "staff-1", req.ResolvedBy)
	assert.NotEmpty(t, req.BookingID)
	assert.Equal(t, 1, bookings.creates)

	stored, err := approvals.GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, req.BookingID, stored.BookingID)

	// Customer got a confirmation.
	require.Len(t, notifier.customerTexts, 1)
	assert.Contains(t, notifier.customerTexts[0], "confirmed")
}

func TestConcurrentResolvesCommitExactlyOnce(t *testing.T) {
	svc, _, bookings, _ := newTestGate()
	id := pendingCreateRequest(t, svc)

	const racers = 16
	var wg sync.WaitGroup
	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.Resolve(context.Background(), id, "staff-1", true)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, bookings.creates)
}

func TestSecondResolveIsIdempotentNoOp(t *testing.T) {
	svc, _, bookings, _ := newTestGate()
	id := pendingCreateRequest(t, svc)

	first, err := svc.Resolve(context.Background(), id, "staff-1", true)
	require.NoError(t, err)
	require.Equal(t, models.ApprovalApproved, first.State)

	// A later decline cannot flip the decision or undo the side effect.
	second, err := svc.Resolve(context.Background(), id, "staff-2", false)
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalApproved, second.State)
	assert.Equal(t, "staff-1", second.ResolvedBy)
	assert.Equal(t, 1, bookings.creates)
}

func TestDeclineHasNoSideEffect(t *testing.T) {
	svc, _, bookings, notifier := newTestGate()
	id := pendingCreateRequest(t, svc)

	req, err := svc.Resolve(context.Background(), id, "staff-1", false)
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalDeclined, req.State)
	assert.Zero(t, bookings.creates)
	assert.Empty(t, notifier.customerTexts)
}

func TestResolveUnknownRequest(t *testing.T) {
	svc, _, _, _ := newTestGate()

	_, err := svc.Resolve(context.Background(), "nope", "staff-1", true)
	require.Error(t, err)
	var gateErr *GateError
	require.True(t, errors.As(err, &gateErr))
	assert.Equal(t, "not_found", gateErr.Code)
}

func TestDryRunSkipsPersistence(t *testing.T) {
	svc, _, bookings, _ := newTestGate()
	svc.DryRun = true
	id := pendingCreateRequest(t, svc)

	req, err := svc.Resolve(context.Background(), id, "staff-1", true)
	require.NoError(t, err)
	assert.Equal(t, models.ApprovalApproved, req.State)
	assert.True(t, strings.HasPrefix(req.BookingID, "dryrun-"))
	assert.Zero(t, bookings.creates)
}

// knownCustomers resolves one phone number to an existing record.
type knownCustomers struct {
	nopCustomers
	customer *models.Customer
}

func (k knownCustomers) GetByPhone(_ context.Context, phone string) (*models.Customer, error) {
	if k.customer != nil && k.customer.Phone == phone {
		return k.customer, nil
	}
	return nil, nil
}

func (k knownCustomers) PhoneExists(_ context.Context, phone string) (bool, error) {
	return k.customer != nil && k.customer.Phone == phone, nil
}

func TestApproveLinksBookingToCustomerByPhone(t *testing.T) {
	svc, _, bookings, _ := newTestGate()
	svc.Customers = knownCustomers{customer: &models.Customer{ID: "c-7", Name: "Khun Somchai", Phone: "0812345678"}}
	id := pendingCreateRequest(t, svc)

	req, err := svc.Resolve(context.Background(), id, "staff-1", true)
	require.NoError(t, err)

	stored, err := bookings.GetByID(context.Background(), req.BookingID)
	require.NoError(t, err)
	assert.Equal(t, "c-7", stored.CustomerID)
}

func TestApproveCancelBooking(t *testing.T) {
	svc, _, bookings, notifier := newTestGate()

	bookingID, err := bookings.Create(context.Background(), models.Booking{
		CustomerName: "Khun Somchai", Phone: "0812345678",
		Date: "2025-03-10", Start: 840, Duration: 60,
		ResourceID: "bay-1", ResourceClass: models.ClassBay,
		Status: models.BookingConfirmed, Type: models.TypeSimulator,
	})
	require.NoError(t, err)

	id, err := svc.Create(context.Background(), models.ApprovalRequest{
		ConversationID: "conv-1",
		Channel:        models.ChannelLine,
		Call: models.FunctionCall{
			Name:   models.ActionCancelBooking,
			Params: map[string]any{"booking_id": bookingID},
		},
		Summary: "Cancel booking",
	})
	require.NoError(t, err)

	req, err := svc.Resolve(context.Background(), id, "staff-1", true)
	require.NoError(t, err)
	assert.Equal(t, bookingID, req.BookingID)

	stored, err := bookings.GetByID(context.Background(), bookingID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingCancelled, stored.Status)
	require.Len(t, notifier.customerTexts, 1)
	assert.Contains(t, notifier.customerTexts[0], "cancelled")
}

type recordingReceipts struct {
	mu     sync.Mutex
	issued []models.Booking
}

func (r *recordingReceipts) ReceiptForBooking(_ context.Context, b models.Booking) (*models.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.issued = append(r.issued, b)
	return &models.Invoice{ID: "inv-1", Kind: models.InvoiceReceipt, BookingID: b.ID}, nil
}

func TestApproveIssuesReceiptForCommittedBooking(t *testing.T) {
	svc, _, bookings, _ := newTestGate()
	receipts := &recordingReceipts{}
	svc.Receipts = receipts
	id := pendingCreateRequest(t, svc)

	_, err := svc.Resolve(context.Background(), id, "staff-1", true)
	require.NoError(t, err)

	assert.Equal(t, 1, bookings.creates)
	require.Len(t, receipts.issued, 1)
	assert.NotEmpty(t, receipts.issued[0].ID)
	assert.Equal(t, "Khun Somchai", receipts.issued[0].CustomerName)
}
