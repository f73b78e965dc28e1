// File: services/approval/interface.go
package approval

import (
	"context"

	approvalRepo "lengolf/database/repository/approval"
	bookingRepo "lengolf/database/repository/booking"
	customerRepo "lengolf/database/repository/customer"
	"lengolf/models"
	"lengolf/services/availability"
	"lengolf/services/notification"

	"github.com/go-redis/redis/v8"
)

// ApprovalService is the human checkpoint for mutating actions. Requests are
// opened by the function executor and resolved out-of-band by staff.
type ApprovalService interface {
	// Create opens a pending request and alerts staff. Returns the request id.
	Create(ctx context.Context, req models.ApprovalRequest) (string, error)
	// Resolve applies a staff decision. Approving commits the gated action
	// exactly once; declining discards it. A second resolution attempt on an
	// already-resolved request returns the current state without side effects.
	Resolve(ctx context.Context, id, staffID string, approve bool) (*models.ApprovalRequest, error)
	// ListPending returns open requests, newest first.
	ListPending(ctx context.Context, limit int) ([]models.ApprovalRequest, error)
}

// ReceiptIssuer issues the customer receipt once a created booking commits.
type ReceiptIssuer interface {
	ReceiptForBooking(ctx context.Context, b models.Booking) (*models.Invoice, error)
}

// DefaultApprovalService implements ApprovalService over the approval
// repository with an atomic pending-to-terminal transition.
type DefaultApprovalService struct {
	Repo         approvalRepo.ApprovalRepository
	Bookings     bookingRepo.BookingRepository
	Customers    customerRepo.CustomerRepository
	Availability availability.Engine
	Notifier     notification.Service

	// Receipts is optional; nil skips receipt generation on commit.
	Receipts ReceiptIssuer

	// Lock serializes concurrent resolutions of the same request before the
	// database transition runs. Optional: a nil client skips the lock and
	// relies on the repository's compare-and-set alone.
	Lock *redis.Client

	// DryRun short-circuits persistence on the execute path, returning a
	// synthetic booking id. Validation and branching still run.
	DryRun bool
}

func NewDefaultApprovalService(
	repo approvalRepo.ApprovalRepository,
	bookings bookingRepo.BookingRepository,
	customers customerRepo.CustomerRepository,
	engine availability.Engine,
	notifier notification.Service,
	lock *redis.Client,
) *DefaultApprovalService {
	return &DefaultApprovalService{
		Repo:         repo,
		Bookings:     bookings,
		Customers:    customers,
		Availability: engine,
		Notifier:     notifier,
		Lock:         lock,
	}
}
