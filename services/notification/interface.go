// File: services/notification/interface.go
package notification

import (
	"context"

	"lengolf/models"
)

// Service dispatches outbound notifications. Callers treat dispatch as best
// effort: a failed notification never fails the turn that produced it.
type Service interface {
	// NotifyCustomer sends a chat reply to the customer on their channel.
	NotifyCustomer(ctx context.Context, channel models.Channel, conversationID, text string) error
	// AlertStaff pushes an internal alert to the staff topic.
	AlertStaff(ctx context.Context, title, body string) error
}
