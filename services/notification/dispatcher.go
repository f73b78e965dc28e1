// File: services/notification/dispatcher.go
package notification

import (
	"context"

	"lengolf/models"
	"lengolf/services/tasks"
	"lengolf/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// QueueNotificationService implements Service by enqueueing delivery tasks
// instead of sending inline, keeping turn latency independent of the
// downstream messaging APIs. A background worker drains the queue.
type QueueNotificationService struct {
	client *asynq.Client
}

func NewQueueNotificationService(client *asynq.Client) *QueueNotificationService {
	return &QueueNotificationService{client: client}
}

func (s *QueueNotificationService) NotifyCustomer(ctx context.Context, channel models.Channel, conversationID, text string) error {
	task, err := tasks.NewCustomerReplyTask(tasks.CustomerReplyPayload{
		Channel:        channel,
		ConversationID: conversationID,
		Text:           text,
	})
	if err != nil {
		return err
	}
	info, err := s.client.EnqueueContext(ctx, task)
	if err != nil {
		return err
	}
	utils.GetLogger().Debug("notification: customer reply enqueued",
		zap.String("taskID", info.ID), zap.String("conversationID", conversationID))
	return nil
}

func (s *QueueNotificationService) AlertStaff(ctx context.Context, title, body string) error {
	task, err := tasks.NewStaffAlertTask(tasks.StaffAlertPayload{Title: title, Body: body})
	if err != nil {
		return err
	}
	info, err := s.client.EnqueueContext(ctx, task)
	if err != nil {
		return err
	}
	utils.GetLogger().Debug("notification: staff alert enqueued", zap.String("taskID", info.ID))
	return nil
}
