// File: cron/worker.go
package cron

import (
	"context"
	"encoding/json"
	"fmt"

	"lengolf/config"
	"lengolf/services/notification"
	"lengolf/services/tasks"
	"lengolf/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// StartNotificationWorker runs the asynq server that drains queued
// notification tasks. It blocks, so callers run it in its own goroutine.
func StartNotificationWorker() error {
	pusher := notification.NewPushNotificationService()

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     config.AppConfig.RedisAddr,
			Password: config.AppConfig.RedisPassword,
			DB:       config.AppConfig.RedisNotifyQueue,
		},
		asynq.Config{Concurrency: 5},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeCustomerReply, func(ctx context.Context, t *asynq.Task) error {
		var p tasks.CustomerReplyPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return fmt.Errorf("bad customer reply payload: %w", err)
		}
		return pusher.NotifyCustomer(ctx, p.Channel, p.ConversationID, p.Text)
	})
	mux.HandleFunc(tasks.TypeStaffAlert, func(ctx context.Context, t *asynq.Task) error {
		var p tasks.StaffAlertPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return fmt.Errorf("bad staff alert payload: %w", err)
		}
		return pusher.AlertStaff(ctx, p.Title, p.Body)
	})

	utils.GetLogger().Info("notification worker starting",
		zap.Int("queueDB", config.AppConfig.RedisNotifyQueue))
	return srv.Run(mux)
}
