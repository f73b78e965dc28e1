// File: services/notification/push.go
package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"lengolf/config"
	"lengolf/models"
	"lengolf/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// PushNotificationService delivers notifications directly: LINE push for
// customer replies, FCM topic messages for staff alerts. Channels other than
// LINE are logged and skipped until their transports are wired up.
type PushNotificationService struct {
	HTTPClient *http.Client
}

func NewPushNotificationService() *PushNotificationService {
	return &PushNotificationService{
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type linePushRequest struct {
	To       string            `json:"to"`
	Messages []linePushMessage `json:"messages"`
}

type linePushMessage struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func (s *PushNotificationService) NotifyCustomer(ctx context.Context, channel models.Channel, conversationID, text string) error {
	logger := utils.GetLogger()

	if channel != models.ChannelLine {
		logger.Info("notification: no transport for channel, reply not pushed",
			zap.String("channel", string(channel)), zap.String("conversationID", conversationID))
		return nil
	}

	body, err := json.Marshal(linePushRequest{
		To:       conversationID,
		Messages: []linePushMessage{{Type: "text", Text: text}},
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, config.AppConfig.LinePushURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+config.AppConfig.LineAccessToken)

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("line push failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("line push returned status %d", resp.StatusCode)
	}

	logger.Info("notification: customer reply pushed",
		zap.String("conversationID", conversationID))
	return nil
}

func (s *PushNotificationService) AlertStaff(ctx context.Context, title, body string) error {
	if utils.FCMClient == nil {
		utils.GetLogger().Info("notification: FCM disabled, staff alert not pushed",
			zap.String("title", title))
		return nil
	}

	_, err := utils.FCMClient.Send(ctx, &messaging.Message{
		Topic: config.AppConfig.StaffAlertTopic,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
	})
	if err != nil {
		return fmt.Errorf("fcm send failed: %w", err)
	}
	return nil
}
