// File: services/tasks/notify.go
package tasks

import (
	"encoding/json"

	"lengolf/models"

	"github.com/hibiken/asynq"
)

const (
	TypeCustomerReply = "notify:customer_reply"
	TypeStaffAlert    = "notify:staff_alert"
)

// CustomerReplyPayload is the queued outbound chat reply.
type CustomerReplyPayload struct {
	Channel        models.Channel `json:"channel"`
	ConversationID string         `json:"conversation_id"`
	Text           string         `json:"text"`
}

// StaffAlertPayload is the queued internal staff notification.
type StaffAlertPayload struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func NewCustomerReplyTask(p CustomerReplyPayload) (*asynq.Task, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeCustomerReply, data, asynq.MaxRetry(3)), nil
}

func NewStaffAlertTask(p StaffAlertPayload) (*asynq.Task, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeStaffAlert, data, asynq.MaxRetry(3)), nil
}
