// File: services/approval/gate.go
package approval

import (
	"context"
	"time"

	"lengolf/models"
	"lengolf/utils"

	"go.uber.org/zap"
)

const resolveLockTTL = 10 * time.Second

func (s *DefaultApprovalService) Create(ctx context.Context, req models.ApprovalRequest) (string, error) {
	logger := utils.GetLogger()

	id, err := s.Repo.Create(ctx, req)
	if err != nil {
		return "", newGateError("internal", "failed to create approval request: %v", err)
	}

	logger.Info("approval: request opened",
		zap.String("approvalID", id),
		zap.String("action", string(req.Call.Name)),
		zap.String("conversationID", req.ConversationID))

	if s.Notifier != nil {
		if err := s.Notifier.AlertStaff(ctx, "Approval needed: "+string(req.Call.Name), req.Summary); err != nil {
			// Staff still see the request in the pending list.
			logger.Warn("approval: staff alert failed", zap.String("approvalID", id), zap.Error(err))
		}
	}
	return id, nil
}

func (s *DefaultApprovalService) ListPending(ctx context.Context, limit int) ([]models.ApprovalRequest, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.Repo.ListByState(ctx, models.ApprovalPending, limit)
}

func (s *DefaultApprovalService) Resolve(ctx context.Context, id, staffID string, approve bool) (*models.ApprovalRequest, error) {
	logger := utils.GetLogger()

	if s.Lock != nil {
		lockKey := "approval:resolve:" + id
		ok, err := s.Lock.SetNX(ctx, lockKey, staffID, resolveLockTTL).Result()
		if err != nil {
			logger.Warn("approval: lock acquisition failed, relying on database transition",
				zap.String("approvalID", id), zap.Error(err))
		} else if ok {
			defer s.Lock.Del(ctx, lockKey)
		}
		// Losing the lock is fine: the conditional update below is the
		// authoritative serialization point.
	}

	target := models.ApprovalDeclined
	if approve {
		target = models.ApprovalApproved
	}

	req, transitioned, err := s.Repo.ResolvePending(ctx, id, target, staffID)
	if err != nil {
		return nil, newGateError("internal", "failed to resolve approval: %v", err)
	}
	if req == nil {
		return nil, newGateError("not_found", "approval request %s not found", id)
	}
	if !transitioned {
		// Already resolved: idempotent no-op, report the current state.
		logger.Info("approval: request already resolved",
			zap.String("approvalID", id), zap.String("state", string(req.State)))
		return req, nil
	}

	logger.Info("approval: request resolved",
		zap.String("approvalID", id),
		zap.String("state", string(req.State)),
		zap.String("staffID", staffID))

	if !approve {
		return req, nil
	}

	bookingID, err := s.execute(ctx, req)
	if err != nil {
		logger.Error("approval: committed action failed after approval",
			zap.String("approvalID", id), zap.Error(err))
		if s.Notifier != nil {
			_ = s.Notifier.AlertStaff(ctx, "Approved action failed", req.Summary+"\n\nError: "+err.Error())
		}
		return req, newGateError("execution_failed", "approved action failed: %v", err)
	}

	if bookingID != "" {
		req.BookingID = bookingID
		if err := s.Repo.SetBookingID(ctx, id, bookingID); err != nil {
			logger.Warn("approval: failed to record booking id",
				zap.String("approvalID", id), zap.String("bookingID", bookingID), zap.Error(err))
		}
	}
	return req, nil
}
