package services

import (
	"context"
	"strings"

	"github.com/ilhamriadi/projects.co.id/access"
	"github.com/ilhamriadi/projects.co.id/entity"
	"github.com/ilhamriadi/projects.co.id/pkg/apperr"
	"gorm.io/gorm"
)

type UpdateStatusInput struct {
	Status          string `json:"status"`
	RejectionReason string `json:"rejection_reason"`
}

// UpdateStatus เปลี่ยนสถานะตามตาราง transition
// เขียนแบบมีเงื่อนไข WHERE status = <ที่อ่านมา> กัน reviewer สองคนชนกัน
func (s *DisasterService) UpdateStatus(ctx context.Context, a entity.Actor, id string, in UpdateStatusInput) (*entity.Disaster, error) {
	if err := checkActor(a); err != nil {
		return nil, err
	}
	target := entity.DisasterStatus(strings.TrimSpace(in.Status))
	if !target.Valid() {
		return nil, apperr.Validation(apperr.CodeInvalidStatus, "Invalid status")
	}
	if !access.CanTransitionStatus(a, target) {
		return nil, apperr.Forbidden(apperr.CodeInsufficientPermissions, "Only BPBD can verify or reject reports")
	}
	reason := strings.TrimSpace(in.RejectionReason)
	if target == entity.StatusRejected && reason == "" {
		return nil, apperr.Validation(apperr.CodeValidation, "Rejection reason is required")
	}

	d, err := s.loadForMutation(ctx, a, id)
	if err != nil {
		return nil, err
	}
	if !entity.CanTransition(d.Status, target) {
		return nil, apperr.Validation(apperr.CodeInvalidStatusTransition,
			"Cannot change status from "+string(d.Status)+" to "+string(target))
	}

	now := s.Now()
	updates := map[string]any{
		"status":           target,
		"verified_by":      nil,
		"verified_at":      nil,
		"rejection_reason": nil,
		"updated_at":       now,
	}
	if target.Reviewed() {
		updates["verified_by"] = a.ID
		updates["verified_at"] = now
	}
	if target == entity.StatusRejected {
		updates["rejection_reason"] = reason
	}

	tctx, cancel := s.withTimeout(ctx)
	defer cancel()
	err = s.DB.WithContext(tctx).Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateStatusGuard(tx, d.ID, d.Status, updates)
		if err != nil {
			return err
		}
		if affected == 0 {
			return apperr.Conflict(apperr.CodeStatusConflict, "Report status was changed by another request")
		}
		details := map[string]any{"from": d.Status, "to": target}
		if reason != "" && target == entity.StatusRejected {
			details["rejection_reason"] = reason
		}
		return s.logActivity(tx, a, d.ID, entity.ActionDisasterStatusUpdated, details)
	})
	if err != nil {
		return nil, apperr.Infra(err)
	}

	updated, err := s.reload(ctx, a, d.ID)
	if err != nil {
		return nil, err
	}
	s.publish(EventDisasterStatusUpdated, a, updated)
	return updated, nil
}
