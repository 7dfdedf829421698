package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"connplanner/internal/models"
	"connplanner/internal/repository"
)

// ActivityService keeps a best-effort audit trail of mutations. A failed
// write is logged and swallowed; it never fails the triggering operation.
type ActivityService struct {
	Repo   repository.Repository
	Logger *zap.Logger
}

func (s *ActivityService) Record(ctx context.Context, entityType string, entityID uint64, action string, detail map[string]any) {
	if s == nil || s.Repo == nil {
		return
	}
	item := &models.ActivityLog{
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
	}
	if len(detail) > 0 {
		raw, err := json.Marshal(detail)
		if err == nil {
			item.Detail = datatypes.JSON(raw)
		}
	}
	if err := s.Repo.InsertActivityLog(ctx, item); err != nil {
		if s.Logger != nil {
			s.Logger.Warn("activity log write failed",
				zap.String("entity_type", entityType),
				zap.Uint64("entity_id", entityID),
				zap.String("action", action),
				zap.Error(err))
		}
	}
}

func (s *ActivityService) List(ctx context.Context, entityType string, limit, offset int) ([]models.ActivityLog, error) {
	if s == nil || s.Repo == nil {
		return nil, nil
	}
	return s.Repo.ListActivityLogs(ctx, repository.ListActivityParams{
		EntityType: entityType,
		Limit:      limit,
		Offset:     offset,
	})
}

// Prune drops entries older than the retention window. Wired to the cron
// runner.
func (s *ActivityService) Prune(ctx context.Context, retention time.Duration) (int64, error) {
	if s == nil || s.Repo == nil || retention <= 0 {
		return 0, nil
	}
	cutoff := time.Now().UTC().Add(-retention)
	rows, err := s.Repo.DeleteActivityLogsBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if rows > 0 && s.Logger != nil {
		s.Logger.Info("activity log pruned", zap.Int64("rows", rows))
	}
	return rows, nil
}
