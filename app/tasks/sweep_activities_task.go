package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lysyi3m/clan-comb/app/database"
	"github.com/lysyi3m/clan-comb/app/observability"
)

// SweepActivitiesTask marks active activity rows older than the
// retention window as exempt so they drop out of reporting queries
// while staying in the table.
type SweepActivitiesTask struct {
	Task
	activityRepo  database.ActivityRepository
	retentionDays int
}

func NewSweepActivitiesTask(activityRepo database.ActivityRepository, retentionDays int) *SweepActivitiesTask {
	return &SweepActivitiesTask{
		Task:          NewTask(TaskTypeSweepActivities, ""),
		activityRepo:  activityRepo,
		retentionDays: retentionDays,
	}
}

func (t *SweepActivitiesTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	cutoff := time.Now().AddDate(0, 0, -t.retentionDays)

	expired, err := t.activityRepo.MarkExpired(cutoff)
	if err != nil {
		return fmt.Errorf("failed to mark expired activities: %w", err)
	}

	observability.RecordActivitiesExpired(expired)

	slog.Info("Task completed",
		"type", "SweepActivities",
		"duration", t.GetDuration(),
		"cutoff", cutoff.Format(time.RFC3339),
		"expired", expired)

	return nil
}
