package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lysyi3m/clan-comb/app/audit"
	"github.com/lysyi3m/clan-comb/app/clan"
	"github.com/lysyi3m/clan-comb/app/database"
	"github.com/lysyi3m/clan-comb/app/observability"
)

const classifyBatchSize = 500

// ClassifyActivitiesTask assigns a category to stored activity rows
// that have none yet. Rows no rule matches stay unclassified and are
// recorded on the audit trail for rule tuning.
type ClassifyActivitiesTask struct {
	Task
	activityRepo database.ActivityRepository
	trail        *audit.Trail
}

func NewClassifyActivitiesTask(activityRepo database.ActivityRepository, trail *audit.Trail) *ClassifyActivitiesTask {
	return &ClassifyActivitiesTask{
		Task:         NewTask(TaskTypeClassifyActivities, ""),
		activityRepo: activityRepo,
		trail:        trail,
	}
}

func (t *ClassifyActivitiesTask) Execute(ctx context.Context) error {
	classified := 0
	unclassified := 0

	// Unmatched rows keep a NULL activity_type, so pagination is keyed
	// on the last seen id rather than re-querying from the start.
	var afterID int64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		activities, err := t.activityRepo.GetUnclassifiedActivities(afterID, classifyBatchSize)
		if err != nil {
			return fmt.Errorf("failed to get unclassified activities: %w", err)
		}
		if len(activities) == 0 {
			break
		}

		for _, activity := range activities {
			afterID = activity.ID

			category := clan.Classify(activity.Text, activity.Details)
			if category == "" {
				unclassified++
				t.trail.Unclassified(activity.ID, activity.Text, activity.Details)
				continue
			}

			if err := t.activityRepo.SetActivityType(activity.ID, category); err != nil {
				slog.Error("Failed to set activity type", "id", activity.ID, "category", category, "error", err)
				continue
			}
			classified++
		}
	}

	observability.RecordActivitiesClassified(classified)
	observability.RecordActivitiesUnclassified(unclassified)

	slog.Info("Task completed",
		"type", "ClassifyActivities",
		"duration", t.GetDuration(),
		"classified", classified,
		"unclassified", unclassified)

	return nil
}
