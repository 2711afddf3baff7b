package tasks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lysyi3m/clan-comb/app/items"
	"github.com/lysyi3m/clan-comb/app/observability"
)

// SyncItemsTask refreshes the Grand Exchange item catalog from the
// public price dump.
type SyncItemsTask struct {
	Task
	catalog *items.Catalog
}

func NewSyncItemsTask(catalog *items.Catalog) *SyncItemsTask {
	return &SyncItemsTask{
		Task:    NewTask(TaskTypeSyncItems, ""),
		catalog: catalog,
	}
}

func (t *SyncItemsTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	stored, skipped, err := t.catalog.Sync(ctx)
	if err != nil {
		return fmt.Errorf("failed to sync item catalog: %w", err)
	}

	observability.RecordItemsUpserted(stored)

	slog.Info("Task completed",
		"type", "SyncItems",
		"duration", t.GetDuration(),
		"stored", stored,
		"skipped", skipped)

	return nil
}
