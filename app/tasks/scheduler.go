package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lysyi3m/clan-comb/app/audit"
	"github.com/lysyi3m/clan-comb/app/cfg"
	"github.com/lysyi3m/clan-comb/app/clan"
	"github.com/lysyi3m/clan-comb/app/database"
	"github.com/lysyi3m/clan-comb/app/items"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

const itemSyncInterval = 24 * time.Hour

type Scheduler struct {
	configCache   *clan.ConfigCache
	roster        *clan.RosterLoader
	profiles      *clan.ProfileClient
	memberRepo    database.MemberRepository
	activityRepo  database.ActivityRepository
	catalog       *items.Catalog
	trail         *audit.Trail
	retentionDays int
	interval      time.Duration
	workerCount   int
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
	taskQueue     chan TaskInterface

	// nextRun tracks per-clan due times and nextItemSync the catalog
	// refresh; both are touched only by the ticker goroutine.
	nextRun      map[string]time.Time
	nextItemSync time.Time
}

func NewScheduler(configCache *clan.ConfigCache, roster *clan.RosterLoader,
	profiles *clan.ProfileClient, memberRepo database.MemberRepository,
	activityRepo database.ActivityRepository, catalog *items.Catalog,
	trail *audit.Trail) TaskSchedulerInterface {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := cfg.Get()

	return &Scheduler{
		configCache:   configCache,
		roster:        roster,
		profiles:      profiles,
		memberRepo:    memberRepo,
		activityRepo:  activityRepo,
		catalog:       catalog,
		trail:         trail,
		retentionDays: cfg.RetentionDays,
		interval:      time.Duration(cfg.SchedulerInterval) * time.Second,
		workerCount:   cfg.WorkerCount,
		ctx:           ctx,
		cancel:        cancel,
		taskQueue:     make(chan TaskInterface, 300),
		nextRun:       make(map[string]time.Time),
	}
}

func (s *Scheduler) Start() {
	for i := 0; i < s.workerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.enqueueTasks()

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.enqueueTasks()
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	close(s.taskQueue)
}

func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	select {
	case s.taskQueue <- task:
		return nil
	case <-s.ctx.Done():
		return s.ctx.Err()
	default:
		return fmt.Errorf("task queue is full")
	}
}

// EnqueueSyncClan queues an on-demand sync for a configured clan,
// bypassing its refresh schedule.
func (s *Scheduler) EnqueueSyncClan(clanName string) error {
	clanConfig, err := s.configCache.GetConfig(clanName)
	if err != nil {
		return err
	}

	return s.EnqueueTask(s.newSyncClanTask(clanName, clanConfig))
}

func (s *Scheduler) enqueueTasks() {
	now := time.Now()

	clanConfigs := s.configCache.GetEnabledConfigs()
	if len(clanConfigs) == 0 {
		slog.Debug("No enabled clan configurations found")
	}

	for name, clanConfig := range clanConfigs {
		if due, ok := s.nextRun[name]; ok && due.After(now) {
			slog.Debug("Clan not due for sync yet", "clan", name, "next_run", due)
			continue
		}

		if err := s.EnqueueTask(s.newSyncClanTask(name, clanConfig)); err != nil {
			slog.Warn("Failed to enqueue SyncClanTask", "clan", name, "error", err)
			continue
		}
		s.nextRun[name] = now.Add(clanConfig.Settings.GetRefreshInterval())
	}

	if err := s.EnqueueTask(NewClassifyActivitiesTask(s.activityRepo, s.trail)); err != nil {
		slog.Warn("Failed to enqueue ClassifyActivitiesTask", "error", err)
	}

	if err := s.EnqueueTask(NewSweepActivitiesTask(s.activityRepo, s.retentionDays)); err != nil {
		slog.Warn("Failed to enqueue SweepActivitiesTask", "error", err)
	}

	if s.nextItemSync.Before(now) || s.nextItemSync.IsZero() {
		if err := s.EnqueueTask(NewSyncItemsTask(s.catalog)); err != nil {
			slog.Warn("Failed to enqueue SyncItemsTask", "error", err)
		} else {
			s.nextItemSync = now.Add(itemSyncInterval)
		}
	}
}

func (s *Scheduler) newSyncClanTask(name string, clanConfig *clan.Config) *SyncClanTask {
	return NewSyncClanTask(name, clanConfig, s.roster, s.profiles, s.memberRepo, s.activityRepo, s.trail)
}

func (s *Scheduler) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case task, ok := <-s.taskQueue:
			if !ok {
				return
			}
			s.executeTask(id, task)

		case <-s.ctx.Done():
			return
		}
	}
}

func (s *Scheduler) executeTask(workerID int, task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, 5*time.Minute)
	defer cancel()

	err := task.Execute(taskCtx)

	if err != nil {
		slog.Error("Worker task execution failed", "worker_id", workerID, "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", err)

		if task.CanRetry() {
			task.IncrementRetryCount()
			retryDelay := time.Duration(1<<uint(task.GetRetryCount()-1)) * time.Second
			if retryDelay > 30*time.Second {
				retryDelay = 30 * time.Second
			}

			slog.Warn("Task retry scheduled", "type", string(task.GetType()), "clan", task.GetClanName(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "delay", retryDelay.String())

			go func() {
				time.Sleep(retryDelay)
				select {
				case <-s.ctx.Done():
					slog.Debug("Scheduler stopped, skipping task retry", "type", string(task.GetType()), "id", task.GetID())
					return
				default:
					if retryErr := s.EnqueueTask(task); retryErr != nil {
						slog.Error("Failed to re-enqueue task for retry", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "error", retryErr)
					}
				}
			}()
		} else {
			slog.Error("Task failed after maximum retries", "type", string(task.GetType()), "id", task.GetID(), "retry_count", task.GetRetryCount(), "max_retries", task.GetMaxRetries(), "last_error", err)
		}
	}
}
