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

// SyncClanTask runs one full ingest cycle for a clan: load the roster,
// upsert members, fetch each member's profile feed, normalize the
// entries and insert the new ones.
type SyncClanTask struct {
	Task
	ClanConfig   *clan.Config
	roster       *clan.RosterLoader
	profiles     *clan.ProfileClient
	memberRepo   database.MemberRepository
	activityRepo database.ActivityRepository
	trail        *audit.Trail
}

func NewSyncClanTask(clanName string, clanConfig *clan.Config, roster *clan.RosterLoader,
	profiles *clan.ProfileClient, memberRepo database.MemberRepository,
	activityRepo database.ActivityRepository, trail *audit.Trail) *SyncClanTask {
	return &SyncClanTask{
		Task:         NewTask(TaskTypeSyncClan, clanName),
		ClanConfig:   clanConfig,
		roster:       roster,
		profiles:     profiles,
		memberRepo:   memberRepo,
		activityRepo: activityRepo,
		trail:        trail,
	}
}

func (t *SyncClanTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if !t.ClanConfig.Settings.Enabled {
		slog.Debug("Clan disabled, skipping", "clan", t.ClanName)
		return nil
	}

	members, err := t.roster.Run(ctx, t.ClanConfig.Clan)
	if err != nil {
		return fmt.Errorf("failed to load roster: %w", err)
	}

	upserted := 0
	names := make([]string, 0, len(members))
	for _, member := range members {
		if err := t.memberRepo.UpsertMember(member.Name, member.Rank, member.Experience, member.Kills); err != nil {
			slog.Error("Failed to upsert member", "clan", t.ClanName, "member", member.Name, "error", err)
			continue
		}
		upserted++
		names = append(names, member.Name)
	}
	observability.RecordMembersUpserted(upserted)

	results := t.profiles.FetchAll(ctx, names, t.ClanConfig.Settings.Activities)
	normalizer := clan.NewNormalizer(t.ClanConfig.Settings.RecencyDays)

	fetched := 0
	skipped := 0
	newCount := 0
	duplicateCount := 0

	for _, result := range results {
		if result.Skipped {
			skipped++
			slog.Warn("Profile skipped", "clan", t.ClanName, "member", result.Member, "error", result.Err)
			continue
		}
		fetched++

		for _, activity := range normalizer.Run(result.Profile) {
			applied, err := t.activityRepo.InsertActivity(activity.MemberName, activity.Date, activity.Details, activity.Text)
			if err != nil {
				slog.Error("Failed to insert activity", "clan", t.ClanName, "member", activity.MemberName, "error", err)
				continue
			}
			if applied {
				newCount++
			} else {
				duplicateCount++
				t.trail.Conflict(fmt.Sprintf("duplicate activity for %s", activity.MemberName), activity)
			}
		}
	}

	observability.RecordProfilesFetched(fetched)
	observability.RecordProfilesSkipped(skipped)
	observability.RecordActivitiesInserted(newCount)
	observability.RecordActivityConflicts(duplicateCount)

	slog.Info("Task completed",
		"type", "SyncClan",
		"clan", t.ClanName,
		"duration", t.GetDuration(),
		"members", upserted,
		"fetched", fetched,
		"skipped", skipped,
		"new", newCount,
		"duplicates", duplicateCount)

	return nil
}
