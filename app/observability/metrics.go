package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	membersUpserted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "clan_comb",
		Subsystem: "sync",
		Name:      "members_upserted_total",
		Help:      "Roster members inserted or refreshed.",
	})
	profilesFetched = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "clan_comb",
		Subsystem: "sync",
		Name:      "profiles_fetched_total",
		Help:      "Member profiles fetched successfully.",
	})
	profilesSkipped = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "clan_comb",
		Subsystem: "sync",
		Name:      "profiles_skipped_total",
		Help:      "Member profiles skipped after exhausting retries.",
	})
	activitiesInserted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "clan_comb",
		Subsystem: "sync",
		Name:      "activities_inserted_total",
		Help:      "New activity rows stored.",
	})
	activityConflicts = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "clan_comb",
		Subsystem: "sync",
		Name:      "activity_conflicts_total",
		Help:      "Activity inserts skipped as duplicates.",
	})
	activitiesClassified = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "clan_comb",
		Subsystem: "classify",
		Name:      "activities_classified_total",
		Help:      "Activity rows assigned a category.",
	})
	activitiesUnclassified = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "clan_comb",
		Subsystem: "classify",
		Name:      "activities_unclassified_total",
		Help:      "Activity rows no rule matched.",
	})
	activitiesExpired = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "clan_comb",
		Subsystem: "sweep",
		Name:      "activities_expired_total",
		Help:      "Activity rows marked exempt by the retention sweep.",
	})
	itemsUpserted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "clan_comb",
		Subsystem: "items",
		Name:      "items_upserted_total",
		Help:      "Grand Exchange catalog entries stored.",
	})
)

func init() {
	prometheus.MustRegister(
		membersUpserted, profilesFetched, profilesSkipped,
		activitiesInserted, activityConflicts,
		activitiesClassified, activitiesUnclassified,
		activitiesExpired, itemsUpserted,
	)
}

func RecordMembersUpserted(n int) {
	membersUpserted.Add(float64(n))
}

func RecordProfilesFetched(n int) {
	profilesFetched.Add(float64(n))
}

func RecordProfilesSkipped(n int) {
	profilesSkipped.Add(float64(n))
}

func RecordActivitiesInserted(n int) {
	activitiesInserted.Add(float64(n))
}

func RecordActivityConflicts(n int) {
	activityConflicts.Add(float64(n))
}

func RecordActivitiesClassified(n int) {
	activitiesClassified.Add(float64(n))
}

func RecordActivitiesUnclassified(n int) {
	activitiesUnclassified.Add(float64(n))
}

func RecordActivitiesExpired(n int64) {
	activitiesExpired.Add(float64(n))
}

func RecordItemsUpserted(n int) {
	itemsUpserted.Add(float64(n))
}
