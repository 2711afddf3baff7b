package database

import (
	"time"
)

var _ MemberRepository = (*MemberRepositoryImpl)(nil)
var _ ActivityRepository = (*ActivityRepositoryImpl)(nil)
var _ ItemRepository = (*ItemRepositoryImpl)(nil)

type MemberRepository interface {
	UpsertMember(name, rank string, experience, kills int64) error
	GetMember(name string) (*Member, error)
	GetMembers() ([]Member, error)
	GetMemberCount() (int, error)
}

type ActivityRepository interface {
	// InsertActivity reports whether the row was actually stored; false
	// means the natural key already existed and the insert was skipped.
	InsertActivity(memberName string, date time.Time, details, text string) (bool, error)

	// GetUnclassifiedActivities pages through rows without a category,
	// returning up to limit rows with id greater than afterID.
	GetUnclassifiedActivities(afterID int64, limit int) ([]Activity, error)
	SetActivityType(id int64, activityType string) error

	GetActivitiesForMember(memberName string, includeExempt bool, limit int) ([]Activity, error)
	GetActivityCount() (int, error)
	GetActivityStats() (*ActivityStats, error)

	// MarkExpired flags active rows older than the cutoff as exempt and
	// returns how many rows were touched.
	MarkExpired(olderThan time.Time) (int64, error)
}

type ItemRepository interface {
	UpsertItem(item Item) error
	GetItem(id int64) (*Item, error)
	GetItemCount() (int, error)
}
