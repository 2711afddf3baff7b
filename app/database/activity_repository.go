package database

import (
	"database/sql"
	"fmt"
	"time"
)

// ActivityRepositoryImpl handles database operations for member activities
type ActivityRepositoryImpl struct {
	db *DB
}

func NewActivityRepository(db *DB) *ActivityRepositoryImpl {
	return &ActivityRepositoryImpl{db: db}
}

// InsertActivity stores a profile feed entry. The natural key index on
// (member_name, date, text, details) absorbs re-fetched duplicates, so
// a zero rows-affected result means the row was already present.
func (r *ActivityRepositoryImpl) InsertActivity(memberName string, date time.Time, details, text string) (bool, error) {
	result, err := r.db.Exec(`
		INSERT INTO activities (member_name, date, details, text)
		VALUES ($1, $2, NULLIF($3, ''), $4)
		ON CONFLICT DO NOTHING
	`, memberName, date, details, text)

	if err != nil {
		return false, fmt.Errorf("failed to insert activity: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check insert result: %w", err)
	}

	return affected > 0, nil
}

func (r *ActivityRepositoryImpl) GetUnclassifiedActivities(afterID int64, limit int) ([]Activity, error) {
	rows, err := r.db.Query(`
		SELECT id, member_name, date, COALESCE(details, ''), text,
		       COALESCE(activity_type, ''), COALESCE(status, ''), created_at
		FROM activities
		WHERE activity_type IS NULL AND id > $1
		ORDER BY id
		LIMIT $2
	`, afterID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get unclassified activities: %w", err)
	}
	defer rows.Close()

	return scanActivities(rows)
}

// SetActivityType records a classification. The activity_type IS NULL
// guard keeps concurrent classification passes from overwriting each
// other.
func (r *ActivityRepositoryImpl) SetActivityType(id int64, activityType string) error {
	_, err := r.db.Exec(`
		UPDATE activities
		SET activity_type = $2
		WHERE id = $1 AND activity_type IS NULL
	`, id, activityType)

	if err != nil {
		return fmt.Errorf("failed to set activity type: %w", err)
	}

	return nil
}

func (r *ActivityRepositoryImpl) GetActivitiesForMember(memberName string, includeExempt bool, limit int) ([]Activity, error) {
	query := `
		SELECT id, member_name, date, COALESCE(details, ''), text,
		       COALESCE(activity_type, ''), COALESCE(status, ''), created_at
		FROM activities
		WHERE member_name = $1
	`
	if !includeExempt {
		query += ` AND status IS NULL`
	}
	query += ` ORDER BY date DESC LIMIT $2`

	rows, err := r.db.Query(query, memberName, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get activities for member: %w", err)
	}
	defer rows.Close()

	return scanActivities(rows)
}

func (r *ActivityRepositoryImpl) GetActivityCount() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM activities`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get activity count: %w", err)
	}
	return count, nil
}

func (r *ActivityRepositoryImpl) GetActivityStats() (*ActivityStats, error) {
	var stats ActivityStats
	err := r.db.QueryRow(`
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE activity_type IS NOT NULL),
		       COUNT(*) FILTER (WHERE activity_type IS NULL),
		       COUNT(*) FILTER (WHERE status = 'exempt')
		FROM activities
	`).Scan(&stats.Total, &stats.Classified, &stats.Unclassified, &stats.Exempt)

	if err != nil {
		return nil, fmt.Errorf("failed to get activity stats: %w", err)
	}

	return &stats, nil
}

func (r *ActivityRepositoryImpl) MarkExpired(olderThan time.Time) (int64, error) {
	result, err := r.db.Exec(`
		UPDATE activities
		SET status = 'exempt'
		WHERE date < $1 AND status IS NULL
	`, olderThan)

	if err != nil {
		return 0, fmt.Errorf("failed to mark expired activities: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check expired result: %w", err)
	}

	return affected, nil
}

func scanActivities(rows *sql.Rows) ([]Activity, error) {
	var activities []Activity
	for rows.Next() {
		var activity Activity
		err := rows.Scan(
			&activity.ID, &activity.MemberName, &activity.Date, &activity.Details,
			&activity.Text, &activity.ActivityType, &activity.Status, &activity.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity row: %w", err)
		}
		activities = append(activities, activity)
	}
	return activities, rows.Err()
}
