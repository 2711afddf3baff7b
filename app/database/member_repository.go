package database

import (
	"database/sql"
	"fmt"
)

// MemberRepositoryImpl handles database operations for clan members
type MemberRepositoryImpl struct {
	db *DB
}

func NewMemberRepository(db *DB) *MemberRepositoryImpl {
	return &MemberRepositoryImpl{db: db}
}

// UpsertMember inserts a roster record or refreshes rank, experience and
// kills for an existing name.
func (r *MemberRepositoryImpl) UpsertMember(name, rank string, experience, kills int64) error {
	_, err := r.db.Exec(`
		INSERT INTO members (name, rank, experience, kills)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (name) DO UPDATE
		SET rank = EXCLUDED.rank,
		    experience = EXCLUDED.experience,
		    kills = EXCLUDED.kills,
		    updated_at = NOW()
	`, name, rank, experience, kills)

	if err != nil {
		return fmt.Errorf("failed to upsert member: %w", err)
	}

	return nil
}

func (r *MemberRepositoryImpl) GetMember(name string) (*Member, error) {
	var member Member
	err := r.db.QueryRow(`
		SELECT id, name, rank, experience, kills, created_at, updated_at
		FROM members
		WHERE name = $1
	`, name).Scan(
		&member.ID, &member.Name, &member.Rank, &member.Experience,
		&member.Kills, &member.CreatedAt, &member.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return &member, nil
}

func (r *MemberRepositoryImpl) GetMembers() ([]Member, error) {
	rows, err := r.db.Query(`
		SELECT id, name, rank, experience, kills, created_at, updated_at
		FROM members
		ORDER BY experience DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get members: %w", err)
	}
	defer rows.Close()

	var members []Member
	for rows.Next() {
		var member Member
		err := rows.Scan(
			&member.ID, &member.Name, &member.Rank, &member.Experience,
			&member.Kills, &member.CreatedAt, &member.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan member row: %w", err)
		}
		members = append(members, member)
	}

	return members, rows.Err()
}

func (r *MemberRepositoryImpl) GetMemberCount() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM members`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get member count: %w", err)
	}
	return count, nil
}
