package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/beastgym/apiserver/types"
)

// SessionRepository handles persistence for scheduled class sessions.
type SessionRepository struct {
	db *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) List(ctx context.Context, offset, limit int) ([]types.ClassSession, int, error) {
	if offset < 0 {
		offset = 0
	}
	if limit < 1 {
		limit = 20
	}

	const countQuery = `SELECT COUNT(1) FROM class_sessions`
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, err
	}

	const listQuery = `
		SELECT id, title, trainer_id, location, starts_at, ends_at, capacity, created_at, updated_at
		FROM class_sessions
		ORDER BY starts_at, id
		OFFSET $1 LIMIT $2`
	rows, err := r.db.QueryContext(ctx, listQuery, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	sessions := make([]types.ClassSession, 0, limit)
	for rows.Next() {
		var session types.ClassSession
		if err := scanSession(rows, &session); err != nil {
			return nil, 0, err
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return sessions, total, nil
}

func (r *SessionRepository) ListByTrainer(ctx context.Context, trainerID int) ([]types.ClassSession, error) {
	const query = `
		SELECT id, title, trainer_id, location, starts_at, ends_at, capacity, created_at, updated_at
		FROM class_sessions
		WHERE trainer_id = $1
		ORDER BY starts_at, id`
	rows, err := r.db.QueryContext(ctx, query, trainerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]types.ClassSession, 0)
	for rows.Next() {
		var session types.ClassSession
		if err := scanSession(rows, &session); err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *SessionRepository) Get(ctx context.Context, id int) (types.ClassSession, error) {
	const query = `
		SELECT id, title, trainer_id, location, starts_at, ends_at, capacity, created_at, updated_at
		FROM class_sessions
		WHERE id = $1`
	var session types.ClassSession
	if err := scanSession(r.db.QueryRowContext(ctx, query, id), &session); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.ClassSession{}, ErrNotFound
		}
		return types.ClassSession{}, err
	}
	return session, nil
}

func (r *SessionRepository) Create(ctx context.Context, session types.ClassSession) (types.ClassSession, error) {
	now := time.Now()
	session.CreatedAt = now
	session.UpdatedAt = now

	const query = `
		INSERT INTO class_sessions (title, trainer_id, location, starts_at, ends_at, capacity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		session.Title,
		session.TrainerID,
		session.Location,
		session.StartsAt,
		session.EndsAt,
		session.Capacity,
		session.CreatedAt,
		session.UpdatedAt,
	).Scan(&session.ID); err != nil {
		return types.ClassSession{}, err
	}
	return session, nil
}

func (r *SessionRepository) Update(ctx context.Context, session types.ClassSession) (types.ClassSession, error) {
	session.UpdatedAt = time.Now()

	const query = `
		UPDATE class_sessions
		SET title = $1,
			trainer_id = $2,
			location = $3,
			starts_at = $4,
			ends_at = $5,
			capacity = $6,
			updated_at = $7
		WHERE id = $8`
	result, err := r.db.ExecContext(
		ctx,
		query,
		session.Title,
		session.TrainerID,
		session.Location,
		session.StartsAt,
		session.EndsAt,
		session.Capacity,
		session.UpdatedAt,
		session.ID,
	)
	if err != nil {
		return types.ClassSession{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.ClassSession{}, err
	}
	if affected == 0 {
		return types.ClassSession{}, ErrNotFound
	}
	return session, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM class_sessions WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanSession(row rowScanner, session *types.ClassSession) error {
	return row.Scan(
		&session.ID,
		&session.Title,
		&session.TrainerID,
		&session.Location,
		&session.StartsAt,
		&session.EndsAt,
		&session.Capacity,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
}
