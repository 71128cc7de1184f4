package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/beastgym/apiserver/types"
)

// MemberRepository handles persistence for gym members.
type MemberRepository struct {
	db *sql.DB
}

func NewMemberRepository(db *sql.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) List(ctx context.Context, offset, limit int) ([]types.Member, int, error) {
	if offset < 0 {
		offset = 0
	}
	if limit < 1 {
		limit = 20
	}

	const countQuery = `SELECT COUNT(1) FROM members`
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, err
	}

	const listQuery = `
		SELECT id, name, email, phone, plan, joined_at, trainer_id, photo_key, created_at, updated_at
		FROM members
		ORDER BY id
		OFFSET $1 LIMIT $2`
	rows, err := r.db.QueryContext(ctx, listQuery, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	members := make([]types.Member, 0, limit)
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, 0, err
		}
		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return members, total, nil
}

func (r *MemberRepository) Get(ctx context.Context, id int) (types.Member, error) {
	const query = `
		SELECT id, name, email, phone, plan, joined_at, trainer_id, photo_key, created_at, updated_at
		FROM members
		WHERE id = $1`
	member, err := scanMember(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Member{}, ErrNotFound
		}
		return types.Member{}, err
	}
	return member, nil
}

func (r *MemberRepository) Create(ctx context.Context, member types.Member) (types.Member, error) {
	now := time.Now()
	member.CreatedAt = now
	member.UpdatedAt = now
	if member.JoinedAt.IsZero() {
		member.JoinedAt = now
	}

	const query = `
		INSERT INTO members (name, email, phone, plan, joined_at, trainer_id, photo_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		member.Name,
		member.Email,
		member.Phone,
		member.Plan,
		member.JoinedAt,
		member.TrainerID,
		member.PhotoKey,
		member.CreatedAt,
		member.UpdatedAt,
	).Scan(&member.ID); err != nil {
		return types.Member{}, err
	}
	return member, nil
}

func (r *MemberRepository) Update(ctx context.Context, member types.Member) (types.Member, error) {
	member.UpdatedAt = time.Now()

	const query = `
		UPDATE members
		SET name = $1,
			email = $2,
			phone = $3,
			plan = $4,
			joined_at = $5,
			trainer_id = $6,
			photo_key = $7,
			updated_at = $8
		WHERE id = $9`
	result, err := r.db.ExecContext(
		ctx,
		query,
		member.Name,
		member.Email,
		member.Phone,
		member.Plan,
		member.JoinedAt,
		member.TrainerID,
		member.PhotoKey,
		member.UpdatedAt,
		member.ID,
	)
	if err != nil {
		return types.Member{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Member{}, err
	}
	if affected == 0 {
		return types.Member{}, ErrNotFound
	}
	return member, nil
}

func (r *MemberRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM members WHERE id = $1`
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

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMember(row rowScanner) (types.Member, error) {
	var member types.Member
	var trainerID sql.NullInt64
	err := row.Scan(
		&member.ID,
		&member.Name,
		&member.Email,
		&member.Phone,
		&member.Plan,
		&member.JoinedAt,
		&trainerID,
		&member.PhotoKey,
		&member.CreatedAt,
		&member.UpdatedAt,
	)
	if err != nil {
		return types.Member{}, err
	}
	if trainerID.Valid {
		id := int(trainerID.Int64)
		member.TrainerID = &id
	}
	return member, nil
}
