package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/beastgym/apiserver/types"
)

// WellnessRepository handles persistence for wellness plans. Diet and
// workout lists are stored as JSONB.
type WellnessRepository struct {
	db *sql.DB
}

func NewWellnessRepository(db *sql.DB) *WellnessRepository {
	return &WellnessRepository{db: db}
}

func (r *WellnessRepository) List(ctx context.Context, offset, limit int) ([]types.WellnessPlan, int, error) {
	if offset < 0 {
		offset = 0
	}
	if limit < 1 {
		limit = 20
	}

	const countQuery = `SELECT COUNT(1) FROM wellness_plans`
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, err
	}

	const listQuery = `
		SELECT id, member_id, trainer_id, title, notes, diet, workout, created_at, updated_at
		FROM wellness_plans
		ORDER BY id
		OFFSET $1 LIMIT $2`
	rows, err := r.db.QueryContext(ctx, listQuery, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	plans := make([]types.WellnessPlan, 0, limit)
	for rows.Next() {
		plan, err := scanWellnessPlan(rows)
		if err != nil {
			return nil, 0, err
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return plans, total, nil
}

func (r *WellnessRepository) ListByTrainer(ctx context.Context, trainerID int) ([]types.WellnessPlan, error) {
	const query = `
		SELECT id, member_id, trainer_id, title, notes, diet, workout, created_at, updated_at
		FROM wellness_plans
		WHERE trainer_id = $1
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, trainerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	plans := make([]types.WellnessPlan, 0)
	for rows.Next() {
		plan, err := scanWellnessPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return plans, nil
}

func (r *WellnessRepository) Get(ctx context.Context, id int) (types.WellnessPlan, error) {
	const query = `
		SELECT id, member_id, trainer_id, title, notes, diet, workout, created_at, updated_at
		FROM wellness_plans
		WHERE id = $1`
	plan, err := scanWellnessPlan(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.WellnessPlan{}, ErrNotFound
		}
		return types.WellnessPlan{}, err
	}
	return plan, nil
}

func (r *WellnessRepository) Create(ctx context.Context, plan types.WellnessPlan) (types.WellnessPlan, error) {
	now := time.Now()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	dietJSON, workoutJSON, err := marshalPlanLists(plan)
	if err != nil {
		return types.WellnessPlan{}, err
	}

	const query = `
		INSERT INTO wellness_plans (member_id, trainer_id, title, notes, diet, workout, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		plan.MemberID,
		plan.TrainerID,
		plan.Title,
		plan.Notes,
		dietJSON,
		workoutJSON,
		plan.CreatedAt,
		plan.UpdatedAt,
	).Scan(&plan.ID); err != nil {
		return types.WellnessPlan{}, err
	}
	return plan, nil
}

func (r *WellnessRepository) Update(ctx context.Context, plan types.WellnessPlan) (types.WellnessPlan, error) {
	plan.UpdatedAt = time.Now()

	dietJSON, workoutJSON, err := marshalPlanLists(plan)
	if err != nil {
		return types.WellnessPlan{}, err
	}

	const query = `
		UPDATE wellness_plans
		SET member_id = $1,
			trainer_id = $2,
			title = $3,
			notes = $4,
			diet = $5,
			workout = $6,
			updated_at = $7
		WHERE id = $8`
	result, err := r.db.ExecContext(
		ctx,
		query,
		plan.MemberID,
		plan.TrainerID,
		plan.Title,
		plan.Notes,
		dietJSON,
		workoutJSON,
		plan.UpdatedAt,
		plan.ID,
	)
	if err != nil {
		return types.WellnessPlan{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.WellnessPlan{}, err
	}
	if affected == 0 {
		return types.WellnessPlan{}, ErrNotFound
	}
	return plan, nil
}

func (r *WellnessRepository) Delete(ctx context.Context, id int) error {
	const query = `DELETE FROM wellness_plans WHERE id = $1`
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

func marshalPlanLists(plan types.WellnessPlan) ([]byte, []byte, error) {
	if plan.Diet == nil {
		plan.Diet = []string{}
	}
	if plan.Workout == nil {
		plan.Workout = []string{}
	}
	dietJSON, err := json.Marshal(plan.Diet)
	if err != nil {
		return nil, nil, err
	}
	workoutJSON, err := json.Marshal(plan.Workout)
	if err != nil {
		return nil, nil, err
	}
	return dietJSON, workoutJSON, nil
}

func scanWellnessPlan(row rowScanner) (types.WellnessPlan, error) {
	var plan types.WellnessPlan
	var dietJSON, workoutJSON []byte
	err := row.Scan(
		&plan.ID,
		&plan.MemberID,
		&plan.TrainerID,
		&plan.Title,
		&plan.Notes,
		&dietJSON,
		&workoutJSON,
		&plan.CreatedAt,
		&plan.UpdatedAt,
	)
	if err != nil {
		return types.WellnessPlan{}, err
	}
	if len(dietJSON) > 0 {
		if err := json.Unmarshal(dietJSON, &plan.Diet); err != nil {
			return types.WellnessPlan{}, err
		}
	}
	if len(workoutJSON) > 0 {
		if err := json.Unmarshal(workoutJSON, &plan.Workout); err != nil {
			return types.WellnessPlan{}, err
		}
	}
	return plan, nil
}
