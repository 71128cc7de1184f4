package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/beastgym/apiserver/types"
)

// TrainerRepository handles persistence for trainer profiles and their
// backing login accounts.
type TrainerRepository struct {
	db *sql.DB
}

func NewTrainerRepository(db *sql.DB) *TrainerRepository {
	return &TrainerRepository{db: db}
}

func (r *TrainerRepository) List(ctx context.Context, offset, limit int) ([]types.Trainer, int, error) {
	if offset < 0 {
		offset = 0
	}
	if limit < 1 {
		limit = 20
	}

	const countQuery = `SELECT COUNT(1) FROM trainers`
	var total int
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, err
	}

	const listQuery = `
		SELECT id, account_id, name, email, phone, specialty, photo_key, created_at, updated_at
		FROM trainers
		ORDER BY id
		OFFSET $1 LIMIT $2`
	rows, err := r.db.QueryContext(ctx, listQuery, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	trainers := make([]types.Trainer, 0, limit)
	for rows.Next() {
		var trainer types.Trainer
		if err := scanTrainer(rows, &trainer); err != nil {
			return nil, 0, err
		}
		trainers = append(trainers, trainer)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return trainers, total, nil
}

func (r *TrainerRepository) Get(ctx context.Context, id int) (types.Trainer, error) {
	const query = `
		SELECT id, account_id, name, email, phone, specialty, photo_key, created_at, updated_at
		FROM trainers
		WHERE id = $1`
	var trainer types.Trainer
	if err := scanTrainer(r.db.QueryRowContext(ctx, query, id), &trainer); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Trainer{}, ErrNotFound
		}
		return types.Trainer{}, err
	}
	return trainer, nil
}

func (r *TrainerRepository) GetByAccountID(ctx context.Context, accountID int) (types.Trainer, error) {
	const query = `
		SELECT id, account_id, name, email, phone, specialty, photo_key, created_at, updated_at
		FROM trainers
		WHERE account_id = $1`
	var trainer types.Trainer
	if err := scanTrainer(r.db.QueryRowContext(ctx, query, accountID), &trainer); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Trainer{}, ErrNotFound
		}
		return types.Trainer{}, err
	}
	return trainer, nil
}

// CreateWithAccount inserts the login account and the trainer profile in
// one transaction so a profile never exists without its credential.
func (r *TrainerRepository) CreateWithAccount(ctx context.Context, trainer types.Trainer, account types.Account) (types.Trainer, error) {
	now := time.Now()
	account.CreatedAt = now
	account.UpdatedAt = now
	trainer.CreatedAt = now
	trainer.UpdatedAt = now

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return types.Trainer{}, err
	}
	defer tx.Rollback()

	const accountQuery = `
		INSERT INTO accounts (name, email, role, password_hash, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`
	if err := tx.QueryRowContext(
		ctx,
		accountQuery,
		account.Name,
		account.Email,
		account.Role,
		account.PasswordHash,
		account.Active,
		account.CreatedAt,
		account.UpdatedAt,
	).Scan(&trainer.AccountID); err != nil {
		return types.Trainer{}, err
	}

	const trainerQuery = `
		INSERT INTO trainers (account_id, name, email, phone, specialty, photo_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	if err := tx.QueryRowContext(
		ctx,
		trainerQuery,
		trainer.AccountID,
		trainer.Name,
		trainer.Email,
		trainer.Phone,
		trainer.Specialty,
		trainer.PhotoKey,
		trainer.CreatedAt,
		trainer.UpdatedAt,
	).Scan(&trainer.ID); err != nil {
		return types.Trainer{}, err
	}

	if err := tx.Commit(); err != nil {
		return types.Trainer{}, err
	}
	return trainer, nil
}

func (r *TrainerRepository) Update(ctx context.Context, trainer types.Trainer) (types.Trainer, error) {
	trainer.UpdatedAt = time.Now()

	const query = `
		UPDATE trainers
		SET name = $1,
			email = $2,
			phone = $3,
			specialty = $4,
			photo_key = $5,
			updated_at = $6
		WHERE id = $7`
	result, err := r.db.ExecContext(
		ctx,
		query,
		trainer.Name,
		trainer.Email,
		trainer.Phone,
		trainer.Specialty,
		trainer.PhotoKey,
		trainer.UpdatedAt,
		trainer.ID,
	)
	if err != nil {
		return types.Trainer{}, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.Trainer{}, err
	}
	if affected == 0 {
		return types.Trainer{}, ErrNotFound
	}
	return trainer, nil
}

// Delete removes the trainer profile and deactivates the backing account
// in one transaction. The account row is kept so historical sessions and
// plans retain a valid reference.
func (r *TrainerRepository) Delete(ctx context.Context, id int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var accountID int
	const selectQuery = `SELECT account_id FROM trainers WHERE id = $1`
	if err := tx.QueryRowContext(ctx, selectQuery, id).Scan(&accountID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	const deleteQuery = `DELETE FROM trainers WHERE id = $1`
	if _, err := tx.ExecContext(ctx, deleteQuery, id); err != nil {
		return err
	}

	const deactivateQuery = `UPDATE accounts SET active = FALSE, updated_at = $1 WHERE id = $2`
	if _, err := tx.ExecContext(ctx, deactivateQuery, time.Now(), accountID); err != nil {
		return err
	}

	return tx.Commit()
}

func scanTrainer(row rowScanner, trainer *types.Trainer) error {
	return row.Scan(
		&trainer.ID,
		&trainer.AccountID,
		&trainer.Name,
		&trainer.Email,
		&trainer.Phone,
		&trainer.Specialty,
		&trainer.PhotoKey,
		&trainer.CreatedAt,
		&trainer.UpdatedAt,
	)
}
