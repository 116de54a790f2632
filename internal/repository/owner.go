package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"portfolio-service/internal/entity"
)

type OwnerRepository struct {
	db *sql.DB
}

func NewOwnerRepository(db *sql.DB) *OwnerRepository {
	return &OwnerRepository{db}
}

// CreateOwner inserts an owner whose password has already been hashed.
func (r *OwnerRepository) CreateOwner(ctx context.Context, owner *entity.Owner) (*entity.Owner, error) {
	query := `INSERT INTO owners (username, email, hashed_password) VALUES (?, ?, ?)`

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, query, owner.Username, owner.Email, owner.HashedPassword)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		owner.ID = int(id)
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("create owner %q: %w", owner.Username, entity.ErrConflict)
		}
		return nil, err
	}

	return owner, nil
}

func (r *OwnerRepository) GetOwnerByEmail(ctx context.Context, email string) (*entity.Owner, error) {
	query := `SELECT id, username, email, hashed_password FROM owners WHERE email = ?`
	return scanOwner(r.db.QueryRowContext(ctx, query, email))
}

func (r *OwnerRepository) GetOwnerByUsername(ctx context.Context, username string) (*entity.Owner, error) {
	query := `SELECT id, username, email, hashed_password FROM owners WHERE username = ?`
	return scanOwner(r.db.QueryRowContext(ctx, query, username))
}

func scanOwner(row *sql.Row) (*entity.Owner, error) {
	owner := &entity.Owner{}
	err := row.Scan(&owner.ID, &owner.Username, &owner.Email, &owner.HashedPassword)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return owner, nil
}
