package repository

import (
	"context"
	"database/sql"
	"errors"

	"portfolio-service/internal/entity"
)

type ContactRepository struct {
	db *sql.DB
}

func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{db}
}

func (r *ContactRepository) CreateContact(ctx context.Context, in entity.ContactInfoInput) (*entity.ContactInfo, error) {
	query := `INSERT INTO contacts (email, x_link, linkedin_link) VALUES (?, ?, ?)`

	contact := &entity.ContactInfo{Email: in.Email, XLink: in.XLink, LinkedinLink: in.LinkedinLink}
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, query, in.Email, in.XLink, in.LinkedinLink)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return err
		}
		contact.ID = int(id)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return contact, nil
}

func (r *ContactRepository) UpdateContact(ctx context.Context, id int, in entity.ContactInfoInput) (*entity.ContactInfo, error) {
	query := `UPDATE contacts SET email = ?, x_link = ?, linkedin_link = ? WHERE id = ?`

	var contact *entity.ContactInfo
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		existing, err := getContact(ctx, tx, id)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, in.Email, in.XLink, in.LinkedinLink, id); err != nil {
			return err
		}
		existing.Email = in.Email
		existing.XLink = in.XLink
		existing.LinkedinLink = in.LinkedinLink
		contact = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	return contact, nil
}

func (r *ContactRepository) DeleteContact(ctx context.Context, id int) (*entity.ContactInfo, error) {
	var contact *entity.ContactInfo
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		existing, err := getContact(ctx, tx, id)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM contacts WHERE id = ?`, id); err != nil {
			return err
		}
		contact = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	return contact, nil
}

func getContact(ctx context.Context, q queryer, id int) (*entity.ContactInfo, error) {
	query := `SELECT id, email, x_link, linkedin_link FROM contacts WHERE id = ?`

	contact := &entity.ContactInfo{}
	err := q.QueryRowContext(ctx, query, id).Scan(&contact.ID, &contact.Email, &contact.XLink, &contact.LinkedinLink)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return contact, nil
}
