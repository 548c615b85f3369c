package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/iliyamo/hotel-booking-admin/internal/model"
	"github.com/iliyamo/hotel-booking-admin/internal/utils"
)

// AdminRepo stores dashboard administrators.
type AdminRepo struct{ DB *sql.DB }

func NewAdminRepo(db *sql.DB) *AdminRepo { return &AdminRepo{DB: db} }

// Create hashes the password and inserts the admin, returning its ID.
// Emails are stored trimmed and lower-cased.
func (r *AdminRepo) Create(ctx context.Context, email, password string, cost int) (uint64, error) {
	email = normalizeEmail(email)
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO admins (email, password_hash) VALUES (?,?)",
		email, hash)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches an admin by normalized email.
func (r *AdminRepo) GetByEmail(ctx context.Context, email string) (model.Admin, error) {
	return r.getOne(ctx, "SELECT id, email, password_hash, created_at, updated_at FROM admins WHERE email = ? LIMIT 1", normalizeEmail(email))
}

// GetByID fetches an admin by id.
func (r *AdminRepo) GetByID(ctx context.Context, id uint64) (model.Admin, error) {
	return r.getOne(ctx, "SELECT id, email, password_hash, created_at, updated_at FROM admins WHERE id = ? LIMIT 1", id)
}

func (r *AdminRepo) getOne(ctx context.Context, q string, arg any) (model.Admin, error) {
	var a model.Admin
	err := r.DB.QueryRowContext(ctx, q, arg).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return a, ErrAdminNotFound
	}
	return a, err
}

func normalizeEmail(email string) string { return strings.ToLower(strings.TrimSpace(email)) }
