package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// User is a row of the users table.
type User struct {
	ID           pgtype.UUID
	Email        string
	PasswordHash string
	Name         pgtype.Text
	CreatedAt    pgtype.Timestamptz
	LastLoginAt  pgtype.Timestamptz
}

// Project is a row of the projects table.
type Project struct {
	ID        pgtype.UUID
	Code      string
	Name      string
	OwnerID   pgtype.UUID
	CreatedAt pgtype.Timestamptz
}

// Store runs the application's queries against the connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore wraps the given pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Close releases the underlying pool.
func (s *Store) Close() {
	s.pool.Close()
}

// CreateUser inserts a new account and returns the stored row.
func (s *Store) CreateUser(ctx context.Context, email, passwordHash, name string) (User, error) {
	const query = `
		INSERT INTO users (email, password_hash, name)
		VALUES ($1, $2, $3)
		RETURNING id, email, password_hash, name, created_at, last_login_at`

	var u User
	err := s.pool.QueryRow(ctx, query, email, passwordHash, name).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.CreatedAt, &u.LastLoginAt,
	)
	return u, err
}

// GetUserByEmail fetches the account with the given email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (User, error) {
	const query = `
		SELECT id, email, password_hash, name, created_at, last_login_at
		FROM users
		WHERE email = $1`

	var u User
	err := s.pool.QueryRow(ctx, query, email).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.CreatedAt, &u.LastLoginAt,
	)
	return u, err
}

// GetUserByID fetches the account with the given id.
func (s *Store) GetUserByID(ctx context.Context, id pgtype.UUID) (User, error) {
	const query = `
		SELECT id, email, password_hash, name, created_at, last_login_at
		FROM users
		WHERE id = $1`

	var u User
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.CreatedAt, &u.LastLoginAt,
	)
	return u, err
}

// UpdateLastLogin stamps the account's last_login_at with the current time.
func (s *Store) UpdateLastLogin(ctx context.Context, id pgtype.UUID) error {
	const query = `UPDATE users SET last_login_at = now() WHERE id = $1`

	_, err := s.pool.Exec(ctx, query, id)
	return err
}

// UpdateUserPassword replaces the account's password hash.
func (s *Store) UpdateUserPassword(ctx context.Context, id pgtype.UUID, passwordHash string) error {
	const query = `UPDATE users SET password_hash = $2 WHERE id = $1`

	_, err := s.pool.Exec(ctx, query, id, passwordHash)
	return err
}

// CreateProject inserts a project owned by the given user.
func (s *Store) CreateProject(ctx context.Context, code, name string, ownerID pgtype.UUID) (Project, error) {
	const query = `
		INSERT INTO projects (code, name, owner_id)
		VALUES ($1, $2, $3)
		RETURNING id, code, name, owner_id, created_at`

	var p Project
	err := s.pool.QueryRow(ctx, query, code, name, ownerID).Scan(
		&p.ID, &p.Code, &p.Name, &p.OwnerID, &p.CreatedAt,
	)
	return p, err
}

// GetProjectByCode fetches the project with the given code.
func (s *Store) GetProjectByCode(ctx context.Context, code string) (Project, error) {
	const query = `
		SELECT id, code, name, owner_id, created_at
		FROM projects
		WHERE code = $1`

	var p Project
	err := s.pool.QueryRow(ctx, query, code).Scan(
		&p.ID, &p.Code, &p.Name, &p.OwnerID, &p.CreatedAt,
	)
	return p, err
}

// ListProjectsByOwner returns every project owned by the given user, newest first.
func (s *Store) ListProjectsByOwner(ctx context.Context, ownerID pgtype.UUID) ([]Project, error) {
	const query = `
		SELECT id, code, name, owner_id, created_at
		FROM projects
		WHERE owner_id = $1
		ORDER BY created_at DESC`

	rows, err := s.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []Project
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.OwnerID, &p.CreatedAt); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}
