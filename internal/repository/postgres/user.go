package postgres

import (
	"context"

	"campushub/internal/domain"

	"github.com/jackc/pgx/v5"
)

const userColumns = "id, student_id, username, password_hash, full_name, is_admin, is_banned, total_points, created_at"

func scanUser(row pgx.Row, u *domain.User) error {
	return row.Scan(
		&u.ID, &u.StudentID, &u.Username, &u.PasswordHash, &u.FullName,
		&u.IsAdmin, &u.IsBanned, &u.TotalPoints, &u.CreatedAt,
	)
}

func (s *Storage) CreateUser(ctx context.Context, req *domain.RegisterRequest, passwordHash string) (*domain.User, error) {
	const query = `
        INSERT INTO users (student_id, username, password_hash, full_name)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + userColumns + `;
    `

	var user domain.User
	err := scanUser(s.pool.QueryRow(ctx, query,
		req.StudentID, req.Username, passwordHash, req.FullName,
	), &user)

	return &user, err
}

func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE username = $1;`

	var user domain.User
	err := scanUser(s.pool.QueryRow(ctx, query, username), &user)

	return &user, err
}

func (s *Storage) GetUserByID(ctx context.Context, id int) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1;`

	var user domain.User
	err := scanUser(s.pool.QueryRow(ctx, query, id), &user)

	return &user, err
}

func (s *Storage) ListUsers(ctx context.Context) ([]domain.UserSummary, error) {
	const query = `
        SELECT id, username, full_name, total_points
        FROM users
        ORDER BY username;
    `

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	defer rows.Close()
	var users []domain.UserSummary
	for rows.Next() {
		var u domain.UserSummary
		if err := rows.Scan(&u.ID, &u.Username, &u.FullName, &u.TotalPoints); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

func (s *Storage) UpdateUser(ctx context.Context, id int, req *domain.UpdateUserRequest) (*domain.User, error) {
	const query = `
        UPDATE users
        SET full_name = COALESCE($2, full_name)
        WHERE id = $1
        RETURNING ` + userColumns + `;
    `

	var user domain.User
	err := scanUser(s.pool.QueryRow(ctx, query, id, req.FullName), &user)

	return &user, err
}

// SetBanned flips the moderation flag; restriction rows record the reason.
func (s *Storage) SetBanned(ctx context.Context, userID int, banned bool) error {
	const query = `UPDATE users SET is_banned = $2 WHERE id = $1;`
	_, err := s.pool.Exec(ctx, query, userID, banned)
	return err
}

func (s *Storage) CreateRestriction(ctx context.Context, userID int, reason string, restrictedBy int) (*domain.UserRestriction, error) {
	const query = `
        INSERT INTO user_restrictions (user_id, reason, restricted_by)
        VALUES ($1, $2, $3)
        RETURNING id, user_id, reason, restricted_by, created_at;
    `

	var r domain.UserRestriction
	err := s.pool.QueryRow(ctx, query, userID, reason, restrictedBy).Scan(
		&r.ID, &r.UserID, &r.Reason, &r.RestrictedBy, &r.CreatedAt,
	)

	return &r, err
}

func (s *Storage) Leaderboard(ctx context.Context, limit int) ([]domain.UserSummary, error) {
	const query = `
        SELECT id, username, full_name, total_points
        FROM users
        WHERE is_banned = FALSE
        ORDER BY total_points DESC, username
        LIMIT $1;
    `

	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}

	defer rows.Close()
	var users []domain.UserSummary
	for rows.Next() {
		var u domain.UserSummary
		if err := rows.Scan(&u.ID, &u.Username, &u.FullName, &u.TotalPoints); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}
