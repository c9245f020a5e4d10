package domain

import "time"

type User struct {
	ID           int       `db:"id" json:"id"`
	StudentID    string    `db:"student_id" json:"student_id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	FullName     string    `db:"full_name" json:"full_name"`
	IsAdmin      bool      `db:"is_admin" json:"is_admin"`
	IsBanned     bool      `db:"is_banned" json:"is_banned"`
	TotalPoints  int       `db:"total_points" json:"total_points"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// UserSummary is the compact shape returned in follower and leaderboard lists.
type UserSummary struct {
	ID          int    `db:"id" json:"id"`
	Username    string `db:"username" json:"username"`
	FullName    string `db:"full_name" json:"full_name"`
	TotalPoints int    `db:"total_points" json:"total_points"`
}

type UserRestriction struct {
	ID           int       `db:"id" json:"id"`
	UserID       int       `db:"user_id" json:"user_id"`
	Reason       string    `db:"reason" json:"reason"`
	RestrictedBy int       `db:"restricted_by" json:"restricted_by"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

type RegisterRequest struct {
	StudentID string `json:"student_id" validate:"required"`
	Username  string `json:"username" validate:"required,min=3,max=32"`
	Password  string `json:"password" validate:"required,min=8"`
	FullName  string `json:"full_name" validate:"required"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type UpdateUserRequest struct {
	FullName *string `json:"full_name"`
}

type BanRequest struct {
	Reason string `json:"reason" validate:"required"`
}
