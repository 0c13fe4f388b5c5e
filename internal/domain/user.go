package domain

import (
	"context"
	"time"
)

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	AreaID       string    `json:"areaId"`
	CreatedAt    time.Time `json:"createdAt"`
}

type UpsertUserInput struct {
	Username     string
	PasswordHash string
	Role         Role
	AreaID       string
}

type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*User, error)
	Upsert(ctx context.Context, input UpsertUserInput) (*User, error)
}

// Principal is the authorization capability carried by every authenticated
// request: who may act (role) and where (area).
type Principal struct {
	Role   Role
	AreaID string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
