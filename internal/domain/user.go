package domain

import (
	"context"
	"time"
)

type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
	RoleAdmin  Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleBuyer, RoleSeller, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Email          string    `gorm:"uniqueIndex;size:191;not null" json:"email"`
	HashedPassword string    `gorm:"size:100;not null" json:"-"`
	IsActive       bool      `gorm:"not null;default:true" json:"is_active"`
	Role           Role      `gorm:"size:16;not null;default:buyer" json:"role"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }

// Caller 是已鉴权的调用方，由 JWT 中间件解析后显式传入 service
type Caller struct {
	ID   uint
	Role Role
}

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context, q string, offset, limit int) ([]User, int64, error)
	Deactivate(ctx context.Context, id uint) (bool, error)
}
