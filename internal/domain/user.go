package domain

import (
	"time"
)

type Role string

const (
	RoleMember  Role = "成员"
	RoleManager Role = "主管"
	RoleAdmin   Role = "管理员"
)

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	Role         Role      `json:"role"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}

// Elevated: 主管和管理员都属于管理角色
func (u *User) Elevated() bool {
	return u.Role == RoleManager || u.Role == RoleAdmin
}
