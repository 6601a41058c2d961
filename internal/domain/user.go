package domain

import (
	"time"
)

// Роли пользователей. Хранятся в колонке role таблицы users
// и попадают в claims выданного токена.
const (
	RoleMember = "ROLE_MEMBER"
	RoleAdmin  = "ROLE_ADMIN"
)

// User представляет модель пользователя в системе.
// Соответствует таблице 'users' в базе данных.
type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"uniqueIndex"`
	Email        string    `json:"email" gorm:"uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"column:password_hash"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// RoleOrDefault возвращает роль пользователя, либо RoleMember,
// если роль не назначена.
func (u *User) RoleOrDefault() string {
	if u.Role == "" {
		return RoleMember
	}
	return u.Role
}
