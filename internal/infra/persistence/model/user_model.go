// Package model holds the GORM persistence models. They never leave the infra layer.
package model

import (
	"time"
)

// UserModel mirrors the 'users' table. PostgreSQL assigns IDs from a bigserial sequence.
type UserModel struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Email        string `gorm:"type:varchar(255);uniqueIndex:idx_users_email;not null"`
	Name         string `gorm:"type:varchar(100)"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	Role         string `gorm:"type:varchar(32);not null;default:'User'"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Interactions []InteractionModel `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
