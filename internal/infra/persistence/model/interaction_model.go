package model

import "time"

// InteractionModel mirrors the append-only 'interactions' table.
type InteractionModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	UserID    int64  `gorm:"index;not null"`
	Channel   string `gorm:"type:varchar(16);not null"`
	Content   string `gorm:"type:text;not null"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (InteractionModel) TableName() string {
	return "interactions"
}
