package models

import "time"

type Comment struct {
	ID           uint      `gorm:"primaryKey"`
	PostID       uint      `gorm:"column:p_id;not null;index"`
	UserID       uint      `gorm:"column:u_id;not null"`
	Comment      string    `gorm:"not null"`
	CreationTime time.Time `gorm:"column:creation_time;autoCreateTime"`

	// Связи
	User User `gorm:"foreignKey:UserID"`
}
