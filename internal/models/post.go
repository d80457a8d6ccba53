package models

import "time"

type Post struct {
	ID           uint   `gorm:"primaryKey"`
	UserID       uint   `gorm:"column:u_id;not null;index"`
	Content      string `gorm:"not null"`
	Image        string
	CreationTime time.Time `gorm:"column:creation_time;autoCreateTime;index"`

	// Связи
	User     User      `gorm:"foreignKey:UserID"`
	Comments []Comment `gorm:"foreignKey:PostID"`
}
