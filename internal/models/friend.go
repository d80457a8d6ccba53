package models

// Friend is a directed edge: UserID owns the edge, FriendID is its target.
// The reverse edge is a separate row and is never implied.
type Friend struct {
	ID       uint `gorm:"primaryKey"`
	UserID   uint `gorm:"column:u_id;not null;uniqueIndex:idx_friends_pair"`
	FriendID uint `gorm:"column:f_id;not null;uniqueIndex:idx_friends_pair;index"`

	// Связи
	Target User `gorm:"foreignKey:FriendID"`
}
