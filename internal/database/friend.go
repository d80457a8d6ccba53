package database

import (
	"context"

	"github.com/thereayou/socialnet/internal/models"
)

func (d *Database) FriendExists(ctx context.Context, userID, friendID uint) (bool, error) {
	var count int64
	err := d.db.WithContext(ctx).
		Model(&models.Friend{}).
		Where("u_id = ? AND f_id = ?", userID, friendID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (d *Database) AddFriend(ctx context.Context, userID, friendID uint) error {
	return d.db.WithContext(ctx).Create(&models.Friend{UserID: userID, FriendID: friendID}).Error
}

// GetFriends returns the targets of the user's own edges in the order the
// edges were created.
func (d *Database) GetFriends(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User

	err := d.db.WithContext(ctx).
		Joins("JOIN friends ON friends.f_id = users.id").
		Where("friends.u_id = ? AND friends.f_id <> ?", userID, userID).
		Order("friends.id ASC").
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	return users, nil
}

// FriendIDs returns ids the user has an edge to.
func (d *Database) FriendIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := d.db.WithContext(ctx).
		Model(&models.Friend{}).
		Where("u_id = ?", userID).
		Order("id ASC").
		Pluck("f_id", &ids).Error
	return ids, err
}

// FollowerIDs returns ids that have an edge to the user.
func (d *Database) FollowerIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := d.db.WithContext(ctx).
		Model(&models.Friend{}).
		Where("f_id = ?", userID).
		Order("id ASC").
		Pluck("u_id", &ids).Error
	return ids, err
}
