package database

import (
	"context"

	"github.com/thereayou/socialnet/internal/models"
)

func (d *Database) SaveComment(ctx context.Context, comment *models.Comment) error {
	return d.createStamped(ctx, comment, &comment.CreationTime)
}

// GetPostComments получает комментарии поста, новые первыми
func (d *Database) GetPostComments(ctx context.Context, postID uint) ([]models.Comment, error) {
	var comments []models.Comment

	err := d.db.WithContext(ctx).
		Where("p_id = ?", postID).
		Order("creation_time DESC").
		Order("id ASC").
		Preload("User").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	return comments, nil
}
