package database

import (
	"context"

	"github.com/thereayou/socialnet/internal/models"
)

// SavePost inserts the post. CreationTime is stamped by gorm's NowFunc at
// insert time and any value set by the caller is overwritten.
func (d *Database) SavePost(ctx context.Context, post *models.Post) error {
	return d.createStamped(ctx, post, &post.CreationTime)
}

func (d *Database) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := d.db.WithContext(ctx).Preload("User").First(&post, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPostsByAuthors returns newest posts first. Posts with the same
// creation_time keep insertion order.
func (d *Database) GetPostsByAuthors(ctx context.Context, authorIDs []uint) ([]models.Post, error) {
	var posts []models.Post
	if len(authorIDs) == 0 {
		return posts, nil
	}

	err := d.db.WithContext(ctx).
		Where("u_id IN ?", authorIDs).
		Order("creation_time DESC").
		Order("id ASC").
		Preload("User").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}

	return posts, nil
}

// CountComments maps post id to its number of comments. Posts without
// comments are absent from the map.
func (d *Database) CountComments(ctx context.Context, postIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		PostID uint
		Total  int64
	}
	err := d.db.WithContext(ctx).
		Model(&models.Comment{}).
		Select("p_id AS post_id, COUNT(*) AS total").
		Where("p_id IN ?", postIDs).
		Group("p_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.PostID] = row.Total
	}
	return counts, nil
}
