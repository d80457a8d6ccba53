package database

import (
	"context"

	"github.com/thereayou/socialnet/internal/models"
)

func (d *Database) SaveUser(ctx context.Context, user *models.User) error {
	if err := d.db.WithContext(ctx).Create(user).Error; err != nil {
		return err
	}
	return nil
}

func (d *Database) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user := models.User{}
	if err := d.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (d *Database) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user := models.User{}
	if err := d.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile writes all profile columns, including empty values.
// Username and password are never touched.
func (d *Database) UpdateProfile(ctx context.Context, id uint, profile models.Profile) error {
	return d.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"education":   profile.Education,
			"employment":  profile.Employment,
			"music":       profile.Music,
			"movie":       profile.Movie,
			"nationality": profile.Nationality,
			"birthday":    profile.Birthday,
		}).Error
}
