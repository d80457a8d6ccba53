package handlers

import (
	"github.com/thereayou/socialnet/internal/handlers/dto"
	"github.com/thereayou/socialnet/internal/models"
	"github.com/thereayou/socialnet/internal/services"
)

const uploadsPath = "/uploads/"

func formatUser(user *models.User) dto.UserInfo {
	return dto.UserInfo{
		ID:        user.ID,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}

func formatPost(post *models.Post) dto.PostResponse {
	resp := dto.PostResponse{
		ID:        post.ID,
		Content:   post.Content,
		Image:     post.Image,
		CreatedAt: post.CreationTime.UTC(),
		Author:    formatUser(&post.User),
	}
	if post.Image != "" {
		resp.ImageURL = uploadsPath + post.Image
	}
	return resp
}

func formatFeedEntry(entry services.FeedEntry) dto.PostResponse {
	resp := formatPost(&entry.Post)
	count := entry.CommentCount
	resp.CommentCount = &count
	return resp
}

func formatComment(comment *models.Comment) dto.CommentResponse {
	return dto.CommentResponse{
		ID:        comment.ID,
		PostID:    comment.PostID,
		Comment:   comment.Comment,
		CreatedAt: comment.CreationTime.UTC(),
		Author:    formatUser(&comment.User),
	}
}

func formatProfile(user *models.User) dto.ProfileResponse {
	return dto.ProfileResponse{
		UserInfo:    formatUser(user),
		Education:   user.Education,
		Employment:  user.Employment,
		Music:       user.Music,
		Movie:       user.Movie,
		Nationality: user.Nationality,
		Birthday:    user.Birthday,
	}
}
