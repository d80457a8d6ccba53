package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/thereayou/socialnet/internal/database"
	"github.com/thereayou/socialnet/internal/models"
	"github.com/thereayou/socialnet/internal/storage"
)

// Attachment is an uploaded file to store alongside a post.
type Attachment struct {
	Filename string
	Body     io.Reader
}

// ContentStore persists posts, comments and post attachments.
type ContentStore struct {
	db      *database.Database
	uploads *storage.Uploads
}

func NewContentStore(db *database.Database, uploads *storage.Uploads) *ContentStore {
	return &ContentStore{db: db, uploads: uploads}
}

// CreatePost writes the attachment first and then the row. The two steps
// are not atomic: a failed insert removes the file, but a crash between them
// leaves an orphaned file behind.
func (s *ContentStore) CreatePost(ctx context.Context, authorID uint, content string, attachment *Attachment) (uint, error) {
	if strings.TrimSpace(content) == "" && attachment == nil {
		return 0, ErrInvalidInput
	}

	post := &models.Post{
		UserID:  authorID,
		Content: content,
	}

	if attachment != nil {
		name, err := s.uploads.Save(attachment.Filename, attachment.Body)
		if err != nil {
			return 0, fmt.Errorf("create post: %w", err)
		}
		post.Image = name
	}

	if err := s.db.SavePost(ctx, post); err != nil {
		if post.Image != "" {
			if rmErr := s.uploads.Remove(post.Image); rmErr != nil {
				log.Warn().Err(rmErr).Str("image", post.Image).Msg("failed to remove orphaned attachment")
			}
		}
		return 0, fmt.Errorf("create post: %w", err)
	}

	return post.ID, nil
}

func (s *ContentStore) CreateComment(ctx context.Context, postID, authorID uint, text string) (uint, error) {
	if strings.TrimSpace(text) == "" {
		return 0, ErrInvalidInput
	}

	if _, err := s.db.GetPost(ctx, postID); err != nil {
		return 0, lookupError(err, ErrPostNotFound)
	}

	comment := &models.Comment{
		PostID:  postID,
		UserID:  authorID,
		Comment: text,
	}
	if err := s.db.SaveComment(ctx, comment); err != nil {
		return 0, fmt.Errorf("create comment: %w", err)
	}

	return comment.ID, nil
}

// CommentsFor returns the post's comments, newest first.
func (s *ContentStore) CommentsFor(ctx context.Context, postID uint) ([]models.Comment, error) {
	comments, err := s.db.GetPostComments(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("comments for post %d: %w", postID, err)
	}
	return comments, nil
}

func (s *ContentStore) PostByID(ctx context.Context, postID uint) (*models.Post, error) {
	post, err := s.db.GetPost(ctx, postID)
	if err != nil {
		return nil, lookupError(err, ErrPostNotFound)
	}
	return post, nil
}

// OpenAttachment opens a stored attachment by the name recorded on its post.
func (s *ContentStore) OpenAttachment(name string) (*os.File, error) {
	f, err := s.uploads.Open(name)
	if err != nil {
		if os.IsNotExist(err) || err == storage.ErrInvalidName {
			return nil, ErrAttachmentNotFound
		}
		return nil, err
	}
	return f, nil
}
