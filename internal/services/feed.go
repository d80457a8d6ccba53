package services

import (
	"context"
	"fmt"

	"github.com/thereayou/socialnet/internal/database"
	"github.com/thereayou/socialnet/internal/models"
)

// FeedEntry is a post as shown in a feed, with its comment count attached.
type FeedEntry struct {
	Post         models.Post
	CommentCount int64
}

// FeedAssembler composes the feed of a user from the social graph and the
// content store.
type FeedAssembler struct {
	db *database.Database
}

func NewFeedAssembler(db *database.Database) *FeedAssembler {
	return &FeedAssembler{db: db}
}

// Feed returns every post by the user, by users the user has an edge to and
// by users with an edge to the user, newest first. Posts created at the same
// instant keep insertion order. The sub-queries share one transaction and
// any failure fails the whole call.
func (f *FeedAssembler) Feed(ctx context.Context, userID uint) ([]FeedEntry, error) {
	var entries []FeedEntry

	err := f.db.Transaction(ctx, func(tx *database.Database) error {
		if _, err := tx.GetUser(ctx, userID); err != nil {
			return lookupError(err, ErrUserNotFound)
		}

		authors, err := visibleAuthors(ctx, tx, userID)
		if err != nil {
			return err
		}

		posts, err := tx.GetPostsByAuthors(ctx, authors)
		if err != nil {
			return fmt.Errorf("posts: %w", err)
		}

		ids := make([]uint, len(posts))
		for i, p := range posts {
			ids[i] = p.ID
		}

		counts, err := tx.CountComments(ctx, ids)
		if err != nil {
			return fmt.Errorf("comment counts: %w", err)
		}

		entries = make([]FeedEntry, len(posts))
		for i, p := range posts {
			entries[i] = FeedEntry{Post: p, CommentCount: counts[p.ID]}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}
