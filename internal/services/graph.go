package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/thereayou/socialnet/internal/database"
	"github.com/thereayou/socialnet/internal/models"
)

// SocialGraph stores directed friend edges. An edge A→B never implies B→A.
type SocialGraph struct {
	db *database.Database
}

func NewSocialGraph(db *database.Database) *SocialGraph {
	return &SocialGraph{db: db}
}

// AddFriend creates the edge ownerID→friend. Only the forward edge is checked
// for duplicates; an existing reverse edge does not block the call.
func (g *SocialGraph) AddFriend(ctx context.Context, ownerID uint, friendUsername string) error {
	friend, err := g.db.FindUserByUsername(ctx, NormalizeUsername(friendUsername))
	if err != nil {
		return lookupError(err, ErrUserNotFound)
	}

	if friend.ID == ownerID {
		return ErrSelfFriendship
	}

	exists, err := g.db.FriendExists(ctx, ownerID, friend.ID)
	if err != nil {
		return fmt.Errorf("add friend: %w", err)
	}
	if exists {
		return ErrAlreadyFriends
	}

	// The unique (u_id, f_id) index catches a concurrent insert that slipped
	// past the check above.
	if err := g.db.AddFriend(ctx, ownerID, friend.ID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAlreadyFriends
		}
		return fmt.Errorf("add friend: %w", err)
	}

	return nil
}

func (g *SocialGraph) ListFriends(ctx context.Context, userID uint) ([]models.User, error) {
	friends, err := g.db.GetFriends(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list friends: %w", err)
	}
	return friends, nil
}

func (g *SocialGraph) FriendIDsOf(ctx context.Context, userID uint) ([]uint, error) {
	ids, err := g.db.FriendIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("friend ids: %w", err)
	}
	return ids, nil
}

func (g *SocialGraph) FollowerIDsOf(ctx context.Context, userID uint) ([]uint, error) {
	ids, err := g.db.FollowerIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("follower ids: %w", err)
	}
	return ids, nil
}

// VisibleAuthors returns the user, everyone the user has an edge to and
// everyone with an edge to the user, ascending and without duplicates.
// Visibility is symmetric: X is in VisibleAuthors(U) iff U is in
// VisibleAuthors(X).
func (g *SocialGraph) VisibleAuthors(ctx context.Context, userID uint) ([]uint, error) {
	return visibleAuthors(ctx, g.db, userID)
}

func visibleAuthors(ctx context.Context, db *database.Database, userID uint) ([]uint, error) {
	following, err := db.FriendIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("friend ids: %w", err)
	}
	followers, err := db.FollowerIDs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("follower ids: %w", err)
	}

	seen := map[uint]bool{userID: true}
	authors := []uint{userID}
	for _, ids := range [][]uint{following, followers} {
		for _, id := range ids {
			if !seen[id] {
				seen[id] = true
				authors = append(authors, id)
			}
		}
	}

	sort.Slice(authors, func(i, j int) bool { return authors[i] < authors[j] })
	return authors, nil
}
