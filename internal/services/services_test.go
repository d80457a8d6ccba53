package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/thereayou/socialnet/internal/storage"
	"github.com/thereayou/socialnet/internal/testutil"
)

type fixture struct {
	identity *IdentityStore
	graph    *SocialGraph
	content  *ContentStore
	feed     *FeedAssembler
	clock    *testutil.Clock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	clock := testutil.NewClock()
	db := testutil.NewDatabase(t, clock)

	identity, err := NewIdentityStore(db, bcrypt.MinCost)
	require.NoError(t, err)

	uploads, err := storage.NewUploads(t.TempDir())
	require.NoError(t, err)

	return &fixture{
		identity: identity,
		graph:    NewSocialGraph(db),
		content:  NewContentStore(db, uploads),
		feed:     NewFeedAssembler(db),
		clock:    clock,
	}
}

func (f *fixture) register(t *testing.T, username string) uint {
	t.Helper()
	id, err := f.identity.Register(context.Background(), username, "First", "Last", username+"-password")
	require.NoError(t, err)
	return id
}

func (f *fixture) post(t *testing.T, authorID uint, content string) uint {
	t.Helper()
	id, err := f.content.CreatePost(context.Background(), authorID, content, nil)
	require.NoError(t, err)
	return id
}
