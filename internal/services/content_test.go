package services

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice := f.register(t, "alice")

	id, err := f.content.CreatePost(ctx, alice, "hello", nil)
	require.NoError(t, err)

	post, err := f.content.PostByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "hello", post.Content)
	assert.Equal(t, alice, post.UserID)
	assert.Equal(t, "alice", post.User.Username)
	assert.Empty(t, post.Image)
	assert.False(t, post.CreationTime.IsZero())
}

func TestCreatePost_WithAttachment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice := f.register(t, "alice")

	id, err := f.content.CreatePost(ctx, alice, "look", &Attachment{
		Filename: "cat.jpg",
		Body:     strings.NewReader("meow"),
	})
	require.NoError(t, err)

	post, err := f.content.PostByID(ctx, id)
	require.NoError(t, err)
	require.NotEmpty(t, post.Image)
	assert.True(t, strings.HasSuffix(post.Image, ".jpg"))

	file, err := f.content.OpenAttachment(post.Image)
	require.NoError(t, err)
	defer file.Close()

	data, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, "meow", string(data))
}

func TestCreatePost_TimestampsFollowInsertOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice := f.register(t, "alice")

	first, err := f.content.PostByID(ctx, f.post(t, alice, "one"))
	require.NoError(t, err)
	second, err := f.content.PostByID(ctx, f.post(t, alice, "two"))
	require.NoError(t, err)

	assert.True(t, second.CreationTime.After(first.CreationTime))
}

func TestCreatePost_Empty(t *testing.T) {
	f := newFixture(t)

	alice := f.register(t, "alice")

	_, err := f.content.CreatePost(context.Background(), alice, "  ", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestOpenAttachment_Missing(t *testing.T) {
	f := newFixture(t)

	_, err := f.content.OpenAttachment("does-not-exist.png")
	assert.ErrorIs(t, err, ErrAttachmentNotFound)

	_, err = f.content.OpenAttachment("../escape")
	assert.ErrorIs(t, err, ErrAttachmentNotFound)
}

func TestPostByID_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.content.PostByID(context.Background(), 42)
	assert.ErrorIs(t, err, ErrPostNotFound)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestCreateComment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice := f.register(t, "alice")
	bob := f.register(t, "bob")
	post := f.post(t, alice, "hello")

	_, err := f.content.CreateComment(ctx, post, bob, "first")
	require.NoError(t, err)
	_, err = f.content.CreateComment(ctx, post, alice, "second")
	require.NoError(t, err)
	_, err = f.content.CreateComment(ctx, post, bob, "third")
	require.NoError(t, err)

	comments, err := f.content.CommentsFor(ctx, post)
	require.NoError(t, err)
	require.Len(t, comments, 3)

	assert.Equal(t, "third", comments[0].Comment)
	assert.Equal(t, "second", comments[1].Comment)
	assert.Equal(t, "first", comments[2].Comment)
	assert.Equal(t, "bob", comments[0].User.Username)
	assert.Equal(t, "alice", comments[1].User.Username)
}

func TestCommentsFor_TiesKeepInsertOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice := f.register(t, "alice")
	post := f.post(t, alice, "hello")

	f.clock.Freeze()
	for _, text := range []string{"a", "b", "c"} {
		_, err := f.content.CreateComment(ctx, post, alice, text)
		require.NoError(t, err)
	}

	comments, err := f.content.CommentsFor(ctx, post)
	require.NoError(t, err)

	var texts []string
	for _, c := range comments {
		texts = append(texts, c.Comment)
	}
	assert.Equal(t, []string{"a", "b", "c"}, texts)
}

func TestCreateComment_PostNotFound(t *testing.T) {
	f := newFixture(t)

	alice := f.register(t, "alice")

	_, err := f.content.CreateComment(context.Background(), 999, alice, "hi")
	assert.ErrorIs(t, err, ErrPostNotFound)
}
