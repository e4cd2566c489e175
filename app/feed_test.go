package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmcole/inkwell-be/db"
	"github.com/jmcole/inkwell-be/db/memdb"
	"github.com/jmcole/inkwell-be/model"
)

func seedAuthor(t *testing.T, database db.Database, id, name string) *model.User {
	t.Helper()
	user := &model.User{Id: id, DisplayName: name}
	require.NoError(t, database.CreateUser(context.Background(), user))
	return user
}

func seedPost(t *testing.T, database db.Database, authorId, text string) int64 {
	t.Helper()
	id, err := database.CreatePost(context.Background(), &db.CreatePost{
		AuthorId: authorId,
		Text:     text,
	})
	require.NoError(t, err)
	return id
}

func TestFeedOnlyContainsFollowedAuthors(t *testing.T) {
	ctx := context.Background()
	database := memdb.New()
	viewer := seedAuthor(t, database, "viewer", "viewer")
	followed := seedAuthor(t, database, "followed", "followed")
	stranger := seedAuthor(t, database, "stranger", "stranger")

	seedPost(t, database, followed.Id, "in feed")
	seedPost(t, database, stranger.Id, "not in feed")
	seedPost(t, database, viewer.Id, "own post, not in feed")

	require.NoError(t, database.CreateFollow(ctx, &model.Follow{
		FollowerId: viewer.Id,
		AuthorId:   followed.Id,
	}))

	posts, err := FeedForUser(ctx, database, viewer)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "in feed", posts[0].Text)
	assert.Equal(t, followed.Id, posts[0].Author.Id)
}

func TestFeedEmptyWhenFollowingNoOne(t *testing.T) {
	ctx := context.Background()
	database := memdb.New()
	viewer := seedAuthor(t, database, "viewer", "viewer")
	other := seedAuthor(t, database, "other", "other")
	seedPost(t, database, other.Id, "invisible")

	posts, err := FeedForUser(ctx, database, viewer)
	require.NoError(t, err)
	assert.Empty(t, posts)
}

func TestFeedNewestFirst(t *testing.T) {
	ctx := context.Background()
	database := memdb.New()
	viewer := seedAuthor(t, database, "viewer", "viewer")
	followed := seedAuthor(t, database, "followed", "followed")
	require.NoError(t, database.CreateFollow(ctx, &model.Follow{
		FollowerId: viewer.Id,
		AuthorId:   followed.Id,
	}))

	first := seedPost(t, database, followed.Id, "older")
	second := seedPost(t, database, followed.Id, "newer")

	posts, err := FeedForUser(ctx, database, viewer)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, second, posts[0].Id)
	assert.Equal(t, first, posts[1].Id)
}

func TestFeedPageForUserPaginates(t *testing.T) {
	ctx := context.Background()
	database := memdb.New()
	viewer := seedAuthor(t, database, "viewer", "viewer")
	followed := seedAuthor(t, database, "followed", "followed")
	require.NoError(t, database.CreateFollow(ctx, &model.Follow{
		FollowerId: viewer.Id,
		AuthorId:   followed.Id,
	}))
	for i := 0; i < 12; i++ {
		seedPost(t, database, followed.Id, "post")
	}

	page, err := FeedPageForUser(ctx, database, viewer, 10, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Number)
	assert.Equal(t, 2, len(page.Items))
	assert.Equal(t, 12, page.Count)
}
