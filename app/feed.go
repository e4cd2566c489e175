package app

import (
	"context"

	"github.com/jmcole/inkwell-be/db"
	"github.com/jmcole/inkwell-be/model"
)

// FeedForUser returns the posts authored by everyone the viewer follows,
// newest first. The feed is computed as a live join over the follow edges
// rather than materialized per user; at this scale read cost is proportional
// to followed-author post volume, which is acceptable. A viewer who follows
// no one gets an empty slice, not an error.
func FeedForUser(ctx context.Context, database db.PostDatabase, viewer *model.User) ([]*model.Post, error) {
	return database.GetPosts(ctx, &db.PostsQuery{FollowedBy: viewer.Id})
}

// FeedPageForUser resolves the viewer's feed and slices out one page.
func FeedPageForUser(ctx context.Context, database db.PostDatabase, viewer *model.User, pageSize, pageNumber int) (*Page[*model.Post], error) {
	posts, err := FeedForUser(ctx, database, viewer)
	if err != nil {
		return nil, err
	}
	return Paginate(posts, pageSize, pageNumber), nil
}
