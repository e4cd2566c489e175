package controllers

import (
	"context"

	"github.com/jmcole/inkwell-be/db"
	"github.com/jmcole/inkwell-be/model"
	"github.com/jmcole/inkwell-be/util"
)

type FollowController struct {
	db db.Database
}

func NewFollowController(database db.Database) *FollowController {
	return &FollowController{db: database}
}

// Follow creates the viewer -> author edge. Following yourself is silently
// ignored, and following an author twice leaves exactly one edge; neither
// case is an error.
func (fc *FollowController) Follow(ctx context.Context, viewer *model.User, author *model.User) *util.HTTPError {
	if viewer.Id == author.Id {
		return nil
	}
	if err := fc.db.CreateFollow(ctx, &model.Follow{
		FollowerId: viewer.Id,
		AuthorId:   author.Id,
	}); err != nil {
		return util.BuildDbHTTPErr(err)
	}
	return nil
}

// Unfollow removes the edge if present; an absent edge is a no-op.
func (fc *FollowController) Unfollow(ctx context.Context, viewer *model.User, author *model.User) *util.HTTPError {
	if err := fc.db.DeleteFollow(ctx, &model.Follow{
		FollowerId: viewer.Id,
		AuthorId:   author.Id,
	}); err != nil {
		return util.BuildDbHTTPErr(err)
	}
	return nil
}

// IsFollowing reports edge existence for follow-button state. Anonymous
// viewers (empty id) are never following anyone; that is a false, not an
// error.
func (fc *FollowController) IsFollowing(ctx context.Context, viewerId, authorId string) (bool, error) {
	if viewerId == "" {
		return false, nil
	}
	return fc.db.IsFollowing(ctx, viewerId, authorId)
}
