package mysqldb

import (
	"context"

	"github.com/upper/db/v4"

	appdb "github.com/jmcole/inkwell-be/db"
	"github.com/jmcole/inkwell-be/model"
)

type FollowDB struct {
	sess db.Session
}

func getFollowDB(sess db.Session) *FollowDB {
	return &FollowDB{sess}
}

// CreateFollow inserts the edge. The (follower_id, author_id) pair is the
// table's primary key, so a repeat insert surfaces as a duplicate-key error,
// which is swallowed to keep the operation idempotent.
func (fdb *FollowDB) CreateFollow(ctx context.Context, follow *model.Follow) error {
	_, err := fdb.sess.WithContext(ctx).
		Collection("follow").
		Insert(follow)
	if err != nil && appdb.IsDupKeyErr(err) {
		return nil
	}
	return err
}

// DeleteFollow deletes the edge if present; an absent edge is a no-op.
func (fdb *FollowDB) DeleteFollow(ctx context.Context, follow *model.Follow) error {
	return fdb.sess.WithContext(ctx).
		Collection("follow").
		Find("follower_id = ? AND author_id = ?", follow.FollowerId, follow.AuthorId).
		Delete()
}

func (fdb *FollowDB) IsFollowing(ctx context.Context, followerId, authorId string) (bool, error) {
	var edge model.Follow
	if err := fdb.sess.SQL().
		Select("*").
		From("follow").
		Where("follower_id = ? AND author_id = ?", followerId, authorId).
		IteratorContext(ctx).
		One(&edge); err != nil {
		if err == db.ErrNoMoreRows {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
