package mysqldb

import (
	"context"

	"github.com/upper/db/v4"

	appdb "github.com/jmcole/inkwell-be/db"
	"github.com/jmcole/inkwell-be/model"
)

type GroupDB struct {
	sess db.Session
}

func getGroupDB(sess db.Session) *GroupDB {
	return &GroupDB{sess}
}

func (gdb *GroupDB) CreateGroup(ctx context.Context, req *appdb.CreateGroup) (int64, error) {
	res, err := gdb.sess.SQL().
		InsertInto("post_group").
		Columns("title", "slug", "description").
		Values(req.Title, req.Slug, req.Description).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (gdb *GroupDB) GetGroupById(ctx context.Context, id int64) (*model.Group, error) {
	return gdb.getGroupWhere(ctx, "id = ?", id)
}

func (gdb *GroupDB) GetGroupBySlug(ctx context.Context, slug string) (*model.Group, error) {
	return gdb.getGroupWhere(ctx, "slug = ?", slug)
}

func (gdb *GroupDB) getGroupWhere(ctx context.Context, cond string, arg interface{}) (*model.Group, error) {
	var group model.Group
	if err := gdb.sess.SQL().
		Select("*").
		From("post_group").
		Where(cond, arg).
		IteratorContext(ctx).
		One(&group); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, appdb.ErrNotFound
		}
		return nil, err
	}
	return &group, nil
}

func (gdb *GroupDB) GetGroups(ctx context.Context) ([]*model.Group, error) {
	var groups []*model.Group
	return groups, gdb.sess.SQL().
		Select("*").
		From("post_group").
		OrderBy("title").
		IteratorContext(ctx).
		All(&groups)
}

// DeleteGroup removes the group only; the ON DELETE SET NULL rule in
// schema.sql reparents its posts to no group rather than deleting them.
func (gdb *GroupDB) DeleteGroup(ctx context.Context, id int64) error {
	return gdb.sess.WithContext(ctx).
		Collection("post_group").
		Find("id = ?", id).
		Delete()
}
