package mysqldb

import (
	"context"
	"database/sql"
	"time"

	"github.com/upper/db/v4"

	appdb "github.com/jmcole/inkwell-be/db"
	"github.com/jmcole/inkwell-be/model"
)

type PostDB struct {
	sess db.Session
}

func getPostDB(sess db.Session) *PostDB {
	return &PostDB{sess}
}

func (pdb *PostDB) CreatePost(ctx context.Context, req *appdb.CreatePost) (int64, error) {
	res, err := pdb.sess.SQL().
		InsertInto("post").
		Columns("author_id", "group_id", "text", "image_blob_name").
		Values(req.AuthorId, req.GroupId, req.Text, req.ImageBlobName).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

type flattenedPost struct {
	Id                int64          `db:"id"`
	Text              string         `db:"text"`
	ImageBlobName     string         `db:"image_blob_name"`
	AuthorId          string         `db:"author_id"`
	AuthorDisplayName string         `db:"display_name"`
	AuthorAvatar      string         `db:"avatar"`
	GroupId           sql.NullInt64  `db:"group_id"`
	GroupTitle        sql.NullString `db:"group_title"`
	GroupSlug         sql.NullString `db:"group_slug"`
	GroupDescription  sql.NullString `db:"group_description"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
}

var postColumns = []interface{}{
	"p.id",
	"p.text",
	"p.image_blob_name",
	"p.group_id",
	"p.created_at",
	"p.updated_at",
	"person.firebase_id AS author_id",
	"person.display_name",
	"person.avatar",
	"g.title AS group_title",
	"g.slug AS group_slug",
	"g.description AS group_description",
}

func (pdb *PostDB) GetPostById(ctx context.Context, id int64) (*model.Post, error) {
	var post flattenedPost
	if err := pdb.postSelect().
		Where("p.id = ?", id).
		IteratorContext(ctx).
		One(&post); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, appdb.ErrNotFound
		}
		return nil, err
	}
	return buildPostFromFlattened(&post), nil
}

func (pdb *PostDB) GetPosts(ctx context.Context, query *appdb.PostsQuery) ([]*model.Post, error) {
	sel := pdb.postSelect()
	if query.FollowedBy != "" {
		sel = sel.Join("follow AS f").
			On("f.author_id = p.author_id AND f.follower_id = ?", query.FollowedBy)
	}
	cond := db.Cond{}
	if query.ByAuthor != "" {
		cond["p.author_id"] = query.ByAuthor
	}
	if query.GroupId != nil {
		cond["p.group_id"] = *query.GroupId
	}
	if len(cond) > 0 {
		sel = sel.Where(cond)
	}

	var flattenedPosts []flattenedPost
	if err := sel.
		OrderBy("p.created_at DESC", "p.id DESC").
		IteratorContext(ctx).
		All(&flattenedPosts); err != nil {
		return nil, err
	}
	posts := make([]*model.Post, len(flattenedPosts))
	for i, flattened := range flattenedPosts {
		posts[i] = buildPostFromFlattened(&flattened)
	}
	return posts, nil
}

func (pdb *PostDB) postSelect() db.Selector {
	return pdb.sess.SQL().
		Select(postColumns...).
		From("post AS p").
		Join("person").On("p.author_id = person.firebase_id").
		LeftJoin("post_group AS g").On("p.group_id = g.id")
}

func buildPostFromFlattened(post *flattenedPost) *model.Post {
	var group *model.Group
	if post.GroupId.Valid {
		group = &model.Group{
			Id:          post.GroupId.Int64,
			Title:       post.GroupTitle.String,
			Slug:        post.GroupSlug.String,
			Description: post.GroupDescription.String,
		}
	}
	return &model.Post{
		Id: post.Id,
		Author: &model.User{
			Id:          post.AuthorId,
			DisplayName: post.AuthorDisplayName,
			Avatar:      post.AuthorAvatar,
		},
		Group:         group,
		Text:          post.Text,
		ImageBlobName: post.ImageBlobName,
		CreatedAt:     post.CreatedAt,
		UpdatedAt:     post.UpdatedAt,
	}
}

func (pdb *PostDB) UpdatePost(ctx context.Context, id int64, req *appdb.UpdatePost) error {
	_, err := pdb.sess.SQL().
		Update("post").
		Set("text = ?, group_id = ?, image_blob_name = ?", req.Text, req.GroupId, req.ImageBlobName).
		Where("id = ?", id).
		ExecContext(ctx)
	return err
}

// DeletePost relies on the comment table's ON DELETE CASCADE rule.
func (pdb *PostDB) DeletePost(ctx context.Context, id int64) error {
	return pdb.sess.WithContext(ctx).
		Collection("post").
		Find("id = ?", id).
		Delete()
}
