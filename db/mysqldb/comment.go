package mysqldb

import (
	"context"
	"time"

	"github.com/upper/db/v4"

	appdb "github.com/jmcole/inkwell-be/db"
	"github.com/jmcole/inkwell-be/model"
)

type CommentDB struct {
	sess db.Session
}

func getCommentDB(sess db.Session) *CommentDB {
	return &CommentDB{sess}
}

func (cdb *CommentDB) CreateComment(ctx context.Context, req *appdb.CreateComment) (int64, error) {
	res, err := cdb.sess.SQL().
		InsertInto("comment").
		Columns("post_id", "author_id", "text").
		Values(req.PostId, req.AuthorId, req.Text).
		ExecContext(ctx)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

type flattenedComment struct {
	Id                int64     `db:"id"`
	PostId            int64     `db:"post_id"`
	Text              string    `db:"text"`
	AuthorId          string    `db:"author_id"`
	AuthorDisplayName string    `db:"display_name"`
	AuthorAvatar      string    `db:"avatar"`
	CreatedAt         time.Time `db:"created_at"`
}

func (cdb *CommentDB) GetCommentsForPost(ctx context.Context, postId int64) ([]*model.Comment, error) {
	var flattenedComments []flattenedComment
	if err := cdb.sess.SQL().
		Select("c.id", "c.post_id", "c.text", "c.created_at",
			"person.firebase_id AS author_id", "person.display_name", "person.avatar").
		From("comment AS c").
		Join("person").On("c.author_id = person.firebase_id").
		Where("c.post_id = ?", postId).
		OrderBy("c.created_at", "c.id").
		IteratorContext(ctx).
		All(&flattenedComments); err != nil {
		return nil, err
	}
	comments := make([]*model.Comment, len(flattenedComments))
	for i, flattened := range flattenedComments {
		comments[i] = &model.Comment{
			Id:     flattened.Id,
			PostId: flattened.PostId,
			Author: &model.User{
				Id:          flattened.AuthorId,
				DisplayName: flattened.AuthorDisplayName,
				Avatar:      flattened.AuthorAvatar,
			},
			Text:      flattened.Text,
			CreatedAt: flattened.CreatedAt,
		}
	}
	return comments, nil
}
