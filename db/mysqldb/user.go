package mysqldb

import (
	"context"

	"github.com/upper/db/v4"

	appdb "github.com/jmcole/inkwell-be/db"
	"github.com/jmcole/inkwell-be/model"
)

type UserDB struct {
	sess db.Session
}

func getUserDB(sess db.Session) *UserDB {
	return &UserDB{sess}
}

func (udb *UserDB) CreateUser(ctx context.Context, user *model.User) error {
	_, err := udb.sess.WithContext(ctx).
		Collection("person").
		Insert(user)
	return err
}

func (udb *UserDB) GetUser(ctx context.Context, id string) (*model.User, error) {
	return udb.getUserWhere(ctx, "firebase_id = ?", id)
}

func (udb *UserDB) GetUserByName(ctx context.Context, displayName string) (*model.User, error) {
	return udb.getUserWhere(ctx, "display_name = ?", displayName)
}

func (udb *UserDB) getUserWhere(ctx context.Context, cond string, arg interface{}) (*model.User, error) {
	var user model.User
	if err := udb.sess.SQL().
		Select("*").
		From("person").
		Where(cond, arg).
		IteratorContext(ctx).
		One(&user); err != nil {
		if err == db.ErrNoMoreRows {
			return nil, appdb.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// DeleteUser relies on the ON DELETE CASCADE rules declared in schema.sql
// for posts, comments and follow edges.
func (udb *UserDB) DeleteUser(ctx context.Context, id string) error {
	return udb.sess.WithContext(ctx).
		Collection("person").
		Find("firebase_id = ?", id).
		Delete()
}
