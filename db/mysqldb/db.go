package mysqldb

import (
	"database/sql"

	"github.com/upper/db/v4"
	"github.com/upper/db/v4/adapter/mysql"

	"github.com/jmcole/inkwell-be/config"
	appdb "github.com/jmcole/inkwell-be/db"
)

type MySQLDB struct {
	*UserDB
	*GroupDB
	*PostDB
	*CommentDB
	*FollowDB
	sess  db.Session
	sqlDB *sql.DB
}

func GetDatabase(cfg *config.DBConfig) (appdb.Database, error) {
	sqlDB, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(cfg.MaxConns)
	sqlDB.SetMaxOpenConns(cfg.MaxConns)
	sqlDB.SetConnMaxIdleTime(0)

	sess, err := mysql.New(sqlDB)
	if err != nil {
		return nil, err
	}

	return &MySQLDB{
		UserDB:    getUserDB(sess),
		GroupDB:   getGroupDB(sess),
		PostDB:    getPostDB(sess),
		CommentDB: getCommentDB(sess),
		FollowDB:  getFollowDB(sess),
		sess:      sess,
		sqlDB:     sqlDB,
	}, nil
}

func (mdb *MySQLDB) GetSQLDB() *sql.DB {
	return mdb.sqlDB
}

func (mdb *MySQLDB) Close() error {
	return mdb.sess.Close()
}
