package db

import (
	"context"
	"database/sql"

	"github.com/jmcole/inkwell-be/model"
)

type Database interface {
	UserDatabase
	GroupDatabase
	PostDatabase
	CommentDatabase
	FollowDatabase
	// GetSQLDB exposes the underlying handle for implementations backed by a
	// SQL store; others return nil.
	GetSQLDB() *sql.DB
	Close() error
}

type UserDatabase interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUserByName(ctx context.Context, displayName string) (*model.User, error)
	// DeleteUser removes the user and cascades to their posts, comments and
	// follow edges in both directions.
	DeleteUser(ctx context.Context, id string) error
}

type CreateGroup struct {
	Title       string
	Slug        string
	Description string
}

type GroupDatabase interface {
	CreateGroup(ctx context.Context, req *CreateGroup) (groupId int64, err error)
	GetGroupById(ctx context.Context, id int64) (*model.Group, error)
	GetGroupBySlug(ctx context.Context, slug string) (*model.Group, error)
	GetGroups(ctx context.Context) ([]*model.Group, error)
	// DeleteGroup removes the group; its posts survive with a null group
	// reference.
	DeleteGroup(ctx context.Context, id int64) error
}

type CreatePost struct {
	AuthorId      string
	GroupId       *int64 // nil for an ungrouped post
	Text          string
	ImageBlobName string
}

type UpdatePost struct {
	Text          string
	GroupId       *int64
	ImageBlobName string
}

// PostsQuery filters the post listing. Zero-value fields are ignored. The
// result is always ordered newest first (created_at DESC, id DESC).
type PostsQuery struct {
	ByAuthor   string // posts authored by this user
	GroupId    *int64 // posts filed under this group
	FollowedBy string // posts whose author this viewer follows
}

type PostDatabase interface {
	CreatePost(ctx context.Context, req *CreatePost) (postId int64, err error)
	GetPostById(ctx context.Context, id int64) (*model.Post, error)
	GetPosts(ctx context.Context, query *PostsQuery) ([]*model.Post, error)
	UpdatePost(ctx context.Context, id int64, req *UpdatePost) error
	// DeletePost removes the post and cascades to its comments.
	DeletePost(ctx context.Context, id int64) error
}

type CreateComment struct {
	PostId   int64
	AuthorId string
	Text     string
}

type CommentDatabase interface {
	CreateComment(ctx context.Context, req *CreateComment) (commentId int64, err error)
	GetCommentsForPost(ctx context.Context, postId int64) ([]*model.Comment, error)
}

type FollowDatabase interface {
	// CreateFollow is idempotent: creating an edge that already exists is a
	// no-op, not an error. Uniqueness of the (follower, author) pair is
	// enforced by the store itself.
	CreateFollow(ctx context.Context, follow *model.Follow) error
	// DeleteFollow is a no-op when the edge does not exist.
	DeleteFollow(ctx context.Context, follow *model.Follow) error
	IsFollowing(ctx context.Context, followerId, authorId string) (bool, error)
}
