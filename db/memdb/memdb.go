// Package memdb is an in-memory Database used by tests and local
// development. It honors the same referential actions as schema.sql:
// deleting a user cascades to their posts, comments and follow edges;
// deleting a post cascades to its comments; deleting a group reparents its
// posts to no group. Follow edges live in a set keyed by the
// (follower, author) pair, so pair uniqueness holds by construction.
package memdb

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	appdb "github.com/jmcole/inkwell-be/db"
	"github.com/jmcole/inkwell-be/model"
)

type postRecord struct {
	id            int64
	authorId      string
	groupId       *int64
	text          string
	imageBlobName string
	createdAt     time.Time
	updatedAt     time.Time
}

type commentRecord struct {
	id        int64
	postId    int64
	authorId  string
	text      string
	createdAt time.Time
}

type MemDB struct {
	mu          sync.Mutex
	users       map[string]*model.User
	groups      map[int64]*model.Group
	posts       map[int64]*postRecord
	comments    map[int64]*commentRecord
	follows     map[model.Follow]struct{}
	nextGroupId int64
	nextPostId  int64
	nextComment int64
}

var _ appdb.Database = (*MemDB)(nil)

func New() *MemDB {
	return &MemDB{
		users:       make(map[string]*model.User),
		groups:      make(map[int64]*model.Group),
		posts:       make(map[int64]*postRecord),
		comments:    make(map[int64]*commentRecord),
		follows:     make(map[model.Follow]struct{}),
		nextGroupId: 1,
		nextPostId:  1,
		nextComment: 1,
	}
}

func (mdb *MemDB) GetSQLDB() *sql.DB { return nil }
func (mdb *MemDB) Close() error      { return nil }

// users

func (mdb *MemDB) CreateUser(ctx context.Context, user *model.User) error {
	mdb.mu.Lock()
	defer mdb.mu.Unlock()
	copied := *user
	mdb.users[user.Id] = &copied
	return nil
}

func (mdb *MemDB) GetUser(ctx context.Context, id string) (*model.User, error) {
	mdb.mu.Lock()
	defer mdb.mu.Unlock()
	user, ok := mdb.users[id]
	if !ok {
		return nil, appdb.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (mdb *MemDB) GetUserByName(ctx context.Context, displayName string) (*model.User, error) {
	mdb.mu.Lock()
	defer mdb.mu.Unlock()
	for _, user := range mdb.users {
		if user.DisplayName == displayName {
			copied := *user
			return &copied, nil
		}
	}
	return nil, appdb.ErrNotFound
}

func (mdb *MemDB) DeleteUser(ctx context.Context, id string) error {
	mdb.mu.Lock()
	defer mdb.mu.Unlock()
	delete(mdb.users, id)
	for postId, post := range mdb.posts {
		if post.authorId == id {
			mdb.deletePostLocked(postId)
		}
	}
	for commentId, comment := range mdb.comments {
		if comment.authorId == id {
			delete(mdb.comments, commentId)
		}
	}
	for edge := range mdb.follows {
		if edge.FollowerId == id || edge.AuthorId == id {
			delete(mdb.follows, edge)
		}
	}
	return nil
}

// groups

func (mdb *MemDB) CreateGroup(ctx context.Context, req *appdb.CreateGroup) (int64, error) {
	mdb.mu.Lock()
	defer mdb.mu.Unlock()
	id := mdb.nextGroupId
	mdb.nextGroupId++
	mdb.groups[id] = &model.Group{
		Id:          id,
		Title:       req.Title,
		Slug:        req.Slug,
		Description: req.Description,
		CreatedAt:   time.Now(),
	}
	return id, nil
}

func (mdb *MemDB) GetGroupById(ctx context.Context, id int64) (*model.Group, error) {
	mdb.mu.Lock()
	defer mdb.mu.Unlock()
	group, ok := mdb.groups[id]
	if !ok {
		return nil, appdb.ErrNotFound
	}
	copied := *group
	return &copied, nil
}

func (mdb *MemDB) GetGroupBySlug(ctx context.Context, slug string) (*model.Group, error) {
	mdb.mu.Lock()
	defer mdb.mu.Unlock()
	for _, group := range mdb.groups {
		if group.Slug == slug {
			copied := *group
			return &copied, nil
		}
	}
	return nil, appdb.ErrNotFound
}

func (mdb *MemDB) GetGroups(ctx context.Context) ([]*model.Group, error) {
	mdb.mu.Lock()
	defer mdb.mu.Unlock()
	groups := make([]*model.Group, 0, len(mdb.groups))
	for _, group := range mdb.groups {
		copied := *group
		groups = append(groups, &copied)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Title < groups[j].Title
	})
	return groups, nil
}

func (mdb *MemDB) DeleteGroup(ctx context.Context, id int64) error {
	mdb.mu.Lock()
	defer mdb.mu.Unlock()
	delete(mdb.groups, id)
	// SET NULL, not delete
	for _, post := range mdb.posts {
		if post.groupId != nil && *post.groupId == id {
			post.groupId = nil
		}
	}
	return nil
}

// posts

func (mdb *MemDB) CreatePost(ctx context.Context, req *appdb.CreatePost) (int64, error) {
	mdb.mu.Lock()
	defer mdb.mu.Unlock()
	id := mdb.nextPostId
	mdb.nextPostId++
	now := time.Now()
	var groupId *int64
	if req.GroupId != nil {
		copied := *req.GroupId
		groupId = &copied
	}
	mdb.posts[id] = &postRecord{
		id:            id,
		authorId:      req.AuthorId,
		groupId:       groupId,
		text:          req.Text,
		imageBlobName: req.ImageBlobName,
		createdAt:     now,
		updatedAt:     now,
	}
	return id, nil
}

func (mdb *MemDB) GetPostById(ctx context.Context, id int64) (*model.Post, error) {
	mdb.mu.Lock()
	defer mdb.mu.Unlock()
	post, ok := mdb.posts[id]
	if !ok {
		return nil, appdb.ErrNotFound
	}
	return mdb.buildPostLocked(post), nil
}

func (mdb *MemDB) GetPosts(ctx context.Context, query *appdb.PostsQuery) ([]*model.Post, error) {
	mdb.mu.Lock()
	defer mdb.mu.Unlock()
	matched := make([]*postRecord, 0, len(mdb.posts))
	for _, post := range mdb.posts {
		if query.ByAuthor != "" && post.authorId != query.ByAuthor {
			continue
		}
		if query.GroupId != nil && (post.groupId == nil || *post.groupId != *query.GroupId) {
			continue
		}
		if query.FollowedBy != "" {
			edge := model.Follow{FollowerId: query.FollowedBy, AuthorId: post.authorId}
			if _, ok := mdb.follows[edge]; !ok {
				continue
			}
		}
		matched = append(matched, post)
	}
	// newest first, id as tie-break
	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].createdAt.Equal(matched[j].createdAt) {
			return matched[i].createdAt.After(matched[j].createdAt)
		}
		return matched[i].id > matched[j].id
	})
	posts := make([]*model.Post, len(matched))
	for i, post := range matched {
		posts[i] = mdb.buildPostLocked(post)
	}
	return posts, nil
}

func (mdb *MemDB) buildPostLocked(post *postRecord) *model.Post {
	var author *model.User
	if user, ok := mdb.users[post.authorId]; ok {
		copied := *user
		author = &copied
	} else {
		author = &model.User{Id: post.authorId}
	}
	var group *model.Group
	if post.groupId != nil {
		if stored, ok := mdb.groups[*post.groupId]; ok {
			copied := *stored
			group = &copied
		}
	}
	return &model.Post{
		Id:            post.id,
		Author:        author,
		Group:         group,
		Text:          post.text,
		ImageBlobName: post.imageBlobName,
		CreatedAt:     post.createdAt,
		UpdatedAt:     post.updatedAt,
	}
}

func (mdb *MemDB) UpdatePost(ctx context.Context, id int64, req *appdb.UpdatePost) error {
	mdb.mu.Lock()
	defer mdb.mu.Unlock()
	post, ok := mdb.posts[id]
	if !ok {
		return appdb.ErrNotFound
	}
	post.text = req.Text
	if req.GroupId != nil {
		copied := *req.GroupId
		post.groupId = &copied
	} else {
		post.groupId = nil
	}
	post.imageBlobName = req.ImageBlobName
	post.updatedAt = time.Now()
	return nil
}

func (mdb *MemDB) DeletePost(ctx context.Context, id int64) error {
	mdb.mu.Lock()
	defer mdb.mu.Unlock()
	mdb.deletePostLocked(id)
	return nil
}

func (mdb *MemDB) deletePostLocked(id int64) {
	delete(mdb.posts, id)
	for commentId, comment := range mdb.comments {
		if comment.postId == id {
			delete(mdb.comments, commentId)
		}
	}
}

// comments

func (mdb *MemDB) CreateComment(ctx context.Context, req *appdb.CreateComment) (int64, error) {
	mdb.mu.Lock()
	defer mdb.mu.Unlock()
	if _, ok := mdb.posts[req.PostId]; !ok {
		return 0, appdb.ErrNotFound
	}
	id := mdb.nextComment
	mdb.nextComment++
	mdb.comments[id] = &commentRecord{
		id:        id,
		postId:    req.PostId,
		authorId:  req.AuthorId,
		text:      req.Text,
		createdAt: time.Now(),
	}
	return id, nil
}

func (mdb *MemDB) GetCommentsForPost(ctx context.Context, postId int64) ([]*model.Comment, error) {
	mdb.mu.Lock()
	defer mdb.mu.Unlock()
	comments := []*model.Comment{}
	for _, comment := range mdb.comments {
		if comment.postId != postId {
			continue
		}
		var author *model.User
		if user, ok := mdb.users[comment.authorId]; ok {
			copied := *user
			author = &copied
		} else {
			author = &model.User{Id: comment.authorId}
		}
		comments = append(comments, &model.Comment{
			Id:        comment.id,
			PostId:    comment.postId,
			Author:    author,
			Text:      comment.text,
			CreatedAt: comment.createdAt,
		})
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].Id < comments[j].Id
	})
	return comments, nil
}

// follows

func (mdb *MemDB) CreateFollow(ctx context.Context, follow *model.Follow) error {
	mdb.mu.Lock()
	defer mdb.mu.Unlock()
	mdb.follows[*follow] = struct{}{}
	return nil
}

func (mdb *MemDB) DeleteFollow(ctx context.Context, follow *model.Follow) error {
	mdb.mu.Lock()
	defer mdb.mu.Unlock()
	delete(mdb.follows, *follow)
	return nil
}

func (mdb *MemDB) IsFollowing(ctx context.Context, followerId, authorId string) (bool, error) {
	mdb.mu.Lock()
	defer mdb.mu.Unlock()
	_, ok := mdb.follows[model.Follow{FollowerId: followerId, AuthorId: authorId}]
	return ok, nil
}
