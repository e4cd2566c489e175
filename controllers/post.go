package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/jmcole/inkwell-be/db"
	"github.com/jmcole/inkwell-be/model"
	"github.com/jmcole/inkwell-be/services"
	"github.com/jmcole/inkwell-be/util"
)

// PostController owns the write-side rules for posts and comments:
// sanitization, group/image reference checks and cascade deletes live here,
// keeping the routes thin.
type PostController struct {
	db    db.Database
	blobs services.BlobStore
}

func NewPostController(database db.Database, blobs services.BlobStore) *PostController {
	return &PostController{db: database, blobs: blobs}
}

type CreatePostReq struct {
	Text          string `json:"text" binding:"required"`
	GroupId       *int64 `json:"groupId"`
	ImageBlobName string `json:"imageBlobName"`
}

func (pc *PostController) CreatePost(ctx context.Context, author *model.User, req *CreatePostReq) (int64, *util.HTTPError) {
	if httpErr := pc.checkReferences(ctx, req.GroupId, req.ImageBlobName); httpErr != nil {
		return 0, httpErr
	}
	id, err := pc.db.CreatePost(ctx, &db.CreatePost{
		AuthorId:      author.Id,
		GroupId:       req.GroupId,
		Text:          util.XSSSanitize(req.Text),
		ImageBlobName: req.ImageBlobName,
	})
	if err != nil {
		return 0, util.BuildDbHTTPErr(err)
	}
	return id, nil
}

// UpdatePost applies an author-approved edit. Ownership is checked by the
// route, which owns the redirect contract for non-authors.
func (pc *PostController) UpdatePost(ctx context.Context, postId int64, req *CreatePostReq) *util.HTTPError {
	if httpErr := pc.checkReferences(ctx, req.GroupId, req.ImageBlobName); httpErr != nil {
		return httpErr
	}
	if err := pc.db.UpdatePost(ctx, postId, &db.UpdatePost{
		Text:          util.XSSSanitize(req.Text),
		GroupId:       req.GroupId,
		ImageBlobName: req.ImageBlobName,
	}); err != nil {
		return util.BuildDbHTTPErr(err)
	}
	return nil
}

func (pc *PostController) DeletePost(ctx context.Context, postId int64) *util.HTTPError {
	if err := pc.db.DeletePost(ctx, postId); err != nil {
		return util.BuildDbHTTPErr(err)
	}
	return nil
}

type CreateCommentReq struct {
	Text string `json:"text" binding:"required"`
}

func (pc *PostController) AddComment(ctx context.Context, author *model.User, postId int64, req *CreateCommentReq) (int64, *util.HTTPError) {
	id, err := pc.db.CreateComment(ctx, &db.CreateComment{
		PostId:   postId,
		AuthorId: author.Id,
		Text:     util.XSSSanitize(req.Text),
	})
	if err != nil {
		return 0, util.BuildDbHTTPErr(err)
	}
	return id, nil
}

// checkReferences rejects posts pointing at a missing group or an
// unuploaded image blob; both are validation failures, not 404s.
func (pc *PostController) checkReferences(ctx context.Context, groupId *int64, imageBlobName string) *util.HTTPError {
	if groupId != nil {
		if _, err := pc.db.GetGroupById(ctx, *groupId); err != nil {
			if errors.Is(err, db.ErrNotFound) {
				return &util.HTTPError{
					Status:  http.StatusBadRequest,
					Message: "validation failed",
					Fields:  map[string]string{"groupId": "group does not exist"},
				}
			}
			return util.BuildDbHTTPErr(err)
		}
	}
	if imageBlobName != "" {
		exists, err := pc.blobs.Exists(ctx, imageBlobName)
		if err != nil {
			return &util.HTTPError{
				Status:  http.StatusInternalServerError,
				Message: "storage error",
			}
		}
		if !exists {
			return &util.HTTPError{
				Status:  http.StatusBadRequest,
				Message: "validation failed",
				Fields:  map[string]string{"imageBlobName": "image has not been uploaded"},
			}
		}
	}
	return nil
}
