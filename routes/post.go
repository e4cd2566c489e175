package routes

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jmcole/inkwell-be/app"
	"github.com/jmcole/inkwell-be/cache"
	"github.com/jmcole/inkwell-be/config"
	"github.com/jmcole/inkwell-be/controllers"
	"github.com/jmcole/inkwell-be/db"
	"github.com/jmcole/inkwell-be/middleware"
	"github.com/jmcole/inkwell-be/services"
	"github.com/jmcole/inkwell-be/util"
)

type postRoutes struct {
	db         db.Database
	controller *controllers.PostController
	pageCache  cache.PageCache
	cfg        *config.Config
}

func AddPostRoutes(group *gin.RouterGroup, database db.Database, controller *controllers.PostController, pageCache cache.PageCache, verifier middleware.TokenVerifier, cfg *config.Config) {
	routes := postRoutes{db: database, controller: controller, pageCache: pageCache, cfg: cfg}
	posts := group.Group("/posts", middleware.Auth(database, verifier, &middleware.AuthConfig{
		SessionNotRequired: true,
		AccountNotRequired: true,
	}))
	posts.GET("", util.HandlerWrapper(routes.index, &util.HandlerOpts{}))
	posts.GET("/:id", util.HandlerWrapper(routes.getPostById, &util.HandlerOpts{}))
	posts.PUT("", middleware.RequireAccount(), util.HandlerWrapper(routes.createPost, &util.HandlerOpts{}))
	posts.PUT("/images", middleware.RequireAccount(), util.HandlerWrapper(routes.newImageBlobName, &util.HandlerOpts{}))
	posts.POST("/:id", middleware.RequireAccount(), util.HandlerWrapper(routes.editPost, &util.HandlerOpts{}))
	posts.DELETE("/:id", middleware.RequireAccount(), util.HandlerWrapper(routes.deletePost, &util.HandlerOpts{}))
	posts.POST("/:id/comments", middleware.RequireAccount(), util.HandlerWrapper(routes.addComment, &util.HandlerOpts{}))
}

// index serves the global listing through the page cache. The cached value
// is the rendered body itself; creating or deleting a post does NOT
// invalidate it — entries age out by TTL or are flushed explicitly.
func (pr *postRoutes) index(c *gin.Context) (interface{}, *util.HTTPError) {
	pageNumber := util.ParsePageNumber(c.Query("page"))
	key := fmt.Sprintf("index:p%v", pageNumber)
	if body, ok := pr.pageCache.Get(c, key); ok {
		c.Data(http.StatusOK, "application/json; charset=utf-8", body)
		return nil, nil
	}

	posts, err := pr.db.GetPosts(c, &db.PostsQuery{})
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	body, err := json.Marshal(gin.H{
		"page_obj": app.Paginate(posts, pr.cfg.PageSize, pageNumber),
	})
	if err != nil {
		return nil, &util.HTTPError{Status: http.StatusInternalServerError, Message: "render error"}
	}
	pr.pageCache.Set(c, key, body, pr.cfg.Cache.IndexTTL)
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
	return nil, nil
}

func (pr *postRoutes) getPostById(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	post, err := pr.db.GetPostById(c, id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	comments, err := pr.db.GetCommentsForPost(c, id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	// sidebar context: all groups plus the three most recent posts
	groups, err := pr.db.GetGroups(c)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	recent, err := pr.db.GetPosts(c, &db.PostsQuery{})
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if len(recent) > 3 {
		recent = recent[:3]
	}
	return gin.H{
		"post":        post,
		"comments":    comments,
		"groups":      groups,
		"recentPosts": recent,
	}, nil
}

func (pr *postRoutes) createPost(c *gin.Context) (interface{}, *util.HTTPError) {
	var req controllers.CreatePostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	id, httpErr := pr.controller.CreatePost(c, middleware.MustGetUser(c), &req)
	if httpErr != nil {
		return nil, httpErr
	}
	return gin.H{"id": id}, nil
}

// editPost is author-restricted: anyone else is sent back to the read-only
// detail view instead of an error page.
func (pr *postRoutes) editPost(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	post, err := pr.db.GetPostById(c, id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if !post.CanEdit(middleware.MustGetUser(c)) {
		c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%v", id))
		return nil, nil
	}
	var req controllers.CreatePostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	if httpErr := pr.controller.UpdatePost(c, id, &req); httpErr != nil {
		return nil, httpErr
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%v", id))
	return nil, nil
}

func (pr *postRoutes) deletePost(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	post, err := pr.db.GetPostById(c, id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if !post.CanEdit(middleware.MustGetUser(c)) {
		c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%v", id))
		return nil, nil
	}
	if httpErr := pr.controller.DeletePost(c, id); httpErr != nil {
		return nil, httpErr
	}
	return nil, nil
}

// addComment redirects to the post's detail view on success; a validation
// failure re-renders the form context with field messages instead.
func (pr *postRoutes) addComment(c *gin.Context) (interface{}, *util.HTTPError) {
	id, httpErr := util.ParseId(c.Param("id"))
	if httpErr != nil {
		return nil, httpErr
	}
	var req controllers.CreateCommentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	if _, httpErr := pr.controller.AddComment(c, middleware.MustGetUser(c), id, &req); httpErr != nil {
		return nil, httpErr
	}
	c.Redirect(http.StatusFound, fmt.Sprintf("/posts/%v", id))
	return nil, nil
}

// newImageBlobName reserves a bucket name for a post image; the client
// uploads the blob and references the name on create/edit.
func (pr *postRoutes) newImageBlobName(c *gin.Context) (interface{}, *util.HTTPError) {
	return gin.H{"blobName": services.NewPostBlobName()}, nil
}
