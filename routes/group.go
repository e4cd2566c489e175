package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jmcole/inkwell-be/app"
	"github.com/jmcole/inkwell-be/config"
	"github.com/jmcole/inkwell-be/db"
	"github.com/jmcole/inkwell-be/middleware"
	"github.com/jmcole/inkwell-be/util"
)

type groupRoutes struct {
	db  db.Database
	cfg *config.Config
}

func AddGroupRoutes(group *gin.RouterGroup, database db.Database, verifier middleware.TokenVerifier, cfg *config.Config) {
	routes := groupRoutes{db: database, cfg: cfg}
	groups := group.Group("/groups", middleware.Auth(database, verifier, &middleware.AuthConfig{
		SessionNotRequired: true,
		AccountNotRequired: true,
	}))
	groups.GET("", util.HandlerWrapper(routes.listGroups, &util.HandlerOpts{}))
	groups.GET("/:slug", util.HandlerWrapper(routes.getGroupBySlug, &util.HandlerOpts{}))
	groups.PUT("", middleware.RequireAccount(), util.HandlerWrapper(routes.createGroup, &util.HandlerOpts{}))
	groups.DELETE("/:slug", middleware.RequireAccount(), util.HandlerWrapper(routes.deleteGroup, &util.HandlerOpts{}))
}

func (gr *groupRoutes) listGroups(c *gin.Context) (interface{}, *util.HTTPError) {
	groups, err := gr.db.GetGroups(c)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	pageNumber := util.ParsePageNumber(c.Query("page"))
	return gin.H{
		"page_obj": app.Paginate(groups, gr.cfg.PageSize, pageNumber),
	}, nil
}

func (gr *groupRoutes) getGroupBySlug(c *gin.Context) (interface{}, *util.HTTPError) {
	group, err := gr.db.GetGroupBySlug(c, c.Param("slug"))
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	posts, err := gr.db.GetPosts(c, &db.PostsQuery{GroupId: &group.Id})
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	pageNumber := util.ParsePageNumber(c.Query("page"))
	return gin.H{
		"group":    group,
		"page_obj": app.Paginate(posts, gr.cfg.PageSize, pageNumber),
	}, nil
}

type createGroupReq struct {
	Title       string `json:"title" binding:"required,max=200"`
	Slug        string `json:"slug" binding:"max=200"`
	Description string `json:"description"`
}

func (gr *groupRoutes) createGroup(c *gin.Context) (interface{}, *util.HTTPError) {
	var req createGroupReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	slug := req.Slug
	if slug == "" {
		slug = util.Slugify(req.Title)
	}
	if !util.ValidSlug(slug) {
		return nil, &util.HTTPError{
			Status:  http.StatusBadRequest,
			Message: "validation failed",
			Fields:  map[string]string{"slug": "must contain only letters, digits, hyphens and underscores"},
		}
	}
	if _, err := gr.db.GetGroupBySlug(c, slug); err == nil {
		return nil, slugTakenErr()
	}
	id, err := gr.db.CreateGroup(c, &db.CreateGroup{
		Title:       req.Title,
		Slug:        slug,
		Description: req.Description,
	})
	if err != nil {
		// unique index on slug is the backstop for concurrent creates
		if db.IsDupKeyErr(err) {
			return nil, slugTakenErr()
		}
		return nil, util.BuildDbHTTPErr(err)
	}
	return gin.H{"id": id, "slug": slug}, nil
}

func slugTakenErr() *util.HTTPError {
	return &util.HTTPError{
		Status:  http.StatusBadRequest,
		Message: "validation failed",
		Fields:  map[string]string{"slug": "slug already in use"},
	}
}

// deleteGroup is an administrative action. The group's posts are kept and
// reparented to no group, never deleted.
func (gr *groupRoutes) deleteGroup(c *gin.Context) (interface{}, *util.HTTPError) {
	if !middleware.MustGetUser(c).IsAdmin {
		return nil, &util.HTTPError{
			Status:  http.StatusForbidden,
			Message: "admin only",
		}
	}
	group, err := gr.db.GetGroupBySlug(c, c.Param("slug"))
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if err := gr.db.DeleteGroup(c, group.Id); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return nil, nil
}
