package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/jmcole/inkwell-be/app"
	"github.com/jmcole/inkwell-be/config"
	"github.com/jmcole/inkwell-be/controllers"
	"github.com/jmcole/inkwell-be/db"
	"github.com/jmcole/inkwell-be/middleware"
	"github.com/jmcole/inkwell-be/model"
	"github.com/jmcole/inkwell-be/util"
)

type userRoutes struct {
	db               db.Database
	followController *controllers.FollowController
	cfg              *config.Config
}

func AddUserRoutes(group *gin.RouterGroup, database db.Database, followController *controllers.FollowController, verifier middleware.TokenVerifier, cfg *config.Config) {
	routes := userRoutes{db: database, followController: followController, cfg: cfg}
	users := group.Group("/users", middleware.Auth(database, verifier, &middleware.AuthConfig{
		SessionNotRequired: true,
		AccountNotRequired: true,
	}))
	users.GET("/:username", util.HandlerWrapper(routes.getProfile, &util.HandlerOpts{}))
	users.PUT("", middleware.RequireSession(), util.HandlerWrapper(routes.createUser, &util.HandlerOpts{}))
	users.DELETE("", middleware.RequireAccount(), util.HandlerWrapper(routes.deleteUser, &util.HandlerOpts{}))
}

// getProfile renders an author page: their posts plus the viewer's
// follow-button state. Anonymous viewers get following=false, never an
// error.
func (ur *userRoutes) getProfile(c *gin.Context) (interface{}, *util.HTTPError) {
	author, err := ur.db.GetUserByName(c, c.Param("username"))
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	posts, err := ur.db.GetPosts(c, &db.PostsQuery{ByAuthor: author.Id})
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	following, err := ur.followController.IsFollowing(c, middleware.GetUidMaybe(c), author.Id)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	pageNumber := util.ParsePageNumber(c.Query("page"))
	page := app.Paginate(posts, ur.cfg.PageSize, pageNumber)
	return gin.H{
		"author":    author,
		"count":     page.Count,
		"following": following,
		"page_obj":  page,
	}, nil
}

type createUserReq struct {
	DisplayName string `json:"displayName" binding:"required,max=64"`
}

func (ur *userRoutes) createUser(c *gin.Context) (interface{}, *util.HTTPError) {
	var req createUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return nil, util.BuildJSONBindHTTPErr(err)
	}
	if _, err := ur.db.GetUserByName(c, req.DisplayName); err == nil {
		return nil, displayNameTakenErr()
	}
	user := &model.User{
		Id:          middleware.GetUidMaybe(c),
		DisplayName: req.DisplayName,
		Avatar:      util.Avatar(req.DisplayName),
	}
	if err := ur.db.CreateUser(c, user); err != nil {
		if db.IsDupKeyErr(err) {
			return nil, displayNameTakenErr()
		}
		return nil, util.BuildDbHTTPErr(err)
	}
	return user, nil
}

func displayNameTakenErr() *util.HTTPError {
	return &util.HTTPError{
		Status:  400,
		Message: "validation failed",
		Fields:  map[string]string{"displayName": "display name already in use"},
	}
}

// deleteUser removes the caller's account; posts, comments and follow edges
// go with it.
func (ur *userRoutes) deleteUser(c *gin.Context) (interface{}, *util.HTTPError) {
	if err := ur.db.DeleteUser(c, middleware.MustGetUser(c).Id); err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return nil, nil
}
