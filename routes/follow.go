package routes

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/jmcole/inkwell-be/controllers"
	"github.com/jmcole/inkwell-be/db"
	"github.com/jmcole/inkwell-be/middleware"
	"github.com/jmcole/inkwell-be/util"
)

type followRoutes struct {
	db         db.Database
	controller *controllers.FollowController
}

func AddFollowRoutes(group *gin.RouterGroup, database db.Database, controller *controllers.FollowController, verifier middleware.TokenVerifier) {
	routes := followRoutes{db: database, controller: controller}
	follows := group.Group("/users", middleware.Auth(database, verifier, &middleware.AuthConfig{}))
	follows.POST("/:username/follow", util.HandlerWrapper(routes.follow, &util.HandlerOpts{}))
	follows.POST("/:username/unfollow", util.HandlerWrapper(routes.unfollow, &util.HandlerOpts{}))
}

// follow always answers with a redirect to the author's profile, whether or
// not the edge changed state.
func (fr *followRoutes) follow(c *gin.Context) (interface{}, *util.HTTPError) {
	author, err := fr.db.GetUserByName(c, c.Param("username"))
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if httpErr := fr.controller.Follow(c, middleware.MustGetUser(c), author); httpErr != nil {
		return nil, httpErr
	}
	redirectToProfile(c, author.DisplayName)
	return nil, nil
}

func (fr *followRoutes) unfollow(c *gin.Context) (interface{}, *util.HTTPError) {
	author, err := fr.db.GetUserByName(c, c.Param("username"))
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	if httpErr := fr.controller.Unfollow(c, middleware.MustGetUser(c), author); httpErr != nil {
		return nil, httpErr
	}
	redirectToProfile(c, author.DisplayName)
	return nil, nil
}

func redirectToProfile(c *gin.Context, displayName string) {
	c.Redirect(http.StatusFound, "/users/"+url.PathEscape(displayName))
}
