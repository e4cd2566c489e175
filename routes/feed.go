package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/jmcole/inkwell-be/app"
	"github.com/jmcole/inkwell-be/config"
	"github.com/jmcole/inkwell-be/db"
	"github.com/jmcole/inkwell-be/middleware"
	"github.com/jmcole/inkwell-be/util"
)

type feedRoutes struct {
	db  db.Database
	cfg *config.Config
}

func AddFeedRoutes(group *gin.RouterGroup, database db.Database, verifier middleware.TokenVerifier, cfg *config.Config) {
	routes := feedRoutes{db: database, cfg: cfg}
	feeds := group.Group("/feed", middleware.Auth(database, verifier, &middleware.AuthConfig{}))
	feeds.GET("", util.HandlerWrapper(routes.getFeed, &util.HandlerOpts{}))
}

// getFeed is the personalized listing: posts by everyone the viewer
// follows, newest first. Following no one yields an empty page.
func (fr *feedRoutes) getFeed(c *gin.Context) (interface{}, *util.HTTPError) {
	pageNumber := util.ParsePageNumber(c.Query("page"))
	page, err := app.FeedPageForUser(c, fr.db, middleware.MustGetUser(c), fr.cfg.PageSize, pageNumber)
	if err != nil {
		return nil, util.BuildDbHTTPErr(err)
	}
	return gin.H{"page_obj": page}, nil
}
