package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jmcole/inkwell-be/cache"
	"github.com/jmcole/inkwell-be/db"
	"github.com/jmcole/inkwell-be/middleware"
	"github.com/jmcole/inkwell-be/util"
)

type adminRoutes struct {
	pageCache cache.PageCache
}

func AddAdminRoutes(group *gin.RouterGroup, database db.Database, pageCache cache.PageCache, verifier middleware.TokenVerifier) {
	routes := adminRoutes{pageCache: pageCache}
	admin := group.Group("/admin", middleware.Auth(database, verifier, &middleware.AuthConfig{}))
	admin.POST("/cache/flush", util.HandlerWrapper(routes.flushCache, &util.HandlerOpts{}))
}

// flushCache is the explicit full flush; the only way besides TTL expiry
// that index staleness resolves.
func (ar *adminRoutes) flushCache(c *gin.Context) (interface{}, *util.HTTPError) {
	if !middleware.MustGetUser(c).IsAdmin {
		return nil, &util.HTTPError{
			Status:  http.StatusForbidden,
			Message: "admin only",
		}
	}
	if err := ar.pageCache.Flush(c); err != nil {
		return nil, &util.HTTPError{
			Status:  http.StatusInternalServerError,
			Message: "cache flush failed",
		}
	}
	return nil, nil
}
