package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/jmcole/inkwell-be/cache"
	"github.com/jmcole/inkwell-be/config"
	"github.com/jmcole/inkwell-be/controllers"
	"github.com/jmcole/inkwell-be/db/memdb"
	"github.com/jmcole/inkwell-be/model"
)

// stubVerifier accepts tokens of the form "uid:<uid>" so tests mint
// identities without a real provider.
type stubVerifier struct{}

func (stubVerifier) Verify(ctx context.Context, idToken string) (string, error) {
	if uid, ok := strings.CutPrefix(idToken, "uid:"); ok {
		return uid, nil
	}
	return "", errors.New("invalid token")
}

type stubBlobs struct {
	existing map[string]bool
}

func (sb *stubBlobs) Exists(ctx context.Context, blobName string) (bool, error) {
	return sb.existing[blobName], nil
}

type env struct {
	db     *memdb.MemDB
	cache  *cache.Memory
	blobs  *stubBlobs
	cfg    *config.Config
	router *gin.Engine
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database := memdb.New()
	pageCache := cache.NewMemory()
	blobs := &stubBlobs{existing: map[string]bool{}}
	cfg := &config.Config{
		PageSize: 10,
		Cache: config.CacheConfig{
			Backend:  "memory",
			IndexTTL: 20 * time.Second,
		},
	}
	verifier := stubVerifier{}
	postController := controllers.NewPostController(database, blobs)
	followController := controllers.NewFollowController(database)

	r := gin.New()
	AddPostRoutes(&r.RouterGroup, database, postController, pageCache, verifier, cfg)
	AddGroupRoutes(&r.RouterGroup, database, verifier, cfg)
	AddUserRoutes(&r.RouterGroup, database, followController, verifier, cfg)
	AddFollowRoutes(&r.RouterGroup, database, followController, verifier)
	AddFeedRoutes(&r.RouterGroup, database, verifier, cfg)
	AddAdminRoutes(&r.RouterGroup, database, pageCache, verifier)
	AddHealthCheckRoutes(&r.RouterGroup)

	return &env{
		db:     database,
		cache:  pageCache,
		blobs:  blobs,
		cfg:    cfg,
		router: r,
	}
}

// do issues a request as uid ("" for anonymous) with an optional JSON body.
func (e *env) do(method, target, uid string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			panic(err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if uid != "" {
		req.Header.Set("Authorization", "Bearer uid:"+uid)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *env) seedUser(t *testing.T, uid, displayName string, admin bool) *model.User {
	t.Helper()
	user := &model.User{Id: uid, DisplayName: displayName, IsAdmin: admin}
	require.NoError(t, e.db.CreateUser(context.Background(), user))
	return user
}

func (e *env) seedPost(t *testing.T, uid, text string) int64 {
	t.Helper()
	w := e.do("PUT", "/posts", uid, gin.H{"text": text})
	require.Equal(t, 200, w.Code, w.Body.String())
	data := decodeData(t, w)
	return int64(data["id"].(float64))
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope struct {
		Success bool                   `json:"success"`
		Data    map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.True(t, envelope.Success)
	return envelope.Data
}

func decodeFields(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var envelope struct {
		Success bool              `json:"success"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.False(t, envelope.Success)
	return envelope.Fields
}
