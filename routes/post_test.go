package routes

import (
	"context"
	"fmt"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexServesStaleCacheUntilFlush(t *testing.T) {
	e := newEnv(t)
	e.seedUser(t, "writer", "writer", false)
	e.seedUser(t, "admin", "admin", true)
	e.seedPost(t, "writer", "first post")

	w := e.do("GET", "/posts", "", nil)
	require.Equal(t, 200, w.Code)
	cachedBody := w.Body.String()
	assert.Contains(t, cachedBody, "first post")

	// a new post does NOT invalidate the cached page
	e.seedPost(t, "writer", "second post")
	w = e.do("GET", "/posts", "", nil)
	require.Equal(t, 200, w.Code)
	assert.Equal(t, cachedBody, w.Body.String())
	assert.NotContains(t, w.Body.String(), "second post")

	// explicit flush is one of the two ways staleness ends
	w = e.do("POST", "/admin/cache/flush", "admin", nil)
	require.Equal(t, 200, w.Code)

	w = e.do("GET", "/posts", "", nil)
	require.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "second post")
}

func TestIndexCachesPerPage(t *testing.T) {
	e := newEnv(t)
	e.seedUser(t, "writer", "writer", false)
	for i := 0; i < 15; i++ {
		e.seedPost(t, "writer", fmt.Sprintf("post %v", i))
	}

	first := e.do("GET", "/posts?page=1", "", nil)
	second := e.do("GET", "/posts?page=2", "", nil)
	require.Equal(t, 200, first.Code)
	require.Equal(t, 200, second.Code)
	assert.NotEqual(t, first.Body.String(), second.Body.String())

	// both pages hit their own cache entries on re-read
	assert.Equal(t, first.Body.String(), e.do("GET", "/posts?page=1", "", nil).Body.String())
	assert.Equal(t, second.Body.String(), e.do("GET", "/posts?page=2", "", nil).Body.String())
}

func TestCacheFlushIsAdminOnly(t *testing.T) {
	e := newEnv(t)
	e.seedUser(t, "pleb", "pleb", false)

	w := e.do("POST", "/admin/cache/flush", "pleb", nil)
	assert.Equal(t, 403, w.Code)
}

func TestGetPostByIdContext(t *testing.T) {
	e := newEnv(t)
	e.seedUser(t, "writer", "writer", false)
	postId := e.seedPost(t, "writer", "hello world")
	w := e.do("POST", fmt.Sprintf("/posts/%v/comments", postId), "writer", gin.H{"text": "nice"})
	require.Equal(t, 302, w.Code)

	w = e.do("GET", fmt.Sprintf("/posts/%v", postId), "", nil)
	require.Equal(t, 200, w.Code)
	data := decodeData(t, w)
	post := data["post"].(map[string]interface{})
	assert.Equal(t, "hello world", post["text"])
	comments := data["comments"].([]interface{})
	require.Len(t, comments, 1)
	assert.Equal(t, "nice", comments[0].(map[string]interface{})["text"])
}

func TestGetPostByIdErrors(t *testing.T) {
	e := newEnv(t)
	w := e.do("GET", "/posts/9999", "", nil)
	assert.Equal(t, 404, w.Code)
	w = e.do("GET", "/posts/not-an-id", "", nil)
	assert.Equal(t, 400, w.Code)
}

func TestCreatePostRequiresAccount(t *testing.T) {
	e := newEnv(t)
	w := e.do("PUT", "/posts", "", gin.H{"text": "anon"})
	require.Equal(t, 302, w.Code)
	assert.Equal(t, "/auth/login?next=%2Fposts", w.Header().Get("Location"))
}

func TestCreatePostValidation(t *testing.T) {
	e := newEnv(t)
	e.seedUser(t, "writer", "writer", false)

	w := e.do("PUT", "/posts", "writer", gin.H{"text": ""})
	require.Equal(t, 400, w.Code)
	fields := decodeFields(t, w)
	assert.Contains(t, fields, "Text")
}

func TestCreatePostWithMissingGroup(t *testing.T) {
	e := newEnv(t)
	e.seedUser(t, "writer", "writer", false)

	w := e.do("PUT", "/posts", "writer", gin.H{"text": "hi", "groupId": 42})
	require.Equal(t, 400, w.Code)
	fields := decodeFields(t, w)
	assert.Equal(t, "group does not exist", fields["groupId"])
}

func TestCreatePostImageMustBeUploaded(t *testing.T) {
	e := newEnv(t)
	e.seedUser(t, "writer", "writer", false)

	w := e.do("PUT", "/posts", "writer", gin.H{"text": "hi", "imageBlobName": "posts/unknown"})
	require.Equal(t, 400, w.Code)
	fields := decodeFields(t, w)
	assert.Equal(t, "image has not been uploaded", fields["imageBlobName"])

	e.blobs.existing["posts/known"] = true
	w = e.do("PUT", "/posts", "writer", gin.H{"text": "hi", "imageBlobName": "posts/known"})
	assert.Equal(t, 200, w.Code, w.Body.String())
}

func TestCreatePostSanitizesMarkup(t *testing.T) {
	e := newEnv(t)
	e.seedUser(t, "writer", "writer", false)
	postId := e.seedPost(t, "writer", `hello <script>alert("x")</script>world`)

	post, err := e.db.GetPostById(context.Background(), postId)
	require.NoError(t, err)
	assert.NotContains(t, post.Text, "<script>")
	assert.Contains(t, post.Text, "hello")
}

func TestEditPostByAuthor(t *testing.T) {
	e := newEnv(t)
	e.seedUser(t, "writer", "writer", false)
	postId := e.seedPost(t, "writer", "before")

	w := e.do("POST", fmt.Sprintf("/posts/%v", postId), "writer", gin.H{"text": "after"})
	require.Equal(t, 302, w.Code)
	assert.Equal(t, fmt.Sprintf("/posts/%v", postId), w.Header().Get("Location"))

	post, err := e.db.GetPostById(context.Background(), postId)
	require.NoError(t, err)
	assert.Equal(t, "after", post.Text)
}

func TestEditPostByNonAuthorRedirectsWithoutChange(t *testing.T) {
	e := newEnv(t)
	e.seedUser(t, "writer", "writer", false)
	e.seedUser(t, "intruder", "intruder", false)
	postId := e.seedPost(t, "writer", "original")

	w := e.do("POST", fmt.Sprintf("/posts/%v", postId), "intruder", gin.H{"text": "hijacked"})
	require.Equal(t, 302, w.Code)
	assert.Equal(t, fmt.Sprintf("/posts/%v", postId), w.Header().Get("Location"))

	post, err := e.db.GetPostById(context.Background(), postId)
	require.NoError(t, err)
	assert.Equal(t, "original", post.Text)
}

func TestDeletePostByNonAuthorRedirectsWithoutChange(t *testing.T) {
	e := newEnv(t)
	e.seedUser(t, "writer", "writer", false)
	e.seedUser(t, "intruder", "intruder", false)
	postId := e.seedPost(t, "writer", "keep me")

	w := e.do("DELETE", fmt.Sprintf("/posts/%v", postId), "intruder", nil)
	require.Equal(t, 302, w.Code)

	_, err := e.db.GetPostById(context.Background(), postId)
	assert.NoError(t, err)
}

func TestDeletePostByAuthor(t *testing.T) {
	e := newEnv(t)
	e.seedUser(t, "writer", "writer", false)
	postId := e.seedPost(t, "writer", "doomed")

	w := e.do("DELETE", fmt.Sprintf("/posts/%v", postId), "writer", nil)
	require.Equal(t, 200, w.Code)

	w = e.do("GET", fmt.Sprintf("/posts/%v", postId), "", nil)
	assert.Equal(t, 404, w.Code)
}

func TestAddCommentValidation(t *testing.T) {
	e := newEnv(t)
	e.seedUser(t, "writer", "writer", false)
	postId := e.seedPost(t, "writer", "post")

	w := e.do("POST", fmt.Sprintf("/posts/%v/comments", postId), "writer", gin.H{"text": ""})
	require.Equal(t, 400, w.Code)
	fields := decodeFields(t, w)
	assert.Contains(t, fields, "Text")
}

func TestAddCommentToMissingPost(t *testing.T) {
	e := newEnv(t)
	e.seedUser(t, "writer", "writer", false)

	w := e.do("POST", "/posts/9999/comments", "writer", gin.H{"text": "into the void"})
	assert.Equal(t, 404, w.Code)
}

func TestNewImageBlobName(t *testing.T) {
	e := newEnv(t)
	e.seedUser(t, "writer", "writer", false)

	w := e.do("PUT", "/posts/images", "writer", nil)
	require.Equal(t, 200, w.Code)
	data := decodeData(t, w)
	assert.Contains(t, data["blobName"], "posts/")
}
