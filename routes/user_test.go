package routes

import (
	"fmt"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfile(t *testing.T) {
	e := newEnv(t)
	e.seedUser(t, "writer", "writer", false)
	e.seedPost(t, "writer", "one")
	e.seedPost(t, "writer", "two")

	w := e.do("GET", "/users/writer", "", nil)
	require.Equal(t, 200, w.Code)
	data := decodeData(t, w)
	assert.Equal(t, "writer", data["author"].(map[string]interface{})["displayName"])
	assert.Equal(t, float64(2), data["count"])
	assert.Equal(t, false, data["following"])
	items := data["page_obj"].(map[string]interface{})["items"].([]interface{})
	assert.Len(t, items, 2)
}

func TestGetProfileFollowingState(t *testing.T) {
	e := newEnv(t)
	e.seedUser(t, "viewer", "viewer", false)
	e.seedUser(t, "writer", "writer", false)
	w := e.do("POST", "/users/writer/follow", "viewer", nil)
	require.Equal(t, 302, w.Code)

	w = e.do("GET", "/users/writer", "viewer", nil)
	require.Equal(t, 200, w.Code)
	assert.Equal(t, true, decodeData(t, w)["following"])

	// anonymous viewers are never "following"
	w = e.do("GET", "/users/writer", "", nil)
	require.Equal(t, 200, w.Code)
	assert.Equal(t, false, decodeData(t, w)["following"])
}

func TestGetProfileUnknownUser(t *testing.T) {
	e := newEnv(t)
	w := e.do("GET", "/users/ghost", "", nil)
	assert.Equal(t, 404, w.Code)
}

func TestCreateProfile(t *testing.T) {
	e := newEnv(t)

	w := e.do("PUT", "/users", "new-uid", gin.H{"displayName": "newcomer"})
	require.Equal(t, 200, w.Code, w.Body.String())
	data := decodeData(t, w)
	assert.Equal(t, "new-uid", data["id"])
	assert.Equal(t, "newcomer", data["displayName"])
	assert.NotEmpty(t, data["avatar"])

	w = e.do("GET", "/users/newcomer", "", nil)
	assert.Equal(t, 200, w.Code)
}

func TestCreateProfileRequiresSession(t *testing.T) {
	e := newEnv(t)
	w := e.do("PUT", "/users", "", gin.H{"displayName": "anon"})
	require.Equal(t, 302, w.Code)
	assert.Equal(t, "/auth/login?next=%2Fusers", w.Header().Get("Location"))
}

func TestCreateProfileDuplicateDisplayName(t *testing.T) {
	e := newEnv(t)
	e.seedUser(t, "first", "taken", false)

	w := e.do("PUT", "/users", "second", gin.H{"displayName": "taken"})
	require.Equal(t, 400, w.Code)
	fields := decodeFields(t, w)
	assert.Equal(t, "display name already in use", fields["displayName"])
}

func TestDeleteOwnAccountCascades(t *testing.T) {
	e := newEnv(t)
	e.seedUser(t, "writer", "writer", false)
	postId := e.seedPost(t, "writer", "mine")

	w := e.do("DELETE", "/users", "writer", nil)
	require.Equal(t, 200, w.Code)

	w = e.do("GET", "/users/writer", "", nil)
	assert.Equal(t, 404, w.Code)
	w = e.do("GET", fmt.Sprintf("/posts/%v", postId), "", nil)
	assert.Equal(t, 404, w.Code)
}
