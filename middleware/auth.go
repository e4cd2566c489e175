package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	"github.com/jmcole/inkwell-be/db"
	"github.com/jmcole/inkwell-be/model"
)

const (
	UID_KEY  = "authUid"
	USER_KEY = "user"

	// LoginPath is the authentication entry point unauthorized requests are
	// redirected to, with the original path as the return hint.
	LoginPath = "/auth/login"
)

// TokenVerifier abstracts the identity provider so tests can stub
// verification. Production uses FirebaseVerifier.
type TokenVerifier interface {
	Verify(ctx context.Context, idToken string) (uid string, err error)
}

type FirebaseVerifier struct {
	Client *auth.Client
}

func (fv *FirebaseVerifier) Verify(ctx context.Context, idToken string) (string, error) {
	token, err := fv.Client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", err
	}
	return token.UID, nil
}

type AuthConfig struct {
	// SessionNotRequired lets anonymous requests through without a uid.
	SessionNotRequired bool
	// AccountNotRequired lets verified identities through even when no
	// local profile row exists yet (profile creation itself needs this).
	AccountNotRequired bool
}

// Auth verifies the bearer token and resolves the local user row. Requests
// that fail a required check are redirected to the authentication entry
// point with a return-path hint, never answered with an error page.
func Auth(userDB db.UserDatabase, verifier TokenVerifier, config *AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		idToken, ok := bearerToken(c)
		if !ok {
			if config.SessionNotRequired {
				return
			}
			redirectToLogin(c)
			return
		}

		uid, err := verifier.Verify(c, idToken)
		if err != nil {
			if config.SessionNotRequired {
				return
			}
			redirectToLogin(c)
			return
		}
		c.Set(UID_KEY, uid)

		user, err := userDB.GetUser(c, uid)
		if err != nil {
			if config.AccountNotRequired {
				return
			}
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "must have a user profile",
			})
			c.Abort()
			return
		}
		c.Set(USER_KEY, user)
	}
}

// RequireSession aborts anonymous requests. Used on routes registered under
// a relaxed Auth config.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUidMaybe(c) == "" {
			redirectToLogin(c)
		}
	}
}

// RequireAccount aborts requests without a resolved local profile.
func RequireAccount() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserMaybe(c) == nil {
			redirectToLogin(c)
		}
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authorizationHeader, ok := c.Request.Header["Authorization"]
	if !ok || len(authorizationHeader) == 0 {
		return "", false
	}
	if !strings.HasPrefix(authorizationHeader[0], "Bearer ") || len(authorizationHeader[0]) < 8 {
		return "", false
	}
	return authorizationHeader[0][7:], true
}

func redirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, LoginPath+"?next="+url.QueryEscape(c.Request.URL.Path))
	c.Abort()
}

// GetUidMaybe returns the verified uid, or "" for anonymous requests.
func GetUidMaybe(c *gin.Context) string {
	uid, ok := c.Get(UID_KEY)
	if !ok {
		return ""
	}
	return uid.(string)
}

// GetUserMaybe returns the local user, or nil when anonymous or without a
// profile.
func GetUserMaybe(c *gin.Context) *model.User {
	user, ok := c.Get(USER_KEY)
	if !ok {
		return nil
	}
	return user.(*model.User)
}

// MustGetUser assumes a RequireAccount-guarded route.
func MustGetUser(c *gin.Context) *model.User {
	return GetUserMaybe(c)
}
