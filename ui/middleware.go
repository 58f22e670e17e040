package ui

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"ilmakase/internal/auth"
	"ilmakase/internal/cache"
	"ilmakase/internal/errors"
	"ilmakase/models"
	"ilmakase/ports"

	"github.com/gin-gonic/gin"
)

const contextUserKey = "ilmakase.user"

// Page prefixes that require an authenticated session; unauthenticated
// requests are redirected to the login page.
var protectedPagePrefixes = []string{"/worklog", "/portfolio", "/settings"}

// Page prefixes that only make sense without a session; authenticated
// requests are redirected to the default landing page.
var authPagePrefixes = []string{"/login", "/signup"}

const defaultLandingPath = "/worklog"

// SessionResolver turns a request's session token into a user row,
// caching verified identities so repeat requests skip the auth
// provider.
type SessionResolver struct {
	provider ports.AuthProvider
	users    ports.UserRepository
	cache    *cache.Tiered
	ttl      time.Duration
}

// NewSessionResolver creates the session resolution helper
func NewSessionResolver(provider ports.AuthProvider, users ports.UserRepository, tiered *cache.Tiered, ttl time.Duration) *SessionResolver {
	return &SessionResolver{
		provider: provider,
		users:    users,
		cache:    tiered,
		ttl:      ttl,
	}
}

// Resolve authenticates the request and returns its user, creating the
// profile row on first contact.
func (r *SessionResolver) Resolve(c *gin.Context) (*models.User, error) {
	token := tokenFromRequest(c)
	if token == "" {
		return nil, errors.Unauthenticated("missing session token")
	}

	identity, err := r.identity(c.Request.Context(), token)
	if err != nil {
		return nil, err
	}

	user, _, err := r.users.GetOrCreateByEmail(c.Request.Context(), identity.Email, identity.Username)
	return user, err
}

func (r *SessionResolver) identity(ctx context.Context, token string) (*ports.Identity, error) {
	payload, err := r.cache.GetOrLoad(ctx, auth.TokenCacheKey(token), r.ttl, func(ctx context.Context) ([]byte, error) {
		identity, err := r.provider.VerifyToken(ctx, token)
		if err != nil {
			return nil, err
		}
		return json.Marshal(identity)
	})
	if err != nil {
		return nil, err
	}

	var identity ports.Identity
	if err := json.Unmarshal(payload, &identity); err != nil {
		return nil, errors.Wrap(err, "failed to decode cached identity")
	}
	return &identity, nil
}

func tokenFromRequest(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie("session_token"); err == nil {
		return cookie
	}
	return ""
}

// RequireUser aborts API requests without a valid session
func RequireUser(resolver *SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := resolver.Resolve(c)
		if err != nil {
			if errors.HasCode(err, errors.CodeUnauthenticated) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error": "authentication required",
					"code":  errors.CodeUnauthenticated,
				})
				return
			}
			respondError(c, err)
			c.Abort()
			return
		}
		c.Set(contextUserKey, user)
		c.Next()
	}
}

// PageGuard enforces the page-level session rules: protected prefixes
// redirect to login without a session, auth pages redirect to the
// landing page with one. Other paths pass through untouched.
func PageGuard(resolver *SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if hasPrefix(path, protectedPagePrefixes) {
			if _, err := resolver.Resolve(c); err != nil {
				c.Redirect(http.StatusFound, "/login")
				c.Abort()
				return
			}
		} else if hasPrefix(path, authPagePrefixes) {
			if _, err := resolver.Resolve(c); err == nil {
				c.Redirect(http.StatusFound, defaultLandingPath)
				c.Abort()
				return
			}
		}
		c.Next()
	}
}

func hasPrefix(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}

// CurrentUser returns the authenticated user set by RequireUser
func CurrentUser(c *gin.Context) *models.User {
	if value, ok := c.Get(contextUserKey); ok {
		if user, ok := value.(*models.User); ok {
			return user
		}
	}
	return nil
}
