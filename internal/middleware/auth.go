package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/thereayou/socialnet/internal/models"
	"github.com/thereayou/socialnet/internal/policy"
	"github.com/thereayou/socialnet/internal/services"
	"github.com/thereayou/socialnet/internal/session"
	"github.com/thereayou/socialnet/pkg/auth"
)

const (
	UserIDKey = "userID"
	UserKey   = "user"
	TokenKey  = "token"
)

// Gate binds a verified identity to each request and enforces that
// username-scoped routes are only used by that username.
type Gate struct {
	jwtManager *auth.JWTManager
	blacklist  *session.Blacklist
	identity   *services.IdentityStore
	access     *policy.Access
}

func NewGate(jwtManager *auth.JWTManager, blacklist *session.Blacklist, identity *services.IdentityStore, access *policy.Access) *Gate {
	return &Gate{
		jwtManager: jwtManager,
		blacklist:  blacklist,
		identity:   identity,
		access:     access,
	}
}

// ResolveIdentity maps a bearer token to its user. Revoked, malformed and
// expired tokens, and tokens of users that no longer resolve, all yield
// services.ErrUnauthenticated.
func (g *Gate) ResolveIdentity(ctx context.Context, token string) (*models.User, error) {
	revoked, err := g.blacklist.IsRevoked(ctx, token)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, services.ErrUnauthenticated
	}

	userID, err := g.jwtManager.UserID(token)
	if err != nil {
		return nil, services.ErrUnauthenticated
	}

	user, err := g.identity.UserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return nil, services.ErrUnauthenticated
		}
		return nil, err
	}

	return user, nil
}

// IssueToken starts an authenticated session for user.
func (g *Gate) IssueToken(user *models.User) (string, error) {
	return g.jwtManager.Generate(user.ID)
}

// Logout revokes token until it expires. Invalid tokens are already
// unusable and are ignored.
func (g *Gate) Logout(ctx context.Context, token string) error {
	exp, err := g.jwtManager.Expiry(token)
	if err != nil {
		return nil
	}
	return g.blacklist.Revoke(ctx, token, time.Until(exp))
}

// AuthMiddleware проверяет JWT токен
func (g *Gate) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.ExtractTokenFromHeader(c.Request)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
			c.Abort()
			return
		}
		g.bind(c, token)
	}
}

// WSAuthMiddleware специальный middleware для WebSocket
func (g *Gate) WSAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader != "" {
				parts := strings.SplitN(authHeader, " ", 2)
				if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
					token = parts[1]
				}
			}
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			c.Abort()
			return
		}
		g.bind(c, token)
	}
}

func (g *Gate) bind(c *gin.Context, token string) {
	user, err := g.ResolveIdentity(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, services.ErrUnauthenticated) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		} else {
			log.Error().Err(err).Msg("resolve identity")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		}
		c.Abort()
		return
	}

	c.Set(TokenKey, token)
	c.Set(UserIDKey, user.ID)
	c.Set(UserKey, user)
	c.Next()
}

// RequireOwner must run after AuthMiddleware. When the bound user is not the
// :username of the route, the session is logged out before the request is
// rejected, so a single mismatch ends the session.
func (g *Gate) RequireOwner(action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		owner := services.NormalizeUsername(c.Param("username"))

		allowed, err := g.access.Allowed(c.Request.Context(),
			policy.Subject{ID: user.ID, Username: user.Username},
			policy.Resource{Owner: owner, Action: action},
		)
		if err != nil {
			log.Error().Err(err).Str("action", action).Msg("access policy")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			c.Abort()
			return
		}

		if !allowed {
			if err := g.Logout(c.Request.Context(), c.GetString(TokenKey)); err != nil {
				log.Error().Err(err).Uint("user_id", user.ID).Msg("forced logout")
			}
			log.Warn().
				Str("user", user.Username).
				Str("owner", owner).
				Str("action", action).
				Msg("access to another user's resource, session logged out")
			c.JSON(http.StatusForbidden, gin.H{"error": services.ErrForbidden.Error()})
			c.Abort()
			return
		}

		c.Next()
	}
}

// CurrentUser returns the user bound by AuthMiddleware.
func CurrentUser(c *gin.Context) *models.User {
	return c.MustGet(UserKey).(*models.User)
}

func CurrentToken(c *gin.Context) string {
	return c.GetString(TokenKey)
}
