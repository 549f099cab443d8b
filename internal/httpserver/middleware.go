package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Arvin-Samuel-A/EnviroHelp/internal/domain"
	"github.com/Arvin-Samuel-A/EnviroHelp/internal/model"
	"github.com/Arvin-Samuel-A/EnviroHelp/internal/service/auth"
	"github.com/Arvin-Samuel-A/EnviroHelp/pkg/logger"
	"github.com/Arvin-Samuel-A/EnviroHelp/pkg/util"
)

// AuthMiddleware resolves the bearer token to its login row and stores it in
// the gin context under "login".
func AuthMiddleware(authService *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := util.ExtractToken(c.Request)
		login, err := authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			abort(c, err)
			return
		}
		c.Set("login", login)
		c.Next()
	}
}

// RequireVolunteer loads the volunteer profile behind the authenticated login
// and stores it under "volunteer". Campaigner logins are rejected.
func RequireVolunteer(authService *auth.Service, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		login, err := currentLogin(c)
		if err != nil {
			abort(c, err)
			return
		}

		v, err := authService.ResolveVolunteer(c.Request.Context(), login)
		if err != nil {
			abortLogged(c, log, err)
			return
		}
		c.Set("volunteer", v)
		c.Next()
	}
}

// RequireCampaigner is the campaigner counterpart of RequireVolunteer.
func RequireCampaigner(authService *auth.Service, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		login, err := currentLogin(c)
		if err != nil {
			abort(c, err)
			return
		}

		cp, err := authService.ResolveCampaigner(c.Request.Context(), login)
		if err != nil {
			abortLogged(c, log, err)
			return
		}
		c.Set("campaigner", cp)
		c.Next()
	}
}

func currentLogin(c *gin.Context) (*model.Login, error) {
	v, exists := c.Get("login")
	if !exists {
		return nil, domain.E(domain.KindUnauthenticated, "No token provided")
	}
	l, ok := v.(*model.Login)
	if !ok {
		return nil, domain.E(domain.KindUnauthenticated, "Invalid token")
	}
	return l, nil
}

func abort(c *gin.Context, err error) {
	kind := domain.KindOf(err)
	status := domain.HTTPStatus(kind)
	if kind == domain.KindUnknown {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func abortLogged(c *gin.Context, log *zap.Logger, err error) {
	if domain.KindOf(err) == domain.KindUnknown {
		logger.WithTrace(c.Request.Context(), log).Error("profile resolution failed", zap.Error(err))
	}
	abort(c, err)
}
