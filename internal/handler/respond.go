package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Arvin-Samuel-A/EnviroHelp/internal/domain"
	"github.com/Arvin-Samuel-A/EnviroHelp/internal/model"
	"github.com/Arvin-Samuel-A/EnviroHelp/pkg/logger"
)

// respondError maps a domain error to its status. Errors with no domain kind
// are store or infrastructure failures: logged, returned as a plain 500.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	kind := domain.KindOf(err)
	if kind == domain.KindUnknown {
		logger.WithTrace(c.Request.Context(), log).Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(domain.HTTPStatus(kind), gin.H{"error": err.Error()})
}

func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " is invalid"})
		return 0, false
	}
	return id, true
}

func currentVolunteer(c *gin.Context) *model.Volunteer {
	v, _ := c.Get("volunteer")
	return v.(*model.Volunteer)
}

func currentCampaigner(c *gin.Context) *model.Campaigner {
	v, _ := c.Get("campaigner")
	return v.(*model.Campaigner)
}
