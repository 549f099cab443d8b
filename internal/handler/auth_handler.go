package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Arvin-Samuel-A/EnviroHelp/internal/service/auth"
)

type AuthHandler struct {
	authService *auth.Service
	log         *zap.Logger
}

func NewAuthHandler(authService *auth.Service, log *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "One or more fields are missing"})
		return
	}

	session, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// Register handles POST /create_account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role" binding:"required"`
		Name     string `json:"name" binding:"required"`
		Contact  string `json:"contact" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Image    string `json:"image" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "One or more fields are missing"})
		return
	}

	session, err := h.authService.Register(c.Request.Context(), auth.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Role:     req.Role,
		Name:     req.Name,
		Contact:  req.Contact,
		Email:    req.Email,
		Image:    req.Image,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, session)
}
