package controllers

import (
	"errors"
	"net/http"

	"hms-backend/middleware"
	"hms-backend/services"
	"hms-backend/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Service *services.AuthService
}

func NewAuthController(s *services.AuthService) *AuthController {
	return &AuthController{Service: s}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login and returns a bearer token.
func (ac *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	admin, err := ac.Service.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			utils.JSONError(c, http.StatusUnauthorized, "invalid username or password")
			return
		}
		respondServiceError(c, err)
		return
	}

	token, err := middleware.GenerateToken(admin.ID, admin.Username)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to issue token")
		return
	}

	utils.JSONSuccess(c, http.StatusOK, gin.H{
		"token": token,
		"admin": admin,
	})
}
