package handlers

import (
	"net/http"

	"roadguard/middleware"
	"roadguard/services/auth"
	"roadguard/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	Service auth.AuthService
}

func NewAuthHandler(s auth.AuthService) *AuthHandler {
	return &AuthHandler{Service: s}
}

type userLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type adminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse keeps the token beside data, which is what the web clients read.
type loginResponse struct {
	Success bool             `json:"success"`
	Token   string           `json:"token"`
	Data    auth.SessionData `json:"data"`
}

// UserLoginHandler signs in a user or worker account.
func (h *AuthHandler) UserLoginHandler(c *gin.Context) {
	var req userLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		getLogger(c).Debug("Invalid login request", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	resp, err := h.Service.AuthenticateAccount(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, loginResponse{Success: true, Token: resp.Token, Data: resp.Data})
}

func (h *AuthHandler) AdminLoginHandler(c *gin.Context) {
	var req adminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		getLogger(c).Debug("Invalid admin login request", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	resp, err := h.Service.AuthenticateAdmin(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		getLogger(c).Warn("Admin login rejected", zap.String("username", req.Username))
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, loginResponse{Success: true, Token: resp.Token, Data: resp.Data})
}

// ValidateTokenHandler echoes the identity resolved by the auth middleware.
func (h *AuthHandler) ValidateTokenHandler(c *gin.Context) {
	identity := middleware.Identity(c)
	if identity == nil {
		utils.JSONError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	utils.JSONSuccess(c, http.StatusOK, identity)
}

// GetProfileHandler returns the authenticated account's profile.
func (h *AuthHandler) GetProfileHandler(c *gin.Context) {
	accountID := middleware.AccountID(c)
	if accountID == "" {
		utils.JSONError(c, http.StatusNotFound, "Account not found")
		return
	}
	profile, err := h.Service.GetProfile(c.Request.Context(), accountID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, profile)
}
