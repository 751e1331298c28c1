package handlers

import (
	"errors"
	"net/http"

	"barberbook/middleware"
	"barberbook/services/account"
	"barberbook/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves login and account endpoints.
type AuthHandler struct {
	Accounts account.Service
}

func NewAuthHandler(accounts account.Service) *AuthHandler {
	return &AuthHandler{Accounts: accounts}
}

// Login exchanges form credentials for a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	if username == "" || password == "" {
		utils.JSONError(c, http.StatusBadRequest, "username and password are required", "")
		return
	}

	token, acct, err := h.Accounts.Authenticate(username, password)
	if err != nil {
		var authErr account.AuthError
		if errors.As(err, &authErr) {
			c.Header("WWW-Authenticate", "Bearer")
			utils.JSONError(c, http.StatusUnauthorized, authErr.Reason, "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "login failed", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"role":         acct.Role,
	})
}

// Me returns the authenticated account.
func (h *AuthHandler) Me(c *gin.Context) {
	username := c.GetString(middleware.CtxUsername)
	acct, err := h.Accounts.GetByUsername(username)
	if err != nil || acct == nil {
		utils.JSONError(c, http.StatusUnauthorized, "Could not validate credentials", "")
		return
	}
	c.JSON(http.StatusOK, acct)
}

// Logout revokes the account's cached token.
func (h *AuthHandler) Logout(c *gin.Context) {
	username := c.GetString(middleware.CtxUsername)
	if err := h.Accounts.SignOut(username); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "logout failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}
