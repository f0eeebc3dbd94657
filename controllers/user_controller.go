package controllers

import (
	"net/http"

	"shop-api/services"

	"github.com/gin-gonic/gin"
)

// RegisterRequest is the signup payload.
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the credential payload for token issuance.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserController handles signup and token issuance.
type UserController struct {
	userService services.UserService
}

// NewUserController creates a new UserController.
func NewUserController(svc services.UserService) *UserController {
	return &UserController{userService: svc}
}

// Register handles POST /users
func (uc *UserController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	user, svcErr := uc.userService.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}

	// The password hash is never echoed back.
	c.JSON(http.StatusCreated, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"role":     user.Role,
	})
}

// Login handles POST /auth/token/login
func (uc *UserController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}

	token, svcErr := uc.userService.Login(c.Request.Context(), req.Username, req.Password)
	if svcErr != nil {
		respondServiceError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"auth_token": token})
}
