package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"

	"gridlock/api/errs"
	"gridlock/api/types"
	"gridlock/models"
	"gridlock/services"
)

// AuthRequired resolves the bearer token to a user and stores it on the
// context. WebSocket clients cannot set headers, so a token query parameter
// is accepted as a fallback.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if token == "" {
			token = c.Query("token")
		}
		if token == "" {
			c.Error(errs.ErrUnauthorized)
			c.Abort()
			return
		}

		user, ok := services.UserForToken(token)
		if !ok {
			c.Error(errs.ErrUnauthorized)
			c.Abort()
			return
		}

		c.Set("user", user)
		c.Set("token", token)
		c.Next()
	}
}

func CurrentUser(c *gin.Context) *models.User {
	return c.MustGet("user").(*models.User)
}

func Register(c *gin.Context) {
	var request types.RegisterRequest

	if err := c.MustBindWith(&request, binding.JSON); err != nil {
		return
	}

	email := strings.ToLower(request.Email)
	if err := models.DB.First(&models.User{}, "email = ?", email).Error; err == nil {
		c.Error(errs.ErrEmailTaken)
		return
	}

	hash, err := services.HashPassword(request.Password)
	if err != nil {
		c.Error(err)
		return
	}

	// the first account becomes the admin
	var count int64
	models.DB.Model(&models.User{}).Count(&count)
	role := models.RoleUser
	if count == 0 {
		role = models.RoleAdmin
	}

	userID, _ := uuid.NewRandom()
	user := models.User{
		ID:           userID.String(),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}

	models.DB.Create(&user)
	c.JSON(http.StatusCreated, types.Response{
		Status: "success",
		Data:   user,
	})
}

func Login(c *gin.Context) {
	var request types.LoginRequest
	var user models.User

	if err := c.MustBindWith(&request, binding.JSON); err != nil {
		return
	}

	email := strings.ToLower(request.Email)
	if err := models.DB.First(&user, "email = ?", email).Error; err != nil {
		c.Error(errs.ErrInvalidCredentials)
		return
	}
	if !services.CheckPassword(user.PasswordHash, request.Password) {
		c.Error(errs.ErrInvalidCredentials)
		return
	}

	session, err := services.CreateSession(user.ID)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, types.Response{
		Status: "success",
		Data: map[string]any{
			"token":      session.Token,
			"expires_at": session.ExpiresAt,
			"user":       user,
		},
	})
}

func Logout(c *gin.Context) {
	services.DeleteSession(c.GetString("token"))
	c.JSON(http.StatusOK, types.Response{
		Status:  "success",
		Message: "logged out",
	})
}
