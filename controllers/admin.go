package controllers

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"gridlock/api/errs"
	"gridlock/api/types"
	"gridlock/config"
	"gridlock/models"
)

// ServiceKeyRequired guards the privileged surface. It compares the
// X-Service-Key header against the configured service role key; there is no
// session fallback, an empty configured key disables the whole surface.
func ServiceKeyRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("X-Service-Key")
		configured := config.C.ServiceKey
		if configured == "" || subtle.ConstantTimeCompare([]byte(key), []byte(configured)) != 1 {
			c.Error(errs.ErrUnauthorized)
			c.Abort()
			return
		}
		c.Next()
	}
}

func AdminUserList(c *gin.Context) {
	var users []models.User

	models.DB.Find(&users)
	c.JSON(http.StatusOK, types.Response{
		Status: "success",
		Data:   users,
	})
}

func AdminUserRoleUpdate(c *gin.Context) {
	var user models.User
	var request types.RoleRequest

	if err := c.MustBindWith(&request, binding.JSON); err != nil {
		return
	}
	if request.Role != models.RoleUser && request.Role != models.RoleAdmin {
		c.Error(errs.ErrInvalidRole)
		return
	}

	id := c.Params.ByName("id")
	if err := models.DB.First(&user, "id = ?", id).Error; err != nil {
		c.Error(errs.ErrUserNotFound)
		return
	}

	user.Role = request.Role
	models.DB.Save(&user)
	c.JSON(http.StatusOK, types.Response{
		Status:  "success",
		Message: "updated",
	})
}

func AdminProjectList(c *gin.Context) {
	var projects []models.Project

	models.DB.Find(&projects)
	c.JSON(http.StatusOK, types.Response{
		Status: "success",
		Data:   projects,
	})
}

// AdminProjectDelete removes any project regardless of ownership.
func AdminProjectDelete(c *gin.Context) {
	var project models.Project

	id := c.Params.ByName("id")
	if err := models.DB.First(&project, "id = ?", id).Error; err != nil {
		c.Error(errs.ErrProjectNotFound)
		return
	}

	if err := projectCleanup(&project); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, types.Response{
		Status:  "success",
		Message: "deleted",
	})
}
