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

func ProjectCreate(c *gin.Context) {
	var request types.ProjectRequest

	if err := c.MustBindWith(&request, binding.JSON); err != nil {
		return
	}

	projectID, _ := uuid.NewRandom()
	project := models.Project{
		ID:      strings.ReplaceAll(projectID.String(), "-", ""),
		Name:    request.Name,
		OwnerID: CurrentUser(c).ID,
	}

	models.DB.Create(&project)
	c.JSON(http.StatusCreated, types.Response{
		Status: "success",
		Data:   project,
	})
}

func ProjectList(c *gin.Context) {
	var projects []models.Project

	user := CurrentUser(c)
	member := models.DB.Model(&models.Collaborator{}).
		Select("project_id").
		Where("user_id = ?", user.ID)
	models.DB.
		Where("owner_id = ?", user.ID).
		Or("id IN (?)", member).
		Find(&projects)

	c.JSON(http.StatusOK, types.Response{
		Status: "success",
		Data:   projects,
	})
}

func ProjectGet(c *gin.Context) {
	var project models.Project

	id := c.Params.ByName("id")
	if !services.CanAccessProject(CurrentUser(c).ID, id) {
		c.Error(errs.ErrProjectNotFound)
		return
	}
	if err := models.DB.First(&project, "id = ?", id).Error; err != nil {
		c.Error(errs.ErrProjectNotFound)
		return
	}

	c.JSON(http.StatusOK, types.Response{
		Status: "success",
		Data:   project,
	})
}

func ProjectUpdate(c *gin.Context) {
	var project models.Project
	var request types.ProjectRequest

	if err := c.MustBindWith(&request, binding.JSON); err != nil {
		return
	}

	// non-members see no difference between a foreign project and a
	// missing one
	id := c.Params.ByName("id")
	if !services.CanAccessProject(CurrentUser(c).ID, id) {
		c.Error(errs.ErrProjectNotFound)
		return
	}
	if err := models.DB.First(&project, "id = ?", id).Error; err != nil {
		c.Error(errs.ErrProjectNotFound)
		return
	}
	if project.OwnerID != CurrentUser(c).ID {
		c.Error(errs.ErrForbidden)
		return
	}

	project.Name = request.Name
	models.DB.Save(&project)
	c.JSON(http.StatusOK, types.Response{
		Status: "success",
		Data:   project,
	})
}

func ProjectDelete(c *gin.Context) {
	var project models.Project

	id := c.Params.ByName("id")
	if !services.CanAccessProject(CurrentUser(c).ID, id) {
		c.Error(errs.ErrProjectNotFound)
		return
	}
	if err := models.DB.First(&project, "id = ?", id).Error; err != nil {
		c.Error(errs.ErrProjectNotFound)
		return
	}
	if project.OwnerID != CurrentUser(c).ID {
		c.Error(errs.ErrForbidden)
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

// projectCleanup removes the project row and everything hanging off it,
// including stored blobs.
func projectCleanup(project *models.Project) error {
	var files []models.ProjectFile
	models.DB.Find(&files, "project_id = ?", project.ID)
	for _, file := range files {
		if err := services.RemoveStored(&file); err != nil {
			return err
		}
	}

	models.DB.Delete(&models.ProjectFile{}, "project_id = ?", project.ID)
	models.DB.Delete(&models.Idea{}, "project_id = ?", project.ID)
	models.DB.Delete(&models.Roadmap{}, "project_id = ?", project.ID)
	models.DB.Delete(&models.Collaborator{}, "project_id = ?", project.ID)
	models.DB.Delete(project)
	services.InvalidateMembership()
	return nil
}

func CollaboratorAdd(c *gin.Context) {
	var request types.CollaboratorRequest
	var user models.User

	if err := c.MustBindWith(&request, binding.JSON); err != nil {
		return
	}

	id := c.Params.ByName("id")
	if !services.CanAccessProject(CurrentUser(c).ID, id) {
		c.Error(errs.ErrProjectNotFound)
		return
	}
	if !services.IsProjectOwner(CurrentUser(c).ID, id) {
		c.Error(errs.ErrForbidden)
		return
	}
	if err := models.DB.First(&user, "email = ?", strings.ToLower(request.Email)).Error; err != nil {
		c.Error(errs.ErrUserNotFound)
		return
	}
	if err := models.DB.First(&models.Collaborator{}, "project_id = ? AND user_id = ?", id, user.ID).Error; err == nil {
		c.Error(errs.ErrCollaboratorExists)
		return
	}

	models.DB.Create(&models.Collaborator{ProjectID: id, UserID: user.ID})
	services.InvalidateMembership()
	c.JSON(http.StatusCreated, types.Response{
		Status:  "success",
		Message: "added",
	})
}

func CollaboratorRemove(c *gin.Context) {
	id := c.Params.ByName("id")
	if !services.CanAccessProject(CurrentUser(c).ID, id) {
		c.Error(errs.ErrProjectNotFound)
		return
	}
	if !services.IsProjectOwner(CurrentUser(c).ID, id) {
		c.Error(errs.ErrForbidden)
		return
	}

	userID := c.Params.ByName("user_id")
	rows := models.DB.Delete(&models.Collaborator{}, "project_id = ? AND user_id = ?", id, userID).RowsAffected
	if rows == 0 {
		c.Error(errs.ErrCollaboratorMissing)
		return
	}

	services.InvalidateMembership()
	c.JSON(http.StatusOK, types.Response{
		Status:  "success",
		Message: "removed",
	})
}

func CollaboratorList(c *gin.Context) {
	var users []models.User

	id := c.Params.ByName("id")
	if !services.CanAccessProject(CurrentUser(c).ID, id) {
		c.Error(errs.ErrProjectNotFound)
		return
	}

	member := models.DB.Model(&models.Collaborator{}).
		Select("user_id").
		Where("project_id = ?", id)
	models.DB.Where("id IN (?)", member).Find(&users)

	c.JSON(http.StatusOK, types.Response{
		Status: "success",
		Data:   users,
	})
}
