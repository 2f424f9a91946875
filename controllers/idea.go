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
	"gridlock/realtime"
	"gridlock/services"
)

func IdeaCreate(c *gin.Context) {
	var request types.IdeaRequest

	if err := c.MustBindWith(&request, binding.JSON); err != nil {
		return
	}

	projectID := c.Params.ByName("id")
	if !services.CanAccessProject(CurrentUser(c).ID, projectID) {
		c.Error(errs.ErrProjectNotFound)
		return
	}
	if !services.InBounds(*request.X, *request.Y) {
		c.Error(errs.ErrPositionOutOfRange)
		return
	}

	ideaID, _ := uuid.NewRandom()
	idea := models.Idea{
		ID:          strings.ReplaceAll(ideaID.String(), "-", ""),
		ProjectID:   projectID,
		Title:       request.Title,
		Description: request.Description,
		X:           *request.X,
		Y:           *request.Y,
		Quadrant:    services.QuadrantFor(*request.X, *request.Y),
	}

	models.DB.Create(&idea)
	realtime.Main.Publish(realtime.Event{
		Type:      realtime.EventIdeaCreated,
		ProjectID: projectID,
		Data:      idea,
	})
	c.JSON(http.StatusCreated, types.Response{
		Status: "success",
		Data:   idea,
	})
}

func IdeaList(c *gin.Context) {
	var ideas []models.Idea

	projectID := c.Params.ByName("id")
	if !services.CanAccessProject(CurrentUser(c).ID, projectID) {
		c.Error(errs.ErrProjectNotFound)
		return
	}

	models.DB.Find(&ideas, "project_id = ?", projectID)
	c.JSON(http.StatusOK, types.Response{
		Status: "success",
		Data:   ideas,
	})
}

func IdeaGet(c *gin.Context) {
	var idea models.Idea

	projectID := c.Params.ByName("id")
	if !services.CanAccessProject(CurrentUser(c).ID, projectID) {
		c.Error(errs.ErrProjectNotFound)
		return
	}

	ideaID := c.Params.ByName("idea_id")
	if err := models.DB.First(&idea, "id = ? AND project_id = ?", ideaID, projectID).Error; err != nil {
		c.Error(errs.ErrIdeaNotFound)
		return
	}

	c.JSON(http.StatusOK, types.Response{
		Status: "success",
		Data:   idea,
	})
}

func IdeaUpdate(c *gin.Context) {
	var idea models.Idea
	var request types.IdeaUpdateRequest

	if err := c.MustBindWith(&request, binding.JSON); err != nil {
		return
	}

	projectID := c.Params.ByName("id")
	if !services.CanAccessProject(CurrentUser(c).ID, projectID) {
		c.Error(errs.ErrProjectNotFound)
		return
	}

	ideaID := c.Params.ByName("idea_id")
	if err := models.DB.First(&idea, "id = ? AND project_id = ?", ideaID, projectID).Error; err != nil {
		c.Error(errs.ErrIdeaNotFound)
		return
	}

	if request.Title != nil {
		idea.Title = *request.Title
	}
	if request.Description != nil {
		idea.Description = *request.Description
	}
	if request.X != nil {
		idea.X = *request.X
	}
	if request.Y != nil {
		idea.Y = *request.Y
	}
	if !services.InBounds(idea.X, idea.Y) {
		c.Error(errs.ErrPositionOutOfRange)
		return
	}
	idea.Quadrant = services.QuadrantFor(idea.X, idea.Y)

	models.DB.Save(&idea)
	realtime.Main.Publish(realtime.Event{
		Type:      realtime.EventIdeaUpdated,
		ProjectID: projectID,
		Data:      idea,
	})
	c.JSON(http.StatusOK, types.Response{
		Status: "success",
		Data:   idea,
	})
}

// IdeaMove is the drag-and-drop endpoint: position only, nothing else moves.
func IdeaMove(c *gin.Context) {
	var idea models.Idea
	var request types.MoveRequest

	if err := c.MustBindWith(&request, binding.JSON); err != nil {
		return
	}

	projectID := c.Params.ByName("id")
	if !services.CanAccessProject(CurrentUser(c).ID, projectID) {
		c.Error(errs.ErrProjectNotFound)
		return
	}
	if !services.InBounds(*request.X, *request.Y) {
		c.Error(errs.ErrPositionOutOfRange)
		return
	}

	ideaID := c.Params.ByName("idea_id")
	if err := models.DB.First(&idea, "id = ? AND project_id = ?", ideaID, projectID).Error; err != nil {
		c.Error(errs.ErrIdeaNotFound)
		return
	}

	idea.X = *request.X
	idea.Y = *request.Y
	idea.Quadrant = services.QuadrantFor(idea.X, idea.Y)

	models.DB.Save(&idea)
	realtime.Main.Publish(realtime.Event{
		Type:      realtime.EventIdeaUpdated,
		ProjectID: projectID,
		Data:      idea,
	})
	c.JSON(http.StatusOK, types.Response{
		Status: "success",
		Data:   idea,
	})
}

func IdeaDelete(c *gin.Context) {
	var idea models.Idea

	projectID := c.Params.ByName("id")
	if !services.CanAccessProject(CurrentUser(c).ID, projectID) {
		c.Error(errs.ErrProjectNotFound)
		return
	}

	ideaID := c.Params.ByName("idea_id")
	if err := models.DB.First(&idea, "id = ? AND project_id = ?", ideaID, projectID).Error; err != nil {
		c.Error(errs.ErrIdeaNotFound)
		return
	}

	models.DB.Delete(&idea)
	realtime.Main.Publish(realtime.Event{
		Type:      realtime.EventIdeaDeleted,
		ProjectID: projectID,
		Data:      map[string]string{"id": idea.ID},
	})
	c.JSON(http.StatusOK, types.Response{
		Status:  "success",
		Message: "deleted",
	})
}
