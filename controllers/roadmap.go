package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"gridlock/api/errs"
	"gridlock/api/types"
	"gridlock/models"
	"gridlock/realtime"
	"gridlock/services"
)

func RoadmapGet(c *gin.Context) {
	var roadmap models.Roadmap

	projectID := c.Params.ByName("id")
	if !services.CanAccessProject(CurrentUser(c).ID, projectID) {
		c.Error(errs.ErrProjectNotFound)
		return
	}
	if err := models.DB.First(&roadmap, "project_id = ?", projectID).Error; err != nil {
		c.Error(errs.ErrRoadmapNotFound)
		return
	}

	c.JSON(http.StatusOK, types.Response{
		Status: "success",
		Data:   roadmap,
	})
}

// RoadmapPut upserts the single roadmap document of a project. The payload
// is opaque, only well-formedness is checked.
func RoadmapPut(c *gin.Context) {
	var roadmap models.Roadmap
	var request types.RoadmapRequest

	if err := c.MustBindWith(&request, binding.JSON); err != nil {
		return
	}

	projectID := c.Params.ByName("id")
	if !services.CanAccessProject(CurrentUser(c).ID, projectID) {
		c.Error(errs.ErrProjectNotFound)
		return
	}
	if !json.Valid(request.Data) {
		c.Error(errs.ErrInvalidRoadmapData)
		return
	}

	if err := models.DB.First(&roadmap, "project_id = ?", projectID).Error; err != nil {
		roadmap = models.Roadmap{ProjectID: projectID}
	}
	roadmap.Data = models.JSONDoc(request.Data)

	models.DB.Save(&roadmap)
	realtime.Main.Publish(realtime.Event{
		Type:      realtime.EventRoadmapUpdated,
		ProjectID: projectID,
		Data:      roadmap,
	})
	c.JSON(http.StatusOK, types.Response{
		Status: "success",
		Data:   roadmap,
	})
}
