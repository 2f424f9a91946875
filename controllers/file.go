package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"gridlock/api/errs"
	"gridlock/api/types"
	"gridlock/models"
	"gridlock/realtime"
	"gridlock/services"
	"gridlock/tasks"
)

func FileUpload(c *gin.Context) {
	projectID := c.Params.ByName("id")
	if !services.CanAccessProject(CurrentUser(c).ID, projectID) {
		c.Error(errs.ErrProjectNotFound)
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, types.Response{
			Status:  "error",
			Message: "multipart field 'file' is required",
		})
		return
	}

	file, err := services.StoreUpload(c, projectID, header)
	if err != nil {
		c.Error(err)
		return
	}
	models.DB.Create(file)

	// analysis is best effort, the row stays pending if the queue is down
	if err := tasks.NewTask(tasks.TypeAnalyzeFile, file.ID); err != nil {
		log.Warn().
			Err(err).
			Str("file", file.ID).
			Msg("analysis not enqueued")
	}

	realtime.Main.Publish(realtime.Event{
		Type:      realtime.EventFileUploaded,
		ProjectID: projectID,
		Data:      file,
	})
	c.JSON(http.StatusCreated, types.Response{
		Status: "success",
		Data:   file,
	})
}

func FileList(c *gin.Context) {
	var files []models.ProjectFile

	projectID := c.Params.ByName("id")
	if !services.CanAccessProject(CurrentUser(c).ID, projectID) {
		c.Error(errs.ErrProjectNotFound)
		return
	}

	models.DB.Find(&files, "project_id = ?", projectID)
	c.JSON(http.StatusOK, types.Response{
		Status: "success",
		Data:   files,
	})
}

// FileLink hands out a short-lived signed download URL so the browser can
// fetch the blob without carrying the bearer token.
func FileLink(c *gin.Context) {
	var file models.ProjectFile

	projectID := c.Params.ByName("id")
	if !services.CanAccessProject(CurrentUser(c).ID, projectID) {
		c.Error(errs.ErrProjectNotFound)
		return
	}

	fileID := c.Params.ByName("file_id")
	if err := models.DB.First(&file, "id = ? AND project_id = ?", fileID, projectID).Error; err != nil {
		c.Error(errs.ErrFileNotFound)
		return
	}

	c.JSON(http.StatusOK, types.Response{
		Status: "success",
		Data:   map[string]string{"url": services.SignDownload(file.ID)},
	})
}

// FileDownload serves a blob against a signed link, no session required.
func FileDownload(c *gin.Context) {
	var file models.ProjectFile

	fileID := c.Params.ByName("file_id")
	if err := services.VerifyDownload(fileID, c.Query("exp"), c.Query("sig")); err != nil {
		c.Error(err)
		return
	}
	if err := models.DB.First(&file, "id = ?", fileID).Error; err != nil {
		c.Error(errs.ErrFileNotFound)
		return
	}

	c.FileAttachment(file.StoragePath, file.Name)
}

func FileDelete(c *gin.Context) {
	var file models.ProjectFile

	projectID := c.Params.ByName("id")
	if !services.CanAccessProject(CurrentUser(c).ID, projectID) {
		c.Error(errs.ErrProjectNotFound)
		return
	}

	fileID := c.Params.ByName("file_id")
	if err := models.DB.First(&file, "id = ? AND project_id = ?", fileID, projectID).Error; err != nil {
		c.Error(errs.ErrFileNotFound)
		return
	}

	if err := services.RemoveStored(&file); err != nil {
		c.Error(err)
		return
	}

	models.DB.Delete(&file)
	realtime.Main.Publish(realtime.Event{
		Type:      realtime.EventFileDeleted,
		ProjectID: projectID,
		Data:      map[string]string{"id": file.ID},
	})
	c.JSON(http.StatusOK, types.Response{
		Status:  "success",
		Message: "deleted",
	})
}
