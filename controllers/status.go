package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gridlock/api/types"
	"gridlock/models"
)

func StatusGet(c *gin.Context) {
	var users, projects, ideas int64
	models.DB.Model(&models.User{}).Count(&users)
	models.DB.Model(&models.Project{}).Count(&projects)
	models.DB.Model(&models.Idea{}).Count(&ideas)

	var pending int64
	models.DB.Model(&models.ProjectFile{}).Where("analysis_status = ?", models.AnalysisPending).Count(&pending)
	var done int64
	models.DB.Model(&models.ProjectFile{}).Where("analysis_status = ?", models.AnalysisDone).Count(&done)
	var failed int64
	models.DB.Model(&models.ProjectFile{}).Where("analysis_status = ?", models.AnalysisFailed).Count(&failed)

	c.JSON(http.StatusOK, types.Response{
		Status: "success",
		Data: map[string]any{
			"status":   "ok",
			"users":    users,
			"projects": projects,
			"ideas":    ideas,
			"analysis": map[string]int64{
				"pending": pending,
				"done":    done,
				"failed":  failed,
			},
		},
	})
}
