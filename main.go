package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"gridlock/api/errs"
	"gridlock/api/types"
	"gridlock/config"
	"gridlock/controllers"
	"gridlock/models"
	"gridlock/services"
)

func ZLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		c.Next()
		latency := time.Since(startTime)
		status := c.Writer.Status()

		if len(c.Errors) != 0 {
			err := c.Errors.Last().Err
			log.Error().Err(err).Msg("")

			if !c.Writer.Written() {
				for knownErr, statusCode := range errs.ErrStatusMap {
					if errors.Is(err, knownErr) {
						c.AbortWithStatusJSON(statusCode, types.Response{
							Status:  "error",
							Message: knownErr.Error(),
						})
						break
					}
				}
			}
		}
		log.Debug().
			Int("status", status).
			Dur("latency", latency).
			Str("ip", c.ClientIP()).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("")
	}
}

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	gin.DefaultWriter = zerolog.ConsoleWriter{Out: os.Stdout}

	if err := config.Load(); err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	router := gin.New()
	router.Use(ZLogMiddleware(), gin.Recovery())

	models.ConnectDatabase(config.C.Database)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go services.StartSessionSweeper(ctx)

	router.GET("/status", controllers.StatusGet)

	// Auth
	router.POST("/auth/register", controllers.Register)
	router.POST("/auth/login", controllers.Login)
	router.POST("/auth/logout", controllers.AuthRequired(), controllers.Logout)

	// Signed downloads carry their own credentials
	router.GET("/files/:file_id/download", controllers.FileDownload)

	authed := router.Group("/", controllers.AuthRequired())

	// Projects
	authed.POST("/projects", controllers.ProjectCreate)
	authed.GET("/projects", controllers.ProjectList)
	authed.GET("/projects/:id", controllers.ProjectGet)
	authed.PATCH("/projects/:id", controllers.ProjectUpdate)
	authed.DELETE("/projects/:id", controllers.ProjectDelete)

	// Collaborators
	authed.GET("/projects/:id/collaborators", controllers.CollaboratorList)
	authed.POST("/projects/:id/collaborators", controllers.CollaboratorAdd)
	authed.DELETE("/projects/:id/collaborators/:user_id", controllers.CollaboratorRemove)

	// Ideas
	authed.POST("/projects/:id/ideas", controllers.IdeaCreate)
	authed.GET("/projects/:id/ideas", controllers.IdeaList)
	authed.GET("/projects/:id/ideas/:idea_id", controllers.IdeaGet)
	authed.PATCH("/projects/:id/ideas/:idea_id", controllers.IdeaUpdate)
	authed.PATCH("/projects/:id/ideas/:idea_id/position", controllers.IdeaMove)
	authed.DELETE("/projects/:id/ideas/:idea_id", controllers.IdeaDelete)

	// Files
	authed.POST("/projects/:id/files", controllers.FileUpload)
	authed.GET("/projects/:id/files", controllers.FileList)
	authed.GET("/projects/:id/files/:file_id/link", controllers.FileLink)
	authed.DELETE("/projects/:id/files/:file_id", controllers.FileDelete)

	// Roadmap
	authed.GET("/projects/:id/roadmap", controllers.RoadmapGet)
	authed.PUT("/projects/:id/roadmap", controllers.RoadmapPut)

	// Realtime
	authed.GET("/projects/:id/events", controllers.ProjectEvents)

	// Admin surface, guarded by the service role key
	admin := router.Group("/admin", controllers.ServiceKeyRequired())
	admin.GET("/users", controllers.AdminUserList)
	admin.PATCH("/users/:id/role", controllers.AdminUserRoleUpdate)
	admin.GET("/projects", controllers.AdminProjectList)
	admin.DELETE("/projects/:id", controllers.AdminProjectDelete)

	if err := router.Run(config.C.Addr); err != nil {
		log.Fatal().Err(err).Msg("app failed to start")
	}
}
