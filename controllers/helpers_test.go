package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"gridlock/api/errs"
	"gridlock/config"
	"gridlock/models"
	"gridlock/services"
)

// errorWriter mirrors the error drain of the production logging middleware:
// sentinel errors raised via c.Error become the JSON envelope and status.
func errorWriter() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		err := c.Errors.Last().Err
		for knownErr, statusCode := range errs.ErrStatusMap {
			if errors.Is(err, knownErr) {
				c.AbortWithStatusJSON(statusCode, envelope{Status: "error", Message: knownErr.Error()})
				break
			}
		}
	}
}

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	config.C = config.Config{
		Database:   filepath.Join(t.TempDir(), "test.db"),
		RedisAddr:  "127.0.0.1:1", // nothing listens here, enqueues fail fast
		DataDir:    t.TempDir(),
		ServiceKey: "service-key",
		SignSecret: "sign-secret",
		SignTTL:    time.Minute,
		SessionTTL: time.Hour,
	}
	models.ConnectDatabase(config.C.Database)
	services.InvalidateMembership()

	router := gin.New()
	router.Use(errorWriter(), gin.Recovery())

	router.POST("/auth/register", Register)
	router.POST("/auth/login", Login)
	router.POST("/auth/logout", AuthRequired(), Logout)
	router.GET("/status", StatusGet)
	router.GET("/files/:file_id/download", FileDownload)

	authed := router.Group("/", AuthRequired())
	authed.POST("/projects", ProjectCreate)
	authed.GET("/projects", ProjectList)
	authed.GET("/projects/:id", ProjectGet)
	authed.PATCH("/projects/:id", ProjectUpdate)
	authed.DELETE("/projects/:id", ProjectDelete)
	authed.GET("/projects/:id/collaborators", CollaboratorList)
	authed.POST("/projects/:id/collaborators", CollaboratorAdd)
	authed.DELETE("/projects/:id/collaborators/:user_id", CollaboratorRemove)
	authed.POST("/projects/:id/ideas", IdeaCreate)
	authed.GET("/projects/:id/ideas", IdeaList)
	authed.GET("/projects/:id/ideas/:idea_id", IdeaGet)
	authed.PATCH("/projects/:id/ideas/:idea_id", IdeaUpdate)
	authed.PATCH("/projects/:id/ideas/:idea_id/position", IdeaMove)
	authed.DELETE("/projects/:id/ideas/:idea_id", IdeaDelete)
	authed.POST("/projects/:id/files", FileUpload)
	authed.GET("/projects/:id/files", FileList)
	authed.GET("/projects/:id/files/:file_id/link", FileLink)
	authed.DELETE("/projects/:id/files/:file_id", FileDelete)
	authed.GET("/projects/:id/roadmap", RoadmapGet)
	authed.PUT("/projects/:id/roadmap", RoadmapPut)

	admin := router.Group("/admin", ServiceKeyRequired())
	admin.GET("/users", AdminUserList)
	admin.PATCH("/users/:id/role", AdminUserRoleUpdate)
	admin.GET("/projects", AdminProjectList)
	admin.DELETE("/projects/:id", AdminProjectDelete)

	return router
}

func doJSONRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	req := doJSONRequest(t, method, path, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func registerAndLogin(t *testing.T, router *gin.Engine, email string) string {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/auth/register", "", map[string]string{
		"email":    email,
		"password": "hunter2hunter2",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(t, router, http.MethodPost, "/auth/login", "", map[string]string{
		"email":    email,
		"password": "hunter2hunter2",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &data))
	require.NotEmpty(t, data.Token)
	return data.Token
}

func createProject(t *testing.T, router *gin.Engine, token, name string) models.Project {
	t.Helper()

	w := doJSON(t, router, http.MethodPost, "/projects", token, map[string]string{"name": name})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var project models.Project
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &project))
	return project
}

func uploadFile(t *testing.T, router *gin.Engine, token, projectID, name string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/projects/%s/files", projectID), &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
