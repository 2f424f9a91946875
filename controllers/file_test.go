package controllers

import (
	"encoding/json"
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gridlock/models"
)

func TestFileUploadCreatesPendingRow(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "owner@example.com")
	project := createProject(t, router, token, "docs")

	w := uploadFile(t, router, token, project.ID, "notes.txt", []byte("some notes"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var file models.ProjectFile
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &file))
	assert.Equal(t, "notes.txt", file.Name)
	assert.Equal(t, models.AnalysisPending, file.AnalysisStatus)
	assert.Equal(t, int64(10), file.Size)

	var stored models.ProjectFile
	require.NoError(t, models.DB.First(&stored, "id = ?", file.ID).Error)
	_, err := os.Stat(stored.StoragePath)
	assert.NoError(t, err)
}

func TestFileUploadRequiresField(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "owner@example.com")
	project := createProject(t, router, token, "docs")

	w := doJSON(t, router, http.MethodPost, "/projects/"+project.ID+"/files", token, map[string]string{})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestFileSignedDownload(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "owner@example.com")
	project := createProject(t, router, token, "docs")

	w := uploadFile(t, router, token, project.ID, "notes.txt", []byte("downloadable"))
	require.Equal(t, http.StatusCreated, w.Code)
	var file models.ProjectFile
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &file))

	w = doJSON(t, router, http.MethodGet, "/projects/"+project.ID+"/files/"+file.ID+"/link", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var link struct {
		URL string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &link))

	// the signed link needs no session
	w = doJSON(t, router, http.MethodGet, link.URL, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "downloadable", w.Body.String())

	// links are single-use, replaying one is refused
	w = doJSON(t, router, http.MethodGet, link.URL, "", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// a mangled signature is refused
	w = doJSON(t, router, http.MethodGet, "/files/"+file.ID+"/download?exp=9999999999&sig=deadbeef", "", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestFileDeleteRemovesBlob(t *testing.T) {
	router := newTestRouter(t)
	token := registerAndLogin(t, router, "owner@example.com")
	project := createProject(t, router, token, "docs")

	w := uploadFile(t, router, token, project.ID, "notes.txt", []byte("temporary"))
	require.Equal(t, http.StatusCreated, w.Code)
	var file models.ProjectFile
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &file))

	var stored models.ProjectFile
	require.NoError(t, models.DB.First(&stored, "id = ?", file.ID).Error)

	w = doJSON(t, router, http.MethodDelete, "/projects/"+project.ID+"/files/"+file.ID, token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	_, err := os.Stat(stored.StoragePath)
	assert.True(t, os.IsNotExist(err))

	var count int64
	models.DB.Model(&models.ProjectFile{}).Where("id = ?", file.ID).Count(&count)
	assert.Zero(t, count)
}

func TestFileListScopedToProject(t *testing.T) {
	router := newTestRouter(t)
	owner := registerAndLogin(t, router, "owner@example.com")
	stranger := registerAndLogin(t, router, "stranger@example.com")
	project := createProject(t, router, owner, "docs")

	w := uploadFile(t, router, owner, project.ID, "a.txt", []byte("a"))
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodGet, "/projects/"+project.ID+"/files", owner, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var files []models.ProjectFile
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &files))
	assert.Len(t, files, 1)

	w = doJSON(t, router, http.MethodGet, "/projects/"+project.ID+"/files", stranger, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
