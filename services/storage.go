package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"gridlock/api/errs"
	"gridlock/cache"
	"gridlock/config"
	"gridlock/models"
)

// usedLinks makes verified links single-use. Guard entries only need to
// outlive the link itself, so the TTL caps how long links may be valid.
var usedLinks = cache.New[string, bool](time.Hour)

// StoreUpload writes the uploaded blob under <data_dir>/<project>/ and
// returns a ProjectFile row ready to be created, with analysis still pending.
func StoreUpload(c *gin.Context, projectID string, header *multipart.FileHeader) (*models.ProjectFile, error) {
	fileID, _ := uuid.NewRandom()
	id := strings.ReplaceAll(fileID.String(), "-", "")

	dir := filepath.Join(config.C.DataDir, projectID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	path := filepath.Join(dir, id+filepath.Ext(header.Filename))
	if err := c.SaveUploadedFile(header, path); err != nil {
		return nil, err
	}

	return &models.ProjectFile{
		ID:             id,
		ProjectID:      projectID,
		Name:           filepath.Base(header.Filename),
		StoragePath:    path,
		Size:           header.Size,
		AnalysisStatus: models.AnalysisPending,
	}, nil
}

func RemoveStored(file *models.ProjectFile) error {
	if err := os.Remove(file.StoragePath); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// SignDownload builds the expiring download path for a file. The signature
// covers the file id and the expiry so neither can be swapped out.
func SignDownload(fileID string) string {
	exp := time.Now().Add(config.C.SignTTL).Unix()
	sig := downloadSignature(fileID, exp)
	return fmt.Sprintf("/files/%s/download?exp=%d&sig=%s", fileID, exp, sig)
}

func VerifyDownload(fileID, expStr, sig string) error {
	exp, err := strconv.ParseInt(expStr, 10, 64)
	if err != nil {
		return errs.ErrExpiredLink
	}
	if time.Now().Unix() > exp {
		return errs.ErrExpiredLink
	}
	expected := downloadSignature(fileID, exp)
	if !hmac.Equal([]byte(expected), []byte(sig)) {
		return errs.ErrExpiredLink
	}
	if _, used := usedLinks.Get(sig); used {
		return errs.ErrExpiredLink
	}
	usedLinks.Set(sig, true)
	return nil
}

func downloadSignature(fileID string, exp int64) string {
	mac := hmac.New(sha256.New, []byte(config.C.SignSecret))
	fmt.Fprintf(mac, "%s:%d", fileID, exp)
	return hex.EncodeToString(mac.Sum(nil))
}
