package tasks

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"os"

	"github.com/gabriel-vasile/mimetype"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"gridlock/config"
	"gridlock/models"
	"gridlock/realtime"
)

const TypeAnalyzeFile = "analyze:file"

type Task struct {
	ID string
}

func NewTask(typeName string, ID string) error {
	client := asynq.NewClient(asynq.RedisClientOpt{Addr: config.C.RedisAddr})
	defer client.Close()

	payload, err := json.Marshal(Task{ID: ID})
	if err != nil {
		log.Error().
			Err(err).
			Str("type", typeName).
			Str("id", ID).
			Msg("failed to create new task")
		return err
	}
	task := asynq.NewTask(typeName, payload)

	_, err = client.Enqueue(task, asynq.TaskID(ID), asynq.MaxRetry(1))
	if err != nil {
		log.Error().
			Err(err).
			Str("type", typeName).
			Str("task", ID).
			Msg("failed to enqueue task")
		return err
	}

	return nil
}

func HandleAnalyzeFileTask(ctx context.Context, t *asynq.Task) error {
	var task Task
	var file models.ProjectFile

	if err := json.Unmarshal(t.Payload(), &task); err != nil {
		return err
	}

	if err := models.DB.First(&file, "id = ?", task.ID).Error; err != nil {
		log.Error().
			Err(err).
			Str("type", t.Type()).
			Str("file", task.ID).
			Msg("file not found")
		return err
	}

	if err := analyzeFile(&file); err != nil {
		file.AnalysisStatus = models.AnalysisFailed
		models.DB.Save(&file)
		return err
	}

	file.AnalysisStatus = models.AnalysisDone
	models.DB.Save(&file)

	realtime.Main.Publish(realtime.Event{
		Type:      realtime.EventFileAnalyzed,
		ProjectID: file.ProjectID,
		Data:      file,
	})
	return nil
}

func analyzeFile(file *models.ProjectFile) error {
	info, err := os.Stat(file.StoragePath)
	if err != nil {
		return err
	}
	file.Size = info.Size()

	mtype, err := mimetype.DetectFile(file.StoragePath)
	if err != nil {
		return err
	}
	file.ContentType = mtype.String()

	f, err := os.Open(file.StoragePath)
	if err != nil {
		return err
	}
	defer f.Close()

	hash := sha256.New()
	if _, err := io.Copy(hash, f); err != nil {
		return err
	}
	file.Checksum = hex.EncodeToString(hash.Sum(nil))

	return nil
}
