package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"gridlock/config"
	"gridlock/models"
)

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func CreateSession(userID string) (*models.Session, error) {
	token, _ := uuid.NewRandom()
	session := models.Session{
		Token:     strings.ReplaceAll(token.String(), "-", ""),
		UserID:    userID,
		ExpiresAt: time.Now().Add(config.C.SessionTTL),
	}
	if err := models.DB.Create(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func UserForToken(token string) (*models.User, bool) {
	var session models.Session
	if err := models.DB.First(&session, "token = ?", token).Error; err != nil {
		return nil, false
	}
	if time.Now().After(session.ExpiresAt) {
		models.DB.Delete(&session)
		return nil, false
	}

	var user models.User
	if err := models.DB.First(&user, "id = ?", session.UserID).Error; err != nil {
		return nil, false
	}
	return &user, true
}

func DeleteSession(token string) {
	models.DB.Delete(&models.Session{}, "token = ?", token)
}

// StartSessionSweeper removes expired sessions until the context is done.
func StartSessionSweeper(ctx context.Context) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case now := <-ticker.C:
			result := models.DB.Delete(&models.Session{}, "expires_at < ?", now)
			if result.RowsAffected > 0 {
				log.Debug().
					Int64("sessions", result.RowsAffected).
					Msg("swept expired sessions")
			}

		case <-ctx.Done():
			log.Info().Msg("session sweeper stopped")
			return
		}
	}
}
