package errs

import (
	"errors"
	"net/http"
)

var (
	ErrUnauthorized        = errors.New("authentication required")
	ErrForbidden           = errors.New("access denied")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrEmailTaken          = errors.New("email already registered")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidRole         = errors.New("unknown role")
	ErrProjectNotFound     = errors.New("project not found")
	ErrIdeaNotFound        = errors.New("idea not found")
	ErrFileNotFound        = errors.New("file not found")
	ErrRoadmapNotFound     = errors.New("roadmap not found")
	ErrPositionOutOfRange  = errors.New("position outside the matrix grid")
	ErrCollaboratorExists  = errors.New("user is already a collaborator")
	ErrCollaboratorMissing = errors.New("user is not a collaborator")
	ErrInvalidRoadmapData  = errors.New("roadmap_data must be a valid json document")
	ErrExpiredLink         = errors.New("download link is invalid or expired")
)

var ErrStatusMap = map[error]int{
	ErrUnauthorized:        http.StatusUnauthorized,
	ErrForbidden:           http.StatusForbidden,
	ErrInvalidCredentials:  http.StatusUnauthorized,
	ErrEmailTaken:          http.StatusConflict,
	ErrUserNotFound:        http.StatusNotFound,
	ErrInvalidRole:         http.StatusUnprocessableEntity,
	ErrProjectNotFound:     http.StatusNotFound,
	ErrIdeaNotFound:        http.StatusNotFound,
	ErrFileNotFound:        http.StatusNotFound,
	ErrRoadmapNotFound:     http.StatusNotFound,
	ErrPositionOutOfRange:  http.StatusUnprocessableEntity,
	ErrCollaboratorExists:  http.StatusConflict,
	ErrCollaboratorMissing: http.StatusNotFound,
	ErrInvalidRoadmapData:  http.StatusUnprocessableEntity,
	ErrExpiredLink:         http.StatusForbidden,
}
