package types

import "encoding/json"

type Response struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ProjectRequest struct {
	Name string `json:"name" binding:"required"`
}

type CollaboratorRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type IdeaRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	X           *float64 `json:"x" binding:"required"`
	Y           *float64 `json:"y" binding:"required"`
}

type IdeaUpdateRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	X           *float64 `json:"x"`
	Y           *float64 `json:"y"`
}

type MoveRequest struct {
	X *float64 `json:"x" binding:"required"`
	Y *float64 `json:"y" binding:"required"`
}

type RoadmapRequest struct {
	Data json.RawMessage `json:"roadmap_data" binding:"required"`
}

type RoleRequest struct {
	Role string `json:"role" binding:"required"`
}
