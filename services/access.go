package services

import (
	"time"

	"gridlock/cache"
	"gridlock/models"
)

// Membership checks run on every project-scoped request, so results are held
// in a short-lived cache. Collaborator changes purge it rather than chasing
// individual keys.
var membership = cache.New[string, bool](30 * time.Second)

func CanAccessProject(userID, projectID string) bool {
	key := userID + ":" + projectID
	if allowed, ok := membership.Get(key); ok {
		return allowed
	}

	var project models.Project
	if err := models.DB.First(&project, "id = ?", projectID).Error; err != nil {
		return false
	}

	allowed := project.OwnerID == userID
	if !allowed {
		var count int64
		models.DB.Model(&models.Collaborator{}).
			Where("project_id = ? AND user_id = ?", projectID, userID).
			Count(&count)
		allowed = count > 0
	}

	membership.Set(key, allowed)
	return allowed
}

func IsProjectOwner(userID, projectID string) bool {
	var project models.Project
	if err := models.DB.First(&project, "id = ?", projectID).Error; err != nil {
		return false
	}
	return project.OwnerID == userID
}

// InvalidateMembership drops cached membership after collaborator or project
// changes.
func InvalidateMembership() {
	membership.Purge()
}
