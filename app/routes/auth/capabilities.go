package auth

import (
	"github.com/gofiber/fiber/v2"

	"healy-academy/app/models"
)

// Capabilities are the concrete permissions a logged-in user holds. They are
// resolved once from the user's roles and passed around as plain booleans, so
// nothing downstream needs to know the role taxonomy.
type Capabilities struct {
	CanEditAssessments   bool
	CanDeleteAssessments bool
	CanManageStudents    bool
	CanManageBilling     bool
}

// roleCapabilities enumerates what each role may do. Adding a role means
// adding a row here, never a substring check elsewhere.
var roleCapabilities = map[string]Capabilities{
	"admin": {
		CanEditAssessments:   true,
		CanDeleteAssessments: true,
		CanManageStudents:    true,
		CanManageBilling:     true,
	},
	"head_coach": {
		CanEditAssessments:   true,
		CanDeleteAssessments: true,
		CanManageStudents:    true,
	},
	"coach": {
		CanEditAssessments: true,
	},
	"front_desk": {
		CanManageStudents: true,
		CanManageBilling:  true,
	},
}

// ResolveCapabilities unions the capabilities of all of the user's roles.
func ResolveCapabilities(roles []*models.Role) Capabilities {
	var caps Capabilities
	for _, role := range roles {
		rc, ok := roleCapabilities[role.Name]
		if !ok {
			continue
		}
		caps.CanEditAssessments = caps.CanEditAssessments || rc.CanEditAssessments
		caps.CanDeleteAssessments = caps.CanDeleteAssessments || rc.CanDeleteAssessments
		caps.CanManageStudents = caps.CanManageStudents || rc.CanManageStudents
		caps.CanManageBilling = caps.CanManageBilling || rc.CanManageBilling
	}
	return caps
}

// GetCapabilities reads the capabilities placed in the request context by
// AuthMiddleware.
func GetCapabilities(c *fiber.Ctx) Capabilities {
	if caps, ok := c.Locals("capabilities").(Capabilities); ok {
		return caps
	}
	return Capabilities{}
}
