// Package resources holds the API resource transformers used where a
// model's JSON form carries more than a listing should expose.
package resources

import (
	"github.com/muthuvel/santhai/app/models"
	"github.com/muthuvel/santhai/pkg/resource"
)

// UserResource trims a user to the fields the admin listing shows.
// Addresses and timestamps other than created_at stay out of the payload.
type UserResource struct {
	resource.Base
}

func (UserResource) ToArray(v interface{}) resource.Map {
	switch u := v.(type) {
	case models.User:
		return resource.Map{
			"id":         u.ID,
			"username":   u.Username,
			"email":      u.Email,
			"first_name": u.FirstName,
			"last_name":  u.LastName,
			"phone":      u.Phone,
			"role":       u.Role,
			"active":     u.Active,
			"created_at": u.CreatedAt,
		}
	case map[string]interface{}:
		// Collections round-trip through JSON, so items arrive as maps
		// keyed by the model's JSON tags.
		return resource.Map{
			"id":         u["ID"],
			"username":   u["username"],
			"email":      u["email"],
			"first_name": u["first_name"],
			"last_name":  u["last_name"],
			"phone":      u["phone"],
			"role":       u["role"],
			"active":     u["active"],
			"created_at": u["CreatedAt"],
		}
	default:
		return resource.Map{}
	}
}
