package dto

import "github.com/hongminglow/bookmarks-be/internal/models"

// EditUserRequest is the body of PATCH /users. Absent fields stay unchanged.
type EditUserRequest struct {
	Email *string `json:"email"`
	Name  *string `json:"name"`
}

// Validate checks the fields that were provided.
func (r EditUserRequest) Validate() error {
	var v validator
	if r.Email != nil {
		v.email("email", *r.Email)
	}
	if r.Name != nil {
		v.notEmpty("name", *r.Name)
	}
	return v.err()
}

// Patch converts the request into a store patch.
func (r EditUserRequest) Patch() models.UserPatch {
	return models.UserPatch{Email: trimmed(r.Email), Name: trimmed(r.Name)}
}
