package dto

import (
	"encoding/json"
	"io"

	"anoa.com/sccams/internal/entity"
)

// ImageFile is the profile image sent with an add request.
type ImageFile struct {
	Reader   io.Reader
	FileName string
}

// CreatePersonnelInput is the multipart form of every add-* route. Address
// arrives as serialized JSON text.
type CreatePersonnelInput struct {
	Code     string `form:"code"`
	Name     string `form:"name"`
	Email    string `form:"email"`
	Password string `form:"password"`
	Number   string `form:"number"`
	Address  string `form:"address"`
	Level    string `form:"level"`
	Position string `form:"position"`
}

// RoleFor picks level or position depending on the kind being created.
func (in CreatePersonnelInput) RoleFor(kind entity.Kind) string {
	if kind.RoleField() == "level" {
		return in.Level
	}
	return in.Position
}

// UpdatePersonnelInput is a partial update. Nil fields are left untouched.
// Size limits follow the column widths.
type UpdatePersonnelInput struct {
	Code     *string         `json:"code" binding:"omitempty,max=50"`
	Name     *string         `json:"name" binding:"omitempty,max=100"`
	Email    *string         `json:"email" binding:"omitempty,email,max=100"`
	Number   *string         `json:"number" binding:"omitempty,max=30"`
	Address  json.RawMessage `json:"address"`
	Level    *string         `json:"level" binding:"omitempty,max=50"`
	Position *string         `json:"position" binding:"omitempty,max=100"`
}

// RoleFor is the role value to apply for kind, or nil when not supplied.
func (in UpdatePersonnelInput) RoleFor(kind entity.Kind) *string {
	if kind.RoleField() == "level" {
		return in.Level
	}
	return in.Position
}

// HasAddress reports whether the payload carries a non-null address.
func (in UpdatePersonnelInput) HasAddress() bool {
	return len(in.Address) > 0 && string(in.Address) != "null"
}
