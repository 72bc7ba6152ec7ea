// Package users is a small user directory served over HTTP and stored
// with GORM.
package users

import (
	"context"
	"time"

	"github.com/gofrs/uuid"
	"github.com/pkg/errors"

	"github.com/km-arc/nakago/framework/http/validation"
)

// ErrNotFound is returned when no user has the requested ID.
var ErrNotFound = errors.New("user not found")

// User is a registered user.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Input is the payload accepted by Create.
type Input struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

var rules = validation.Rules{
	"name":  "required|between:2,100",
	"email": "required|email|max:255",
}

// Validate returns validation.Errors when the input is unusable.
func (in Input) Validate() error {
	return validation.Validate(map[string]string{
		"name":  in.Name,
		"email": in.Email,
	}, rules).Err()
}

// Service manages users.
type Service interface {
	Create(ctx context.Context, in Input) (*User, error)
	Get(ctx context.Context, id uuid.UUID) (*User, error)
	List(ctx context.Context) ([]User, error)
}
