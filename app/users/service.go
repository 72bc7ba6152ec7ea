package users

import (
	"context"
	"strings"
	"time"

	"github.com/gofrs/uuid"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/km-arc/nakago/framework/http/validation"
)

// uniqueViolation is the postgres error code for a duplicate key.
const uniqueViolation = "23505"

type gormService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewService returns a Service storing users with db. It migrates the
// users table.
func NewService(ctx context.Context, db *gorm.DB) (Service, error) {
	if err := db.WithContext(ctx).AutoMigrate(&User{}); err != nil {
		return nil, errors.Wrap(err, "migrate users")
	}
	return &gormService{db: db, now: time.Now}, nil
}

func (s *gormService) Create(ctx context.Context, in Input) (*User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	id, err := uuid.NewV4()
	if err != nil {
		return nil, errors.Wrap(err, "generate id")
	}
	user := &User{
		ID:        id,
		Name:      strings.TrimSpace(in.Name),
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		CreatedAt: s.now().UTC(),
	}

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			errs := make(validation.Errors)
			errs.Add("email", "The email has already been taken.")
			return nil, errs
		}
		return nil, errors.Wrap(err, "create user")
	}
	return user, nil
}

func (s *gormService) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	var user User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "get user")
	}
	return &user, nil
}

func (s *gormService) List(ctx context.Context) ([]User, error) {
	var users []User
	if err := s.db.WithContext(ctx).Order("created_at").Find(&users).Error; err != nil {
		return nil, errors.Wrap(err, "list users")
	}
	return users, nil
}
