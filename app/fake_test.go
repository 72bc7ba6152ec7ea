package app_test

import (
	"context"

	"github.com/gofrs/uuid"

	"github.com/km-arc/nakago/app/users"
)

type emptyService struct{}

func (emptyService) Create(ctx context.Context, in users.Input) (*users.User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	return &users.User{ID: uuid.Must(uuid.NewV4()), Name: in.Name, Email: in.Email}, nil
}

func (emptyService) Get(ctx context.Context, id uuid.UUID) (*users.User, error) {
	return nil, users.ErrNotFound
}

func (emptyService) List(ctx context.Context) ([]users.User, error) {
	return nil, nil
}
