package db

import (
	"context"

	"github.com/DavidAtikpo/irata-sub007/pkg/domain"
)

type RegistrationInterface interface {
	// Create records a step-1 pre-registration request and returns its id.
	//
	// When an open request with the same (email, niveau) already exists,
	// it fails with domain.ErrAlreadyRegistered and creates nothing.
	Create(ctx context.Context, param domain.NewRegistrationParam) (string, error)

	// Get retrieves one registration by id.
	Get(ctx context.Context, registrationId string) (domain.Registration, error)

	// Complete marks a step-1 registration as step 2 done.
	Complete(ctx context.Context, registrationId string) error

	// FindByEmail lists all registration requests of an email, newest first.
	FindByEmail(ctx context.Context, email string) ([]domain.Registration, error)
}

type UserInterface interface {
	// Create opens a user account and returns its id.
	//
	// Duplicate email is domain.ErrConflict.
	Create(ctx context.Context, param domain.NewUserParam) (string, error)

	Get(ctx context.Context, userId string) (domain.User, error)

	GetByEmail(ctx context.Context, email string) (domain.User, error)
}
