package mocks

import (
	"context"
	"errors"

	"github.com/DavidAtikpo/irata-sub007/pkg/domain"
	kdbmock "github.com/DavidAtikpo/irata-sub007/pkg/domain/internal/db/mock"
	kdb "github.com/DavidAtikpo/irata-sub007/pkg/domain/registration/db"
)

type RegistrationInterface struct {
	Impl struct {
		Create      func(context.Context, domain.NewRegistrationParam) (string, error)
		Get         func(context.Context, string) (domain.Registration, error)
		Complete    func(context.Context, string) error
		FindByEmail func(context.Context, string) ([]domain.Registration, error)
	}
	Calls struct {
		Create      kdbmock.CallLog[domain.NewRegistrationParam]
		Get         kdbmock.CallLog[string]
		Complete    kdbmock.CallLog[string]
		FindByEmail kdbmock.CallLog[string]
	}
}

var _ kdb.RegistrationInterface = &RegistrationInterface{}

func NewRegistrationInterface() *RegistrationInterface {
	return &RegistrationInterface{}
}

func (m *RegistrationInterface) Create(ctx context.Context, param domain.NewRegistrationParam) (string, error) {
	m.Calls.Create = append(m.Calls.Create, param)
	if m.Impl.Create != nil {
		return m.Impl.Create(ctx, param)
	}
	panic(errors.New("should not be called"))
}

func (m *RegistrationInterface) Get(ctx context.Context, registrationId string) (domain.Registration, error) {
	m.Calls.Get = append(m.Calls.Get, registrationId)
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, registrationId)
	}
	panic(errors.New("should not be called"))
}

func (m *RegistrationInterface) Complete(ctx context.Context, registrationId string) error {
	m.Calls.Complete = append(m.Calls.Complete, registrationId)
	if m.Impl.Complete != nil {
		return m.Impl.Complete(ctx, registrationId)
	}
	panic(errors.New("should not be called"))
}

func (m *RegistrationInterface) FindByEmail(ctx context.Context, email string) ([]domain.Registration, error) {
	m.Calls.FindByEmail = append(m.Calls.FindByEmail, email)
	if m.Impl.FindByEmail != nil {
		return m.Impl.FindByEmail(ctx, email)
	}
	panic(errors.New("should not be called"))
}

type UserInterface struct {
	Impl struct {
		Create     func(context.Context, domain.NewUserParam) (string, error)
		Get        func(context.Context, string) (domain.User, error)
		GetByEmail func(context.Context, string) (domain.User, error)
	}
	Calls struct {
		Create     kdbmock.CallLog[domain.NewUserParam]
		Get        kdbmock.CallLog[string]
		GetByEmail kdbmock.CallLog[string]
	}
}

var _ kdb.UserInterface = &UserInterface{}

func NewUserInterface() *UserInterface {
	return &UserInterface{}
}

func (m *UserInterface) Create(ctx context.Context, param domain.NewUserParam) (string, error) {
	m.Calls.Create = append(m.Calls.Create, param)
	if m.Impl.Create != nil {
		return m.Impl.Create(ctx, param)
	}
	panic(errors.New("should not be called"))
}

func (m *UserInterface) Get(ctx context.Context, userId string) (domain.User, error) {
	m.Calls.Get = append(m.Calls.Get, userId)
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, userId)
	}
	panic(errors.New("should not be called"))
}

func (m *UserInterface) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	m.Calls.GetByEmail = append(m.Calls.GetByEmail, email)
	if m.Impl.GetByEmail != nil {
		return m.Impl.GetByEmail(ctx, email)
	}
	panic(errors.New("should not be called"))
}
