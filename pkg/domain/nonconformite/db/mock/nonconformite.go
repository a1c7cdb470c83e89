package mocks

import (
	"context"
	"errors"

	"github.com/DavidAtikpo/irata-sub007/pkg/domain"
	kdbmock "github.com/DavidAtikpo/irata-sub007/pkg/domain/internal/db/mock"
	kdb "github.com/DavidAtikpo/irata-sub007/pkg/domain/nonconformite/db"
)

type AddActionArgs struct {
	NcId       string
	DocumentId string
}

type NonConformiteInterface struct {
	Impl struct {
		Create    func(context.Context, domain.NewNonConformiteParam) (string, error)
		Get       func(context.Context, []string) (map[string]domain.NonConformite, error)
		Find      func(context.Context, []domain.Gravite) ([]string, error)
		AddAction func(context.Context, string, string) error
	}
	Calls struct {
		Create    kdbmock.CallLog[domain.NewNonConformiteParam]
		Get       kdbmock.CallLog[[]string]
		Find      kdbmock.CallLog[[]domain.Gravite]
		AddAction kdbmock.CallLog[AddActionArgs]
	}
}

var _ kdb.NonConformiteInterface = &NonConformiteInterface{}

func NewNonConformiteInterface() *NonConformiteInterface {
	return &NonConformiteInterface{}
}

func (m *NonConformiteInterface) Create(ctx context.Context, param domain.NewNonConformiteParam) (string, error) {
	m.Calls.Create = append(m.Calls.Create, param)
	if m.Impl.Create != nil {
		return m.Impl.Create(ctx, param)
	}
	panic(errors.New("should not be called"))
}

func (m *NonConformiteInterface) Get(ctx context.Context, ids []string) (map[string]domain.NonConformite, error) {
	m.Calls.Get = append(m.Calls.Get, ids)
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, ids)
	}
	panic(errors.New("should not be called"))
}

func (m *NonConformiteInterface) Find(ctx context.Context, gravite []domain.Gravite) ([]string, error) {
	m.Calls.Find = append(m.Calls.Find, gravite)
	if m.Impl.Find != nil {
		return m.Impl.Find(ctx, gravite)
	}
	panic(errors.New("should not be called"))
}

func (m *NonConformiteInterface) AddAction(ctx context.Context, ncId string, documentId string) error {
	m.Calls.AddAction = append(m.Calls.AddAction, AddActionArgs{NcId: ncId, DocumentId: documentId})
	if m.Impl.AddAction != nil {
		return m.Impl.AddAction(ctx, ncId, documentId)
	}
	panic(errors.New("should not be called"))
}
