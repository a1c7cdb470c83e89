package mocks

import (
	"context"
	"errors"

	"github.com/DavidAtikpo/irata-sub007/pkg/domain"
	kdb "github.com/DavidAtikpo/irata-sub007/pkg/domain/devis/db"
	kdbmock "github.com/DavidAtikpo/irata-sub007/pkg/domain/internal/db/mock"
)

type DecideArgs struct {
	DevisId string
	To      domain.DevisStatut
}

type AttachContratArgs struct {
	DevisId    string
	DocumentId string
}

type DevisInterface struct {
	Impl struct {
		Create        func(context.Context, domain.NewDevisParam) (string, error)
		Get           func(context.Context, []string) (map[string]domain.Devis, error)
		Find          func(context.Context, kdb.FindQuery) ([]string, error)
		Decide        func(context.Context, string, domain.DevisStatut) error
		AttachContrat func(context.Context, string, string) error
	}
	Calls struct {
		Create        kdbmock.CallLog[domain.NewDevisParam]
		Get           kdbmock.CallLog[[]string]
		Find          kdbmock.CallLog[kdb.FindQuery]
		Decide        kdbmock.CallLog[DecideArgs]
		AttachContrat kdbmock.CallLog[AttachContratArgs]
	}
}

var _ kdb.DevisInterface = &DevisInterface{}

func NewDevisInterface() *DevisInterface {
	return &DevisInterface{}
}

func (m *DevisInterface) Create(ctx context.Context, param domain.NewDevisParam) (string, error) {
	m.Calls.Create = append(m.Calls.Create, param)
	if m.Impl.Create != nil {
		return m.Impl.Create(ctx, param)
	}
	panic(errors.New("should not be called"))
}

func (m *DevisInterface) Get(ctx context.Context, ids []string) (map[string]domain.Devis, error) {
	m.Calls.Get = append(m.Calls.Get, ids)
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, ids)
	}
	panic(errors.New("should not be called"))
}

func (m *DevisInterface) Find(ctx context.Context, query kdb.FindQuery) ([]string, error) {
	m.Calls.Find = append(m.Calls.Find, query)
	if m.Impl.Find != nil {
		return m.Impl.Find(ctx, query)
	}
	panic(errors.New("should not be called"))
}

func (m *DevisInterface) Decide(ctx context.Context, devisId string, to domain.DevisStatut) error {
	m.Calls.Decide = append(m.Calls.Decide, DecideArgs{DevisId: devisId, To: to})
	if m.Impl.Decide != nil {
		return m.Impl.Decide(ctx, devisId, to)
	}
	panic(errors.New("should not be called"))
}

func (m *DevisInterface) AttachContrat(ctx context.Context, devisId string, documentId string) error {
	m.Calls.AttachContrat = append(
		m.Calls.AttachContrat,
		AttachContratArgs{DevisId: devisId, DocumentId: documentId},
	)
	if m.Impl.AttachContrat != nil {
		return m.Impl.AttachContrat(ctx, devisId, documentId)
	}
	panic(errors.New("should not be called"))
}
