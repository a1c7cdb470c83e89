package mocks

import (
	"context"
	"errors"

	"github.com/DavidAtikpo/irata-sub007/pkg/domain"
	kdb "github.com/DavidAtikpo/irata-sub007/pkg/domain/document/db"
	kdbmock "github.com/DavidAtikpo/irata-sub007/pkg/domain/internal/db/mock"
)

type SetPrimarySignatureArgs struct {
	DocumentId string
	Signature  domain.Signature
}

type CountersignArgs struct {
	DocumentId string
	From       domain.DocumentStatus
	Signature  domain.Signature
}

type AddUserSignatureArgs struct {
	DocumentId string
	UserId     string
	Signature  domain.Signature
}

type ListInductionsArgs struct {
	SessionId string
	UserId    string
}

type DocumentInterface struct {
	Impl struct {
		Create              func(context.Context, kdb.NewDocumentParam) (string, error)
		Get                 func(context.Context, []string) (map[string]domain.Document, error)
		Find                func(context.Context, kdb.FindQuery) ([]string, error)
		SetPrimarySignature func(context.Context, string, domain.Signature) error
		Countersign         func(context.Context, string, domain.DocumentStatus, domain.Signature) error
		Publish             func(context.Context, string) (bool, error)
		AddUserSignature    func(context.Context, string, string, domain.Signature) error
		ListUserSignatures  func(context.Context, string) ([]domain.Signature, error)
		ListInductions      func(context.Context, string, string) ([]domain.InductionEntry, error)
	}
	Calls struct {
		Create              kdbmock.CallLog[kdb.NewDocumentParam]
		Get                 kdbmock.CallLog[[]string]
		Find                kdbmock.CallLog[kdb.FindQuery]
		SetPrimarySignature kdbmock.CallLog[SetPrimarySignatureArgs]
		Countersign         kdbmock.CallLog[CountersignArgs]
		Publish             kdbmock.CallLog[string]
		AddUserSignature    kdbmock.CallLog[AddUserSignatureArgs]
		ListUserSignatures  kdbmock.CallLog[string]
		ListInductions      kdbmock.CallLog[ListInductionsArgs]
	}
}

var _ kdb.DocumentInterface = &DocumentInterface{}

func NewDocumentInterface() *DocumentInterface {
	return &DocumentInterface{}
}

func (m *DocumentInterface) Create(ctx context.Context, param kdb.NewDocumentParam) (string, error) {
	m.Calls.Create = append(m.Calls.Create, param)
	if m.Impl.Create != nil {
		return m.Impl.Create(ctx, param)
	}
	panic(errors.New("should not be called"))
}

func (m *DocumentInterface) Get(ctx context.Context, ids []string) (map[string]domain.Document, error) {
	m.Calls.Get = append(m.Calls.Get, ids)
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, ids)
	}
	panic(errors.New("should not be called"))
}

func (m *DocumentInterface) Find(ctx context.Context, query kdb.FindQuery) ([]string, error) {
	m.Calls.Find = append(m.Calls.Find, query)
	if m.Impl.Find != nil {
		return m.Impl.Find(ctx, query)
	}
	panic(errors.New("should not be called"))
}

func (m *DocumentInterface) SetPrimarySignature(ctx context.Context, documentId string, sig domain.Signature) error {
	m.Calls.SetPrimarySignature = append(
		m.Calls.SetPrimarySignature,
		SetPrimarySignatureArgs{DocumentId: documentId, Signature: sig},
	)
	if m.Impl.SetPrimarySignature != nil {
		return m.Impl.SetPrimarySignature(ctx, documentId, sig)
	}
	panic(errors.New("should not be called"))
}

func (m *DocumentInterface) Countersign(ctx context.Context, documentId string, from domain.DocumentStatus, sig domain.Signature) error {
	m.Calls.Countersign = append(
		m.Calls.Countersign,
		CountersignArgs{DocumentId: documentId, From: from, Signature: sig},
	)
	if m.Impl.Countersign != nil {
		return m.Impl.Countersign(ctx, documentId, from, sig)
	}
	panic(errors.New("should not be called"))
}

func (m *DocumentInterface) Publish(ctx context.Context, documentId string) (bool, error) {
	m.Calls.Publish = append(m.Calls.Publish, documentId)
	if m.Impl.Publish != nil {
		return m.Impl.Publish(ctx, documentId)
	}
	panic(errors.New("should not be called"))
}

func (m *DocumentInterface) AddUserSignature(ctx context.Context, documentId string, userId string, sig domain.Signature) error {
	m.Calls.AddUserSignature = append(
		m.Calls.AddUserSignature,
		AddUserSignatureArgs{DocumentId: documentId, UserId: userId, Signature: sig},
	)
	if m.Impl.AddUserSignature != nil {
		return m.Impl.AddUserSignature(ctx, documentId, userId, sig)
	}
	panic(errors.New("should not be called"))
}

func (m *DocumentInterface) ListUserSignatures(ctx context.Context, documentId string) ([]domain.Signature, error) {
	m.Calls.ListUserSignatures = append(m.Calls.ListUserSignatures, documentId)
	if m.Impl.ListUserSignatures != nil {
		return m.Impl.ListUserSignatures(ctx, documentId)
	}
	panic(errors.New("should not be called"))
}

func (m *DocumentInterface) ListInductions(ctx context.Context, sessionId string, userId string) ([]domain.InductionEntry, error) {
	m.Calls.ListInductions = append(
		m.Calls.ListInductions,
		ListInductionsArgs{SessionId: sessionId, UserId: userId},
	)
	if m.Impl.ListInductions != nil {
		return m.Impl.ListInductions(ctx, sessionId, userId)
	}
	panic(errors.New("should not be called"))
}
