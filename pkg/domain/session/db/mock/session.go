package mocks

import (
	"context"
	"errors"

	"github.com/DavidAtikpo/irata-sub007/pkg/domain"
	kdbmock "github.com/DavidAtikpo/irata-sub007/pkg/domain/internal/db/mock"
	kdb "github.com/DavidAtikpo/irata-sub007/pkg/domain/session/db"
)

type SessionInterface struct {
	Impl struct {
		Create         func(context.Context, domain.NewSessionParam) (string, error)
		Get            func(context.Context, []string) (map[string]domain.TrainingSession, error)
		Find           func(context.Context) ([]string, error)
		AddAttendance  func(context.Context, domain.Attendance) error
		ListAttendance func(context.Context, string) ([]domain.Attendance, error)
	}
	Calls struct {
		Create         kdbmock.CallLog[domain.NewSessionParam]
		Get            kdbmock.CallLog[[]string]
		Find           kdbmock.CallLog[struct{}]
		AddAttendance  kdbmock.CallLog[domain.Attendance]
		ListAttendance kdbmock.CallLog[string]
	}
}

var _ kdb.SessionInterface = &SessionInterface{}

func NewSessionInterface() *SessionInterface {
	return &SessionInterface{}
}

func (m *SessionInterface) Create(ctx context.Context, param domain.NewSessionParam) (string, error) {
	m.Calls.Create = append(m.Calls.Create, param)
	if m.Impl.Create != nil {
		return m.Impl.Create(ctx, param)
	}
	panic(errors.New("should not be called"))
}

func (m *SessionInterface) Get(ctx context.Context, ids []string) (map[string]domain.TrainingSession, error) {
	m.Calls.Get = append(m.Calls.Get, ids)
	if m.Impl.Get != nil {
		return m.Impl.Get(ctx, ids)
	}
	panic(errors.New("should not be called"))
}

func (m *SessionInterface) Find(ctx context.Context) ([]string, error) {
	m.Calls.Find = append(m.Calls.Find, struct{}{})
	if m.Impl.Find != nil {
		return m.Impl.Find(ctx)
	}
	panic(errors.New("should not be called"))
}

func (m *SessionInterface) AddAttendance(ctx context.Context, attendance domain.Attendance) error {
	m.Calls.AddAttendance = append(m.Calls.AddAttendance, attendance)
	if m.Impl.AddAttendance != nil {
		return m.Impl.AddAttendance(ctx, attendance)
	}
	panic(errors.New("should not be called"))
}

func (m *SessionInterface) ListAttendance(ctx context.Context, sessionId string) ([]domain.Attendance, error) {
	m.Calls.ListAttendance = append(m.Calls.ListAttendance, sessionId)
	if m.Impl.ListAttendance != nil {
		return m.Impl.ListAttendance(ctx, sessionId)
	}
	panic(errors.New("should not be called"))
}
