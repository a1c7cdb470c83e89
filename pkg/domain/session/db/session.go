package db

import (
	"context"

	"github.com/DavidAtikpo/irata-sub007/pkg/domain"
)

type SessionInterface interface {
	// Create schedules a training session and returns its id.
	//
	// Duplicate session name is domain.ErrConflict.
	Create(ctx context.Context, param domain.NewSessionParam) (string, error)

	Get(ctx context.Context, ids []string) (map[string]domain.TrainingSession, error)

	// Find lists every session id, newest start date first.
	Find(ctx context.Context) ([]string, error)

	// AddAttendance records one trainee's signature for one day.
	//
	// Re-signing the same (session, user, day) is domain.ErrConflict.
	AddAttendance(ctx context.Context, attendance domain.Attendance) error

	// ListAttendance returns the attendance rows of a session, oldest first.
	ListAttendance(ctx context.Context, sessionId string) ([]domain.Attendance, error)
}
