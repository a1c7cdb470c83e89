package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"

	kpool "github.com/DavidAtikpo/irata-sub007/pkg/conn/db/postgres/pool"
	"github.com/DavidAtikpo/irata-sub007/pkg/domain"
	kpgerr "github.com/DavidAtikpo/irata-sub007/pkg/domain/errors/dberrors/postgres"
	kdb "github.com/DavidAtikpo/irata-sub007/pkg/domain/session/db"
	"github.com/DavidAtikpo/irata-sub007/pkg/utils/dataurl"
)

type sessionPG struct { // implements kdb.SessionInterface
	pool kpool.Pool
}

func New(pool kpool.Pool) *sessionPG {
	return &sessionPG{pool: pool}
}

var _ kdb.SessionInterface = &sessionPG{}

func (s *sessionPG) Create(ctx context.Context, param domain.NewSessionParam) (string, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return "", err
	}
	defer conn.Release()

	sessionId := uuid.NewString()
	if _, err := conn.Exec(
		ctx,
		`
		insert into "training_session" ("session_id", "name", "niveau", "start_date", "end_date")
		values ($1, $2, $3, $4, $5)
		`,
		sessionId, param.Name, int(param.Niveau), param.StartDate, param.EndDate,
	); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return "", kpgerr.Conflict{
				Table:  "training_session",
				Reason: fmt.Sprintf("session name '%s' is already taken", param.Name),
			}
		}
		return "", err
	}
	return sessionId, nil
}

func (s *sessionPG) Get(ctx context.Context, ids []string) (map[string]domain.TrainingSession, error) {
	if len(ids) == 0 {
		return map[string]domain.TrainingSession{}, nil
	}

	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`
		select "session_id", "name", "niveau", "start_date", "end_date", "created_at"
		from "training_session"
		where "session_id" = any($1::varchar[])
		`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := map[string]domain.TrainingSession{}
	for rows.Next() {
		session := domain.TrainingSession{}
		var niveau int
		if err := rows.Scan(
			&session.Id, &session.Name, &niveau,
			&session.StartDate, &session.EndDate, &session.CreatedAt,
		); err != nil {
			return nil, err
		}
		n, err := domain.AsNiveau(niveau)
		if err != nil {
			return nil, err
		}
		session.Niveau = n
		result[session.Id] = session
	}
	return result, rows.Err()
}

func (s *sessionPG) Find(ctx context.Context) ([]string, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`select "session_id" from "training_session" order by "start_date" desc`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessionIds := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		sessionIds = append(sessionIds, id)
	}
	return sessionIds, rows.Err()
}

func (s *sessionPG) AddAttendance(ctx context.Context, attendance domain.Attendance) error {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(
		ctx,
		`
		insert into "attendance" ("session_id", "user_id", "day", "signature", "signed_at")
		values ($1, $2, $3, $4, $5)
		`,
		attendance.SessionId, attendance.UserId, attendance.Day,
		attendance.Signature.Image.String(), attendance.Signature.SignedAt,
	); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.UniqueViolation:
				return kpgerr.Conflict{
					Table: "attendance",
					Reason: fmt.Sprintf(
						"user (id='%s') already signed attendance of session (id='%s') for %s",
						attendance.UserId, attendance.SessionId,
						attendance.Day.Format("2006-01-02"),
					),
				}
			case pgerrcode.ForeignKeyViolation:
				return kpgerr.Missing{
					Table:    "training_session",
					Identity: fmt.Sprintf("session (id='%s')", attendance.SessionId),
				}
			}
		}
		return err
	}
	return nil
}

func (s *sessionPG) ListAttendance(ctx context.Context, sessionId string) ([]domain.Attendance, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`
		select "session_id", "user_id", "day", "signature", "signed_at", "created_at"
		from "attendance"
		where "session_id" = $1
		order by "day", "user_id"
		`,
		sessionId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attendances := []domain.Attendance{}
	for rows.Next() {
		a := domain.Attendance{}
		var signature string
		if err := rows.Scan(
			&a.SessionId, &a.UserId, &a.Day,
			&signature, &a.Signature.SignedAt, &a.CreatedAt,
		); err != nil {
			return nil, err
		}
		img, err := dataurl.Parse(signature)
		if err != nil {
			return nil, err
		}
		a.Signature.Image = img
		attendances = append(attendances, a)
	}
	return attendances, rows.Err()
}
