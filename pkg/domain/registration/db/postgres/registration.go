package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v4"

	kpool "github.com/DavidAtikpo/irata-sub007/pkg/conn/db/postgres/pool"
	"github.com/DavidAtikpo/irata-sub007/pkg/domain"
	kpgerr "github.com/DavidAtikpo/irata-sub007/pkg/domain/errors/dberrors/postgres"
	kdb "github.com/DavidAtikpo/irata-sub007/pkg/domain/registration/db"
)

type registrationPG struct { // implements kdb.RegistrationInterface
	pool kpool.Pool
}

func New(pool kpool.Pool) *registrationPG {
	return &registrationPG{pool: pool}
}

var _ kdb.RegistrationInterface = &registrationPG{}

func (r *registrationPG) Create(ctx context.Context, param domain.NewRegistrationParam) (string, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return "", err
	}
	defer conn.Release()

	registrationId := uuid.NewString()
	if _, err := conn.Exec(
		ctx,
		`
		insert into "registration" ("registration_id", "email", "prenom", "nom", "niveau", "session_id", "step")
		values ($1, $2, $3, $4, $5, $6, 1)
		`,
		registrationId, param.Email, param.Prenom, param.Nom,
		int(param.Niveau), param.SessionId,
	); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return "", fmt.Errorf(
				"%w: email '%s' at niveau %d", domain.ErrAlreadyRegistered,
				param.Email, param.Niveau,
			)
		}
		return "", err
	}

	return registrationId, nil
}

func (r *registrationPG) Get(ctx context.Context, registrationId string) (domain.Registration, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return domain.Registration{}, err
	}
	defer conn.Release()

	reg, err := scanRegistration(conn.QueryRow(
		ctx,
		`
		select "registration_id", "email", "prenom", "nom", "niveau", "session_id", "step", "created_at", "updated_at"
		from "registration"
		where "registration_id" = $1
		`,
		registrationId,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Registration{}, kpgerr.Missing{
			Table:    "registration",
			Identity: fmt.Sprintf("registration (id='%s')", registrationId),
		}
	}
	return reg, err
}

func scanRegistration(row pgx.Row) (domain.Registration, error) {
	reg := domain.Registration{}
	var niveau int
	if err := row.Scan(
		&reg.Id, &reg.Email, &reg.Prenom, &reg.Nom, &niveau,
		&reg.SessionId, &reg.Step, &reg.CreatedAt, &reg.UpdatedAt,
	); err != nil {
		return domain.Registration{}, err
	}
	n, err := domain.AsNiveau(niveau)
	if err != nil {
		return domain.Registration{}, err
	}
	reg.Niveau = n
	return reg, nil
}

func (r *registrationPG) Complete(ctx context.Context, registrationId string) error {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	tag, err := conn.Exec(
		ctx,
		`
		update "registration"
		set "step" = 2, "updated_at" = now()
		where "registration_id" = $1 and "step" = 1
		`,
		registrationId,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return kpgerr.Missing{
			Table:    "registration",
			Identity: fmt.Sprintf("registration (id='%s', step=1)", registrationId),
		}
	}
	return nil
}

func (r *registrationPG) FindByEmail(ctx context.Context, email string) ([]domain.Registration, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`
		select "registration_id", "email", "prenom", "nom", "niveau", "session_id", "step", "created_at", "updated_at"
		from "registration"
		where "email" = $1
		order by "created_at" desc
		`,
		email,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	registrations := []domain.Registration{}
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, err
		}
		registrations = append(registrations, reg)
	}
	return registrations, rows.Err()
}

type userPG struct { // implements kdb.UserInterface
	pool kpool.Pool
}

func NewUser(pool kpool.Pool) *userPG {
	return &userPG{pool: pool}
}

var _ kdb.UserInterface = &userPG{}

func (u *userPG) Create(ctx context.Context, param domain.NewUserParam) (string, error) {
	conn, err := u.pool.Acquire(ctx)
	if err != nil {
		return "", err
	}
	defer conn.Release()

	userId := uuid.NewString()
	if _, err := conn.Exec(
		ctx,
		`
		insert into "users" ("user_id", "email", "prenom", "nom", "role", "password_hash", "adresse", "telephone", "birth_date")
		values ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`,
		userId, param.Email, param.Prenom, param.Nom,
		domain.RoleUser.String(), param.PasswordHash,
		param.Adresse, param.Telephone, param.BirthDate,
	); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return "", kpgerr.Conflict{
				Table:  "users",
				Reason: fmt.Sprintf("email '%s' is already taken", param.Email),
			}
		}
		return "", err
	}
	return userId, nil
}

func (u *userPG) Get(ctx context.Context, userId string) (domain.User, error) {
	return u.getBy(ctx, `"user_id"`, userId)
}

func (u *userPG) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return u.getBy(ctx, `"email"`, email)
}

func (u *userPG) getBy(ctx context.Context, column string, key string) (domain.User, error) {
	conn, err := u.pool.Acquire(ctx)
	if err != nil {
		return domain.User{}, err
	}
	defer conn.Release()

	user := domain.User{}
	var role string
	if err := conn.QueryRow(
		ctx,
		`
		select "user_id", "email", "prenom", "nom", "role", "password_hash", "created_at"
		from "users"
		where `+column+` = $1
		`,
		key,
	).Scan(
		&user.Id, &user.Email, &user.Prenom, &user.Nom,
		&role, &user.PasswordHash, &user.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, kpgerr.Missing{
				Table:    "users",
				Identity: fmt.Sprintf("user (%s='%s')", column, key),
			}
		}
		return domain.User{}, err
	}

	ro, err := domain.AsRole(role)
	if err != nil {
		return domain.User{}, err
	}
	user.Role = ro
	return user, nil
}
