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
	kdb "github.com/DavidAtikpo/irata-sub007/pkg/domain/nonconformite/db"
)

type nonConformitePG struct { // implements kdb.NonConformiteInterface
	pool kpool.Pool
}

func New(pool kpool.Pool) *nonConformitePG {
	return &nonConformitePG{pool: pool}
}

var _ kdb.NonConformiteInterface = &nonConformitePG{}

func (n *nonConformitePG) Create(ctx context.Context, param domain.NewNonConformiteParam) (string, error) {
	conn, err := n.pool.Acquire(ctx)
	if err != nil {
		return "", err
	}
	defer conn.Release()

	ncId := uuid.NewString()
	if _, err := conn.Exec(
		ctx,
		`
		insert into "non_conformite" ("nc_id", "titre", "description", "gravite", "lieu", "detecteur_id")
		values ($1, $2, $3, $4, $5, $6)
		`,
		ncId, param.Titre, param.Description,
		param.Gravite.String(), param.Lieu, param.DetecteurId,
	); err != nil {
		return "", err
	}
	return ncId, nil
}

func (n *nonConformitePG) Get(ctx context.Context, ids []string) (map[string]domain.NonConformite, error) {
	if len(ids) == 0 {
		return map[string]domain.NonConformite{}, nil
	}

	conn, err := n.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	result := map[string]domain.NonConformite{}
	{
		rows, err := conn.Query(
			ctx,
			`
			select "nc_id", "titre", "description", "gravite", "lieu", "detecteur_id", "created_at", "updated_at"
			from "non_conformite"
			where "nc_id" = any($1::varchar[])
			`,
			ids,
		)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		for rows.Next() {
			nc := domain.NonConformite{ActionDocumentIds: []string{}}
			var gravite string
			if err := rows.Scan(
				&nc.Id, &nc.Titre, &nc.Description, &gravite,
				&nc.Lieu, &nc.DetecteurId, &nc.CreatedAt, &nc.UpdatedAt,
			); err != nil {
				return nil, err
			}
			g, err := domain.AsGravite(gravite)
			if err != nil {
				return nil, err
			}
			nc.Gravite = g
			result[nc.Id] = nc
		}
		if err := rows.Err(); err != nil {
			return nil, err
		}
	}

	// resolve corrective-action links
	{
		rows, err := conn.Query(
			ctx,
			`
			select "nc_id", "document_id" from "action_corrective"
			where "nc_id" = any($1::varchar[])
			order by "created_at"
			`,
			ids,
		)
		if err != nil {
			return nil, err
		}
		defer rows.Close()

		for rows.Next() {
			var ncId, documentId string
			if err := rows.Scan(&ncId, &documentId); err != nil {
				return nil, err
			}
			if nc, ok := result[ncId]; ok {
				nc.ActionDocumentIds = append(nc.ActionDocumentIds, documentId)
				result[ncId] = nc
			}
		}
		if err := rows.Err(); err != nil {
			return nil, err
		}
	}

	return result, nil
}

func (n *nonConformitePG) Find(ctx context.Context, gravite []domain.Gravite) ([]string, error) {
	conn, err := n.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	gravites := make([]string, 0, len(gravite))
	for _, g := range gravite {
		gravites = append(gravites, g.String())
	}

	rows, err := conn.Query(
		ctx,
		`
		select "nc_id" from "non_conformite"
		where ($1::varchar[] = '{}' or "gravite" = any($1::varchar[]))
		order by "created_at" desc
		`,
		gravites,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ncIds := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ncIds = append(ncIds, id)
	}
	return ncIds, rows.Err()
}

func (n *nonConformitePG) AddAction(ctx context.Context, ncId string, documentId string) error {
	conn, err := n.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(
		ctx,
		`
		insert into "action_corrective" ("nc_id", "document_id")
		values ($1, $2)
		`,
		ncId, documentId,
	); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.ForeignKeyViolation:
				return kpgerr.Missing{
					Table:    "non_conformite",
					Identity: fmt.Sprintf("non-conformité (id='%s')", ncId),
				}
			case pgerrcode.UniqueViolation:
				return kpgerr.Conflict{
					Table:  "action_corrective",
					Reason: fmt.Sprintf("document (id='%s') is already an action of a non-conformité", documentId),
				}
			}
		}
		return err
	}
	return nil
}
