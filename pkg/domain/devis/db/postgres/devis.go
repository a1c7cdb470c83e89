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
	kdb "github.com/DavidAtikpo/irata-sub007/pkg/domain/devis/db"
	kpgerr "github.com/DavidAtikpo/irata-sub007/pkg/domain/errors/dberrors/postgres"
)

type devisPG struct { // implements kdb.DevisInterface
	pool kpool.Pool
}

func New(pool kpool.Pool) *devisPG {
	return &devisPG{pool: pool}
}

var _ kdb.DevisInterface = &devisPG{}

func (d *devisPG) Create(ctx context.Context, param domain.NewDevisParam) (string, error) {
	conn, err := d.pool.Acquire(ctx)
	if err != nil {
		return "", err
	}
	defer conn.Release()

	devisId := uuid.NewString()
	if _, err := conn.Exec(
		ctx,
		`
		insert into "devis" ("devis_id", "user_id", "session_id", "client_name", "montant_cents", "statut")
		values ($1, $2, $3, $4, $5, $6)
		`,
		devisId, param.UserId, param.SessionId, param.ClientName,
		param.MontantCents, domain.DevisEnAttente.String(),
	); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			// partial unique index: one en_attente devis per (user, session)
			return "", kpgerr.Conflict{
				Table: "devis",
				Reason: fmt.Sprintf(
					"user (id='%s') already has an outstanding devis for session (id='%s')",
					param.UserId, param.SessionId,
				),
			}
		}
		return "", err
	}
	return devisId, nil
}

func (d *devisPG) Get(ctx context.Context, ids []string) (map[string]domain.Devis, error) {
	if len(ids) == 0 {
		return map[string]domain.Devis{}, nil
	}

	conn, err := d.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`
		select
			"devis_id", "user_id", "session_id", "client_name",
			"montant_cents", "statut", "contrat_document_id",
			"created_at", "updated_at"
		from "devis"
		where "devis_id" = any($1::varchar[])
		`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := map[string]domain.Devis{}
	for rows.Next() {
		devis := domain.Devis{}
		var statut string
		if err := rows.Scan(
			&devis.Id, &devis.UserId, &devis.SessionId, &devis.ClientName,
			&devis.MontantCents, &statut, &devis.ContratDocumentId,
			&devis.CreatedAt, &devis.UpdatedAt,
		); err != nil {
			return nil, err
		}
		st, err := domain.AsDevisStatut(statut)
		if err != nil {
			return nil, err
		}
		devis.Statut = st
		result[devis.Id] = devis
	}
	return result, rows.Err()
}

func (d *devisPG) Find(ctx context.Context, query kdb.FindQuery) ([]string, error) {
	conn, err := d.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	statuts := make([]string, 0, len(query.Statut))
	for _, s := range query.Statut {
		statuts = append(statuts, s.String())
	}

	rows, err := conn.Query(
		ctx,
		`
		select "devis_id" from "devis"
		where
			($1::varchar is null or "user_id" = $1)
			and ($2::varchar is null or "session_id" = $2)
			and ($3::varchar[] = '{}' or "statut" = any($3::varchar[]))
		order by "created_at" desc
		`,
		query.UserId, query.SessionId, statuts,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	devisIds := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		devisIds = append(devisIds, id)
	}
	return devisIds, rows.Err()
}

func (d *devisPG) Decide(ctx context.Context, devisId string, to domain.DevisStatut) error {
	if to != domain.DevisValide && to != domain.DevisRefuse {
		return domain.NewErrInvalidDevisDecision(domain.DevisEnAttente, to)
	}

	conn, err := d.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	tag, err := conn.Exec(
		ctx,
		`
		update "devis"
		set "statut" = $1, "updated_at" = now()
		where "devis_id" = $2 and "statut" = $3
		`,
		to.String(), devisId, domain.DevisEnAttente.String(),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var statut string
	if err := conn.QueryRow(
		ctx,
		`select "statut" from "devis" where "devis_id" = $1`,
		devisId,
	).Scan(&statut); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return kpgerr.Missing{
				Table:    "devis",
				Identity: fmt.Sprintf("devis (id='%s')", devisId),
			}
		}
		return err
	}
	return domain.NewErrInvalidDevisDecision(domain.DevisStatut(statut), to)
}

func (d *devisPG) AttachContrat(ctx context.Context, devisId string, documentId string) error {
	conn, err := d.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	tag, err := conn.Exec(
		ctx,
		`
		update "devis"
		set "contrat_document_id" = $1, "updated_at" = now()
		where "devis_id" = $2 and "statut" = $3 and "contrat_document_id" is null
		`,
		documentId, devisId, domain.DevisValide.String(),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var statut string
	var contratDocumentId *string
	if err := conn.QueryRow(
		ctx,
		`select "statut", "contrat_document_id" from "devis" where "devis_id" = $1`,
		devisId,
	).Scan(&statut, &contratDocumentId); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return kpgerr.Missing{
				Table:    "devis",
				Identity: fmt.Sprintf("devis (id='%s')", devisId),
			}
		}
		return err
	}
	if contratDocumentId != nil {
		return kpgerr.Conflict{
			Table:  "devis",
			Reason: fmt.Sprintf("devis (id='%s') already has a contract", devisId),
		}
	}
	return fmt.Errorf("%w: devis (id='%s') is '%s'", domain.ErrDevisNotValide, devisId, statut)
}
