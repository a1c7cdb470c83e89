package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v4"

	kpool "github.com/DavidAtikpo/irata-sub007/pkg/conn/db/postgres/pool"
	"github.com/DavidAtikpo/irata-sub007/pkg/domain"
	kdb "github.com/DavidAtikpo/irata-sub007/pkg/domain/document/db"
	kpgerr "github.com/DavidAtikpo/irata-sub007/pkg/domain/errors/dberrors/postgres"
	"github.com/DavidAtikpo/irata-sub007/pkg/utils/dataurl"
)

type documentPG struct { // implements kdb.DocumentInterface
	pool kpool.Pool
}

func New(pool kpool.Pool) *documentPG {
	return &documentPG{pool: pool}
}

var _ kdb.DocumentInterface = &documentPG{}

func (d *documentPG) Create(ctx context.Context, param kdb.NewDocumentParam) (string, error) {
	if err := param.Fields.Validate(); err != nil {
		return "", err
	}

	fields, err := json.Marshal(param.Fields)
	if err != nil {
		return "", err
	}

	documentId := uuid.NewString()
	status := param.Kind.Workflow().Initial()

	var primarySig *string
	var primarySignedAt *time.Time
	if s := param.PrimarySignature; s != nil {
		img := s.Image.String()
		primarySig = &img
		at := s.SignedAt
		primarySignedAt = &at
	}

	conn, err := d.pool.Acquire(ctx)
	if err != nil {
		return "", err
	}
	defer conn.Release()

	if _, err := conn.Exec(
		ctx,
		`
		insert into "document" (
			"document_id", "kind", "owner_user_id", "session_id", "fields",
			"primary_signature", "primary_signed_at", "status"
		)
		values ($1, $2, $3, $4, $5, $6, $7, $8)
		`,
		documentId, param.Kind.String(), param.OwnerUserId, param.SessionId,
		fields, primarySig, primarySignedAt, status.String(),
	); err != nil {
		return "", err
	}

	return documentId, nil
}

func (d *documentPG) Get(ctx context.Context, ids []string) (map[string]domain.Document, error) {
	if len(ids) == 0 {
		return map[string]domain.Document{}, nil
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
			"document_id", "kind", "owner_user_id", "session_id", "fields",
			"primary_signature", "primary_signed_at",
			"counter_signature", "counter_signed_at",
			"status", "created_at", "updated_at"
		from "document"
		where "document_id" = any($1::varchar[])
		`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := map[string]domain.Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		result[doc.Id] = doc
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// scanDocument reads one row of the full document column list.
func scanDocument(row pgx.Row) (domain.Document, error) {
	var (
		doc             domain.Document
		kind            string
		status          string
		fields          []byte
		primarySig      *string
		primarySignedAt *time.Time
		counterSig      *string
		counterSignedAt *time.Time
	)
	if err := row.Scan(
		&doc.Id, &kind, &doc.OwnerUserId, &doc.SessionId, &fields,
		&primarySig, &primarySignedAt, &counterSig, &counterSignedAt,
		&status, &doc.CreatedAt, &doc.UpdatedAt,
	); err != nil {
		return domain.Document{}, err
	}

	k, err := domain.AsDocumentKind(kind)
	if err != nil {
		return domain.Document{}, err
	}
	doc.Kind = k

	st, err := domain.AsDocumentStatus(status)
	if err != nil {
		return domain.Document{}, err
	}
	doc.Status = st

	f, err := domain.DecodeFields(k, fields)
	if err != nil {
		return domain.Document{}, err
	}
	doc.Fields = f

	if doc.PrimarySignature, err = scanSignature(primarySig, primarySignedAt); err != nil {
		return domain.Document{}, err
	}
	if doc.CounterSignature, err = scanSignature(counterSig, counterSignedAt); err != nil {
		return domain.Document{}, err
	}

	return doc, nil
}

func scanSignature(image *string, signedAt *time.Time) (*domain.Signature, error) {
	if image == nil || signedAt == nil {
		return nil, nil
	}
	img, err := dataurl.Parse(*image)
	if err != nil {
		return nil, err
	}
	return &domain.Signature{Image: img, SignedAt: *signedAt}, nil
}

func (d *documentPG) Find(ctx context.Context, query kdb.FindQuery) ([]string, error) {
	conn, err := d.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	kinds := make([]string, 0, len(query.Kind))
	for _, k := range query.Kind {
		kinds = append(kinds, k.String())
	}
	statuses := make([]string, 0, len(query.Status))
	for _, s := range query.Status {
		statuses = append(statuses, s.String())
	}

	rows, err := conn.Query(
		ctx,
		`
		select "document_id" from "document"
		where
			($1::varchar[] = '{}' or "kind" = any($1::varchar[]))
			and ($2::varchar[] = '{}' or "status" = any($2::varchar[]))
			and ($3::varchar is null or "owner_user_id" = $3)
			and ($4::varchar is null or "session_id" = $4)
		order by "created_at" desc
		`,
		kinds, statuses, query.OwnerUserId, query.SessionId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	documentIds := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		documentIds = append(documentIds, id)
	}
	return documentIds, rows.Err()
}

func (d *documentPG) SetPrimarySignature(ctx context.Context, documentId string, sig domain.Signature) error {
	conn, err := d.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	tag, err := conn.Exec(
		ctx,
		`
		update "document"
		set
			"primary_signature" = $1,
			"primary_signed_at" = $2,
			"updated_at" = now()
		where "document_id" = $3 and "primary_signature" is null
		`,
		sig.Image.String(), sig.SignedAt, documentId,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	// no row updated: missing document, or already signed.
	if err := d.expectExists(ctx, conn, documentId); err != nil {
		return err
	}
	return kpgerr.Conflict{
		Table:  "document",
		Reason: fmt.Sprintf("document (id='%s') already carries a primary signature", documentId),
	}
}

func (d *documentPG) Countersign(ctx context.Context, documentId string, from domain.DocumentStatus, sig domain.Signature) error {
	conn, err := d.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	tag, err := conn.Exec(
		ctx,
		`
		update "document"
		set
			"counter_signature" = $1,
			"counter_signed_at" = $2,
			"status" = $3,
			"updated_at" = now()
		where "document_id" = $4 and "status" = $5
		`,
		sig.Image.String(), sig.SignedAt,
		domain.StatusSigned.String(), documentId, from.String(),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	if err := d.expectExists(ctx, conn, documentId); err != nil {
		return err
	}
	// the row exists but its status moved under us.
	return fmt.Errorf(
		"document (id='%s') is not at status '%s' anymore: %w",
		documentId, from, domain.NewErrInvalidStatusChanging(from, domain.StatusSigned),
	)
}

func (d *documentPG) Publish(ctx context.Context, documentId string) (bool, error) {
	conn, err := d.pool.Acquire(ctx)
	if err != nil {
		return false, err
	}
	defer conn.Release()

	tag, err := conn.Exec(
		ctx,
		`
		update "document"
		set "status" = $1, "updated_at" = now()
		where "document_id" = $2 and "status" = $3
		`,
		domain.StatusPublished.String(), documentId, domain.StatusSigned.String(),
	)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 1 {
		return true, nil
	}

	var status string
	if err := conn.QueryRow(
		ctx,
		`select "status" from "document" where "document_id" = $1`,
		documentId,
	).Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, kpgerr.Missing{
				Table:    "document",
				Identity: fmt.Sprintf("document (id='%s')", documentId),
			}
		}
		return false, err
	}

	switch st := domain.DocumentStatus(status); st {
	case domain.StatusPublished, domain.StatusSent:
		return false, nil // already there. publish is idempotent.
	default:
		return false, domain.NewErrInvalidStatusChanging(st, domain.StatusPublished)
	}
}

func (d *documentPG) AddUserSignature(ctx context.Context, documentId string, userId string, sig domain.Signature) error {
	conn, err := d.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	if _, err := conn.Exec(
		ctx,
		`
		insert into "document_user_signature" ("document_id", "user_id", "signature", "signed_at")
		values ($1, $2, $3, $4)
		`,
		documentId, userId, sig.Image.String(), sig.SignedAt,
	); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.UniqueViolation:
				return kpgerr.Conflict{
					Table:  "document_user_signature",
					Reason: fmt.Sprintf("user (id='%s') already signed document (id='%s')", userId, documentId),
				}
			case pgerrcode.ForeignKeyViolation:
				return kpgerr.Missing{
					Table:    "document",
					Identity: fmt.Sprintf("document (id='%s')", documentId),
				}
			}
		}
		return err
	}
	return nil
}

func (d *documentPG) ListUserSignatures(ctx context.Context, documentId string) ([]domain.Signature, error) {
	conn, err := d.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`
		select "signature", "signed_at" from "document_user_signature"
		where "document_id" = $1
		order by "signed_at"
		`,
		documentId,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	signatures := []domain.Signature{}
	for rows.Next() {
		var (
			image    string
			signedAt time.Time
		)
		if err := rows.Scan(&image, &signedAt); err != nil {
			return nil, err
		}
		img, err := dataurl.Parse(image)
		if err != nil {
			return nil, err
		}
		signatures = append(signatures, domain.Signature{Image: img, SignedAt: signedAt})
	}
	return signatures, rows.Err()
}

func (d *documentPG) ListInductions(ctx context.Context, sessionId string, userId string) ([]domain.InductionEntry, error) {
	conn, err := d.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Release()

	rows, err := conn.Query(
		ctx,
		`
		select
			"d"."document_id", "d"."kind", "d"."owner_user_id", "d"."session_id", "d"."fields",
			"d"."primary_signature", "d"."primary_signed_at",
			"d"."counter_signature", "d"."counter_signed_at",
			"d"."status", "d"."created_at", "d"."updated_at",
			"s"."signature", "s"."signed_at"
		from "document" as "d"
		left outer join "document_user_signature" as "s"
			on "d"."document_id" = "s"."document_id" and "s"."user_id" = $1
		where
			"d"."session_id" = $2
			and "d"."kind" = $3
			and "d"."status" in ($4, $5)
		order by "d"."created_at"
		`,
		userId, sessionId, domain.KindInduction.String(),
		domain.StatusPublished.String(), domain.StatusSent.String(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []domain.InductionEntry{}
	for rows.Next() {
		var (
			doc             domain.Document
			kind            string
			status          string
			fields          []byte
			primarySig      *string
			primarySignedAt *time.Time
			counterSig      *string
			counterSignedAt *time.Time
			userSig         *string
			userSignedAt    *time.Time
		)
		if err := rows.Scan(
			&doc.Id, &kind, &doc.OwnerUserId, &doc.SessionId, &fields,
			&primarySig, &primarySignedAt, &counterSig, &counterSignedAt,
			&status, &doc.CreatedAt, &doc.UpdatedAt,
			&userSig, &userSignedAt,
		); err != nil {
			return nil, err
		}

		k, err := domain.AsDocumentKind(kind)
		if err != nil {
			return nil, err
		}
		doc.Kind = k
		st, err := domain.AsDocumentStatus(status)
		if err != nil {
			return nil, err
		}
		doc.Status = st
		if doc.Fields, err = domain.DecodeFields(k, fields); err != nil {
			return nil, err
		}
		if doc.PrimarySignature, err = scanSignature(primarySig, primarySignedAt); err != nil {
			return nil, err
		}
		if doc.CounterSignature, err = scanSignature(counterSig, counterSignedAt); err != nil {
			return nil, err
		}

		entry := domain.InductionEntry{Document: doc}
		if entry.UserSignature, err = scanSignature(userSig, userSignedAt); err != nil {
			return nil, err
		}
		entry.UserHasSigned = entry.UserSignature != nil

		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (d *documentPG) expectExists(ctx context.Context, conn kpool.Conn, documentId string) error {
	var found bool
	if err := conn.QueryRow(
		ctx,
		`select true from "document" where "document_id" = $1`,
		documentId,
	).Scan(&found); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return kpgerr.Missing{
				Table:    "document",
				Identity: fmt.Sprintf("document (id='%s')", documentId),
			}
		}
		return err
	}
	return nil
}
