package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	apinc "github.com/DavidAtikpo/irata-sub007/pkg/api/types/nonconformites"
	binddoc "github.com/DavidAtikpo/irata-sub007/pkg/bindings/documents"
	binderr "github.com/DavidAtikpo/irata-sub007/pkg/bindings/errors"
	bindnc "github.com/DavidAtikpo/irata-sub007/pkg/bindings/nonconformites"
	"github.com/DavidAtikpo/irata-sub007/pkg/domain"
	kdocdb "github.com/DavidAtikpo/irata-sub007/pkg/domain/document/db"
	kncdb "github.com/DavidAtikpo/irata-sub007/pkg/domain/nonconformite/db"
)

func getNonConformite(c echo.Context, dbNc kncdb.NonConformiteInterface, ncId string) (domain.NonConformite, *echo.HTTPError) {
	ncs, err := dbNc.Get(c.Request().Context(), []string{ncId})
	if err != nil {
		return domain.NonConformite{}, binderr.InternalServerError(err)
	}
	nc, ok := ncs[ncId]
	if !ok {
		return domain.NonConformite{}, binderr.NotFound()
	}
	return nc, nil
}

// NonConformiteCreateHandler logs a non-conformité.
//
// Any logged-in user reports; the reporter is recorded as détecteur.
func NonConformiteCreateHandler(dbNc kncdb.NonConformiteInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		actor, hterr := actorOf(c)
		if hterr != nil {
			return hterr
		}

		spec := new(apinc.NonConformiteSpec)
		if err := json.NewDecoder(c.Request().Body).Decode(spec); err != nil {
			return binderr.BadRequest("can not understand the requested json", err)
		}
		if spec.Titre == "" || spec.Description == "" {
			return binderr.BadRequest("titre and description are required", nil)
		}
		gravite, err := domain.AsGravite(spec.Gravite)
		if err != nil {
			return binderr.BadRequest(err.Error(), err)
		}

		detecteurId := actor.UserId
		ncId, err := dbNc.Create(ctx, domain.NewNonConformiteParam{
			Titre:       spec.Titre,
			Description: spec.Description,
			Gravite:     gravite,
			Lieu:        spec.Lieu,
			DetecteurId: &detecteurId,
		})
		if err != nil {
			return dbError(err)
		}

		nc, hterr := getNonConformite(c, dbNc, ncId)
		if hterr != nil {
			return hterr
		}
		return c.JSON(http.StatusOK, bindnc.ComposeDetail(nc))
	}
}

// FindNonConformiteHandler lists non-conformités, newest first, optionally
// narrowed by `gravite` (repeatable). Admin only.
func FindNonConformiteHandler(dbNc kncdb.NonConformiteInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		gravites := []domain.Gravite{}
		for _, g := range c.QueryParams()["gravite"] {
			gravite, err := domain.AsGravite(g)
			if err != nil {
				return binderr.BadRequest(err.Error(), err)
			}
			gravites = append(gravites, gravite)
		}

		ids, err := dbNc.Find(ctx, gravites)
		if err != nil {
			return binderr.InternalServerError(err)
		}
		ncs, err := dbNc.Get(ctx, ids)
		if err != nil {
			return binderr.InternalServerError(err)
		}

		details := []apinc.Detail{}
		for _, id := range ids {
			if nc, ok := ncs[id]; ok {
				details = append(details, bindnc.ComposeDetail(nc))
			}
		}
		return c.JSON(http.StatusOK, details)
	}
}

func GetNonConformiteHandler(dbNc kncdb.NonConformiteInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		nc, hterr := getNonConformite(c, dbNc, c.Param("ncId"))
		if hterr != nil {
			return hterr
		}
		return c.JSON(http.StatusOK, bindnc.ComposeDetail(nc))
	}
}

// NonConformiteActionHandler opens a corrective-action document on a
// non-conformité. Admin only.
//
// The new document starts the admin-first signing workflow: countersign,
// publish, then the responsable signs.
func NonConformiteActionHandler(
	dbNc kncdb.NonConformiteInterface,
	dbDoc kdocdb.DocumentInterface,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		spec := new(apinc.ActionSpec)
		if err := json.NewDecoder(c.Request().Body).Decode(spec); err != nil {
			return binderr.BadRequest("can not understand the requested json", err)
		}

		ncId := c.Param("ncId")
		nc, hterr := getNonConformite(c, dbNc, ncId)
		if hterr != nil {
			return hterr
		}

		fields := &domain.CorrectiveActionFields{
			NonConformiteId: nc.Id,
			Action:          spec.Action,
			Responsable:     spec.Responsable,
			Echeance:        spec.Echeance,
		}
		if err := fields.Validate(); err != nil {
			return binderr.BadRequest(err.Error(), err)
		}

		documentId, err := dbDoc.Create(ctx, kdocdb.NewDocumentParam{
			Kind:   domain.KindCorrectiveAction,
			Fields: fields,
		})
		if err != nil {
			return dbError(err)
		}
		if err := dbNc.AddAction(ctx, ncId, documentId); err != nil {
			return dbError(err)
		}

		doc, hterr := getDocument(c, dbDoc, documentId)
		if hterr != nil {
			return hterr
		}
		return c.JSON(http.StatusOK, binddoc.ComposeDetail(doc))
	}
}
