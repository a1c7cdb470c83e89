package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	apidevis "github.com/DavidAtikpo/irata-sub007/pkg/api/types/devis"
	binddevis "github.com/DavidAtikpo/irata-sub007/pkg/bindings/devis"
	binddoc "github.com/DavidAtikpo/irata-sub007/pkg/bindings/documents"
	binderr "github.com/DavidAtikpo/irata-sub007/pkg/bindings/errors"
	"github.com/DavidAtikpo/irata-sub007/pkg/domain"
	kdevisdb "github.com/DavidAtikpo/irata-sub007/pkg/domain/devis/db"
	kdocdb "github.com/DavidAtikpo/irata-sub007/pkg/domain/document/db"
	kerr "github.com/DavidAtikpo/irata-sub007/pkg/domain/errors"
	ksessdb "github.com/DavidAtikpo/irata-sub007/pkg/domain/session/db"
	"github.com/DavidAtikpo/irata-sub007/pkg/render"
)

func getDevis(c echo.Context, dbDevis kdevisdb.DevisInterface, devisId string) (domain.Devis, *echo.HTTPError) {
	dd, err := dbDevis.Get(c.Request().Context(), []string{devisId})
	if err != nil {
		return domain.Devis{}, binderr.InternalServerError(err)
	}
	d, ok := dd[devisId]
	if !ok {
		return domain.Devis{}, binderr.NotFound()
	}
	return d, nil
}

// DevisCreateHandler opens a devis for the calling user.
func DevisCreateHandler(dbDevis kdevisdb.DevisInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		actor, hterr := actorOf(c)
		if hterr != nil {
			return hterr
		}

		spec := new(apidevis.DevisSpec)
		if err := json.NewDecoder(c.Request().Body).Decode(spec); err != nil {
			return binderr.BadRequest("can not understand the requested json", err)
		}
		if spec.SessionId == "" || spec.ClientName == "" {
			return binderr.BadRequest("sessionId and clientName are required", nil)
		}
		if spec.MontantCents <= 0 {
			return binderr.BadRequest("montantCents should be a positive amount in cents", nil)
		}

		devisId, err := dbDevis.Create(ctx, domain.NewDevisParam{
			UserId:       actor.UserId,
			SessionId:    spec.SessionId,
			ClientName:   spec.ClientName,
			MontantCents: spec.MontantCents,
		})
		if err != nil {
			if errors.Is(err, kerr.ErrConflict) {
				return binderr.Conflict(
					"a devis for this session is already awaiting a decision",
					binderr.WithError(err),
				)
			}
			return dbError(err)
		}

		d, hterr := getDevis(c, dbDevis, devisId)
		if hterr != nil {
			return hterr
		}
		return c.JSON(http.StatusOK, binddevis.ComposeDetail(d))
	}
}

// FindDevisHandler searches devis.
//
// Admins filter freely on `statut` (repeatable), `userId` and `sessionId`.
// Other users only ever see their own.
func FindDevisHandler(dbDevis kdevisdb.DevisInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		actor, hterr := actorOf(c)
		if hterr != nil {
			return hterr
		}

		query := kdevisdb.FindQuery{}
		for _, s := range c.QueryParams()["statut"] {
			statut, err := domain.AsDevisStatut(s)
			if err != nil {
				return binderr.BadRequest(err.Error(), err)
			}
			query.Statut = append(query.Statut, statut)
		}
		if session := c.QueryParam("sessionId"); session != "" {
			query.SessionId = &session
		}

		if actor.Role == domain.RoleAdmin {
			if user := c.QueryParam("userId"); user != "" {
				query.UserId = &user
			}
		} else {
			userId := actor.UserId
			query.UserId = &userId
		}

		ids, err := dbDevis.Find(ctx, query)
		if err != nil {
			return binderr.InternalServerError(err)
		}
		dd, err := dbDevis.Get(ctx, ids)
		if err != nil {
			return binderr.InternalServerError(err)
		}

		details := []apidevis.Detail{}
		for _, id := range ids {
			if d, ok := dd[id]; ok {
				details = append(details, binddevis.ComposeDetail(d))
			}
		}
		return c.JSON(http.StatusOK, details)
	}
}

func GetDevisHandler(dbDevis kdevisdb.DevisInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		actor, hterr := actorOf(c)
		if hterr != nil {
			return hterr
		}

		d, hterr := getDevis(c, dbDevis, c.Param("devisId"))
		if hterr != nil {
			return hterr
		}
		if actor.Role != domain.RoleAdmin && d.UserId != actor.UserId {
			return binderr.NotFound()
		}
		return c.JSON(http.StatusOK, binddevis.ComposeDetail(d))
	}
}

// DevisDecideHandler settles a pending devis as valide or refuse. Admin only.
func DevisDecideHandler(dbDevis kdevisdb.DevisInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		spec := new(apidevis.DecisionSpec)
		if err := json.NewDecoder(c.Request().Body).Decode(spec); err != nil {
			return binderr.BadRequest("can not understand the requested json", err)
		}
		statut, err := domain.AsDevisStatut(spec.Statut)
		if err != nil {
			return binderr.BadRequest(err.Error(), err)
		}
		if statut == domain.DevisEnAttente {
			return binderr.BadRequest("the decision should be valide or refuse", nil)
		}

		devisId := c.Param("devisId")
		if err := dbDevis.Decide(ctx, devisId, statut); err != nil {
			if errors.Is(err, domain.ErrInvalidDevisDecision) {
				return binderr.Conflict(
					"this devis is already decided", binderr.WithError(err),
				)
			}
			return dbError(err)
		}

		d, hterr := getDevis(c, dbDevis, devisId)
		if hterr != nil {
			return hterr
		}
		return c.JSON(http.StatusOK, binddevis.ComposeDetail(d))
	}
}

// DevisFactureHandler renders the invoice of a validated devis as a PDF
// attachment, falling back to HTML when the engine is down.
//
// The devis owner and admins can download it.
func DevisFactureHandler(
	dbDevis kdevisdb.DevisInterface,
	dbSession ksessdb.SessionInterface,
	renderer *render.Renderer,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		actor, hterr := actorOf(c)
		if hterr != nil {
			return hterr
		}

		d, hterr := getDevis(c, dbDevis, c.Param("devisId"))
		if hterr != nil {
			return hterr
		}
		if actor.Role != domain.RoleAdmin && d.UserId != actor.UserId {
			return binderr.NotFound()
		}
		if d.Statut != domain.DevisValide {
			return binderr.Conflict(
				"only a validated devis is invoiced",
				binderr.WithError(domain.ErrDevisNotValide),
			)
		}

		sessions, err := dbSession.Get(ctx, []string{d.SessionId})
		if err != nil {
			return binderr.InternalServerError(err)
		}
		session, ok := sessions[d.SessionId]
		if !ok {
			return binderr.NotFound()
		}

		rendered, err := renderer.RenderFacture(ctx, d, session.Name)
		if err != nil {
			return binderr.InternalServerError(err)
		}
		c.Response().Header().Set(
			"Content-Disposition",
			fmt.Sprintf(`attachment; filename="%s"`, rendered.Filename),
		)
		return c.Blob(http.StatusOK, rendered.ContentType, rendered.Body)
	}
}

// DevisContratHandler generates the contract document of a validated devis
// and attaches it. Admin only, once per devis.
func DevisContratHandler(
	dbDevis kdevisdb.DevisInterface,
	dbDoc kdocdb.DocumentInterface,
	dbSession ksessdb.SessionInterface,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		devisId := c.Param("devisId")
		d, hterr := getDevis(c, dbDevis, devisId)
		if hterr != nil {
			return hterr
		}
		if d.Statut != domain.DevisValide {
			return binderr.Conflict(
				"only a validated devis becomes a contract",
				binderr.WithError(domain.ErrDevisNotValide),
			)
		}
		if d.ContratDocumentId != nil {
			return binderr.Conflict("this devis already has its contract")
		}

		sessions, err := dbSession.Get(ctx, []string{d.SessionId})
		if err != nil {
			return binderr.InternalServerError(err)
		}
		session, ok := sessions[d.SessionId]
		if !ok {
			return binderr.NotFound()
		}

		sessionId := d.SessionId
		documentId, err := dbDoc.Create(ctx, kdocdb.NewDocumentParam{
			Kind:      domain.KindContrat,
			SessionId: &sessionId,
			Fields: &domain.ContratFields{
				DevisId:      d.Id,
				ClientName:   d.ClientName,
				SessionName:  session.Name,
				MontantCents: d.MontantCents,
			},
		})
		if err != nil {
			return dbError(err)
		}

		if err := dbDevis.AttachContrat(ctx, devisId, documentId); err != nil {
			if errors.Is(err, domain.ErrDevisNotValide) {
				return binderr.Conflict(err.Error(), binderr.WithError(err))
			}
			if errors.Is(err, kerr.ErrConflict) {
				return binderr.Conflict(
					"this devis already has its contract", binderr.WithError(err),
				)
			}
			return dbError(err)
		}

		doc, hterr := getDocument(c, dbDoc, documentId)
		if hterr != nil {
			return hterr
		}
		return c.JSON(http.StatusOK, binddoc.ComposeDetail(doc))
	}
}
