package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	apidoc "github.com/DavidAtikpo/irata-sub007/pkg/api/types/documents"
	"github.com/DavidAtikpo/irata-sub007/pkg/auth"
	binddoc "github.com/DavidAtikpo/irata-sub007/pkg/bindings/documents"
	binderr "github.com/DavidAtikpo/irata-sub007/pkg/bindings/errors"
	"github.com/DavidAtikpo/irata-sub007/pkg/domain"
	kdocdb "github.com/DavidAtikpo/irata-sub007/pkg/domain/document/db"
	kerr "github.com/DavidAtikpo/irata-sub007/pkg/domain/errors"
	kregdb "github.com/DavidAtikpo/irata-sub007/pkg/domain/registration/db"
	"github.com/DavidAtikpo/irata-sub007/pkg/mailer"
	"github.com/DavidAtikpo/irata-sub007/pkg/render"
	"github.com/DavidAtikpo/irata-sub007/pkg/utils/dataurl"
	"github.com/DavidAtikpo/irata-sub007/pkg/utils/slices"
)

func actorOf(c echo.Context) (auth.Actor, *echo.HTTPError) {
	actor, ok := auth.ActorOf(c)
	if !ok {
		return auth.Actor{}, binderr.Unauthorized("login required", nil)
	}
	return actor, nil
}

// parseSignature turns a submitted signature image into a domain Signature
// stamped now.
func parseSignature(req apidoc.SignRequest) (domain.Signature, *echo.HTTPError) {
	img, err := dataurl.Parse(req.Image)
	if err != nil {
		return domain.Signature{}, binderr.BadRequest(
			"signature image should be an image data URL", err,
		)
	}
	return domain.Signature{Image: img, SignedAt: time.Now()}, nil
}

func getDocument(c echo.Context, dbDoc kdocdb.DocumentInterface, documentId string) (domain.Document, *echo.HTTPError) {
	docs, err := dbDoc.Get(c.Request().Context(), []string{documentId})
	if err != nil {
		return domain.Document{}, binderr.InternalServerError(err)
	}
	doc, ok := docs[documentId]
	if !ok {
		return domain.Document{}, binderr.NotFound()
	}
	return doc, nil
}

// canSee reports whether actor may read this document.
//
// Admins see everything. Others see their own documents and anything
// already published.
func canSee(actor auth.Actor, doc domain.Document) bool {
	if actor.Role == domain.RoleAdmin {
		return true
	}
	if doc.OwnerUserId != nil && *doc.OwnerUserId == actor.UserId {
		return true
	}
	return doc.Status == domain.StatusPublished || doc.Status == domain.StatusSent
}

// DocumentCreateHandler opens a new document.
//
// User-first kinds (disclaimer, medical) belong to the calling user and must
// arrive signed. Admin-first kinds are issued unsigned, as drafts, and only
// by admins.
func DocumentCreateHandler(dbDoc kdocdb.DocumentInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		actor, hterr := actorOf(c)
		if hterr != nil {
			return hterr
		}

		spec := new(apidoc.DocumentSpec)
		if err := json.NewDecoder(c.Request().Body).Decode(spec); err != nil {
			return binderr.BadRequest("can not understand the requested json", err)
		}

		kind, err := domain.AsDocumentKind(spec.Kind)
		if err != nil {
			return binderr.BadRequest(err.Error(), err)
		}

		fields, err := domain.DecodeFields(kind, spec.Fields)
		if err != nil {
			return binderr.BadRequest("can not understand the document fields", err)
		}
		if err := fields.Validate(); err != nil {
			return binderr.BadRequest(err.Error(), err)
		}

		param := kdocdb.NewDocumentParam{
			Kind:      kind,
			SessionId: spec.SessionId,
			Fields:    fields,
		}

		if kind.Workflow().AdminFirst {
			if actor.Role != domain.RoleAdmin {
				return binderr.Forbidden(fmt.Sprintf(
					"documents of kind '%s' are issued by admins", kind,
				))
			}
			if spec.Signature != nil {
				return binderr.BadRequest(
					"admin-issued documents are signed by counter-signing, not on creation", nil,
				)
			}
		} else {
			if spec.Signature == nil {
				return binderr.BadRequest(fmt.Sprintf(
					"documents of kind '%s' must be signed on submission", kind,
				), nil)
			}
			sig, hterr := parseSignature(*spec.Signature)
			if hterr != nil {
				return hterr
			}
			ownerId := actor.UserId
			param.OwnerUserId = &ownerId
			param.PrimarySignature = &sig
		}

		documentId, err := dbDoc.Create(ctx, param)
		if err != nil {
			return dbError(err)
		}

		doc, hterr := getDocument(c, dbDoc, documentId)
		if hterr != nil {
			return hterr
		}
		return c.JSON(http.StatusOK, binddoc.ComposeDetail(doc))
	}
}

func GetDocumentHandler(dbDoc kdocdb.DocumentInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		actor, hterr := actorOf(c)
		if hterr != nil {
			return hterr
		}

		doc, hterr := getDocument(c, dbDoc, c.Param("documentId"))
		if hterr != nil {
			return hterr
		}
		if !canSee(actor, doc) {
			// do not leak that the document exists.
			return binderr.NotFound()
		}
		return c.JSON(http.StatusOK, binddoc.ComposeDetail(doc))
	}
}

// FindDocumentHandler searches documents. Admin only.
//
// Query parameters `kind` and `status` may repeat; `ownerUserId` and
// `sessionId` narrow to one owner or session.
func FindDocumentHandler(dbDoc kdocdb.DocumentInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		query := kdocdb.FindQuery{}
		for _, k := range c.QueryParams()["kind"] {
			kind, err := domain.AsDocumentKind(k)
			if err != nil {
				return binderr.BadRequest(err.Error(), err)
			}
			query.Kind = append(query.Kind, kind)
		}
		for _, s := range c.QueryParams()["status"] {
			status, err := domain.AsDocumentStatus(s)
			if err != nil {
				return binderr.BadRequest(err.Error(), err)
			}
			query.Status = append(query.Status, status)
		}
		if owner := c.QueryParam("ownerUserId"); owner != "" {
			query.OwnerUserId = &owner
		}
		if session := c.QueryParam("sessionId"); session != "" {
			query.SessionId = &session
		}

		ids, err := dbDoc.Find(ctx, query)
		if err != nil {
			return binderr.InternalServerError(err)
		}
		docs, err := dbDoc.Get(ctx, ids)
		if err != nil {
			return binderr.InternalServerError(err)
		}

		details := []apidoc.Detail{}
		for _, id := range ids {
			if doc, ok := docs[id]; ok {
				details = append(details, binddoc.ComposeDetail(doc))
			}
		}
		return c.JSON(http.StatusOK, details)
	}
}

// SignDocumentHandler attaches the primary signature.
//
// On user-first documents only the owner signs, at any moment before the
// admin counter-signature. On admin-first documents (contract, corrective
// action) the target user signs once the document is published.
func SignDocumentHandler(dbDoc kdocdb.DocumentInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		actor, hterr := actorOf(c)
		if hterr != nil {
			return hterr
		}

		req := new(apidoc.SignRequest)
		if err := json.NewDecoder(c.Request().Body).Decode(req); err != nil {
			return binderr.BadRequest("can not understand the requested json", err)
		}
		sig, hterr := parseSignature(*req)
		if hterr != nil {
			return hterr
		}

		documentId := c.Param("documentId")
		doc, hterr := getDocument(c, dbDoc, documentId)
		if hterr != nil {
			return hterr
		}

		if doc.Kind.Workflow().AdminFirst {
			switch doc.Kind {
			case domain.KindInduction, domain.KindToolboxTalk:
				return binderr.BadRequest(
					"this document collects one signature per trainee. sign it via its signatures endpoint", nil,
				)
			}
			if doc.Status != domain.StatusPublished && doc.Status != domain.StatusSent {
				return binderr.Conflict(
					"this document is not published yet",
					binderr.WithError(domain.NewErrInvalidStatusChanging(doc.Status, doc.Status)),
				)
			}
		} else if doc.OwnerUserId == nil || *doc.OwnerUserId != actor.UserId {
			return binderr.Forbidden("only the owner signs this document")
		}

		if err := dbDoc.SetPrimarySignature(ctx, documentId, sig); err != nil {
			if errors.Is(err, kerr.ErrConflict) {
				return binderr.Conflict(
					"this document is already signed", binderr.WithError(err),
				)
			}
			return dbError(err)
		}

		doc, hterr = getDocument(c, dbDoc, documentId)
		if hterr != nil {
			return hterr
		}
		return c.JSON(http.StatusOK, binddoc.ComposeDetail(doc))
	}
}

// CountersignDocumentHandler attaches the admin signature and advances the
// document to signed. Admin only.
//
// The status advance is compare-and-set: when two admins race, the slower
// one gets a conflict.
func CountersignDocumentHandler(
	dbDoc kdocdb.DocumentInterface,
	dbUser kregdb.UserInterface,
	notifier *mailer.Notifier,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		req := new(apidoc.SignRequest)
		if err := json.NewDecoder(c.Request().Body).Decode(req); err != nil {
			return binderr.BadRequest("can not understand the requested json", err)
		}
		sig, hterr := parseSignature(*req)
		if hterr != nil {
			return hterr
		}

		documentId := c.Param("documentId")
		doc, hterr := getDocument(c, dbDoc, documentId)
		if hterr != nil {
			return hterr
		}
		if err := doc.CanCountersign(); err != nil {
			return binderr.Conflict(err.Error(), binderr.WithError(err))
		}

		if err := dbDoc.Countersign(ctx, documentId, doc.Status, sig); err != nil {
			if errors.Is(err, domain.ErrInvalidStatusChanging) {
				return binderr.Conflict(
					"someone else changed this document first. get it again and retry",
					binderr.WithError(err),
				)
			}
			return dbError(err)
		}

		doc, hterr = getDocument(c, dbDoc, documentId)
		if hterr != nil {
			return hterr
		}
		notifyOwner(c, dbUser, notifier, doc)
		return c.JSON(http.StatusOK, binddoc.ComposeDetail(doc))
	}
}

// PublishDocumentHandler makes a signed document visible to its target
// users. Admin only, idempotent. Only admin-first kinds are published;
// user-first ones hold personal data and never become visible this way.
func PublishDocumentHandler(
	dbDoc kdocdb.DocumentInterface,
	dbUser kregdb.UserInterface,
	notifier *mailer.Notifier,
) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		documentId := c.Param("documentId")
		doc, hterr := getDocument(c, dbDoc, documentId)
		if hterr != nil {
			return hterr
		}
		if !doc.Kind.Workflow().CanAdvance(domain.StatusSigned, domain.StatusPublished) {
			return binderr.BadRequest(
				"this kind of document is not published. it stays between its owner and the admin",
				nil,
			)
		}

		changed, err := dbDoc.Publish(ctx, documentId)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidStatusChanging) {
				return binderr.Conflict(
					"this document is not signed yet", binderr.WithError(err),
				)
			}
			return dbError(err)
		}

		doc, hterr = getDocument(c, dbDoc, documentId)
		if hterr != nil {
			return hterr
		}
		if changed {
			notifyOwner(c, dbUser, notifier, doc)
		}
		return c.JSON(http.StatusOK, binddoc.ComposeDetail(doc))
	}
}

// notifyOwner mails the document owner about its new status. Best effort.
func notifyOwner(c echo.Context, dbUser kregdb.UserInterface, notifier *mailer.Notifier, doc domain.Document) {
	if doc.OwnerUserId == nil {
		return
	}
	ctx := c.Request().Context()
	owner, err := dbUser.Get(ctx, *doc.OwnerUserId)
	if err != nil {
		c.Logger().Warnf("document %s: can not resolve owner for notification: %+v", doc.Id, err)
		return
	}
	notifier.DocumentStatusChanged(ctx, doc, []string{owner.Email})
}

// AddUserSignatureHandler records the calling trainee's counter-signature on
// a published admin-issued document (induction, toolbox talk).
func AddUserSignatureHandler(dbDoc kdocdb.DocumentInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		actor, hterr := actorOf(c)
		if hterr != nil {
			return hterr
		}

		req := new(apidoc.SignRequest)
		if err := json.NewDecoder(c.Request().Body).Decode(req); err != nil {
			return binderr.BadRequest("can not understand the requested json", err)
		}
		sig, hterr := parseSignature(*req)
		if hterr != nil {
			return hterr
		}

		documentId := c.Param("documentId")
		doc, hterr := getDocument(c, dbDoc, documentId)
		if hterr != nil {
			return hterr
		}
		if !doc.Kind.Workflow().AdminFirst {
			return binderr.BadRequest(
				"this document takes its owner's signature, not per-trainee ones", nil,
			)
		}
		if doc.Status != domain.StatusPublished && doc.Status != domain.StatusSent {
			return binderr.Conflict(
				"this document is not published yet",
				binderr.WithError(domain.NewErrInvalidStatusChanging(doc.Status, doc.Status)),
			)
		}

		if err := dbDoc.AddUserSignature(ctx, documentId, actor.UserId, sig); err != nil {
			if errors.Is(err, kerr.ErrConflict) {
				return binderr.Conflict(
					"you have already signed this document", binderr.WithError(err),
				)
			}
			return dbError(err)
		}

		doc, hterr = getDocument(c, dbDoc, documentId)
		if hterr != nil {
			return hterr
		}
		return c.JSON(http.StatusOK, binddoc.ComposeDetail(doc))
	}
}

// ListInductionsHandler lists the published induction documents of a
// session, flagged with whether the calling trainee has signed each.
func ListInductionsHandler(dbDoc kdocdb.DocumentInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		actor, hterr := actorOf(c)
		if hterr != nil {
			return hterr
		}

		entries, err := dbDoc.ListInductions(ctx, c.Param("sessionId"), actor.UserId)
		if err != nil {
			return binderr.InternalServerError(err)
		}
		return c.JSON(
			http.StatusOK,
			slices.Map(entries, binddoc.ComposeInductionEntry),
		)
	}
}

// DownloadDocumentHandler renders the document as a PDF attachment.
//
// Admin-first documents carry the per-user signatures collected after
// publication. When the PDF engine is unavailable the rendered HTML is
// served instead.
func DownloadDocumentHandler(dbDoc kdocdb.DocumentInterface, renderer *render.Renderer) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		actor, hterr := actorOf(c)
		if hterr != nil {
			return hterr
		}

		doc, hterr := getDocument(c, dbDoc, c.Param("documentId"))
		if hterr != nil {
			return hterr
		}
		if !canSee(actor, doc) {
			return binderr.NotFound()
		}

		userSignatures := []domain.Signature{}
		if doc.Kind.Workflow().AdminFirst {
			var err error
			if userSignatures, err = dbDoc.ListUserSignatures(ctx, doc.Id); err != nil {
				return binderr.InternalServerError(err)
			}
		}

		rendered, err := renderer.Render(ctx, doc, userSignatures...)
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
