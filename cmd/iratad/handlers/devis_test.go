package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/DavidAtikpo/irata-sub007/cmd/iratad/handlers"
	httptestutil "github.com/DavidAtikpo/irata-sub007/internal/testutils/http"
	apidevis "github.com/DavidAtikpo/irata-sub007/pkg/api/types/devis"
	"github.com/DavidAtikpo/irata-sub007/pkg/auth"
	"github.com/DavidAtikpo/irata-sub007/pkg/domain"
	kdevisdb "github.com/DavidAtikpo/irata-sub007/pkg/domain/devis/db"
	devismocks "github.com/DavidAtikpo/irata-sub007/pkg/domain/devis/db/mock"
	kdocdb "github.com/DavidAtikpo/irata-sub007/pkg/domain/document/db"
	docmocks "github.com/DavidAtikpo/irata-sub007/pkg/domain/document/db/mock"
	kerr "github.com/DavidAtikpo/irata-sub007/pkg/domain/errors"
	sessmocks "github.com/DavidAtikpo/irata-sub007/pkg/domain/session/db/mock"
	"github.com/DavidAtikpo/irata-sub007/pkg/render"
)

func TestDevisCreateHandler(t *testing.T) {

	t.Run("a trainee asks for a quotation", func(t *testing.T) {
		stored := domain.Devis{
			Id: "devis-1", UserId: "user-1", SessionId: "session-1",
			ClientName: "Dupont SARL", MontantCents: 120000,
			Statut: domain.DevisEnAttente,
		}

		mockDevis := devismocks.NewDevisInterface()
		mockDevis.Impl.Create = func(_ context.Context, param domain.NewDevisParam) (string, error) {
			return "devis-1", nil
		}
		mockDevis.Impl.Get = func(context.Context, []string) (map[string]domain.Devis, error) {
			return map[string]domain.Devis{"devis-1": stored}, nil
		}

		e := echo.New()
		c, resprec := httptestutil.Post(
			e, "/api/devis", strings.NewReader(`{
				"sessionId": "session-1", "clientName": "Dupont SARL", "montantCents": 120000
			}`),
			httptestutil.ContentType("application/json"),
		)
		auth.SetActor(c, auth.Actor{UserId: "user-1", Role: domain.RoleUser})

		testee := handlers.DevisCreateHandler(mockDevis)
		if err := testee(c); err != nil {
			t.Fatalf("handler returns error unexpectedly: %+v", err)
		}
		if resprec.Result().StatusCode != http.StatusOK {
			t.Errorf("status code is not 200: %d", resprec.Result().StatusCode)
		}

		param := mockDevis.Calls.Create[0]
		if param.UserId != "user-1" {
			t.Errorf("the devis should belong to the calling user: %s", param.UserId)
		}
		if param.MontantCents != 120000 {
			t.Errorf("unmatch montant: %d", param.MontantCents)
		}
	})

	t.Run("a second outstanding devis is a conflict", func(t *testing.T) {
		mockDevis := devismocks.NewDevisInterface()
		mockDevis.Impl.Create = func(context.Context, domain.NewDevisParam) (string, error) {
			return "", kerr.ErrConflict
		}

		e := echo.New()
		c, _ := httptestutil.Post(
			e, "/api/devis", strings.NewReader(`{
				"sessionId": "session-1", "clientName": "Dupont SARL", "montantCents": 120000
			}`),
			httptestutil.ContentType("application/json"),
		)
		auth.SetActor(c, auth.Actor{UserId: "user-1", Role: domain.RoleUser})

		testee := handlers.DevisCreateHandler(mockDevis)
		err := testee(c)
		if httperr := httpErrorOf(t, err); httperr.Code != http.StatusConflict {
			t.Errorf("status code is not 409: %d", httperr.Code)
		}
	})

	t.Run("a non-positive amount is a bad request", func(t *testing.T) {
		mockDevis := devismocks.NewDevisInterface()

		e := echo.New()
		c, _ := httptestutil.Post(
			e, "/api/devis", strings.NewReader(`{
				"sessionId": "session-1", "clientName": "Dupont SARL", "montantCents": 0
			}`),
			httptestutil.ContentType("application/json"),
		)
		auth.SetActor(c, auth.Actor{UserId: "user-1", Role: domain.RoleUser})

		testee := handlers.DevisCreateHandler(mockDevis)
		err := testee(c)
		if httperr := httpErrorOf(t, err); httperr.Code != http.StatusBadRequest {
			t.Errorf("status code is not 400: %d", httperr.Code)
		}
	})
}

func TestFindDevisHandler(t *testing.T) {

	t.Run("a trainee only ever searches their own devis", func(t *testing.T) {
		mockDevis := devismocks.NewDevisInterface()
		mockDevis.Impl.Find = func(_ context.Context, query kdevisdb.FindQuery) ([]string, error) {
			return []string{}, nil
		}
		mockDevis.Impl.Get = func(context.Context, []string) (map[string]domain.Devis, error) {
			return map[string]domain.Devis{}, nil
		}

		e := echo.New()
		c, _ := httptestutil.Get(e, "/api/devis?userId=user-9")
		auth.SetActor(c, auth.Actor{UserId: "user-1", Role: domain.RoleUser})

		testee := handlers.FindDevisHandler(mockDevis)
		if err := testee(c); err != nil {
			t.Fatalf("handler returns error unexpectedly: %+v", err)
		}

		query := mockDevis.Calls.Find[0]
		if query.UserId == nil || *query.UserId != "user-1" {
			t.Errorf("the query should be pinned to the caller: %v", query.UserId)
		}
	})

	t.Run("an admin filters freely", func(t *testing.T) {
		mockDevis := devismocks.NewDevisInterface()
		mockDevis.Impl.Find = func(context.Context, kdevisdb.FindQuery) ([]string, error) {
			return []string{}, nil
		}
		mockDevis.Impl.Get = func(context.Context, []string) (map[string]domain.Devis, error) {
			return map[string]domain.Devis{}, nil
		}

		e := echo.New()
		c, _ := httptestutil.Get(e, "/api/devis?userId=user-9&statut=en_attente")
		auth.SetActor(c, auth.Actor{UserId: "admin-1", Role: domain.RoleAdmin})

		testee := handlers.FindDevisHandler(mockDevis)
		if err := testee(c); err != nil {
			t.Fatalf("handler returns error unexpectedly: %+v", err)
		}

		query := mockDevis.Calls.Find[0]
		if query.UserId == nil || *query.UserId != "user-9" {
			t.Errorf("unmatch userId filter: %v", query.UserId)
		}
		if len(query.Statut) != 1 || query.Statut[0] != domain.DevisEnAttente {
			t.Errorf("unmatch statut filter: %v", query.Statut)
		}
	})
}

func TestDevisDecideHandler(t *testing.T) {

	t.Run("an admin validates a devis", func(t *testing.T) {
		decided := domain.Devis{
			Id: "devis-1", UserId: "user-1", SessionId: "session-1",
			ClientName: "Dupont SARL", MontantCents: 120000,
			Statut: domain.DevisValide,
		}

		mockDevis := devismocks.NewDevisInterface()
		mockDevis.Impl.Decide = func(context.Context, string, domain.DevisStatut) error {
			return nil
		}
		mockDevis.Impl.Get = func(context.Context, []string) (map[string]domain.Devis, error) {
			return map[string]domain.Devis{"devis-1": decided}, nil
		}

		e := echo.New()
		c, resprec := httptestutil.Put(
			e, "/api/devis/devis-1/decision",
			strings.NewReader(`{"statut": "valide"}`),
			httptestutil.ContentType("application/json"),
		)
		c.SetParamNames("devisId")
		c.SetParamValues("devis-1")

		testee := handlers.DevisDecideHandler(mockDevis)
		if err := testee(c); err != nil {
			t.Fatalf("handler returns error unexpectedly: %+v", err)
		}

		if args := mockDevis.Calls.Decide[0]; args.DevisId != "devis-1" || args.To != domain.DevisValide {
			t.Errorf("unmatch decision: %+v", args)
		}

		actual := apidevis.Detail{}
		if err := json.Unmarshal(resprec.Body.Bytes(), &actual); err != nil {
			t.Fatalf("response is not a devis detail: %s", err)
		}
		if actual.Statut != "valide" {
			t.Errorf("unmatch statut: %s", actual.Statut)
		}
	})

	t.Run("deciding twice is a conflict", func(t *testing.T) {
		mockDevis := devismocks.NewDevisInterface()
		mockDevis.Impl.Decide = func(context.Context, string, domain.DevisStatut) error {
			return domain.NewErrInvalidDevisDecision(domain.DevisValide, domain.DevisRefuse)
		}

		e := echo.New()
		c, _ := httptestutil.Put(
			e, "/api/devis/devis-1/decision",
			strings.NewReader(`{"statut": "refuse"}`),
			httptestutil.ContentType("application/json"),
		)
		c.SetParamNames("devisId")
		c.SetParamValues("devis-1")

		testee := handlers.DevisDecideHandler(mockDevis)
		err := testee(c)
		if httperr := httpErrorOf(t, err); httperr.Code != http.StatusConflict {
			t.Errorf("status code is not 409: %d", httperr.Code)
		}
	})

	t.Run("en_attente is not a decision", func(t *testing.T) {
		mockDevis := devismocks.NewDevisInterface()

		e := echo.New()
		c, _ := httptestutil.Put(
			e, "/api/devis/devis-1/decision",
			strings.NewReader(`{"statut": "en_attente"}`),
			httptestutil.ContentType("application/json"),
		)
		c.SetParamNames("devisId")
		c.SetParamValues("devis-1")

		testee := handlers.DevisDecideHandler(mockDevis)
		err := testee(c)
		if httperr := httpErrorOf(t, err); httperr.Code != http.StatusBadRequest {
			t.Errorf("status code is not 400: %d", httperr.Code)
		}
	})
}

func TestDevisContratHandler(t *testing.T) {

	valide := domain.Devis{
		Id: "devis-1", UserId: "user-1", SessionId: "session-1",
		ClientName: "Dupont SARL", MontantCents: 120000,
		Statut: domain.DevisValide,
	}
	session := domain.TrainingSession{
		Id: "session-1", Name: "2024-06 niveau 1", Niveau: domain.Niveau(1),
	}

	t.Run("a validated devis becomes a contract document", func(t *testing.T) {
		mockDevis := devismocks.NewDevisInterface()
		mockDevis.Impl.Get = func(context.Context, []string) (map[string]domain.Devis, error) {
			return map[string]domain.Devis{"devis-1": valide}, nil
		}
		mockDevis.Impl.AttachContrat = func(context.Context, string, string) error { return nil }

		mockSession := sessmocks.NewSessionInterface()
		mockSession.Impl.Get = func(context.Context, []string) (map[string]domain.TrainingSession, error) {
			return map[string]domain.TrainingSession{"session-1": session}, nil
		}

		mockDoc := docmocks.NewDocumentInterface()
		mockDoc.Impl.Create = func(_ context.Context, param kdocdb.NewDocumentParam) (string, error) {
			return "doc-3", nil
		}
		mockDoc.Impl.Get = func(context.Context, []string) (map[string]domain.Document, error) {
			return map[string]domain.Document{"doc-3": {
				Id: "doc-3", Kind: domain.KindContrat, SessionId: ref("session-1"),
				Fields: &domain.ContratFields{
					DevisId: "devis-1", ClientName: "Dupont SARL",
					SessionName: "2024-06 niveau 1", MontantCents: 120000,
				},
				Status: domain.StatusDraft,
			}}, nil
		}

		e := echo.New()
		c, _ := httptestutil.Post(e, "/api/devis/devis-1/contrat", nil)
		c.SetParamNames("devisId")
		c.SetParamValues("devis-1")

		testee := handlers.DevisContratHandler(mockDevis, mockDoc, mockSession)
		if err := testee(c); err != nil {
			t.Fatalf("handler returns error unexpectedly: %+v", err)
		}

		param := mockDoc.Calls.Create[0]
		if param.Kind != domain.KindContrat {
			t.Errorf("unmatch kind: %s", param.Kind)
		}
		fields, ok := param.Fields.(*domain.ContratFields)
		if !ok {
			t.Fatalf("fields are not contract fields: %+v", param.Fields)
		}
		if fields.DevisId != "devis-1" || fields.SessionName != "2024-06 niveau 1" || fields.MontantCents != 120000 {
			t.Errorf("the contract should capture the devis: %+v", fields)
		}

		if args := mockDevis.Calls.AttachContrat[0]; args.DevisId != "devis-1" || args.DocumentId != "doc-3" {
			t.Errorf("unmatch attach: %+v", args)
		}
	})

	t.Run("a devis still pending can not become a contract", func(t *testing.T) {
		pending := valide
		pending.Statut = domain.DevisEnAttente

		mockDevis := devismocks.NewDevisInterface()
		mockDevis.Impl.Get = func(context.Context, []string) (map[string]domain.Devis, error) {
			return map[string]domain.Devis{"devis-1": pending}, nil
		}

		e := echo.New()
		c, _ := httptestutil.Post(e, "/api/devis/devis-1/contrat", nil)
		c.SetParamNames("devisId")
		c.SetParamValues("devis-1")

		testee := handlers.DevisContratHandler(
			mockDevis, docmocks.NewDocumentInterface(), sessmocks.NewSessionInterface(),
		)
		err := testee(c)
		if httperr := httpErrorOf(t, err); httperr.Code != http.StatusConflict {
			t.Errorf("status code is not 409: %d", httperr.Code)
		}
	})

	t.Run("a devis with a contract already does not get another", func(t *testing.T) {
		attached := valide
		attached.ContratDocumentId = ref("doc-3")

		mockDevis := devismocks.NewDevisInterface()
		mockDevis.Impl.Get = func(context.Context, []string) (map[string]domain.Devis, error) {
			return map[string]domain.Devis{"devis-1": attached}, nil
		}

		e := echo.New()
		c, _ := httptestutil.Post(e, "/api/devis/devis-1/contrat", nil)
		c.SetParamNames("devisId")
		c.SetParamValues("devis-1")

		testee := handlers.DevisContratHandler(
			mockDevis, docmocks.NewDocumentInterface(), sessmocks.NewSessionInterface(),
		)
		err := testee(c)
		if httperr := httpErrorOf(t, err); httperr.Code != http.StatusConflict {
			t.Errorf("status code is not 409: %d", httperr.Code)
		}
	})
}

func TestDevisFactureHandler(t *testing.T) {

	valide := domain.Devis{
		Id: "devis-1", UserId: "user-1", SessionId: "session-1",
		ClientName: "Dupont SARL", MontantCents: 120000,
		Statut:    domain.DevisValide,
		UpdatedAt: time.Date(2024, 5, 10, 14, 0, 0, 0, time.UTC),
	}
	session := domain.TrainingSession{
		Id: "session-1", Name: "2024-06 niveau 1", Niveau: domain.Niveau(1),
	}

	newMocks := func(d domain.Devis) (*devismocks.DevisInterface, *sessmocks.SessionInterface) {
		mockDevis := devismocks.NewDevisInterface()
		mockDevis.Impl.Get = func(context.Context, []string) (map[string]domain.Devis, error) {
			return map[string]domain.Devis{"devis-1": d}, nil
		}
		mockSession := sessmocks.NewSessionInterface()
		mockSession.Impl.Get = func(context.Context, []string) (map[string]domain.TrainingSession, error) {
			return map[string]domain.TrainingSession{"session-1": session}, nil
		}
		return mockDevis, mockSession
	}

	t.Run("the owner downloads the invoice of their validated devis", func(t *testing.T) {
		mockDevis, mockSession := newMocks(valide)
		renderer := render.New(render.EngineFunc(
			func(context.Context, string) ([]byte, error) {
				return []byte("%PDF-1.7 pretend"), nil
			},
		))

		e := echo.New()
		c, resprec := httptestutil.Get(e, "/api/devis/devis-1/facture")
		c.SetParamNames("devisId")
		c.SetParamValues("devis-1")
		auth.SetActor(c, auth.Actor{UserId: "user-1", Role: domain.RoleUser})

		testee := handlers.DevisFactureHandler(mockDevis, mockSession, renderer)
		if err := testee(c); err != nil {
			t.Fatalf("handler returns error unexpectedly: %+v", err)
		}

		resp := resprec.Result()
		if ctype := resp.Header.Get("Content-Type"); ctype != "application/pdf" {
			t.Errorf("unmatch content type: %s", ctype)
		}
		if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "facture-devis-1.pdf") {
			t.Errorf("the attachment should be named after the devis: %s", cd)
		}
	})

	t.Run("it degrades to HTML carrying the amount when the engine fails", func(t *testing.T) {
		mockDevis, mockSession := newMocks(valide)
		renderer := render.New(render.EngineFunc(
			func(context.Context, string) ([]byte, error) {
				return nil, errors.New("no chrome around")
			},
		))

		e := echo.New()
		c, resprec := httptestutil.Get(e, "/api/devis/devis-1/facture")
		c.SetParamNames("devisId")
		c.SetParamValues("devis-1")
		auth.SetActor(c, auth.Actor{UserId: "user-1", Role: domain.RoleUser})

		testee := handlers.DevisFactureHandler(mockDevis, mockSession, renderer)
		if err := testee(c); err != nil {
			t.Fatalf("the request should not fail when only the engine does: %+v", err)
		}
		if body := resprec.Body.String(); !strings.Contains(body, "1200,00") {
			t.Errorf("the invoice should carry the amount: %s", body)
		}
	})

	t.Run("a pending devis has no invoice yet", func(t *testing.T) {
		pending := valide
		pending.Statut = domain.DevisEnAttente
		mockDevis, mockSession := newMocks(pending)

		e := echo.New()
		c, _ := httptestutil.Get(e, "/api/devis/devis-1/facture")
		c.SetParamNames("devisId")
		c.SetParamValues("devis-1")
		auth.SetActor(c, auth.Actor{UserId: "user-1", Role: domain.RoleUser})

		testee := handlers.DevisFactureHandler(mockDevis, mockSession, render.New(nil))
		err := testee(c)
		if httperr := httpErrorOf(t, err); httperr.Code != http.StatusConflict {
			t.Errorf("status code is not 409: %d", httperr.Code)
		}
	})

	t.Run("another trainee can not see it", func(t *testing.T) {
		mockDevis, mockSession := newMocks(valide)

		e := echo.New()
		c, _ := httptestutil.Get(e, "/api/devis/devis-1/facture")
		c.SetParamNames("devisId")
		c.SetParamValues("devis-1")
		auth.SetActor(c, auth.Actor{UserId: "user-9", Role: domain.RoleUser})

		testee := handlers.DevisFactureHandler(mockDevis, mockSession, render.New(nil))
		err := testee(c)
		if httperr := httpErrorOf(t, err); httperr.Code != http.StatusNotFound {
			t.Errorf("status code is not 404: %d", httperr.Code)
		}
	})
}
