package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/DavidAtikpo/irata-sub007/cmd/iratad/handlers"
	"github.com/DavidAtikpo/irata-sub007/pkg/auth"
	configs "github.com/DavidAtikpo/irata-sub007/pkg/configs/server"
	"github.com/DavidAtikpo/irata-sub007/pkg/domain"
	kdb "github.com/DavidAtikpo/irata-sub007/pkg/domain/irata/db"
	kpg "github.com/DavidAtikpo/irata-sub007/pkg/domain/irata/db/postgres"
	"github.com/DavidAtikpo/irata-sub007/pkg/mailer"
	"github.com/DavidAtikpo/irata-sub007/pkg/render"
	"github.com/DavidAtikpo/irata-sub007/pkg/utils/echoutil"
	"github.com/DavidAtikpo/irata-sub007/pkg/utils/filewatch"
)

func main() {

	pconfig := flag.String(
		"config", os.Getenv("IRATA_CONFIG"), "path to config file",
	)
	loglevel := flag.String("loglevel", "info", "log level. debug|info|warn|error|off")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, os.Kill)
	defer cancel()

	conf, err := configs.LoadServerConfig(*pconfig)
	if err != nil {
		panic(err)
	}

	// restart when the config file changes.
	{
		ctx_, ccan, err := filewatch.UntilModifyContext(ctx, *pconfig)
		if err != nil {
			panic(err)
		}
		defer ccan()
		ctx = ctx_
	}

	db, err := kpg.New(
		ctx, conf.Database(),
		kpg.WithSchemaRepository(conf.SchemaRepository()),
	)
	if err != nil {
		panic(err)
	}
	defer db.Close()

	if conf.SchemaRepository() != "" {
		if err := db.Schema().Upgrade(ctx); err != nil {
			panic(err)
		}
	}
	{
		// quit when the schema repository outruns the database.
		ctx_, ccan := db.Schema().Context(ctx)
		defer ccan()
		ctx = ctx_
	}

	issuer := auth.NewIssuer(conf.Auth().SignKey(), conf.Auth().TokenExpiry())
	renderer := render.New(render.NewChromeEngine(
		conf.Render().ChromePath(), conf.Render().Timeout(),
	))

	var notifier *mailer.Notifier
	if smtp := conf.SMTP(); smtp != nil {
		notifier = mailer.NewNotifier(
			mailer.NewSMTP(
				smtp.Host(), smtp.Port(),
				smtp.Username(), smtp.Password(), smtp.From(),
			),
			smtp.Admins(),
		)
	} else {
		// no mail configured. notifications go nowhere.
		notifier = mailer.NewNotifier(
			mailer.MailerFunc(func(context.Context, mailer.Mail) error { return nil }),
			nil,
		)
	}

	server := buildServer(db, issuer, renderer, notifier, *loglevel)
	for _, r := range server.Routes() {
		server.Logger.Debugf("- mount handler: %s %s", strings.ToUpper(r.Method), r.Path)
	}

	ch := make(chan error, 1)
	go func() {
		defer close(ch)
		if err := server.Start(fmt.Sprintf(":%d", conf.Port())); err != nil && err != http.ErrServerClosed {
			ch <- err
		}
	}()

	exit := 0
	select {
	case <-ctx.Done():
		if err := ctx.Err(); err != nil {
			server.Logger.Infof("context has been done: %s, cause: %s", err, context.Cause(ctx))
			exit = 1
		}
	case err := <-ch:
		if err != nil {
			server.Logger.Error("server stops with error:", err)
			exit = 1
		}
	}

	{
		server.Logger.Info("shutting down...")
		qctx, qcancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer qcancel()

		if err := server.Shutdown(qctx); err != nil {
			server.Logger.Fatalf("Shutdown with error. %+v", err)
			os.Exit(1)
		}
		os.Exit(exit)
	}
}

func buildServer(
	db kdb.Database,
	issuer *auth.Issuer,
	renderer *render.Renderer,
	notifier *mailer.Notifier,
	loglevel string,
) *echo.Echo {
	e := echo.New()
	e.Pre(middleware.AddTrailingSlash())

	echoutil.SetLevel(e, loglevel)
	e.HTTPErrorHandler = func(err error, ctx echo.Context) {
		e.DefaultHTTPErrorHandler(err, ctx)
		e.Logger.Error(err)
	}
	e.Use(echoutil.LogHandlerFunc)
	e.Use(auth.Middleware(issuer))

	user := auth.Require()
	admin := auth.RequireRole(domain.RoleAdmin)

	// registrations and login
	{
		e.POST("/api/registrations/", handlers.RegistrationRequestHandler(db.Registrations(), notifier))
		e.POST(
			"/api/registrations/:registrationId/complete/",
			handlers.RegistrationCompleteHandler(db.Registrations(), db.Users(), issuer, notifier),
		)
		e.GET("/api/registrations/", handlers.FindRegistrationHandler(db.Registrations()), admin)

		e.POST("/api/auth/login/", handlers.LoginHandler(db.Users(), issuer))
		e.GET("/api/auth/me/", handlers.WhoAmIHandler(db.Users()), user)
	}

	// documents
	{
		e.POST("/api/documents/", handlers.DocumentCreateHandler(db.Documents()), user)
		e.GET("/api/documents/", handlers.FindDocumentHandler(db.Documents()), admin)
		e.GET("/api/documents/:documentId/", handlers.GetDocumentHandler(db.Documents()), user)
		e.POST("/api/documents/:documentId/sign/", handlers.SignDocumentHandler(db.Documents()), user)
		e.POST("/api/documents/:documentId/signatures/", handlers.AddUserSignatureHandler(db.Documents()), user)
		e.GET(
			"/api/documents/:documentId/download/",
			handlers.DownloadDocumentHandler(db.Documents(), renderer),
			user,
		)
		e.PUT(
			"/api/documents/:documentId/countersign/",
			handlers.CountersignDocumentHandler(db.Documents(), db.Users(), notifier),
			admin,
		)
		e.PUT(
			"/api/documents/:documentId/publish/",
			handlers.PublishDocumentHandler(db.Documents(), db.Users(), notifier),
			admin,
		)
	}

	// devis and contracts
	{
		e.POST("/api/devis/", handlers.DevisCreateHandler(db.Devis()), user)
		e.GET("/api/devis/", handlers.FindDevisHandler(db.Devis()), user)
		e.GET("/api/devis/:devisId/", handlers.GetDevisHandler(db.Devis()), user)
		e.PUT("/api/devis/:devisId/decision/", handlers.DevisDecideHandler(db.Devis()), admin)
		e.POST(
			"/api/devis/:devisId/contrat/",
			handlers.DevisContratHandler(db.Devis(), db.Documents(), db.Sessions()),
			admin,
		)
		e.GET(
			"/api/devis/:devisId/facture/",
			handlers.DevisFactureHandler(db.Devis(), db.Sessions(), renderer),
			user,
		)
	}

	// non-conformités
	{
		e.POST("/api/nonconformites/", handlers.NonConformiteCreateHandler(db.NonConformites()), user)
		e.GET("/api/nonconformites/", handlers.FindNonConformiteHandler(db.NonConformites()), admin)
		e.GET("/api/nonconformites/:ncId/", handlers.GetNonConformiteHandler(db.NonConformites()), admin)
		e.POST(
			"/api/nonconformites/:ncId/actions/",
			handlers.NonConformiteActionHandler(db.NonConformites(), db.Documents()),
			admin,
		)
	}

	// training sessions
	{
		e.POST("/api/sessions/", handlers.SessionCreateHandler(db.Sessions()), admin)
		e.GET("/api/sessions/", handlers.FindSessionHandler(db.Sessions()))
		e.GET("/api/sessions/:sessionId/", handlers.GetSessionHandler(db.Sessions()), user)
		e.GET("/api/sessions/:sessionId/inductions/", handlers.ListInductionsHandler(db.Documents()), user)
		e.POST("/api/sessions/:sessionId/attendance/", handlers.AttendanceSignHandler(db.Sessions()), user)
		e.GET("/api/sessions/:sessionId/attendance/", handlers.ListAttendanceHandler(db.Sessions()), admin)
	}

	// shop
	{
		e.GET("/api/products/", handlers.FindProductsHandler(db.Catalog()))
		e.POST("/api/products/", handlers.ProductCreateHandler(db.Catalog()), admin)
		e.POST("/api/orders/", handlers.OrderCreateHandler(db.Catalog(), notifier))
		e.GET("/api/orders/:orderId/", handlers.GetOrderHandler(db.Catalog()), admin)
	}

	return e
}
