package db

import (
	kcatalog "github.com/DavidAtikpo/irata-sub007/pkg/domain/catalog/db"
	kdevis "github.com/DavidAtikpo/irata-sub007/pkg/domain/devis/db"
	kdocument "github.com/DavidAtikpo/irata-sub007/pkg/domain/document/db"
	knc "github.com/DavidAtikpo/irata-sub007/pkg/domain/nonconformite/db"
	kregistration "github.com/DavidAtikpo/irata-sub007/pkg/domain/registration/db"
	kschema "github.com/DavidAtikpo/irata-sub007/pkg/domain/schema/db"
	ksession "github.com/DavidAtikpo/irata-sub007/pkg/domain/session/db"
)

// Database bundles every repository of the application over one connection
// pool.
type Database interface {
	Documents() kdocument.DocumentInterface
	Registrations() kregistration.RegistrationInterface
	Users() kregistration.UserInterface
	Devis() kdevis.DevisInterface
	NonConformites() knc.NonConformiteInterface
	Sessions() ksession.SessionInterface
	Catalog() kcatalog.CatalogInterface
	Schema() kschema.SchemaInterface
	Close() error
}
