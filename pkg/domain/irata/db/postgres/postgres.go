package postgres

import (
	"context"

	kpool "github.com/DavidAtikpo/irata-sub007/pkg/conn/db/postgres/pool"
	kpgschemaimpl "github.com/DavidAtikpo/irata-sub007/pkg/db/postgres/schema"
	kcatalog "github.com/DavidAtikpo/irata-sub007/pkg/domain/catalog/db"
	kpgcatalog "github.com/DavidAtikpo/irata-sub007/pkg/domain/catalog/db/postgres"
	kdevis "github.com/DavidAtikpo/irata-sub007/pkg/domain/devis/db"
	kpgdevis "github.com/DavidAtikpo/irata-sub007/pkg/domain/devis/db/postgres"
	kdocument "github.com/DavidAtikpo/irata-sub007/pkg/domain/document/db"
	kpgdocument "github.com/DavidAtikpo/irata-sub007/pkg/domain/document/db/postgres"
	dbInterface "github.com/DavidAtikpo/irata-sub007/pkg/domain/irata/db"
	knc "github.com/DavidAtikpo/irata-sub007/pkg/domain/nonconformite/db"
	kpgnc "github.com/DavidAtikpo/irata-sub007/pkg/domain/nonconformite/db/postgres"
	kregistration "github.com/DavidAtikpo/irata-sub007/pkg/domain/registration/db"
	kpgregistration "github.com/DavidAtikpo/irata-sub007/pkg/domain/registration/db/postgres"
	kschema "github.com/DavidAtikpo/irata-sub007/pkg/domain/schema/db"
	ksession "github.com/DavidAtikpo/irata-sub007/pkg/domain/session/db"
	kpgsession "github.com/DavidAtikpo/irata-sub007/pkg/domain/session/db/postgres"
)

type irataDBPostgres struct {
	pool           kpool.Pool
	documents      kdocument.DocumentInterface
	registrations  kregistration.RegistrationInterface
	users          kregistration.UserInterface
	devis          kdevis.DevisInterface
	nonConformites knc.NonConformiteInterface
	sessions       ksession.SessionInterface
	catalog        kcatalog.CatalogInterface
	schema         kschema.SchemaInterface
}

type Config struct {
	SchemaRepository string
}

type Option func(*Config) *Config

func WithSchemaRepository(repository string) Option {
	return func(c *Config) *Config {
		c.SchemaRepository = repository
		return c
	}
}

// New connects to PostgreSQL at url and builds the repository bundle.
func New(ctx context.Context, url string, options ...Option) (dbInterface.Database, error) {
	c := Config{}
	for _, option := range options {
		c = *option(&c)
	}

	pool, err := kpool.New(ctx, url)
	if err != nil {
		return nil, err
	}

	var schema kschema.SchemaInterface = kpgschemaimpl.Null()
	if c.SchemaRepository != "" {
		schema = kpgschemaimpl.New(pool, c.SchemaRepository)
	}

	return &irataDBPostgres{
		pool:           pool,
		documents:      kpgdocument.New(pool),
		registrations:  kpgregistration.New(pool),
		users:          kpgregistration.NewUser(pool),
		devis:          kpgdevis.New(pool),
		nonConformites: kpgnc.New(pool),
		sessions:       kpgsession.New(pool),
		catalog:        kpgcatalog.New(pool),
		schema:         schema,
	}, nil
}

func (d *irataDBPostgres) Documents() kdocument.DocumentInterface {
	return d.documents
}

func (d *irataDBPostgres) Registrations() kregistration.RegistrationInterface {
	return d.registrations
}

func (d *irataDBPostgres) Users() kregistration.UserInterface {
	return d.users
}

func (d *irataDBPostgres) Devis() kdevis.DevisInterface {
	return d.devis
}

func (d *irataDBPostgres) NonConformites() knc.NonConformiteInterface {
	return d.nonConformites
}

func (d *irataDBPostgres) Sessions() ksession.SessionInterface {
	return d.sessions
}

func (d *irataDBPostgres) Catalog() kcatalog.CatalogInterface {
	return d.catalog
}

func (d *irataDBPostgres) Schema() kschema.SchemaInterface {
	return d.schema
}

func (d *irataDBPostgres) Close() error {
	d.pool.Close()
	return nil
}
