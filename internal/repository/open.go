package repository

import (
	"cipherstudio/internal/repository/memory"
	"cipherstudio/internal/repository/mongodb"
	"cipherstudio/internal/repository/postgres"
	"context"
	"fmt"
	"net/url"
	"time"
)

const (
	schemeMongo       = "mongodb"
	schemeMongoSRV    = "mongodb+srv"
	schemePostgres    = "postgres"
	schemePostgresql  = "postgresql"
	schemeMemory      = "memory"
	errUnknownSchemeF = "unsupported database scheme %q"
	errParseURLFmt    = "invalid database url: %w"
)

type OpenOptions struct {
	URL            string
	DatabaseName   string
	ConnectTimeout time.Duration
}

// Open picks a backend from the URL scheme. An empty URL yields Unavailable.
func Open(ctx context.Context, opts OpenOptions) (ProjectRepository, error) {
	if opts.URL == "" {
		return Unavailable{}, nil
	}

	u, err := url.Parse(opts.URL)
	if err != nil {
		return nil, fmt.Errorf(errParseURLFmt, err)
	}

	switch u.Scheme {
	case schemeMongo, schemeMongoSRV:
		db, err := mongodb.Connect(ctx, opts.URL, opts.DatabaseName, opts.ConnectTimeout)
		if err != nil {
			return nil, err
		}
		repo := mongodb.NewProjectRepository(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = db.Close(ctx)
			return nil, err
		}
		return repo, nil

	case schemePostgres, schemePostgresql:
		db, err := postgres.New(ctx, opts.URL, opts.ConnectTimeout)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, err
		}
		return postgres.NewProjectRepository(db), nil

	case schemeMemory:
		return memory.NewProjectRepository(), nil

	default:
		return nil, fmt.Errorf(errUnknownSchemeF, u.Scheme)
	}
}
