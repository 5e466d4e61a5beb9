package kvstore

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

const (
	schemeMemory = "memory"
	schemeSQLite = "sqlite"
	schemeRedis  = "redis"
	schemeRediss = "rediss"
	schemeS3     = "s3"

	errUnsupportedSchemeFmt = "unsupported store scheme %q"
	errParseStoreURLFmt     = "invalid store url: %w"
)

// Open selects a backend from the URL scheme:
// memory://, sqlite:///path/to/file.db, redis://host:6379/0, s3://bucket/prefix.
func Open(ctx context.Context, rawURL string) (Store, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf(errParseStoreURLFmt, err)
	}

	switch u.Scheme {
	case schemeMemory:
		return NewMemoryStore(), nil
	case schemeSQLite:
		return NewSQLiteStore(sqlitePath(rawURL))
	case schemeRedis, schemeRediss:
		return NewRedisStore(ctx, rawURL)
	case schemeS3:
		return NewS3Store(rawURL)
	default:
		return nil, fmt.Errorf(errUnsupportedSchemeFmt, u.Scheme)
	}
}

// sqlitePath keeps both sqlite:///abs/file.db and sqlite://relative.db working.
func sqlitePath(rawURL string) string {
	path := strings.TrimPrefix(rawURL, schemeSQLite+"://")
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		return sqliteMemoryPath
	}
	return path
}
