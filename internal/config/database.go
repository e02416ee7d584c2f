package config

import (
	"fmt"
	"net"
	neturl "net/url"
	"os"
	"strings"
)

// databaseURLKeys are checked in order for a ready-made Postgres DSN.
var databaseURLKeys = []string{
	"DATABASE_URL",
	"DATABASE_PUBLIC_URL",
	"DATABASE_INTERNAL_URL",
	"DATABASE_EXTERNAL_URL",
	"DATABASE_URL_NO_SSL",
	"DATABASE_DIRECT_URL",
	"POSTGRES_URL",
	"PGURL",
	"RAILWAY_DATABASE_URL",
	"RAILWAY_PUBLIC_URL",
}

// databaseURLFileKeys name files holding a DSN, as mounted by secret managers.
var databaseURLFileKeys = []string{"DATABASE_URL_FILE", "PGURL_FILE"}

var (
	pgHostKeys     = []string{"PGHOST", "POSTGRES_HOST", "POSTGRESQL_ADDON_HOST", "DATABASE_HOST", "RAILWAY_TCP_PROXY_DOMAIN", "RAILWAY_PRIVATE_DOMAIN"}
	pgUserKeys     = []string{"PGUSER", "POSTGRES_USER", "POSTGRESQL_ADDON_USER", "DATABASE_USERNAME", "DATABASE_USER"}
	pgPasswordKeys = []string{"PGPASSWORD", "POSTGRES_PASSWORD", "POSTGRESQL_ADDON_PASSWORD", "DATABASE_PASSWORD"}
	pgDatabaseKeys = []string{"PGDATABASE", "POSTGRES_DB", "POSTGRES_DATABASE", "POSTGRESQL_ADDON_DB", "DATABASE_NAME"}
	pgPortKeys     = []string{"PGPORT", "POSTGRES_PORT", "POSTGRESQL_ADDON_PORT", "DATABASE_PORT", "RAILWAY_TCP_PROXY_PORT"}
	pgSSLModeKeys  = []string{"PGSSLMODE", "PGSSL_MODE", "PGSSL", "POSTGRES_SSL_MODE"}
)

// resolveDatabaseURL finds a Postgres DSN from, in order: a URL variable, a
// URL file, or discrete PG*/POSTGRES_* parts. It returns "" when none is set.
func resolveDatabaseURL() (string, error) {
	for _, key := range databaseURLKeys {
		if url := coerceDatabaseURL(os.Getenv(key)); url != "" {
			return url, nil
		}
	}

	for _, key := range databaseURLFileKeys {
		raw, err := readEnvFile(key)
		if err != nil {
			return "", err
		}
		if url := coerceDatabaseURL(raw); url != "" {
			return url, nil
		}
	}

	return buildDatabaseURL(), nil
}

func buildDatabaseURL() string {
	host := firstEnv(pgHostKeys...)
	user := firstEnv(pgUserKeys...)
	if host == "" || user == "" {
		return ""
	}
	password := firstEnv(pgPasswordKeys...)
	database := firstNonEmpty(firstEnv(pgDatabaseKeys...), user)
	port := firstNonEmpty(firstEnv(pgPortKeys...), "5432")
	sslMode := firstNonEmpty(firstEnv(pgSSLModeKeys...), "require")

	dsn := &neturl.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(host, port),
		Path:   "/" + database,
		User:   neturl.User(user),
	}
	if password != "" {
		dsn.User = neturl.UserPassword(user, password)
	}
	query := dsn.Query()
	query.Set("sslmode", sslMode)
	dsn.RawQuery = query.Encode()

	return dsn.String()
}

// coerceDatabaseURL accepts only postgres URLs so stray values such as a
// MySQL DSN in DATABASE_URL are skipped.
func coerceDatabaseURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "postgres://") || strings.HasPrefix(raw, "postgresql://") {
		return normalisePostgresScheme(raw)
	}
	return ""
}

func normalisePostgresScheme(url string) string {
	if strings.HasPrefix(url, "postgresql://") {
		return "postgres://" + strings.TrimPrefix(url, "postgresql://")
	}
	return url
}

func readEnvFile(key string) (string, error) {
	path := strings.TrimSpace(os.Getenv(key))
	if path == "" {
		return "", nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%s: %w", key, err)
	}
	return strings.TrimSpace(string(data)), nil
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
