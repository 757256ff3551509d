package config

import (
	"net/url"
	"os"
	"strconv"
)

type Config struct {
	Port           string
	DatabaseURL    string
	MigrationsPath string
}

func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8082"),
		DatabaseURL:    databaseURL(),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
	}
}

// databaseURL prefers DATABASE_URL and otherwise assembles one from the
// POSTGRES_* variables. Host, user, password, and database name must all be
// present for the assembled form; when any is missing the result is empty and
// the server falls back to the in-memory repository.
func databaseURL() string {
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		return dbURL
	}

	host := os.Getenv("POSTGRES_HOST")
	user := os.Getenv("POSTGRES_USER")
	password := os.Getenv("POSTGRES_PASSWORD")
	db := os.Getenv("POSTGRES_DB")
	if host == "" || user == "" || password == "" || db == "" {
		return ""
	}

	port := "5432"
	if p := os.Getenv("POSTGRES_PORT"); p != "" {
		if _, err := strconv.Atoi(p); err == nil {
			port = p
		}
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(user, password),
		Host:     host + ":" + port,
		Path:     "/" + db,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
