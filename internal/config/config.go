package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type Config struct {
	Mode     Mode
	HTTPAddr string

	DBDriver string
	DBDSN    string

	BlobBasePath string

	// AuthRequired guards the API with bearer tokens. When false every
	// request acts as the author.
	AuthRequired   bool
	AuthHMACSecret string
	AuthorUser     string
	AuthorPassHash string // bcrypt; empty disables /auth/login

	CORSOrigins []string

	LogLevel string
	LogFile  string // empty: console only

	// ShuffleSeed makes shuffled fields reproducible across runs; 0 = random.
	ShuffleSeed uint64
}

// Load reads .env files (when present) and then the environment.
func Load(files ...string) Config {
	// A missing .env is fine; real environment variables still apply.
	_ = godotenv.Load(files...)
	return FromEnv()
}

func FromEnv() Config {
	mode := Mode(os.Getenv("MODE"))
	if mode == "" {
		mode = ModeOffline
	}
	defOrigins := "http://localhost:3000"
	if mode == ModeOnline {
		defOrigins = ""
	}
	return Config{
		Mode:           mode,
		HTTPAddr:       envOr("HTTP_ADDR", ":8080"),
		DBDriver:       envOr("DB_DRIVER", "sqlite"),
		DBDSN:          envOr("DB_DSN", ""),
		BlobBasePath:   envOr("BLOB_BASE_PATH", "./data"),
		AuthRequired:   envBool("AUTH_REQUIRED", mode == ModeOnline),
		AuthHMACSecret: envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		AuthorUser:     envOr("AUTHOR_USER", "author"),
		AuthorPassHash: os.Getenv("AUTHOR_PASS_HASH"),
		CORSOrigins:    csvOr("CORS_ORIGINS", defOrigins),
		LogLevel:       envOr("LOG_LEVEL", "info"),
		LogFile:        os.Getenv("LOG_FILE"),
		ShuffleSeed:    envUint("SHUFFLE_SEED", 0),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}

func envUint(k string, def uint64) uint64 {
	v, err := strconv.ParseUint(os.Getenv(k), 10, 64)
	if err != nil {
		return def
	}
	return v
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
