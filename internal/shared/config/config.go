package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string
	DatabaseURL     string
	Store           string
	SQLiteDir       string
	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	SSEKMSKeyID     string
	LLMProvider     string
	LLMModel        string
	OpenAIAPIKey    string
	GeminiAPIKey    string
	DocxPolicy      string
	PDFRenderer     string
	ChromePath      string
	AssistRate      float64
	AssistBurst     int
}

// Load reads configuration from environment variables with sensible defaults.
// Values from the TOML file named by CONFIG_FILE fill keys the environment leaves unset.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	file := map[string]string{}
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		loaded, err := loadTOMLFile(path)
		if err != nil {
			log.Printf("config file %s ignored: %v", path, err)
		} else {
			file = loaded
		}
	}
	return fromLookup(func(key string) string {
		if val := os.Getenv(key); val != "" {
			return val
		}
		return file[key]
	})
}

func fromLookup(lookup func(string) string) Config {
	get := func(key, def string) string {
		if val := strings.TrimSpace(lookup(key)); val != "" {
			return val
		}
		return def
	}

	env := normalizeEnv(get("ENV", "dev"))
	dbURL := get("DATABASE_URL", "")
	store := normalizeStore(get("STORE", ""), dbURL)
	if env == "production" && store == "memory" {
		log.Printf("STORE=memory in production; snapshots will not survive restarts")
	}

	return Config{
		Port:            get("PORT", "8080"),
		Env:             env,
		CORSAllowOrigin: splitAndTrim(get("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		DatabaseURL:     dbURL,
		Store:           store,
		SQLiteDir:       get("SQLITE_DIR", "./data"),
		ObjectStoreType: normalizeObjectStore(get("OBJECT_STORE", "none")),
		LocalStoreDir:   get("LOCAL_STORE_DIR", "./data/exports"),
		AWSRegion:       get("AWS_REGION", ""),
		S3Bucket:        get("S3_BUCKET", ""),
		S3Prefix:        get("S3_PREFIX", ""),
		SSEKMSKeyID:     get("SSE_KMS_KEY_ID", ""),
		LLMProvider:     strings.ToLower(get("LLM_PROVIDER", "none")),
		LLMModel:        get("LLM_MODEL", ""),
		OpenAIAPIKey:    get("OPENAI_API_KEY", ""),
		GeminiAPIKey:    get("GEMINI_API_KEY", ""),
		DocxPolicy:      strings.ToLower(get("DOCX_POLICY", "aligned")),
		PDFRenderer:     strings.ToLower(get("PDF_RENDERER", "none")),
		ChromePath:      get("CHROME_PATH", ""),
		AssistRate:      parseFloat(get("ASSIST_RATE", "20"), 20),
		AssistBurst:     parseInt(get("ASSIST_BURST", "5"), 5),
	}
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

// normalizeStore defaults to postgres when a database URL is set.
func normalizeStore(raw, dbURL string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "postgres", "pg":
		return "postgres"
	case "sqlite":
		return "sqlite"
	case "memory":
		return "memory"
	}
	if dbURL != "" {
		return "postgres"
	}
	return "memory"
}

func normalizeObjectStore(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	case "local":
		return "local"
	default:
		return "none"
	}
}

func parseFloat(raw string, def float64) float64 {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		log.Printf("invalid number %q, using %v", raw, def)
		return def
	}
	return v
}

func parseInt(raw string, def int) int {
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		log.Printf("invalid integer %q, using %d", raw, def)
		return def
	}
	return v
}
