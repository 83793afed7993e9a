package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/assist"
	"resume-builder/internal/builder"
	"resume-builder/internal/exportgate"
	"resume-builder/internal/exports"
	"resume-builder/internal/llm"
	"resume-builder/internal/llm/gemini"
	"resume-builder/internal/llm/openai"
	"resume-builder/internal/shared/config"
	"resume-builder/internal/shared/pdf"
	"resume-builder/internal/shared/server"
	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/storage/db"
	"resume-builder/internal/shared/storage/object"
	localstore "resume-builder/internal/shared/storage/object/local"
	s3store "resume-builder/internal/shared/storage/object/s3"
	"resume-builder/internal/snapshots"
	"resume-builder/resume/editor"
	"resume-builder/resume/render"
)

// App holds shared dependencies and the wired router.
type App struct {
	Config         config.Config
	Router         *gin.Engine
	DB             *sql.DB
	Store          object.Store
	SnapshotsRepo  snapshots.Repo
	ExportsRepo    exports.Repo
	Snapshots      *snapshots.Store
	Gate           *exportgate.Gate
	Assist         *assist.Service
	Archive        *exports.Archive
	BuilderService *builder.Service
	BuilderHandler *builder.Handler
}

// Build prepares dependencies and wires routes.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	app := &App{Config: cfg}
	if err := buildRepos(ctx, app); err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.Store = store

	completer, err := buildCompleter(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app.Snapshots = snapshots.NewStore(app.SnapshotsRepo)
	app.Gate = exportgate.New(app.Snapshots)
	app.Assist = assist.NewService(completer)
	if store != nil {
		app.Archive = &exports.Archive{Repo: app.ExportsRepo, Store: store}
	}
	app.BuilderService = &builder.Service{
		Store:   app.Snapshots,
		Gate:    app.Gate,
		Assist:  app.Assist,
		PDF:     pdf.New(cfg.PDFRenderer, cfg.ChromePath),
		Archive: app.Archive,
		Policy:  render.ParsePolicy(cfg.DocxPolicy),
		IDs:     editor.UUIDSource{},
	}
	app.BuilderHandler = builder.NewHandler(app.BuilderService)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:  cfg,
		Builder: app.BuilderHandler,
		Limiter: middleware.NewRateLimiter(nil),
	})
	return app, nil
}

func buildRepos(ctx context.Context, app *App) error {
	cfg := app.Config
	switch cfg.Store {
	case "sqlite":
		sqlDB, err := db.OpenSQLite(ctx, cfg.SQLiteDir)
		if err != nil {
			return err
		}
		app.DB = sqlDB
		app.SnapshotsRepo = &snapshots.SQLiteRepo{DB: sqlDB}
		app.ExportsRepo = &exports.SQLiteRepo{DB: sqlDB}
		return nil
	case "postgres":
		sqlDB, err := buildDB(ctx, cfg)
		if err != nil {
			return err
		}
		if sqlDB != nil {
			app.DB = sqlDB
			app.SnapshotsRepo = &snapshots.PGRepo{DB: sqlDB}
			app.ExportsRepo = &exports.PGRepo{DB: sqlDB}
			return nil
		}
	}
	app.SnapshotsRepo = snapshots.NewMemoryRepo()
	app.ExportsRepo = exports.NewMemoryRepo()
	return nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	var (
		sqlDB *sql.DB
		err   error
	)
	profile := db.RuntimeProfile()
	opts := db.OptionsFromEnv(db.DefaultOptions(profile))
	if profile == db.ProfileLambda {
		sqlDB, err = db.GetSingleton(ctx, cfg.DatabaseURL, opts)
	} else {
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, opts)
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if isDevLike(cfg.Env) {
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.Store, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	case "local":
		return localstore.New(cfg.LocalStoreDir), nil
	default:
		return nil, nil
	}
}

func buildCompleter(ctx context.Context, cfg config.Config) (llm.Completer, error) {
	switch cfg.LLMProvider {
	case "openai":
		return openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel)
	case "gemini":
		return gemini.NewClient(ctx, cfg.GeminiAPIKey, cfg.LLMModel)
	case "", "none":
		return llm.PlaceholderClient{}, nil
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.LLMProvider)
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
