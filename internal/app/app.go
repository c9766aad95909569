// Package app wires configuration, storage and services together and runs
// the HTTP server with graceful shutdown on SIGINT, SIGTERM and SIGQUIT.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/docqa/internal/archive"
	"github.com/dmitrijs2005/docqa/internal/config"
	"github.com/dmitrijs2005/docqa/internal/extract"
	"github.com/dmitrijs2005/docqa/internal/httpapi"
	"github.com/dmitrijs2005/docqa/internal/keystore"
	"github.com/dmitrijs2005/docqa/internal/logging"
	"github.com/dmitrijs2005/docqa/internal/qa"
	"github.com/dmitrijs2005/docqa/internal/repositories/repomanager"
	"github.com/dmitrijs2005/docqa/internal/secrets"
	"github.com/dmitrijs2005/docqa/internal/services"
	"github.com/dmitrijs2005/docqa/internal/storage"
	"github.com/gin-gonic/gin"
)

var openStore = storage.Open

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	repomanager repomanager.RepositoryManager

	Chatbot *services.Chatbot
	Admin   *services.Admin

	closers []func() error
}

// New opens the store, applies migrations, loads the encryption key when
// the secret policy needs one, and builds the services. Log output goes
// to logOut.
func New(ctx context.Context, c *config.Config, logOut io.Writer) (*App, error) {
	logger, err := logging.New(c.LogFormat, c.LogLevel, logOut)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	app := &App{config: c, logger: logger}
	if z, ok := logger.(*logging.ZapLogger); ok {
		app.closers = append(app.closers, func() error { _ = z.Sync(); return nil })
	}

	if err := app.init(ctx); err != nil {
		_ = app.Close()
		return nil, err
	}
	return app, nil
}

func (app *App) init(ctx context.Context) error {
	c := app.config

	db, err := openStore(ctx, c.DatabaseDriver, c.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("db init error: %w", err)
	}
	app.db = db
	app.closers = append(app.closers, db.Close)

	rm, err := repomanager.New(c.DatabaseDriver, app.logger)
	if err != nil {
		return err
	}
	app.repomanager = rm

	if err := rm.RunMigrations(ctx, db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	var key []byte
	if c.SecretPolicy == secrets.PolicyEncrypted {
		key, err = keystore.Load(ctx, keystore.Source{EnvVar: c.EncryptionKeyEnv, File: c.EncryptionKeyFile}, app.logger)
		if err != nil {
			return err
		}
	}
	codec, err := secrets.New(c.SecretPolicy, key)
	if err != nil {
		return err
	}

	engine, err := app.newEngine(ctx)
	if err != nil {
		return err
	}

	arch, err := newArchive(ctx, c)
	if err != nil {
		return err
	}

	creds := services.NewCredentialStore(db, rm, codec, app.logger)
	cache, err := services.NewDocumentCache(db, rm, extract.NewDefault(), arch, c.CachePolicy, app.logger)
	if err != nil {
		return err
	}
	gate := services.NewSessionGate(creds)
	pipeline := services.NewPipeline(gate, cache, engine, app.logger)

	app.Chatbot = services.NewChatbot(creds, pipeline)
	app.Admin = services.NewAdmin(db, rm)

	app.logger.Info(ctx, "app initialized",
		"driver", c.DatabaseDriver,
		"secret_policy", c.SecretPolicy,
		"cache_policy", c.CachePolicy,
		"qa_engine", c.QAEngine,
		"archive", c.ArchiveBackend,
	)
	return nil
}

func (app *App) newEngine(ctx context.Context) (qa.Engine, error) {
	c := app.config
	switch c.QAEngine {
	case config.EngineLexical:
		return qa.NewLexical(), nil
	case config.EngineOpenAI:
		return qa.NewOpenAI(c.OpenAIBaseURL, c.OpenAIAPIKey, c.OpenAIModel), nil
	case config.EngineGemini:
		g, err := qa.NewGemini(ctx, c.GeminiAPIKey, c.GeminiModel)
		if err != nil {
			return nil, fmt.Errorf("gemini init error: %w", err)
		}
		app.closers = append(app.closers, g.Close)
		return g, nil
	default:
		return nil, fmt.Errorf("unknown qa engine %q", c.QAEngine)
	}
}

func newArchive(ctx context.Context, c *config.Config) (archive.Archive, error) {
	switch c.ArchiveBackend {
	case config.ArchiveNone, "":
		return archive.Nop{}, nil
	case config.ArchiveLocal:
		return archive.NewLocal(c.ArchiveDir)
	case config.ArchiveS3:
		return archive.NewS3(ctx, archive.S3Options{
			AccessKey:    c.S3AccessKey,
			SecretKey:    c.S3SecretKey,
			Bucket:       c.S3Bucket,
			Region:       c.S3Region,
			BaseEndpoint: c.S3BaseEndpoint,
		})
	default:
		return nil, fmt.Errorf("unknown archive backend %q", c.ArchiveBackend)
	}
}

func (app *App) Logger() logging.Logger {
	return app.logger
}

// Handler returns the HTTP API for this app.
func (app *App) Handler() *gin.Engine {
	return httpapi.NewRouter(app.Chatbot, app.Admin, httpapi.Options{
		MaxUploadBytes: app.config.MaxUploadBytes,
		Health:         app.db.PingContext,
	}, app.logger)
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Serve runs the HTTP server until ctx is cancelled or a termination
// signal arrives.
func (app *App) Serve(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	gin.SetMode(gin.ReleaseMode)
	s := httpapi.NewServer(app.config.HTTPAddr, app.Handler(), app.logger)
	return s.Run(ctx)
}

// Close releases the store and engine clients in reverse order of
// acquisition.
func (app *App) Close() error {
	var errs []error
	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	app.closers = nil
	return errors.Join(errs...)
}
