// Package server initializes and runs the auth backend: it loads config,
// connects the document store, ensures indexes, wires the services, and
// starts the HTTP server with graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/dmitrijs2005/videotube/internal/logging"
	"github.com/dmitrijs2005/videotube/internal/server/config"
	"github.com/dmitrijs2005/videotube/internal/server/httpapi"
	"github.com/dmitrijs2005/videotube/internal/server/media"
	"github.com/dmitrijs2005/videotube/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/videotube/internal/server/services"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	client      *mongo.Client
	userService *services.UserService
	httpServer  *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("db ping error: %w", err)
	}

	db := client.Database(cfg.MongoDatabase)

	rm, err := repomanager.NewMongoRepositoryManager()
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if err := rm.EnsureIndexes(connectCtx, db); err != nil {
		return nil, fmt.Errorf("db index error: %w", err)
	}

	storage := media.NewS3Storage(cfg)
	us := services.NewUserService(rm.Users(db), storage, cfg)
	srv := httpapi.NewServer(cfg, logger, us)

	return &App{config: cfg, logger: logger, client: client, userService: us, httpServer: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.httpServer.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.client.Disconnect(disconnectCtx); err != nil {
		app.logger.Error(ctx, "db disconnect error", "error", err)
	}
}
