// Package server wires the sharebox stores, services and web layer together
// and runs them until the process is told to stop.
package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/aws"

	"github.com/dmitrijs2005/sharebox/internal/awsx"
	"github.com/dmitrijs2005/sharebox/internal/logging"
	"github.com/dmitrijs2005/sharebox/internal/server/blobstore"
	"github.com/dmitrijs2005/sharebox/internal/server/config"
	"github.com/dmitrijs2005/sharebox/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/sharebox/internal/server/services"
	"github.com/dmitrijs2005/sharebox/internal/server/session"
	"github.com/dmitrijs2005/sharebox/internal/server/web"
)

type App struct {
	config *config.Config
	logger logging.Logger
	repos  repomanager.RepositoryManager
	server *web.Server
}

func needsAWS(c *config.Config) bool {
	return c.RecordStore == config.RecordStoreDynamoDB || c.BlobStore == config.BlobStoreS3
}

// NewApp builds one client per external store and hands them to the
// services. Logs go to out.
func NewApp(ctx context.Context, c *config.Config, out io.Writer) (*App, error) {
	logger := logging.NewJSONLogger(out, logging.ParseLevel(c.LogLevel))

	var awsCfg aws.Config
	if needsAWS(c) {
		var err error
		awsCfg, err = awsx.LoadConfig(ctx, c.S3Region, c.S3AccessKey, c.S3SecretKey)
		if err != nil {
			return nil, fmt.Errorf("aws config error: %w", err)
		}
	}

	repos, err := repomanager.New(ctx, c, awsCfg)
	if err != nil {
		return nil, fmt.Errorf("record store init error: %w", err)
	}

	blobs, err := blobstore.New(ctx, c, awsCfg)
	if err != nil {
		_ = repos.Close()
		return nil, fmt.Errorf("blob store init error: %w", err)
	}

	us := services.NewUserService(repos.Users(), logger)
	as := services.NewAuthService(repos.Users(), repos.Files(), c.AdminEmail, c.AdminPassword, logger)
	fs := services.NewFileService(as, repos.Files(), blobs, c.MaxUploadBytes, logger)
	sessions := session.NewManager(session.NewStore(c.SessionTTL), c.SessionSecret, c.SessionTTL)

	h, err := web.NewHandler(us, as, fs, sessions, logger)
	if err != nil {
		_ = repos.Close()
		return nil, fmt.Errorf("web init error: %w", err)
	}
	if ms, ok := blobs.(*blobstore.MemoryStore); ok {
		h.ServeBlobs(ms)
	}

	logger.Info(ctx, "stores ready", "record_store", c.RecordStore, "blob_store", c.BlobStore)

	return &App{
		config: c,
		logger: logger,
		repos:  repos,
		server: web.NewServer(c.HTTPAddr, h, logger),
	}, nil
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case <-sigs:
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

// Run serves until ctx is done or a termination signal arrives, then closes
// the record store.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	err := app.server.Run(ctx)
	if err != nil {
		app.logger.Error(ctx, "http server error", "err", err)
	}

	if cerr := app.repos.Close(); cerr != nil {
		app.logger.Error(ctx, "record store close error", "err", cerr)
	}
	app.logger.Info(ctx, "App stopped")
	return err
}
