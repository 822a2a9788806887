package app

import (
	"context"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/fsdevblog/shortlinks/internal/config"
	"github.com/fsdevblog/shortlinks/internal/controllers"
	"github.com/fsdevblog/shortlinks/internal/db/memory"
	"github.com/fsdevblog/shortlinks/internal/logs"
	"github.com/fsdevblog/shortlinks/internal/repositories/memstore"
	"github.com/fsdevblog/shortlinks/internal/services"
)

type App struct {
	config      config.Config
	store       *memory.MStorage
	linkService *services.LinkService
	Logger      *zap.Logger
}

// New собирает приложение. Реестр ссылок живет только в памяти процесса
// и теряется при перезапуске.
func New(conf config.Config) *App {
	logger := logs.MustNew()

	store := memory.NewMemStorage()
	linkRepo := memstore.NewLinkRepo(store)
	linkService := services.NewLinkService(linkRepo, logger)

	return &App{
		config:      conf,
		store:       store,
		linkService: linkService,
		Logger:      logger,
	}
}

// Run запускает web сервер и блокируется до сигнала остановки.
func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errChan := make(chan error, 1)

	router := controllers.SetupRouter(controllers.RouterParams{
		LinkService: a.linkService,
		AppConf:     a.config,
		Logger:      a.Logger,
	})

	go func() {
		if err := router.Run(a.config.ServerAddress); err != nil {
			errChan <- err
		}
	}()

	var serverErr error
	select {
	case <-ctx.Done():
		a.Logger.Info("Shutdown command received", zap.Int("links", a.store.Len()))
	case serverErr = <-errChan:
		a.Logger.Error("router error", zap.Error(serverErr))
	}

	return serverErr
}
