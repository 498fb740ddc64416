package app

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/yourusername/rocket-motor-showroom/config"
	"github.com/yourusername/rocket-motor-showroom/internal/delivery/api"
	"github.com/yourusername/rocket-motor-showroom/internal/delivery/telegram"
	"github.com/yourusername/rocket-motor-showroom/internal/domain/repository"
	"github.com/yourusername/rocket-motor-showroom/internal/infrastructure/gemini"
	"github.com/yourusername/rocket-motor-showroom/internal/infrastructure/parser"
	"github.com/yourusername/rocket-motor-showroom/internal/infrastructure/storage"
	"github.com/yourusername/rocket-motor-showroom/internal/usecase"
	logx "github.com/yourusername/rocket-motor-showroom/pkg/logger"
)

// App barcha komponentlarni bog'laydi
type App struct {
	cfg *config.Config

	Inventory usecase.InventoryUseCase
	Compare   usecase.CompareUseCase
	Admin     usecase.AdminUseCase
	Chat      usecase.ChatUseCase
	Importer  repository.InventoryImporter
	Carousel  *usecase.Carousel
	API       *api.Server

	closers []func() error
}

// New konfiguratsiya bo'yicha omborlarni ochib, use case larni yaratadi
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	a := &App{cfg: cfg}

	snapshots, err := a.openSnapshots(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	inventory, err := usecase.NewInventoryUseCase(ctx, snapshots, usecase.InventoryConfig{
		SaveTimeout:  cfg.SaveTimeout,
		SaveRetries:  cfg.SaveRetries,
		RetryBackoff: cfg.SaveRetryBackoff,
	})
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to load inventory: %w", err)
	}

	chatRepo, err := a.openChat()
	if err != nil {
		a.Close()
		return nil, err
	}

	var aiRepo repository.AIRepository
	if cfg.GeminiAPIKey != "" {
		client, err := gemini.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		aiRepo = client
	} else {
		logx.Warn().Msg("GEMINI_API_KEY berilmagan, konsyerj o'chirilgan")
	}

	a.Inventory = inventory
	a.Importer = parser.NewExcelParser()
	a.Compare = usecase.NewCompareUseCase(inventory)
	a.Chat = usecase.NewChatUseCase(aiRepo, chatRepo, inventory, cfg.MaxContextSize)
	a.Admin = usecase.NewAdminUseCase(
		storage.NewMemoryAdminRepository(),
		inventory,
		a.Importer,
		chatRepo,
		cfg.Credentials(),
	)
	a.Carousel = usecase.NewCarousel(inventory.HeroSlides, cfg.CarouselInterval)
	a.API = api.NewServer(a.Inventory, a.Compare, a.Admin, a.Importer, a.Carousel)

	logx.Info().
		Str("storage", cfg.StorageDriver).
		Int("vehicles", len(inventory.ListVehicles())).
		Int("categories", len(inventory.Categories())).
		Msg("showroom tayyor")
	return a, nil
}

// openSnapshots STORAGE_DRIVER bo'yicha snapshot ombori
func (a *App) openSnapshots(ctx context.Context) (repository.SnapshotRepository, error) {
	switch a.cfg.StorageDriver {
	case config.StorageMemory:
		return storage.NewMemorySnapshotRepository(), nil

	case config.StorageRedis:
		client, err := a.cfg.Redis.New(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		a.closers = append(a.closers, client.Close)
		return storage.NewRedisSnapshotRepository(client), nil

	default:
		repo, closeFn, err := storage.NewSQLiteSnapshotRepository(a.cfg.SnapshotDBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open snapshot db: %w", err)
		}
		a.closers = append(a.closers, closeFn)
		return repo, nil
	}
}

// openChat xotira rejimida suhbatlar ham xotirada
func (a *App) openChat() (repository.ChatRepository, error) {
	if a.cfg.StorageDriver == config.StorageMemory {
		return storage.NewMemoryChatRepository(a.cfg.MaxContextSize), nil
	}

	repo, closeFn, err := storage.NewSQLiteChatRepository(a.cfg.ChatDBPath, a.cfg.MaxContextSize)
	if err != nil {
		return nil, fmt.Errorf("failed to open chat db: %w", err)
	}
	a.closers = append(a.closers, closeFn)
	return repo, nil
}

// Serve HTTP API, karusel va (token bo'lsa) botni kontekst tugaguncha ishlatadi
func (a *App) Serve(ctx context.Context) error {
	var bot *telegram.BotHandler
	if a.cfg.TelegramToken != "" {
		var err error
		bot, err = telegram.NewBotHandler(a.cfg.TelegramToken, a.Chat, a.Admin, a.Inventory, a.Compare, a.Carousel)
		if err != nil {
			return err
		}
	} else {
		logx.Warn().Msg("TELEGRAM_BOT_TOKEN berilmagan, bot ishga tushirilmadi")
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return a.API.Run(gctx, a.cfg.HTTPAddr)
	})
	g.Go(func() error {
		return a.Carousel.Run(gctx)
	})
	if bot != nil {
		g.Go(func() error {
			return bot.Start(gctx)
		})
	}

	return g.Wait()
}

// Close ochilgan resurslarni teskari tartibda yopadi
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
