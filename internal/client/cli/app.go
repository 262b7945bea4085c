package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/avoronin/daybook/internal/client/api"
	"github.com/avoronin/daybook/internal/client/cache"
	"github.com/avoronin/daybook/internal/client/config"
	"github.com/avoronin/daybook/internal/client/greeting"
	"github.com/avoronin/daybook/internal/client/providers"
	"github.com/avoronin/daybook/internal/client/session"
	"github.com/avoronin/daybook/internal/client/storage"
	"github.com/avoronin/daybook/internal/logging"
	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
)

type Mode string

const (
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

// clientIDKey is the settings record holding the installation id attached to
// every backend request.
const clientIDKey = "client_id"

const onlineCheckInterval = 30 * time.Second

type App struct {
	config    *config.Config
	log       logging.Logger
	repos     *storage.Repositories
	api       api.Client
	cache     *cache.SummaryCache
	providers *providers.Store
	session   *session.Coordinator
	greeting  *greeting.Generator

	reader *bufio.Reader
	out    io.Writer

	mu   sync.Mutex
	mode Mode
}

func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	repos, err := storage.InitDatabase(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("initializing local database: %w", err)
	}

	clientID, err := loadOrCreateClientID(ctx, repos)
	if err != nil {
		return nil, err
	}

	apiClient := api.NewHTTPClient(cfg.ServerEndpointAddr, clientID)

	store := providers.NewStore(repos.Settings, repos.Secrets, log)
	if err := store.Load(ctx); err != nil {
		return nil, err
	}

	summaries := cache.New()
	coord := session.NewCoordinator(apiClient, summaries, store, clock.New(), cfg.AutosaveQuietPeriod, log)
	greet := greeting.NewGenerator(apiClient, summaries, store, log)

	return &App{
		config:    cfg,
		log:       log,
		repos:     repos,
		api:       apiClient,
		cache:     summaries,
		providers: store,
		session:   coord,
		greeting:  greet,
		reader:    bufio.NewReader(os.Stdin),
		out:       os.Stdout,
	}, nil
}

// loadOrCreateClientID returns the persistent installation id, minting one on
// first run.
func loadOrCreateClientID(ctx context.Context, repos *storage.Repositories) (string, error) {
	data, err := repos.Settings.Get(ctx, clientIDKey)
	if err != nil {
		return "", fmt.Errorf("reading client id: %w", err)
	}
	if len(data) > 0 {
		return string(data), nil
	}

	id := uuid.NewString()
	if err := repos.Settings.Set(ctx, clientIDKey, []byte(id)); err != nil {
		return "", fmt.Errorf("storing client id: %w", err)
	}
	return id, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.Close(ctx)
	a.Root(ctx)
}

// Close flushes any dirty draft and releases the local database.
func (a *App) Close(ctx context.Context) {
	a.session.Flush()
	if err := a.repos.DB.Close(); err != nil {
		a.log.Error(ctx, "closing database", "error", err)
	}
}

func (a *App) setMode(ctx context.Context, mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()
	if changed {
		a.log.Info(ctx, "connectivity changed", "mode", mode)
	}
}

func (a *App) currentMode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

// StartOnlineStatusWatcher pings the backend on an interval and flips the
// displayed mode accordingly. Runs until ctx is cancelled.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			err := a.api.Ping(pingCtx)
			cancel()

			if err != nil {
				a.setMode(ctx, ModeOffline)
			} else {
				a.setMode(ctx, ModeOnline)
			}

		case <-ctx.Done():
			return
		}
	}
}
