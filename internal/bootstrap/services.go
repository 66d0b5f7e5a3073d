package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"

	"github.com/ilibrary/ilibrary-go/config"
	"github.com/ilibrary/ilibrary-go/internal/adapters/filestore"
	"github.com/ilibrary/ilibrary-go/internal/adapters/jwtclaims"
	"github.com/ilibrary/ilibrary-go/internal/adapters/redisstore"
	"github.com/ilibrary/ilibrary-go/internal/api"
	"github.com/ilibrary/ilibrary-go/internal/ports"
	"github.com/ilibrary/ilibrary-go/internal/service"
)

// App bundles the wired services for the CLI.
type App struct {
	Config        config.AppConfig
	Logger        *slog.Logger
	Auth          *service.AuthService
	Router        *service.RoleRouter
	Bookings      *service.BookingService
	Subscriptions *service.SubscriptionService
	Profile       *service.ProfileService
	Librarian     *service.LibrarianService
	Admin         *service.AdminService
}

// BuildSessionStore constructs the configured session store.
func BuildSessionStore(cfg config.AppConfig, logger *slog.Logger) (ports.SessionStore, error) {
	claims := jwtclaims.NewDecoder()

	switch cfg.Session.Store {
	case config.StoreModeRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		store, err := redisstore.NewWithPrefix(client, claims, cfg.Session.KeyPrefix)
		if err != nil {
			return nil, fmt.Errorf("create redis session store: %w", err)
		}
		logger.Debug("using redis session store", slog.String("addr", cfg.Redis.Addr))
		return store, nil
	case config.StoreModeFile:
		dir := cfg.Session.Dir
		if dir == "" {
			base, err := os.UserConfigDir()
			if err != nil {
				return nil, fmt.Errorf("resolve user config dir: %w", err)
			}
			dir = filepath.Join(base, "ilibrary")
		}
		store, err := filestore.New(dir, claims)
		if err != nil {
			return nil, fmt.Errorf("create session dir: %w", err)
		}
		logger.Debug("using file session store", slog.String("dir", dir))
		return store, nil
	default:
		return nil, fmt.Errorf("unknown session store %q", cfg.Session.Store)
	}
}

// BuildApp wires the backend client and all services from configuration.
func BuildApp(cfg config.AppConfig, logger *slog.Logger) (*App, error) {
	store, err := BuildSessionStore(cfg, logger)
	if err != nil {
		return nil, err
	}

	// The auth service doubles as the token source: the client reads
	// whatever session it currently holds.
	auth := service.NewAuthService(service.AuthServiceOptions{
		Sessions: store,
		Claims:   jwtclaims.NewDecoder(),
		Logger:   logger,
	})

	client, err := api.NewClient(api.Options{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Tokens:  auth,
		Logger:  logger,
	})
	if err != nil {
		return nil, err
	}
	auth.SetAPI(client)

	return &App{
		Config: cfg,
		Logger: logger,
		Auth:   auth,
		Router: service.NewRoleRouter(),
		Bookings: service.NewBookingService(service.BookingServiceOptions{
			API:            client,
			RetryMax:       cfg.API.RetryMax,
			RetryBaseDelay: cfg.API.RetryBaseDelay,
			Logger:         logger,
		}),
		Subscriptions: service.NewSubscriptionService(service.SubscriptionServiceOptions{
			API:    client,
			Logger: logger,
		}),
		Profile: service.NewProfileService(service.ProfileServiceOptions{
			API:    client,
			Logger: logger,
		}),
		Librarian: service.NewLibrarianService(service.LibrarianServiceOptions{
			API:    client,
			Logger: logger,
		}),
		Admin: service.NewAdminService(service.AdminServiceOptions{
			API:    client,
			Logger: logger,
		}),
	}, nil
}
