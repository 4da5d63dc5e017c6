package container

import (
	"context"
	"fmt"
	"time"

	"library-backend/internal/config"
	"library-backend/internal/seed"
	"library-backend/internal/storage"
	"library-backend/pkg/jwt"
	"library-backend/pkg/logger"

	authorHandler "library-backend/internal/domains/author/handler"
	authorRepo "library-backend/internal/domains/author/repository"
	authorService "library-backend/internal/domains/author/service"
	bookHandler "library-backend/internal/domains/book/handler"
	bookRepo "library-backend/internal/domains/book/repository"
	bookService "library-backend/internal/domains/book/service"
	dashboardHandler "library-backend/internal/domains/dashboard/handler"
	dashboardService "library-backend/internal/domains/dashboard/service"
	loanHandler "library-backend/internal/domains/loan/handler"
	loanRepo "library-backend/internal/domains/loan/repository"
	loanService "library-backend/internal/domains/loan/service"
	notificationHandler "library-backend/internal/domains/notification/handler"
	notificationRepo "library-backend/internal/domains/notification/repository"
	notificationService "library-backend/internal/domains/notification/service"
	userHandler "library-backend/internal/domains/user/handler"
	userRepo "library-backend/internal/domains/user/repository"
	userService "library-backend/internal/domains/user/service"
)

// Container is the root of the dependency graph. Initialization order
// is config, storage, repositories, seed, services, handlers; a wrong
// order is a nil dereference at startup, not at request time.
type Container struct {
	Config     *config.Config
	Store      storage.Store
	JWTManager *jwt.Manager

	BookRepo         bookRepo.Repository
	AuthorRepo       authorRepo.Repository
	LoanRepo         loanRepo.Repository
	NotificationRepo notificationRepo.Repository
	UserRepo         userRepo.Repository

	BookService         bookService.Service
	AuthorService       authorService.Service
	LoanService         loanService.Service
	NotificationService notificationService.Service
	UserService         userService.Service
	DashboardService    dashboardService.Service

	BookHandler         *bookHandler.BookHandler
	AuthorHandler       *authorHandler.AuthorHandler
	LoanHandler         *loanHandler.LoanHandler
	NotificationHandler *notificationHandler.NotificationHandler
	UserHandler         *userHandler.UserHandler
	DashboardHandler    *dashboardHandler.DashboardHandler
}

func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	c.Config = cfg

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := newStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	c.Store = store
	logger.Info("Storage ready", map[string]interface{}{"driver": cfg.Storage.Driver})

	c.JWTManager = jwt.NewManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Hour,
	)

	// Repositories load their collections once; everything after this
	// point works against the in-memory state.
	if c.BookRepo, err = bookRepo.NewRepository(ctx, store); err != nil {
		return nil, fmt.Errorf("load books: %w", err)
	}
	if c.AuthorRepo, err = authorRepo.NewRepository(ctx, store); err != nil {
		return nil, fmt.Errorf("load authors: %w", err)
	}
	if c.LoanRepo, err = loanRepo.NewRepository(ctx, store); err != nil {
		return nil, fmt.Errorf("load loans: %w", err)
	}
	if c.NotificationRepo, err = notificationRepo.NewRepository(ctx, store); err != nil {
		return nil, fmt.Errorf("load notifications: %w", err)
	}
	if c.UserRepo, err = userRepo.NewRepository(ctx, store); err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}

	if err := seed.Run(ctx, c.UserRepo, c.AuthorRepo, c.BookRepo, cfg.Admin.Email, cfg.Admin.Password); err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}

	c.BookService = bookService.NewBookService(c.BookRepo, c.AuthorRepo, c.LoanRepo)
	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo, c.BookRepo)
	c.LoanService = loanService.NewLoanService(c.LoanRepo, c.BookRepo, c.UserRepo, c.NotificationRepo)
	c.NotificationService = notificationService.NewNotificationService(c.NotificationRepo)
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)
	c.DashboardService = dashboardService.NewDashboardService(c.BookRepo, c.AuthorRepo, c.LoanRepo)

	c.BookHandler = bookHandler.NewBookHandler(c.BookService)
	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.LoanHandler = loanHandler.NewLoanHandler(c.LoanService)
	c.NotificationHandler = notificationHandler.NewNotificationHandler(c.NotificationService)
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.DashboardHandler = dashboardHandler.NewDashboardHandler(c.DashboardService)

	return c, nil
}

func newStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.Storage.Driver {
	case "file":
		return storage.NewFileStore(cfg.Storage.Dir)
	case "redis":
		return storage.NewRedisStore(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	case "postgres":
		return storage.NewPostgresStore(ctx, cfg.Storage.PostgresURL)
	case "memory":
		return storage.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
}

// Cleanup closes infrastructure holding connections.
func (c *Container) Cleanup() {
	if closer, ok := c.Store.(storage.Closer); ok {
		if err := closer.Close(); err != nil {
			logger.Error("close storage", err)
		}
	}
}
