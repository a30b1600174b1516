package container

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"exhibit/storefront/internal/catalog"
	"exhibit/storefront/internal/config"
	"exhibit/storefront/internal/notify"
	"exhibit/storefront/internal/repository"
	"exhibit/storefront/internal/server"
	"exhibit/storefront/internal/state"
)

// Container holds all initialized components
type Container struct {
	Config     *config.Config
	Catalog    *catalog.Catalog
	Quotations repository.QuotationRepository
	Emails     notify.EmailSender
	Server     *server.Server

	db    *pgxpool.Pool
	redis *redis.Client
}

// New creates a new container with all dependencies initialized
func New(cfg *config.Config) (*Container, error) {
	container := &Container{
		Config: cfg,
	}

	db, err := pgxpool.New(context.Background(),
		fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			cfg.Database.Host,
			cfg.Database.Port,
			cfg.Database.User,
			cfg.Database.Password,
			cfg.Database.Name,
		))
	if err != nil {
		return nil, err
	}
	if err := repository.EnsureSchema(context.Background(), db); err != nil {
		return nil, err
	}
	container.db = db
	container.Quotations = repository.NewQuotationRepository(db)

	rdb := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.Database,
	})

	// Test connection
	_, err = rdb.Ping(context.Background()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Info("Connected to Redis successfully")
	container.redis = rdb

	cat, err := catalog.Load(context.Background(), cfg.Catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	container.Catalog = cat

	container.Emails = notify.NewResendClient(cfg.Quotation.Resend)

	container.Server = server.NewServer(
		cat,
		state.NewRedisCartState(rdb),
		container.Quotations,
		container.Emails,
		cfg.Quotation.WhatsAppNumber,
	)

	return container, nil
}

// Run serves the storefront API until the context is cancelled
func (c *Container) Run(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", c.Config.Server.Host, c.Config.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: c.Server.Router(),
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Infof("Storefront API listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Info("Shutting down container...")

	c.db.Close()
	if err := c.redis.Close(); err != nil {
		return err
	}

	log.Info("Container shut down successfully")
	return nil
}
