package container

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"bookshelf-api/internal/config"
	"bookshelf-api/internal/infrastructure/database"

	authorHandler "bookshelf-api/internal/domains/author/handler"
	authorRepo "bookshelf-api/internal/domains/author/repository"
	authorService "bookshelf-api/internal/domains/author/service"

	bookHandler "bookshelf-api/internal/domains/book/handler"
	bookRepo "bookshelf-api/internal/domains/book/repository"
	bookService "bookshelf-api/internal/domains/book/service"
)

// HealthChecker is what the health endpoint needs from the database.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
	Stats() (*database.PoolStats, error)
}

// ========================================
// CONTAINER STRUCT
// ========================================

// Container is the root of the dependency graph.
type Container struct {
	// Infrastructure
	Config *config.Config
	DB     *database.PostgresDB
	Health HealthChecker

	// Repositories
	AuthorRepo authorRepo.RepositoryInterface
	BookRepo   bookRepo.RepositoryInterface

	// Services
	AuthorService authorService.ServiceInterface
	BookService   bookService.ServiceInterface

	// Handlers
	AuthorHandler *authorHandler.AuthorHandler
	BookHandler   *bookHandler.BookHandler
}

// NewContainer builds the whole graph in order: config, database, repositories,
// services, handlers.
func NewContainer(ctx context.Context) (*Container, error) {
	log.Info().Msg("Initializing DI container")

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	log.Info().Str("environment", cfg.App.Environment).Msg("Config loaded")

	db := database.NewPostgresDB(cfg.Database)
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	c := Build(cfg, db,
		authorRepo.NewPostgresRepository(db.Pool),
		bookRepo.NewPostgresRepository(db.Pool),
	)
	c.DB = db

	log.Info().Msg("DI container ready")
	return c, nil
}

// Build wires services and handlers over the given repositories. NewContainer uses it
// with the PostgreSQL repositories; tests pass in-memory ones.
func Build(cfg *config.Config, health HealthChecker, authors authorRepo.RepositoryInterface, books bookRepo.RepositoryInterface) *Container {
	c := &Container{
		Config:     cfg,
		Health:     health,
		AuthorRepo: authors,
		BookRepo:   books,
	}

	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo)
	// Book writes check the referenced author through the author service.
	c.BookService = bookService.NewBookService(c.BookRepo, c.AuthorService)

	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)

	return c
}

// Cleanup releases infrastructure resources on shutdown.
func (c *Container) Cleanup() {
	log.Info().Msg("Cleaning up container resources")

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close database")
		}
	}

	log.Info().Msg("Container cleanup completed")
}
