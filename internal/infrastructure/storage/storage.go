// Package storage opens the document collections selected by configuration.
package storage

import (
	"context"
	"fmt"
	"log/slog"

	"talentpool/backend/internal/config"
	authdomain "talentpool/backend/internal/domain/auth"
	candidatedomain "talentpool/backend/internal/domain/candidate"
	"talentpool/backend/internal/infrastructure/memory"
	"talentpool/backend/internal/infrastructure/mongo"
	"talentpool/backend/internal/infrastructure/postgres"
)

// Stores bundles the credential and candidate stores over one shared connection.
type Stores struct {
	Users      authdomain.UserRepository
	Candidates candidatedomain.Repository
	close      func(context.Context) error
}

// Close releases the underlying connection, if any.
func (s *Stores) Close(ctx context.Context) error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// Open connects to the configured backend and prepares its schema or indexes.
func Open(ctx context.Context, cfg config.Config, logger *slog.Logger) (*Stores, error) {
	switch cfg.StoreBackend {
	case config.BackendMongo:
		db, err := mongo.New(ctx, cfg.MongoURL, cfg.MongoDBName)
		if err != nil {
			return nil, err
		}
		if err := db.EnsureIndexes(ctx); err != nil {
			_ = db.Close(ctx)
			return nil, err
		}
		logger.Info("connected to document store", "backend", cfg.StoreBackend, "database", cfg.MongoDBName)
		return &Stores{
			Users:      mongo.NewUserRepository(db.DB),
			Candidates: mongo.NewCandidateRepository(db.DB),
			close:      db.Close,
		}, nil

	case config.BackendPostgres:
		db, err := postgres.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run database migrations: %w", err)
		}
		logger.Info("connected to document store", "backend", cfg.StoreBackend)
		return &Stores{
			Users:      postgres.NewUserRepository(db.DB),
			Candidates: postgres.NewCandidateRepository(db.DB),
			close: func(context.Context) error {
				db.Close()
				return nil
			},
		}, nil

	case config.BackendMemory:
		logger.Warn("using in-memory document store; data is lost on restart")
		return &Stores{
			Users:      memory.NewUserRepository(),
			Candidates: memory.NewCandidateRepository(),
		}, nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
