// @title			Election Portal API
// @version		1.0
// @description	Voting periods, ballots and results for the election portal.
// @BasePath		/
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/ballotportal/election-api/docs"
	"github.com/ballotportal/election-api/internal/api"
	"github.com/ballotportal/election-api/internal/api/handler"
	"github.com/ballotportal/election-api/internal/core/service"
	mongodb "github.com/ballotportal/election-api/internal/infrastructure/db/mongo"
	redisdb "github.com/ballotportal/election-api/internal/infrastructure/db/redis"
	"github.com/ballotportal/election-api/internal/infrastructure/queue"
	"github.com/ballotportal/election-api/internal/pkg/config"
	"github.com/ballotportal/election-api/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.MustLoad()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "election-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:         cfg.Mongo.URI,
		Database:    cfg.Mongo.Database,
		MaxPoolSize: cfg.Mongo.MaxPoolSize,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect mongodb")
	}
	defer func() {
		if err := mongodb.Disconnect(mongoClient); err != nil {
			log.Error().Err(err).Msg("disconnect mongodb")
		}
	}()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("ensure indexes")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connect redis")
	}
	defer rdb.Close()

	// Repositories
	accounts := mongodb.NewAccountRepository(db)
	profiles := mongodb.NewProfileRepository(db)
	elections := mongodb.NewElectionRepository(db)
	periods := mongodb.NewPeriodRepository(db)
	candidates := mongodb.NewCandidateRepository(db)
	votes := mongodb.NewVoteRepository(db)
	audits := mongodb.NewAuditRepository(db)

	// Audit pipeline
	auditService := service.NewAuditService(audits, logger.Component("audit"))
	dispatcher := queue.NewDispatcher(cfg.Audit.Workers, auditService, logger.Component("dispatcher"))
	dispatcher.Start(ctx)

	svc := api.Services{
		Auth:      service.NewAuthService(accounts, cfg.JWTSecret, cfg.TokenTTL),
		Profiles:  service.NewProfileService(profiles, logger.Component("profiles")),
		Elections: service.NewElectionService(elections, logger.Component("elections")),
		Periods:   service.NewPeriodService(periods, candidates, elections, profiles, logger.Component("periods")),
		Votes: service.NewVotingService(
			periods, candidates, elections, profiles, votes,
			redisdb.NewVoteGuard(rdb, cfg.Redis.VoteGuardTTL),
			dispatcher,
			logger.Component("voting"),
		),
		Results: service.NewResultsService(periods, candidates, elections, profiles, votes, logger.Component("results")),
	}

	e := api.NewRouter(svc, api.Options{
		JWTSecret: cfg.JWTSecret,
		Logger:    logger.Component("http"),
		Readiness: map[string]handler.Check{
			"mongodb": handler.MongoCheck(db),
			"redis":   handler.RedisCheck(rdb),
		},
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
}
