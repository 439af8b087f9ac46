package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"

	mongodb "github.com/ballotportal/election-api/internal/infrastructure/db/mongo"
	"github.com/ballotportal/election-api/pkg/logger"
)

const (
	keyMongoURI = "mongo.uri"
	keyMongoDB  = "mongo.db"
	keyTimeout  = "timeout"
	keyLogLevel = "log.level"
)

// newRootCmd wires the command tree around a private viper instance so
// flags, MONGO_* environment variables and defaults resolve in that order.
func newRootCmd() *cobra.Command {
	v := viper.New()

	root := &cobra.Command{
		Use:   "votectl",
		Short: "Operator tooling for the election portal",
		Long: `Operator tooling for the election portal.

Examples:
  votectl migrate
  votectl seed-admin --username root --password 's3cret-pass'
  votectl seed --file fixtures/lagos.yaml`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init(logger.Options{Level: v.GetString(keyLogLevel), Pretty: true, Service: "votectl"})
		},
	}

	flags := root.PersistentFlags()
	flags.String("mongo-uri", "mongodb://localhost:27017", "MongoDB connection URI")
	flags.String("mongo-db", "election_portal", "MongoDB database name")
	flags.Duration("timeout", 30*time.Second, "overall deadline for the command")
	flags.String("log-level", "info", "log level (trace, debug, info, warn, error)")

	_ = v.BindPFlag(keyMongoURI, flags.Lookup("mongo-uri"))
	_ = v.BindPFlag(keyMongoDB, flags.Lookup("mongo-db"))
	_ = v.BindPFlag(keyTimeout, flags.Lookup("timeout"))
	_ = v.BindPFlag(keyLogLevel, flags.Lookup("log-level"))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	root.AddCommand(newMigrateCmd(v), newSeedAdminCmd(v), newSeedCmd(v))
	return root
}

// withDatabase connects to MongoDB using the resolved settings, runs fn and
// disconnects.
func withDatabase(cmd *cobra.Command, v *viper.Viper, fn func(ctx context.Context, db *mongo.Database, log zerolog.Logger) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), v.GetDuration(keyTimeout))
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      v.GetString(keyMongoURI),
		Database: v.GetString(keyMongoDB),
	})
	if err != nil {
		return fmt.Errorf("connect mongodb: %w", err)
	}
	defer func() { _ = mongodb.Disconnect(client) }()

	return fn(ctx, db, logger.Component(cmd.Name()))
}
