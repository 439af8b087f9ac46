package main

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"

	mongodb "github.com/ballotportal/election-api/internal/infrastructure/db/mongo"
)

func newMigrateCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the MongoDB indexes the API relies on",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withDatabase(cmd, v, func(ctx context.Context, db *mongo.Database, log zerolog.Logger) error {
				if err := mongodb.EnsureIndexes(ctx, db); err != nil {
					return err
				}
				log.Info().Str("database", db.Name()).Msg("indexes ensured")
				return nil
			})
		},
	}
}
