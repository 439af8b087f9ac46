package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ballotportal/election-api/internal/core/domain"
	"github.com/ballotportal/election-api/internal/core/ports"
	"github.com/ballotportal/election-api/internal/core/service"
	"github.com/ballotportal/election-api/internal/core/session"
	mongodb "github.com/ballotportal/election-api/internal/infrastructure/db/mongo"
)

func newSeedAdminCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed-admin",
		Short: "Create an administrator account and its profile",
		Long: `Create an administrator account and its profile.

The account can sign in through /auth/login immediately. Registering
through the API always yields a voter account, so this is the only way
to bootstrap the first administrator.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			username, _ := cmd.Flags().GetString("username")
			password, _ := cmd.Flags().GetString("password")
			name, _ := cmd.Flags().GetString("name")
			picture, _ := cmd.Flags().GetString("picture")
			state, _ := cmd.Flags().GetString("state")
			lga, _ := cmd.Flags().GetString("lga")
			if name == "" {
				name = username
			}

			return withDatabase(cmd, v, func(ctx context.Context, db *mongo.Database, log zerolog.Logger) error {
				auth := service.NewAuthService(mongodb.NewAccountRepository(db), "", 0)
				account, err := auth.Register(ctx, username, password, domain.RoleAdmin)
				if err != nil {
					return fmt.Errorf("register admin: %w", err)
				}

				profiles := service.NewProfileService(mongodb.NewProfileRepository(db), log)
				if _, err := profiles.SaveProfile(ctx, map[string]any{
					"userId":              account.Username,
					"name":                name,
					"profilePicture":      picture,
					"state":               state,
					"localGovernment":     lga,
					"role":                domain.RoleAdmin,
					"registeredElections": []any{},
				}); err != nil {
					return fmt.Errorf("save admin profile: %w", err)
				}

				log.Info().Str("username", account.Username).Msg("admin account created")
				return nil
			})
		},
	}

	cmd.Flags().String("username", "", "admin username")
	cmd.Flags().String("password", "", "admin password (min 8 characters)")
	cmd.Flags().String("name", "", "display name (defaults to the username)")
	cmd.Flags().String("picture", "https://www.gravatar.com/avatar/?d=mp", "profile picture URL")
	cmd.Flags().String("state", "FCT", "state recorded on the admin profile")
	cmd.Flags().String("lga", "Abuja Municipal", "local government recorded on the admin profile")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newSeedCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load elections, profiles, periods and candidates from a YAML fixture",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("file")
			skipEnded, _ := cmd.Flags().GetBool("skip-ended")
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			fx, err := loadFixture(f)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			return withDatabase(cmd, v, func(ctx context.Context, db *mongo.Database, log zerolog.Logger) error {
				periods := mongodb.NewPeriodRepository(db)
				candidates := mongodb.NewCandidateRepository(db)
				elections := mongodb.NewElectionRepository(db)
				profiles := mongodb.NewProfileRepository(db)

				s := seeder{
					elections: service.NewElectionService(elections, log),
					profiles:  service.NewProfileService(profiles, log),
					periods:   service.NewPeriodService(periods, candidates, elections, profiles, log),
					log:       log,
					skipEnded: skipEnded,
				}
				return s.apply(ctx, fx)
			})
		},
	}

	cmd.Flags().StringP("file", "f", "", "path to the YAML fixture")
	cmd.Flags().Bool("skip-ended", false, "do not create periods whose window has already ended")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

type seeder struct {
	elections ports.ElectionService
	profiles  ports.ProfileService
	periods   ports.PeriodService
	log       zerolog.Logger
	skipEnded bool
	now       func() time.Time
}

func (s seeder) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

// apply writes the fixture in dependency order. Elections that already
// exist are skipped so a fixture can be re-applied.
func (s seeder) apply(ctx context.Context, fx *fixture) error {
	for i, raw := range fx.Elections {
		e, err := s.elections.CreateElection(ctx, raw)
		if errors.Is(err, domain.ErrElectionExists) {
			s.log.Warn().Interface("electionId", raw["electionId"]).Msg("election exists, skipped")
			continue
		}
		if err != nil {
			return fmt.Errorf("elections[%d]: %w", i, err)
		}
		s.log.Info().Str("election_id", e.ElectionID).Msg("election created")
	}

	for i, raw := range fx.Profiles {
		p, err := s.profiles.SaveProfile(ctx, raw)
		if err != nil {
			return fmt.Errorf("profiles[%d]: %w", i, err)
		}
		s.log.Info().Str("user_id", p.UserID).Msg("profile saved")
	}

	for i, pf := range fx.Periods {
		in, err := pf.input()
		if err != nil {
			return fmt.Errorf("periods[%d]: %w", i, err)
		}

		timing := session.ResolveWindow(pf.window(), s.clock())
		if timing.Phase == session.PhaseClosed {
			if s.skipEnded {
				s.log.Warn().Str("title", pf.Title).Msg("period window has ended, skipped")
				continue
			}
			s.log.Warn().Str("title", pf.Title).Msg("period window has already ended")
		}

		view, err := s.periods.CreatePeriod(ctx, in)
		if err != nil {
			return fmt.Errorf("periods[%d]: %w", i, err)
		}
		for j, c := range pf.Candidates {
			if _, err := s.periods.AddCandidate(ctx, ports.AddCandidateInput{
				PeriodID: view.ID,
				Name:     c.Name,
				LGA:      c.LGA,
				PhotoURL: c.PhotoURL,
			}); err != nil {
				return fmt.Errorf("periods[%d].candidates[%d]: %w", i, j, err)
			}
		}
		s.log.Info().
			Str("period_id", view.ID).
			Str("phase", string(timing.Phase)).
			Int("candidates", len(pf.Candidates)).
			Msg("period created")
	}
	return nil
}
