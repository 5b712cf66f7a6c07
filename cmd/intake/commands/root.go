package commands

import (
	"context"

	"intake-backend/internal/config"
	"intake-backend/internal/database"
	"intake-backend/internal/logging"
	"intake-backend/internal/store"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the intake command tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "intake",
		Short:         "Patient intake backend",
		Long:          `Stores patient intake forms and serves the administrative API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(NewServeCmd(), NewMigrateCmd(), NewExportCmd())
	return root
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// env is what every subcommand needs: configuration, a logger and an
// initialized store.
type env struct {
	cfg    *config.Config
	logger *logrus.Logger
	store  *store.Store
	close  func()
}

func setup(ctx context.Context) (*env, []string, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, errors.Wrap(err, "load config")
	}
	logger := logging.New(cfg)

	db, err := database.Open(cfg)
	if err != nil {
		return nil, nil, err
	}

	s := store.New(db, logging.Component(logger, "store"))
	applied, err := s.Initialize(ctx)
	if err != nil {
		_ = database.Close(db)
		return nil, nil, errors.Wrap(err, "initialize store")
	}

	return &env{
		cfg:    cfg,
		logger: logger,
		store:  s,
		close: func() {
			if err := database.Close(db); err != nil {
				logger.WithError(err).Warn("close database")
			}
		},
	}, applied, nil
}
