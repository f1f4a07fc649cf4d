package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bensuskins/habit-hub/internal/repository"
	"github.com/bensuskins/habit-hub/internal/server"
	"github.com/bensuskins/habit-hub/internal/services"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app, cleanup, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			accountService := services.NewAccountService(app.database)
			authService, err := services.NewAuthService(ctx, app.config,
				repository.NewUserRepository(app.database),
				repository.NewAPITokenRepository(app.database),
				accountService,
			)
			if err != nil {
				return err
			}

			avatarStore, err := newAvatarStore(ctx, app)
			if err != nil {
				return err
			}

			srv := server.New(app.database, app.config, app.clock, authService, accountService, avatarStore)
			return srv.Start(ctx)
		},
	}
}

func newAvatarStore(ctx context.Context, app *app) (services.AvatarStore, error) {
	if app.config.S3.Bucket != "" {
		return services.NewS3AvatarStore(ctx, app.config.S3)
	}
	return services.NewLocalAvatarStore(app.config.UploadDir), nil
}
