package cmd

import (
	"context"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/memoflow/noted/server"
	"github.com/memoflow/noted/server/profile"
	"github.com/memoflow/noted/store"
	"github.com/memoflow/noted/store/db"
)

var rootCmd = &cobra.Command{
	Use:   "noted",
	Short: "A small note service with a webhook inlet",
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := profile.GetProfile()
		if err != nil {
			return err
		}

		logger, err := newLogger(p)
		if err != nil {
			return err
		}
		defer logger.Sync()

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		noteStore, closeStore, err := newStore(ctx, p)
		if err != nil {
			return err
		}
		defer closeStore()

		return server.NewServer(p, noteStore, logger).Run(ctx)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("mode", "dev", `mode of the server, can be "dev" or "prod"`)
	rootCmd.PersistentFlags().String("addr", "", "address of the server")
	rootCmd.PersistentFlags().Int("port", 8080, "port of the server")
	rootCmd.PersistentFlags().String("data", "", "sqlite database path, empty keeps notes in memory")
	rootCmd.PersistentFlags().String("webhook-token", "", "shared secret expected in the X-Webhook-Token header")

	for _, flag := range []string{"mode", "addr", "port", "data", "webhook-token"} {
		if err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(err)
		}
	}

	viper.SetEnvPrefix("noted")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func newLogger(p *profile.Profile) (*zap.Logger, error) {
	if p.IsDev() {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func newStore(ctx context.Context, p *profile.Profile) (store.Store, func(), error) {
	if p.Data == "" {
		return store.NewMemory(), func() {}, nil
	}

	sqliteDB := db.NewDB(p)
	if err := sqliteDB.Open(ctx); err != nil {
		return nil, nil, err
	}
	return db.NewNoteStore(sqliteDB), func() {
		_ = sqliteDB.Close()
	}, nil
}
