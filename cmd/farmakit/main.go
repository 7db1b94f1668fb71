// farmakit is a batch pipeline for a pharmacy product catalog: it
// classifies products into the category taxonomy, matches inventory images
// to products by fuzzy name similarity, and consolidates legacy image
// directories.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/blerta-dev/farmakit/internal/common"
	"github.com/blerta-dev/farmakit/internal/config"
	"github.com/blerta-dev/farmakit/internal/match"
)

var (
	cfgFile string
	version = "dev"
	rootCmd = &cobra.Command{
		Use:   "farmakit",
		Short: "Pharmacy catalog classification and image-matching pipeline",
		Long: `farmakit ingests a pharmacy product catalog, classifies every product
into the category taxonomy, matches catalog images to products by fuzzy
name similarity, and consolidates legacy image directories into one
deduplicated canonical directory.`,
		PersistentPreRunE: initConfig,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.config/farmakit/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")
	rootCmd.PersistentFlags().String("db", "", "catalog database path")

	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("db.path", rootCmd.PersistentFlags().Lookup("db"))

	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(classifyCmd())
	rootCmd.AddCommand(matchCmd())
	rootCmd.AddCommand(scanCmd())
	rootCmd.AddCommand(consolidateCmd())
	rootCmd.AddCommand(repairCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received interrupt signal, shutting down gracefully...")
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}
		viper.AddConfigPath(filepath.Join(home, ".config", "farmakit"))
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("FARMAKIT")
	viper.AutomaticEnv()

	viper.SetDefault("db.path", filepath.Join(config.DefaultDataDir(), "catalog.db"))
	viper.SetDefault("match.min_score", match.DefaultMinScore)
	viper.SetDefault("match.strict_min_score", match.StrictMinScore)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return common.NewUserError("failed to read config file", err)
		}
	}

	return common.SetupLogger(viper.GetString("logging.level"), viper.GetString("logging.format"))
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the farmakit version",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("farmakit %s\n", version)
		},
	}
}
