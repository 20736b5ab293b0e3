// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the profile-hunter CLI.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/profile-hunter/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the profile-hunter CLI.
var rootCmd = &cobra.Command{
	Use:   "profile-hunter",
	Short: "Discover public LinkedIn profiles of an organization through Google Custom Search",
	Long: `profile-hunter expands an organization name into a set of search queries,
pages through Google Custom Search results for each, and collects the
LinkedIn profiles it finds into a deduplicated list. An optional email
template derives a candidate address for every profile.

Credentials are read from .secrets/google-api-key and .secrets/google-cse-id,
from PROFILE_HUNTER_SEARCH_API_KEY and PROFILE_HUNTER_SEARCH_ENGINE_ID, or
from the --api-key and --cse-id flags.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		slog.SetDefault(newLogger(os.Stderr, viper.GetBool("verbose")))
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./profile-hunter.yaml or ~/.config/profile-hunter/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log debug diagnostics to stderr")
	rootCmd.PersistentFlags().String("secrets-dir", secrets.DefaultDir, "directory holding google-api-key and google-cse-id")
	rootCmd.PersistentFlags().StringP("org", "o", "", "target organization name")

	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("secrets_dir", rootCmd.PersistentFlags().Lookup("secrets-dir"))
	_ = viper.BindPFlag("organization", rootCmd.PersistentFlags().Lookup("org"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("profile-hunter")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "profile-hunter"))
		}
	}

	viper.SetEnvPrefix("PROFILE_HUNTER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
