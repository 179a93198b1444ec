package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dvornik/boorubot/internal/config"
	"github.com/dvornik/boorubot/internal/constants"
	"github.com/dvornik/boorubot/internal/repository"
)

var (
	cfgFile    string
	jsonOutput bool
	debugMode  bool
	flagURL    string
	flagAPIKey string
	flagUserID string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "boorucli",
	Short: "boorucli - Search Gelbooru-style image boards from the command line",
	Long: `boorucli is a command-line client for Gelbooru-style image boards.

Use 'boorucli search' to search posts by tags, 'boorucli tags' to look up
tags with wildcard fallback, and 'boorucli post' for direct post access.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if !debugMode {
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
		}
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (default ~/.config/boorucli/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON instead of human-readable")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagURL, "url", "", "image-board base URL (overrides config and env)")
	rootCmd.PersistentFlags().StringVar(&flagAPIKey, "api-key", "", "API key (overrides config and env)")
	rootCmd.PersistentFlags().StringVar(&flagUserID, "user-id", "", "API user ID (overrides config and env)")
}

// loadSettings loads upstream connection settings from the config file and
// environment, then applies CLI flag overrides.
func loadSettings() (*config.BooruSettings, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(homeDir + "/.config/boorucli")
		}
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Environment variable bindings (higher priority than the file)
	v.SetEnvPrefix("BOORU")
	_ = v.BindEnv("base_url")
	_ = v.BindEnv("api_key")
	_ = v.BindEnv("user_id")
	_ = v.BindEnv("timeout")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	settings := &config.BooruSettings{
		BaseURL: v.GetString("base_url"),
		APIKey:  v.GetString("api_key"),
		UserID:  v.GetString("user_id"),
		Timeout: v.GetDuration("timeout"),
	}

	// CLI flag overrides (highest precedence)
	if flagURL != "" {
		settings.BaseURL = flagURL
	}
	if flagAPIKey != "" {
		settings.APIKey = flagAPIKey
	}
	if flagUserID != "" {
		settings.UserID = flagUserID
	}

	if settings.BaseURL == "" {
		settings.BaseURL = constants.DefaultBooruBaseURL
	}
	if settings.Timeout == 0 {
		settings.Timeout = constants.DefaultBooruTimeout
	}

	// Half a credential pair is worse than none: the upstream rejects it
	if (settings.APIKey == "") != (settings.UserID == "") {
		return nil, fmt.Errorf("api key and user ID must be configured together")
	}

	return settings, nil
}

// newRepository builds the upstream client from the loaded settings.
func newRepository() (repository.BooruRepository, error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, err
	}
	return repository.NewBooruRepository(settings), nil
}
