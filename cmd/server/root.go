package main

import (
	"errors"
	"fmt"
	"log"

	"talent-match/internal/config"
	"talent-match/internal/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const appName = "talent-match"

var (
	cfgFile string
	envFile string

	rootCmd = &cobra.Command{
		Use:          appName,
		Short:        "talent-match scores candidates against job postings and serves ranked matches",
		SilenceUsage: true,
	}
)

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is talent-match.yaml in current directory, optional)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "a dotenv file loaded before reading the environment (default is .env, optional)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	if err := viper.BindPFlag("LOG_DEBUG", rootCmd.PersistentFlags().Lookup("debug")); err != nil {
		log.Fatalf("binding debug flag: %v", err)
	}
	if err := viper.BindPFlag("LOG_JSON", rootCmd.PersistentFlags().Lookup("json")); err != nil {
		log.Fatalf("binding json flag: %v", err)
	}
}

func initConfig() {
	// Variables already set in the environment win over the dotenv file.
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			log.Fatalf("loading env file %s: %v", envFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			log.Fatalf("reading config file %s: %v", cfgFile, err)
		}
		return
	}

	// The default file is optional; environment variables are enough.
	viper.AddConfigPath(".")
	viper.SetConfigName(appName)
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Fatalf("reading config file: %v", err)
		}
	}
}

// setup loads the configuration and the process logger shared by subcommands.
func setup() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("loading config: %w", err)
	}

	l, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("creating a logger: %w", err)
	}
	return cfg, l.With(zap.String("app", cfg.App.AppName), zap.String("env", cfg.App.Environment)), nil
}
