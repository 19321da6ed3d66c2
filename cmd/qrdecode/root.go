package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	logLevel string
	cfgFile  string
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "qrdecode",
		Short: "Decode QR symbols out of raster images",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.qrdecode.yaml)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: trace, debug, info, warn, error")
	_ = viper.BindPFlag("log-level", cmd.PersistentFlags().Lookup("log-level"))

	cmd.AddCommand(newDecodeCmd())
	return cmd
}

func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(".qrdecode")
		viper.SetConfigType("yaml")
	}
	viper.SetEnvPrefix("QRDECODE")
	viper.AutomaticEnv()

	viper.SetDefault("block-width", 5)
	viper.SetDefault("block-height", 7)
	viper.SetDefault("window", 5)
	viper.SetDefault("max-dimension", 1600)

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return fmt.Errorf("reading config: %w", err)
		}
	}

	level, err := zerolog.ParseLevel(viper.GetString("log-level"))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", viper.GetString("log-level"), err)
	}
	zerolog.SetGlobalLevel(level)
	return nil
}
