// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the mdconvert CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/mdconvert/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	defaultEndpoint  = "http://localhost:8000"
	defaultTimeout   = 120 * time.Second
	defaultUserAgent = "mdconvert/0.1"
	defaultAddr      = ":5174"
)

// rootCmd is the base command for the mdconvert CLI.
var rootCmd = &cobra.Command{
	Use:   "mdconvert",
	Short: "Convert files to Markdown through a remote conversion service",
	Long: `mdconvert uploads files to a convert-to-markdown service and saves each
converted result as <name>.md.

Use "convert" to upload files from the command line, or "serve" to open a
local drag-and-drop page in the browser. Both talk to the service at the
configured endpoint (default http://localhost:8000).`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./mdconvert.yaml or ~/.config/mdconvert/mdconvert.yaml)")
	rootCmd.PersistentFlags().String("endpoint", defaultEndpoint, "base URL of the conversion service")
	rootCmd.PersistentFlags().Duration("timeout", defaultTimeout, "HTTP request timeout")

	viper.BindPFlag("endpoint", rootCmd.PersistentFlags().Lookup("endpoint"))
	viper.BindPFlag("timeout", rootCmd.PersistentFlags().Lookup("timeout"))

	viper.SetDefault("user_agent", defaultUserAgent)
	viper.SetDefault("output_dir", ".")
	viper.SetDefault("serve.addr", defaultAddr)
	viper.SetDefault("serve.max_upload_bytes", int64(32<<20))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("mdconvert")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "mdconvert"))
		}
	}

	viper.SetEnvPrefix("MDCONVERT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig assembles the typed configuration from viper.
func loadConfig() types.Config {
	return types.Config{
		HTTP: types.HTTPConfig{
			Endpoint:  viper.GetString("endpoint"),
			Timeout:   viper.GetDuration("timeout"),
			UserAgent: viper.GetString("user_agent"),
		},
		Output: types.OutputConfig{
			Dir:         viper.GetString("output_dir"),
			Frontmatter: viper.GetBool("frontmatter"),
		},
		Serve: types.ServeConfig{
			Addr:           viper.GetString("serve.addr"),
			MaxUploadBytes: viper.GetInt64("serve.max_upload_bytes"),
		},
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
