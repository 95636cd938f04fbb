// TokenSim - Asset Tokenization Simulator
// Copyright (C) 2026 Cloud Exit B.V.
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/cloud-exit/tokensim/internal/config"
	"github.com/cloud-exit/tokensim/internal/kvstore"
	"github.com/cloud-exit/tokensim/internal/logging"
	"github.com/cloud-exit/tokensim/internal/redactor"
	"github.com/cloud-exit/tokensim/internal/session"
	"github.com/cloud-exit/tokensim/internal/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is set by ldflags at build time.
var Version = "0.4.0"

// skipSessionCommands run without config, log file or cache.
var skipSessionCommands = map[string]bool{
	"version":    true,
	"help":       true,
	"completion": true,

	cobra.ShellCompRequestCmd:       true,
	cobra.ShellCompNoDescRequestCmd: true,
}

type sessionKey struct{}

// current is closed by Execute; commands get the session from their context.
var current *session.Session

var rootCmd = &cobra.Command{
	Use:           "tokensim",
	Short:         "Asset Tokenization Simulator",
	Long:          "TokenSim – walk through tokenizing a real-world asset: category, jurisdiction, SPV, token design and a mock report",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		v, _ := cmd.Flags().GetBool("verbose")
		ui.Verbose = v
		if skipSessionCommands[cmd.Name()] {
			return nil
		}
		path, _ := cmd.Flags().GetString("config")
		s, err := openSession(path, v)
		if err != nil {
			return err
		}
		current = s
		cmd.SetContext(context.WithValue(cmd.Context(), sessionKey{}, s))
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWizard(cmd)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tokensim version %s\n", Version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().String("config", "", "Config file (default "+config.ConfigFile()+")")
	addWizardFlags(rootCmd)

	rootCmd.AddCommand(versionCmd)

	rootCmd.SetVersionTemplate("tokensim version {{.Version}}\n")
	rootCmd.Version = Version
}

// openSession loads the config, opens the log file and the cache, and
// starts a session. A cache that cannot be opened (another tokensim holds
// the lock) is not fatal.
func openSession(configPath string, verbose bool) (*session.Session, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}

	secrets := redactor.New()
	secrets.AddDSN(cfg.Database.DSN)
	logger, err := logging.New(config.LogFile(), verbose, secrets)
	if err != nil {
		ui.Warnf("File logging disabled: %v", err)
		logger = zap.NewNop()
	}
	ui.SetLogger(logger)

	var store *kvstore.Store
	if cfg.Cache.Enabled {
		store, err = kvstore.Open(kvstore.Options{Dir: config.KVDir()})
		if err != nil {
			ui.Warnf("Cache unavailable: %v", err)
			store = nil
		}
	}

	s, err := session.Open(cfg, logger, store)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, err
	}
	logger.Debug("session started", zap.String("session", s.ID.String()), zap.String("profile", s.Profile.Name))
	return s, nil
}

func loadConfig(path string) (*config.Config, error) {
	config.EnsureDirs()
	if path != "" {
		return config.LoadConfigFrom(path)
	}
	if !config.ConfigExists() {
		if err := config.WriteDefaults(); err != nil {
			return nil, fmt.Errorf("writing defaults: %w", err)
		}
		ui.Infof("Wrote default configuration to %s", config.ConfigFile())
	}
	return config.LoadConfig()
}

// sessionFrom returns the session opened by the root command.
func sessionFrom(cmd *cobra.Command) (*session.Session, error) {
	if ctx := cmd.Context(); ctx != nil {
		if s, ok := ctx.Value(sessionKey{}).(*session.Session); ok {
			return s, nil
		}
	}
	return nil, errors.New("no active session")
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.ExecuteContext(context.Background())
	if current != nil {
		if cerr := current.Close(); cerr != nil {
			ui.Debugf("closing session: %v", cerr)
		}
	}
	if err != nil {
		ui.ErrorNoExit(err.Error())
		os.Exit(1)
	}
}
