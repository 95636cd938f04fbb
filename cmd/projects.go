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
	"fmt"

	"github.com/cloud-exit/tokensim/internal/projects"
	"github.com/cloud-exit/tokensim/internal/session"
	"github.com/cloud-exit/tokensim/internal/ui"
	"github.com/cloud-exit/tokensim/internal/wizard"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// loadProjects never fails: the loader degrades to the cache and fixtures.
func loadProjects(ctx context.Context, s *session.Session, refresh bool) ([]projects.Property, projects.Origin) {
	cache := projects.NewCache(s.Store, s.Config.Cache.TTL)
	if refresh {
		if err := cache.Invalidate(); err != nil {
			s.Logger.Debug("invalidating listing cache", zap.Error(err))
		}
	}

	loader := &projects.Loader{
		Cache:   cache,
		Logger:  s.Logger,
		Timeout: s.Config.Database.Timeout,
	}
	if dsn := s.Config.Database.DSN; dsn != "" {
		db, err := projects.OpenPostgres(dsn)
		if err != nil {
			ui.Debugf("database unavailable: %v", err)
		} else {
			defer db.Close()
			loader.Source = projects.NewPostgresSource(db)
		}
	}
	return loader.Load(ctx)
}

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List tokenized projects",
	Long: `List the tokenized properties shown in the wizard. Reads from the
configured database, falling back to the local cache and then to the
built-in sample listing.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := sessionFrom(cmd)
		if err != nil {
			return err
		}
		refresh, _ := cmd.Flags().GetBool("refresh")
		asYAML, _ := cmd.Flags().GetBool("yaml")

		props, origin := loadProjects(cmd.Context(), s, refresh)
		if asYAML {
			out, err := yaml.Marshal(props)
			if err != nil {
				return fmt.Errorf("encoding listing: %w", err)
			}
			fmt.Print(string(out))
			return nil
		}

		if len(props) == 0 {
			ui.Warn("No projects available.")
			return nil
		}
		rows := make([][]string, 0, len(props))
		for _, p := range props {
			rows = append(rows, []string{
				p.ID,
				p.Title,
				p.Location,
				wizard.FormatNumber(p.Valuation),
				fmt.Sprintf("%.0f%%", p.FundedPct()),
				fmt.Sprintf("%.1f%%", p.AnnualYield),
				p.Status,
			})
		}
		ui.Table([]string{"ID", "TITLE", "LOCATION", "VALUATION", "FUNDED", "YIELD", "STATUS"}, rows)
		fmt.Println()
		ui.Infof("%d projects (source: %s)", len(props), origin)
		if origin == projects.OriginFixtures {
			ui.Info("Showing sample data. Set database.dsn or TOKENSIM_DATABASE_DSN for live listings.")
		}
		return nil
	},
}

func init() {
	projectsCmd.Flags().Bool("refresh", false, "Ignore the cached listing")
	projectsCmd.Flags().Bool("yaml", false, "Print the listing as YAML")
	rootCmd.AddCommand(projectsCmd)
}
