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
	"errors"
	"fmt"
	"time"

	"github.com/cloud-exit/tokensim/internal/session"
	"github.com/cloud-exit/tokensim/internal/ui"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent wizard sessions",
	Long: `List the sessions recorded in the local cache. Only start and end times
and the profile are kept; wizard answers are never stored.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := sessionFrom(cmd)
		if err != nil {
			return err
		}
		if s.Store == nil {
			return errors.New("session history needs the cache (cache.enabled: true)")
		}
		limit, _ := cmd.Flags().GetInt("limit")
		recs, err := session.History(s.Store, limit)
		if err != nil {
			return err
		}
		if prev := s.Previous(); prev != nil {
			ui.Infof("Last session: %s", describeSession(*prev))
			fmt.Println()
		}
		rows := make([][]string, 0, len(recs))
		for _, r := range recs {
			id := r.ID
			if id == s.ID.String() {
				id += " (current)"
			}
			rows = append(rows, []string{id, r.Profile.String(), formatTime(r.StartedAt), formatTime(r.EndedAt)})
		}
		ui.Table([]string{"SESSION", "PROFILE", "STARTED", "ENDED"}, rows)
		return nil
	},
}

func describeSession(r session.Record) string {
	out := fmt.Sprintf("%s by %s", formatTime(r.StartedAt), r.Profile.Name)
	if !r.EndedAt.IsZero() {
		out += fmt.Sprintf(" (%s)", r.EndedAt.Sub(r.StartedAt).Round(time.Second))
	}
	return out
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 10, "Number of sessions to show (0 for all)")
	rootCmd.AddCommand(historyCmd)
}
