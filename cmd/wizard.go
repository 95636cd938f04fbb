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
	"os"

	"github.com/cloud-exit/tokensim/internal/config"
	"github.com/cloud-exit/tokensim/internal/preset"
	"github.com/cloud-exit/tokensim/internal/state"
	"github.com/cloud-exit/tokensim/internal/ui"
	"github.com/cloud-exit/tokensim/internal/wizard"
	"github.com/spf13/cobra"
)

var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Run the tokenization wizard",
	Long: `Interactive wizard: pick an asset category, then walk through jurisdiction,
SPV, token design, payout and distribution. Ends with a simulated deployment
and a report. Nothing is persisted between runs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWizard(cmd)
	},
}

func addWizardFlags(c *cobra.Command) {
	c.Flags().Bool("pro", false, "Use the full pro wizard (default from config)")
	c.Flags().StringP("category", "c", "", "Preselect an asset category")
	_ = c.RegisterFlagCompletionFunc("category", completeCategories)
}

func completeCategories(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, c := range preset.Categories() {
		out = append(out, string(c))
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

func runWizard(cmd *cobra.Command) error {
	s, err := sessionFrom(cmd)
	if err != nil {
		return err
	}

	flavor := preset.FlavorBasic
	pro := s.Config.Wizard.Pro
	if cmd.Flags().Changed("pro") {
		pro, _ = cmd.Flags().GetBool("pro")
	}
	if pro {
		flavor = preset.FlavorPro
	}

	category, _ := cmd.Flags().GetString("category")
	if category == "" {
		category = s.Config.Wizard.DefaultCategory
	}
	if category != "" {
		p, ok := preset.Lookup(preset.Category(category))
		if !ok {
			return fmt.Errorf("unknown category %q (see 'tokensim presets')", category)
		}
		category = string(p.Category)
	}

	// Non-interactive terminal: list what the wizard would offer instead
	if !ui.IsTerminal() {
		ui.Warn("Non-interactive terminal detected. The wizard needs a terminal.")
		printCategories()
		ui.Info("Run 'tokensim report --category <name>' for a non-interactive report.")
		return nil
	}

	if config.IsFirstRun() {
		ui.Logo()
		fmt.Println()
		if err := config.MarkInstalled(); err != nil {
			ui.Debugf("marking install: %v", err)
		}
	}

	if prev := s.Previous(); prev != nil {
		ui.Infof("Welcome back, %s. Last session started %s.", s.Profile.Name, prev.StartedAt.Local().Format("2006-01-02 15:04"))
	}

	props, origin := loadProjects(cmd.Context(), s, false)
	res, err := wizard.Run(wizard.Options{
		Flavor:         flavor,
		Category:       preset.Category(category),
		Logger:         s.Logger,
		DeployDelay:    s.Config.Wizard.DeployStepDelay,
		AnalysisDelay:  s.Config.Wizard.AnalysisDelay,
		Projects:       props,
		ProjectsOrigin: origin,
		SessionID:      s.ID.String(),
		Author:         s.Profile.String(),
	})
	if errors.Is(err, wizard.ErrCancelled) {
		ui.Info("Wizard cancelled. Nothing was saved.")
		return nil
	}
	if err != nil {
		return err
	}

	ui.Successf("%s simulation complete", res.Category)
	if path := res.Snapshot[state.ProReports].String("exportPath"); path != "" {
		if err := os.WriteFile(path, []byte(res.Report), 0644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		ui.Successf("Report written to %s", path)
	}
	return nil
}

func init() {
	addWizardFlags(wizardCmd)
	rootCmd.AddCommand(wizardCmd)
}
