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
	"fmt"
	"os"
	"strings"

	"github.com/cloud-exit/tokensim/internal/preset"
	"github.com/cloud-exit/tokensim/internal/state"
	"github.com/cloud-exit/tokensim/internal/ui"
	"github.com/cloud-exit/tokensim/internal/wizard"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// reportParams are the fields a non-interactive report can set.
type reportParams struct {
	category  string
	name      string
	valuation float64
	supply    float64
	country   string
	pro       bool
	analysis  bool
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a tokenization report without the wizard",
	Long: `Build a report from a category preset and a few flags, without the
interactive wizard. Useful in scripts and CI.`,
	Args: cobra.NoArgs,
	Example: `  tokensim report --category "Real Estate" --name "Via Roma 12" --valuation 2500000 --supply 250000 --country IT
  tokensim report --category Art --out art.md`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := sessionFrom(cmd)
		if err != nil {
			return err
		}
		var p reportParams
		p.category, _ = cmd.Flags().GetString("category")
		p.name, _ = cmd.Flags().GetString("name")
		p.valuation, _ = cmd.Flags().GetFloat64("valuation")
		p.supply, _ = cmd.Flags().GetFloat64("supply")
		p.country, _ = cmd.Flags().GetString("country")
		p.analysis, _ = cmd.Flags().GetBool("analysis")
		p.pro = s.Config.Wizard.Pro
		if cmd.Flags().Changed("pro") {
			p.pro, _ = cmd.Flags().GetBool("pro")
		}

		f, err := buildReportFlow(p, wizard.WithLogger(s.Logger))
		if err != nil {
			return err
		}
		in := wizard.ReportFromFlow(f, p.analysis)
		in.SessionID = s.ID.String()
		in.Author = s.Profile.String()
		md := wizard.Report(in)

		out, _ := cmd.Flags().GetString("out")
		if out != "" {
			if err := os.WriteFile(out, []byte(md), 0644); err != nil {
				return fmt.Errorf("writing report: %w", err)
			}
			ui.Successf("Report written to %s", out)
			return nil
		}
		if ui.IsTerminal() {
			width, _, err := term.GetSize(int(os.Stdout.Fd()))
			if err != nil || width <= 0 {
				width = 80
			}
			rendered, err := wizard.RenderReport(md, width)
			if err == nil {
				fmt.Print(rendered)
				return nil
			}
			ui.Debugf("rendering report: %v", err)
		}
		fmt.Print(md)
		return nil
	},
}

// buildReportFlow drives a flow the way the wizard would, without a
// terminal. Step validity is not enforced: a report of a partial project is
// still useful.
func buildReportFlow(p reportParams, opts ...wizard.FlowOption) (*wizard.Flow, error) {
	flavor := preset.FlavorBasic
	if p.pro {
		flavor = preset.FlavorPro
	}
	f := wizard.NewFlow(flavor, opts...)
	if err := f.SelectCategory(preset.Category(p.category)); err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(p.name); name != "" {
		if err := f.Update(state.ProjectInfo, "name", name); err != nil {
			return nil, err
		}
	}
	if p.valuation > 0 {
		if err := f.Update(state.ProjectInfo, "valuation", p.valuation); err != nil {
			return nil, err
		}
	}
	if p.supply > 0 {
		if err := f.Update(state.ProTokenDesign, "totalSupply", p.supply); err != nil {
			return nil, err
		}
	}
	if p.country != "" {
		if err := f.SetSPVCountry(p.country); err != nil {
			return nil, err
		}
	}
	if p.analysis {
		if _, err := f.RunAnalysis(); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func init() {
	reportCmd.Flags().StringP("category", "c", "", "Asset category (required)")
	reportCmd.Flags().String("name", "", "Project name")
	reportCmd.Flags().Float64("valuation", 0, "Asset valuation")
	reportCmd.Flags().Float64("supply", 0, "Total token supply")
	reportCmd.Flags().String("country", "", "SPV country code (e.g. IT, US)")
	reportCmd.Flags().Bool("pro", false, "Use the pro step list (default from config)")
	reportCmd.Flags().Bool("analysis", true, "Include the market analysis section")
	reportCmd.Flags().StringP("out", "o", "", "Write markdown to a file instead of stdout")
	_ = reportCmd.MarkFlagRequired("category")
	_ = reportCmd.RegisterFlagCompletionFunc("category", completeCategories)
	_ = reportCmd.RegisterFlagCompletionFunc("country", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return preset.CountryCodes(), cobra.ShellCompDirectiveNoFileComp
	})
	rootCmd.AddCommand(reportCmd)
}
