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
	"sort"
	"strings"

	"github.com/cloud-exit/tokensim/internal/preset"
	"github.com/cloud-exit/tokensim/internal/ui"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var presetsCmd = &cobra.Command{
	Use:               "presets [category]",
	Short:             "List asset categories and their defaults",
	Args:              cobra.MaximumNArgs(1),
	ValidArgsFunction: completeCategories,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			printCategories()
			return nil
		}
		p, ok := preset.Lookup(preset.Category(args[0]))
		if !ok {
			return fmt.Errorf("unknown category %q", args[0])
		}
		basic, _ := cmd.Flags().GetBool("basic")
		flavor := preset.FlavorPro
		if basic {
			flavor = preset.FlavorBasic
		}
		return printPreset(p, flavor)
	},
}

func printCategories() {
	var rows [][]string
	for _, p := range preset.Presets {
		rows = append(rows, []string{string(p.Category), fmt.Sprint(len(p.Steps)), p.Description})
	}
	ui.Table([]string{"CATEGORY", "STEPS", "DESCRIPTION"}, rows)
}

func printPreset(p preset.AssetClassPreset, flavor preset.Flavor) error {
	ui.Cecho(string(p.Category), ui.Bold)
	fmt.Println(p.Description)
	fmt.Println()

	fmt.Printf("Steps (%s wizard):\n", flavor)
	for i, s := range preset.StepsFor(flavor, p) {
		line := fmt.Sprintf("  %d. %s", i+1, s.Label)
		if p.IsOptional(preset.StepID(s.ID)) {
			line += ui.Dim + " (optional)" + ui.NC
		}
		var tabs []string
		for _, t := range preset.Tabs(preset.StepID(s.ID)) {
			tabs = append(tabs, t.Label)
		}
		fmt.Printf("%-28s %s%s%s\n", line, ui.Dim, strings.Join(tabs, " · "), ui.NC)
	}
	fmt.Println()

	fmt.Println("Defaults:")
	ordered := yaml.Node{Kind: yaml.MappingNode}
	for _, section := range p.DefaultSections() {
		fields := p.Defaults[section]
		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		inner := &yaml.Node{Kind: yaml.MappingNode}
		for _, k := range keys {
			var v yaml.Node
			if err := v.Encode(fields[k]); err != nil {
				return fmt.Errorf("encoding %s.%s: %w", section, k, err)
			}
			inner.Content = append(inner.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: k}, &v)
		}
		ordered.Content = append(ordered.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: section}, inner)
	}
	out, err := yaml.Marshal(&ordered)
	if err != nil {
		return err
	}
	for _, line := range strings.Split(strings.TrimRight(string(out), "\n"), "\n") {
		fmt.Println("  " + line)
	}
	return nil
}

func init() {
	presetsCmd.Flags().Bool("basic", false, "Show the basic wizard steps instead of pro")
	rootCmd.AddCommand(presetsCmd)
}
