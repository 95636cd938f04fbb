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
	"strings"

	"github.com/cloud-exit/tokensim/internal/preset"
	"github.com/cloud-exit/tokensim/internal/spv"
	"github.com/cloud-exit/tokensim/internal/state"
	"github.com/cloud-exit/tokensim/internal/ui"
	"github.com/spf13/cobra"
)

var spvCmd = &cobra.Command{
	Use:       "spv [country]",
	Short:     "Show SPV legal forms for a jurisdiction",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: spv.Countries(),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			printSPVCountries()
			return nil
		}
		form, _ := cmd.Flags().GetString("legal-form")
		return printSPV(args[0], form)
	},
}

func printSPVCountries() {
	var rows [][]string
	for _, code := range spv.Countries() {
		r, _ := spv.Lookup(code)
		name := code
		if c := preset.LookupCountry(code); c != nil {
			name = c.Name
		}
		rows = append(rows, []string{code, name, string(r.Complexity), r.LegalForms[0]})
	}
	ui.Table([]string{"CODE", "COUNTRY", "COMPLEXITY", "DEFAULT FORM"}, rows)
}

func printSPV(code, form string) error {
	r, ok := spv.Lookup(code)
	if !ok {
		return fmt.Errorf("no SPV rules for %q (see 'tokensim spv')", code)
	}
	current := state.Section{}
	if form != "" {
		current[spv.FieldLegalForm] = form
	}
	derived, _ := spv.Derive(code, current)

	name := r.Country
	if c := preset.LookupCountry(r.Country); c != nil {
		name = fmt.Sprintf("%s (%s, %s)", c.Name, c.Region, c.Currency)
	}
	ui.Cecho(name, ui.Bold)
	fmt.Printf("  Legal forms:      %s\n", strings.Join(r.LegalForms, ", "))
	fmt.Printf("  Selected form:    %s\n", derived.String(spv.FieldLegalForm))
	fmt.Printf("  Role:             %s\n", derived.String(spv.FieldRole))
	fmt.Printf("  Local director:   %s\n", yesNo(derived.Bool(spv.FieldDirector)))
	fmt.Printf("  Complexity:       %s\n", derived.String(spv.FieldComplexity))

	if form != "" && !r.Allows(form) {
		fmt.Println()
		ui.Warnf("%q is not available in %s; using %s", form, r.Country, derived.String(spv.FieldLegalForm))
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func init() {
	spvCmd.Flags().String("legal-form", "", "Check a legal form against the country's rules")
	rootCmd.AddCommand(spvCmd)
}
