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

package wizard

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/cloud-exit/tokensim/internal/preset"
	"github.com/cloud-exit/tokensim/internal/state"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var printer = message.NewPrinter(language.English)

// FormatNumber renders v with thousands separators and at most two
// fraction digits.
func FormatNumber(v float64) string {
	return printer.Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
}

// ReportInput is everything a report is built from.
type ReportInput struct {
	Title       string
	Category    preset.Category
	Flavor      preset.Flavor
	Summaries   []StepSummary
	Analysis    *Analysis
	SessionID   string
	Author      string // "Name <email>"
	GeneratedAt time.Time
}

// ReportFromFlow collects a report input from the flow's current state.
func ReportFromFlow(f *Flow, withAnalysis bool) ReportInput {
	sn := f.Snapshot()
	in := ReportInput{
		Title:       sn[state.ProjectInfo].String("name"),
		Category:    f.Category(),
		Flavor:      f.Flavor(),
		Summaries:   f.Summaries(),
		GeneratedAt: time.Now(),
	}
	if withAnalysis {
		a := Analyze(sn)
		in.Analysis = &a
	}
	return in
}

// Report renders the input as markdown.
func Report(in ReportInput) string {
	var b strings.Builder
	title := in.Title
	if title == "" {
		title = "Untitled project"
	}
	fmt.Fprintf(&b, "# Tokenization report: %s\n\n", title)
	if in.Category != "" {
		fmt.Fprintf(&b, "**Category:** %s  \n", in.Category)
	}
	fmt.Fprintf(&b, "**Wizard:** %s  \n", in.Flavor)
	if !in.GeneratedAt.IsZero() {
		fmt.Fprintf(&b, "**Generated:** %s  \n", in.GeneratedAt.Format("2006-01-02 15:04"))
	}
	if in.Author != "" {
		fmt.Fprintf(&b, "**Prepared by:** %s  \n", escapeCell(in.Author))
	}
	if in.SessionID != "" {
		fmt.Fprintf(&b, "**Session:** `%s`  \n", in.SessionID)
	}
	b.WriteString("\n")

	for _, s := range in.Summaries {
		fmt.Fprintf(&b, "## %s\n\n", s.Step.Label)
		if len(s.Fields) == 0 {
			b.WriteString("_Not filled in._\n\n")
			continue
		}
		b.WriteString("| Field | Value |\n|---|---|\n")
		keys := make([]string, 0, len(s.Fields))
		for k := range s.Fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "| %s | %s |\n", k, escapeCell(s.Fields[k]))
		}
		b.WriteString("\n")
	}

	if a := in.Analysis; a != nil {
		fmt.Fprintf(&b, "## %s\n\n%s\n\n", a.Headline, a.Body)
		lo, _ := a.Range.Low.Float64()
		hi, _ := a.Range.High.Float64()
		fmt.Fprintf(&b, "**Valuation range:** %s – %s\n\n", FormatNumber(lo), FormatNumber(hi))
		fmt.Fprintf(&b, "**Setup risk:** %s\n\n", a.Risk)
	}

	b.WriteString("---\n\n_Simulation only. No entity was registered and no token was deployed._\n")
	return b.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// RenderReport renders markdown for the terminal. width <= 0 means 80.
func RenderReport(md string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("creating renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}
	return out, nil
}
