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
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cloud-exit/tokensim/internal/preset"
	"github.com/cloud-exit/tokensim/internal/projects"
	"github.com/cloud-exit/tokensim/internal/state"
	"go.uber.org/zap"
)

// ErrCrashed is returned when the wizard panicked. Progress is not
// recoverable; the user has to start over.
var ErrCrashed = errors.New("the wizard hit an unexpected error; run tokensim again to reload")

// ErrCancelled is returned when the user quits before the summary.
var ErrCancelled = errors.New("wizard cancelled")

// Options configures a wizard run.
type Options struct {
	Flavor         preset.Flavor
	Category       preset.Category // optional preselection
	Logger         *zap.Logger
	DeployDelay    time.Duration
	AnalysisDelay  time.Duration
	Projects       []projects.Property
	ProjectsOrigin projects.Origin
	SessionID      string
	Author         string // shown in the report header
}

// withDefaults fills zero values. The config layer rejects non-positive
// delays, so a zero here means the caller did not set one.
func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	if o.DeployDelay <= 0 {
		o.DeployDelay = 600 * time.Millisecond
	}
	if o.AnalysisDelay <= 0 {
		o.AnalysisDelay = 1500 * time.Millisecond
	}
	return o
}

// Result holds what the wizard produced.
type Result struct {
	Category preset.Category
	Snapshot state.Snapshot
	Report   string // markdown
}

// Run executes the wizard TUI until the user finishes the summary or quits.
func Run(opts Options) (res *Result, err error) {
	opts = opts.withDefaults()
	defer func() {
		if r := recover(); r != nil {
			opts.Logger.Error("wizard crashed", zap.Any("panic", r), zap.Stack("stack"))
			res, err = nil, ErrCrashed
		}
	}()

	model, err := NewModel(opts)
	if err != nil {
		return nil, err
	}
	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("wizard error: %w", err)
	}
	return resultOf(finalModel.(Model))
}

func resultOf(wm Model) (*Result, error) {
	if wm.Crashed() {
		return nil, ErrCrashed
	}
	if wm.Cancelled() || !wm.Confirmed() {
		return nil, ErrCancelled
	}
	return &Result{
		Category: wm.flow.Category(),
		Snapshot: wm.flow.Snapshot(),
		Report:   wm.report,
	}, nil
}
