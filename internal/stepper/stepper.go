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

// Package stepper implements the tab navigator used inside a wizard step.
package stepper

import (
	"errors"

	"github.com/cloud-exit/tokensim/internal/preset"
)

var ErrNoTabs = errors.New("stepper: tab list is empty")

// Navigator tracks the active tab of one step.
type Navigator struct {
	tabs        []preset.StepDescriptor
	active      int
	onTabChange func(id string)
	onNextStep  func()
}

// Option configures a Navigator.
type Option func(*Navigator)

// OnTabChange is called with the new tab id after Next or Back moves.
func OnTabChange(fn func(id string)) Option {
	return func(n *Navigator) { n.onTabChange = fn }
}

// OnNextStep is called when Next is invoked on the last tab.
func OnNextStep(fn func()) Option {
	return func(n *Navigator) { n.onNextStep = fn }
}

// ActiveTab starts the navigator on the given tab id, if present.
func ActiveTab(id string) Option {
	return func(n *Navigator) { n.Sync(id) }
}

// New returns a navigator positioned on the first tab.
func New(tabs []preset.StepDescriptor, opts ...Option) (*Navigator, error) {
	if len(tabs) == 0 {
		return nil, ErrNoTabs
	}
	n := &Navigator{tabs: append([]preset.StepDescriptor(nil), tabs...)}
	for _, o := range opts {
		o(n)
	}
	return n, nil
}

// Next moves to the following tab, or hands control back to the caller via
// OnNextStep when already on the last tab. It returns true if the active tab
// changed.
func (n *Navigator) Next() bool {
	if n.active < len(n.tabs)-1 {
		n.active++
		n.notify()
		return true
	}
	if n.onNextStep != nil {
		n.onNextStep()
	}
	return false
}

// Back moves to the previous tab. On the first tab it does nothing.
func (n *Navigator) Back() bool {
	if n.active == 0 {
		return false
	}
	n.active--
	n.notify()
	return true
}

// Sync forces the active tab to id when an outer component (the sidebar)
// selects it. Ids not in the list are ignored and reported as false.
// No callback fires: the caller already knows the new tab.
func (n *Navigator) Sync(id string) bool {
	for i, t := range n.tabs {
		if t.ID == id {
			n.active = i
			return true
		}
	}
	return false
}

// Active returns the current tab.
func (n *Navigator) Active() preset.StepDescriptor { return n.tabs[n.active] }

// Index returns the current tab index.
func (n *Navigator) Index() int { return n.active }

// Len returns the number of tabs.
func (n *Navigator) Len() int { return len(n.tabs) }

func (n *Navigator) IsFirst() bool { return n.active == 0 }

func (n *Navigator) IsLast() bool { return n.active == len(n.tabs)-1 }

// Tabs returns a copy of the tab list.
func (n *Navigator) Tabs() []preset.StepDescriptor {
	return append([]preset.StepDescriptor(nil), n.tabs...)
}

func (n *Navigator) notify() {
	if n.onTabChange != nil {
		n.onTabChange(n.tabs[n.active].ID)
	}
}
