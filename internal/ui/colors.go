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

// Package ui provides terminal output: colors, console messages, the logo
// and a spinner.
package ui

import (
	"os"

	"golang.org/x/term"
)

// ANSI color codes. Cleared when stdout is not a terminal.
var (
	Red    = "\033[0;31m"
	Green  = "\033[0;32m"
	Yellow = "\033[0;33m"
	Cyan   = "\033[0;36m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	NC     = "\033[0m" // reset
)

func init() {
	if !IsTerminal() {
		DisableColor()
	}
}

// DisableColor clears every color code.
func DisableColor() {
	Red, Green, Yellow, Cyan, Bold, Dim, NC = "", "", "", "", "", "", ""
}

// IsTerminal reports whether both stdin and stdout are attached to a
// terminal, which the interactive wizard needs.
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))
}
