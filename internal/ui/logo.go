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

package ui

import "fmt"

// LogoSmall prints the TokenSim ASCII logo.
func LogoSmall() {
	fmt.Fprint(stdout, Cyan)
	fmt.Fprintln(stdout, ` _____     _              ____  _`)
	fmt.Fprintln(stdout, `|_   _|__ | | _____ _ __ / ___|(_)_ __ ___`)
	fmt.Fprintln(stdout, `  | |/ _ \| |/ / _ \ '_ \\___ \| | '_ ' _ \`)
	fmt.Fprintln(stdout, `  | | (_) |   <  __/ | | |___) | | | | | | |`)
	fmt.Fprintln(stdout, `  |_|\___/|_|\_\___|_| |_|____/|_|_| |_| |_|`)
	fmt.Fprint(stdout, NC)
	fmt.Fprintf(stdout, "%s        by Cloud Exit (https://cloud-exit.com)%s\n", Dim, NC)
}

// Logo prints the full logo with tagline.
func Logo() {
	LogoSmall()
	fmt.Fprintln(stdout)
	fmt.Fprintf(stdout, "%sAsset Tokenization Simulator%s\n", Dim, NC)
}
