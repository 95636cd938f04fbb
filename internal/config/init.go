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

package config

import (
	"os"
	"path/filepath"
)

func EnsureDirs() {
	for _, d := range []string{Home, Data, State, KVDir()} {
		os.MkdirAll(d, 0755)
	}
}

func ConfigExists() bool {
	_, err := os.Stat(ConfigFile())
	return err == nil
}

func WriteDefaults() error {
	if ConfigExists() {
		return nil
	}
	return SaveConfig(DefaultConfig())
}

// IsFirstRun reports whether the install marker is missing.
func IsFirstRun() bool {
	_, err := os.Stat(filepath.Join(Home, ".installed"))
	return os.IsNotExist(err)
}

func MarkInstalled() error {
	return os.WriteFile(filepath.Join(Home, ".installed"), []byte{}, 0644)
}
