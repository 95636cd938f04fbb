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

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"go.uber.org/zap"
)

// Verbose controls whether debug messages are printed.
var Verbose bool

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
	logger           = zap.NewNop()
)

// SetLogger mirrors console messages into the file log.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// SetOutput redirects console messages. nil restores the process streams.
func SetOutput(out, errOut io.Writer) {
	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}
	stdout, stderr = out, errOut
}

// Info prints an informational message to stdout.
func Info(msg string) {
	logger.Info(msg)
	fmt.Fprintf(stdout, "%s[INFO]%s %s\n", Cyan, NC, msg)
}

func Infof(format string, a ...any) {
	Info(fmt.Sprintf(format, a...))
}

// Success prints a success message to stdout.
func Success(msg string) {
	logger.Info(msg)
	fmt.Fprintf(stdout, "%s[OK]%s %s\n", Green, NC, msg)
}

func Successf(format string, a ...any) {
	Success(fmt.Sprintf(format, a...))
}

// Warn prints a warning message to stderr.
func Warn(msg string) {
	logger.Warn(msg)
	fmt.Fprintf(stderr, "%s[WARN]%s %s\n", Yellow, NC, msg)
}

func Warnf(format string, a ...any) {
	Warn(fmt.Sprintf(format, a...))
}

// ErrorNoExit prints an error message to stderr. Commands return errors to
// cobra instead of exiting here.
func ErrorNoExit(msg string) {
	logger.Error(msg)
	fmt.Fprintf(stderr, "%s[ERROR]%s %s\n", Red, NC, msg)
}

// Debug prints a debug message to stderr (only when Verbose is true). It is
// always written to the file log at debug level.
func Debug(msg string) {
	logger.Debug(msg)
	if Verbose {
		fmt.Fprintf(stderr, "%s[DEBUG]%s %s\n", Dim, NC, msg)
	}
}

func Debugf(format string, a ...any) {
	Debug(fmt.Sprintf(format, a...))
}

// Cecho prints colored text to stdout.
func Cecho(msg, color string) {
	fmt.Fprintf(stdout, "%s%s%s\n", color, msg, NC)
}

// Table prints rows as aligned columns with a bold header.
func Table(header []string, rows [][]string) {
	w := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s%s%s\n", Bold, strings.Join(header, "\t"), NC)
	for _, r := range rows {
		fmt.Fprintln(w, strings.Join(r, "\t"))
	}
	w.Flush()
}
