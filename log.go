/*
 * log.go, part of gotheo.
 *
 * Copyright 2024 Raul Mera A. (raulpuntomeraatusachpuntocl)
 *
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU Lesser General Public License as published by
    the Free Software Foundation, either version 2.1 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU Lesser General Public License
    along with this program.  If not, see <http://www.gnu.org/licenses/>.
 *
 *
*/

package theo

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

var logger = NewLogger(os.Stderr, false)

//NewLogger returns a logger writing to w, with the format used throughout goTheo.
//If debug is true, debug messages are also printed.
func NewLogger(w io.Writer, debug bool) *log.Logger {
	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: "gotheo",
		Level:  level,
	})
}

//Logger returns the logger used by all goTheo packages.
func Logger() *log.Logger {
	return logger
}

//SetLogger replaces the logger used by all goTheo packages. A nil
//logger discards all messages.
func SetLogger(l *log.Logger) {
	if l == nil {
		l = NewLogger(io.Discard, false)
	}
	logger = l
}
