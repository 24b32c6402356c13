/*
 * errors.go, part of gotheo.
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
	"errors"
	"fmt"
	"strings"
)

//ErrorKind classifies the errors produced by the analysis.
type ErrorKind int

const (
	//ConfigurationError signals input data that can't support the analysis
	//(malformed fragment partitions, missing basis data, inconsistent dimensions).
	ConfigurationError ErrorKind = iota + 1
	//InconsistencyError signals spin channels that don't describe the same states.
	InconsistencyError
	//NumericalError signals a failed decomposition, such as a non-converged SVD.
	NumericalError
	//NegligibleStateWarning is not fatal. It marks a state with a near-zero transition charge.
	NegligibleStateWarning
)

func (k ErrorKind) String() string {
	switch k {
	case ConfigurationError:
		return "configuration error"
	case InconsistencyError:
		return "inconsistency error"
	case NumericalError:
		return "numerical error"
	case NegligibleStateWarning:
		return "negligible state"
	default:
		return "unknown error"
	}
}

//AnalysisError is the error type returned by goTheo. It implements Error.
type AnalysisError struct {
	kind    ErrorKind
	message string
	deco    []string
	err     error //underlying error, if any
}

//NewError returns a new *AnalysisError of the given kind. caller is the name of the
//function producing the error, which becomes the first decoration.
func NewError(kind ErrorKind, caller, format string, args ...interface{}) *AnalysisError {
	ret := &AnalysisError{kind: kind, message: fmt.Sprintf(format, args...)}
	if caller != "" {
		ret.deco = []string{caller}
	}
	return ret
}

//WrapError is like NewError but keeps err as the underlying cause.
func WrapError(kind ErrorKind, caller string, err error) *AnalysisError {
	ret := NewError(kind, caller, "%s", err.Error())
	ret.err = err
	return ret
}

func (err *AnalysisError) Error() string {
	return fmt.Sprintf("goTheo %s: %s", err.kind, err.message)
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err *AnalysisError) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

//Trace returns the decorations, innermost function first, as a single string.
func (err *AnalysisError) Trace() string {
	return strings.Join(err.deco, " <- ")
}

//Kind returns the kind of the error.
func (err *AnalysisError) Kind() ErrorKind { return err.kind }

//Critical returns whether the error should stop the analysis of the affected data.
//Only warnings are not critical.
func (err *AnalysisError) Critical() bool { return err.kind != NegligibleStateWarning }

func (err *AnalysisError) Unwrap() error { return err.err }

//IsKind returns true if err, or any error it wraps, is an *AnalysisError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var ae *AnalysisError
	if errors.As(err, &ae) {
		return ae.kind == kind
	}
	return false
}

//errDecorate decorates the error with the caller's name before returning it,
//if the error implements Error. Other errors are returned unchanged.
func errDecorate(err error, caller string) error {
	if err2, ok := err.(Error); ok {
		err2.Decorate(caller)
		return err2
	}
	return err
}

//PanicMsg is a message used for panics, even though it does satisfy the error interface.
//for errors use AnalysisError.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrShape  = PanicMsg("goTheo: Dimension mismatch")
	ErrNilTDM = PanicMsg("goTheo: nil transition density matrix")
)
