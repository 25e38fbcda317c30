/*
 * errors.go, part of goselect.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package selection

import "fmt"

// Kind classifies the errors the evaluator distinguishes (spec.md §7).
type Kind int

const (
	// KindNotImplemented marks a legitimate-but-unsupported code path:
	// position-valued general SubExpr, non-position Modifier children.
	KindNotImplemented Kind = iota
	// KindInternal marks a switch default on an invalid value kind, guard
	// misuse, or a value-kind mismatch across a temporary assignment.
	KindInternal
	// KindPrecondition marks a violated assertion: a modifier lacking a
	// required child, a position-calculator node without a position buffer,
	// or a SubExpr cache group that is not sorted before a merge. Releasing a
	// guard that holds nothing is a no-op, not an error; the group package
	// does not check that its inputs are sorted, and it reports capacity
	// exhaustion with a plain string panic rather than this Kind.
	KindPrecondition
)

func (k Kind) String() string {
	switch k {
	case KindNotImplemented:
		return "not implemented"
	case KindInternal:
		return "internal"
	case KindPrecondition:
		return "precondition"
	default:
		return "unknown"
	}
}

// Error is the error type for this package. It implements the Decorate
// convention shared across goselect (see ddc/ddc.go in the teacher
// package): Decorate lets a caller add a stack-trace-like breadcrumb
// without changing the error's type or wrapping it in something new.
type Error struct {
	message string
	kind    Kind
	deco    []string
}

func newError(kind Kind, message string) Error {
	return Error{message: message, kind: kind}
}

func (e Error) Error() string {
	return fmt.Sprintf("selection: %s: %s", e.kind, e.message)
}

// Decorate adds new information to the error's call-stack breadcrumb and
// returns the current breadcrumb. Passing an empty string just returns the
// current value without adding to it.
func (e Error) Decorate(deco string) []string {
	if deco != "" {
		e.deco = append(e.deco, deco)
	}
	return e.deco
}

// ErrKind returns the error's classification.
func (e Error) ErrKind() Kind { return e.kind }

// errDecorate asserts that err implements Error and decorates it with the
// caller's name before returning it. If used with a plain error, it just
// returns the error unchanged. Follows ddc/ddc.go's errDecorate.
func errDecorate(err error, caller string) error {
	e2, ok := err.(Error)
	if !ok {
		return err
	}
	e2.deco = e2.Decorate(caller)
	return e2
}

// precondition panics with a KindPrecondition Error if cond is false. Used
// for the assertions spec.md §7 calls "programmer precondition": violating
// one means the caller (compiler, or this package's own code) is wrong, not
// that a recoverable runtime error occurred.
func precondition(cond bool, format string, args ...any) {
	if !cond {
		panic(newError(KindPrecondition, fmt.Sprintf(format, args...)))
	}
}

func internalf(format string, args ...any) Error {
	return newError(KindInternal, fmt.Sprintf(format, args...))
}
