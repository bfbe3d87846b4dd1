// SPDX-License-Identifier: EPL-2.0

// Package shell is the line-oriented controller of a soundscape.
//
// Each line is split like a POSIX shell would (quotes and escapes work)
// and dispatched through a fresh cobra command tree, so flags never leak
// from one line into the next. Commands that touch sounds print the
// status of their selection and one "error:" line per failed target.
package shell
