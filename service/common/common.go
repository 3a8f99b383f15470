// Copyright 2026 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

// Package common holds the pieces shared between the init system
// adapters and the command line: the unexecuted command invocation the
// adapters hand back, and the runner that executes it.
package common

import (
	"github.com/kballard/go-shellquote"
)

// Invocation is an external command that has been built but not run.
// Running it, and interpreting its exit status and output, is left to
// whoever receives it.
type Invocation struct {
	// Program is the executable to run.
	Program string
	// Args holds the arguments, in order, excluding the program itself.
	Args []string
}

// NewInvocation returns an invocation of program with the given args.
func NewInvocation(program string, args ...string) Invocation {
	return Invocation{
		Program: program,
		Args:    args,
	}
}

// Argv returns the program followed by its arguments.
func (inv Invocation) Argv() []string {
	return append([]string{inv.Program}, inv.Args...)
}

// String returns the invocation as a shell-quoted command line.
func (inv Invocation) String() string {
	return shellquote.Join(inv.Argv()...)
}

// Equal reports whether both invocations run the same program with the
// same arguments.
func (inv Invocation) Equal(other Invocation) bool {
	if inv.Program != other.Program || len(inv.Args) != len(other.Args) {
		return false
	}
	for i, arg := range inv.Args {
		if other.Args[i] != arg {
			return false
		}
	}
	return true
}
