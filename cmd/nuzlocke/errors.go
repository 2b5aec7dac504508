package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/nuzlocke/internal/editor"
	"github.com/mesh-intelligence/nuzlocke/internal/rpc"
	"github.com/mesh-intelligence/nuzlocke/pkg/types"
)

// exitError carries the exit code a failure maps to.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func userError(err error) error   { return &exitError{code: exitUserError, err: err} }
func systemError(err error) error { return &exitError{code: exitSysError, err: err} }

// userErrors are failures caused by the command line or rejected by the
// tracker.
var userErrors = []error{
	types.ErrNotFound,
	types.ErrInvalidID,
	types.ErrInvalidData,
	types.ErrInvalidStatus,
	types.ErrInvalidMode,
	types.ErrInvalidSpecies,
	types.ErrSpeciesMismatch,
	types.ErrRunNotFound,
	types.ErrRegionNotFound,
	types.ErrPartnerNotAllowed,
	types.ErrPartnerNotInRun,
	types.ErrSelfPartner,
	types.ErrBackendUnknown,
	types.ErrSyncStrategyUnknown,
	editor.ErrNoEntry,
	editor.ErrPartnerUnavailable,
}

// usagePrefixes start the usage errors cobra reports without a hook.
var usagePrefixes = []string{"unknown command", "required flag"}

// exitCode maps err to 1 for user errors and 2 for everything else.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	var serviceErr *rpc.ServiceError
	if errors.As(err, &serviceErr) {
		return exitUserError
	}
	for _, sentinel := range userErrors {
		if errors.Is(err, sentinel) {
			return exitUserError
		}
	}
	for _, prefix := range usagePrefixes {
		if strings.HasPrefix(err.Error(), prefix) {
			return exitUserError
		}
	}
	return exitSysError
}

// exactArgs is cobra.ExactArgs reported as a user error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return userError(err)
		}
		return nil
	}
}

func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return userError(err)
	}
	return nil
}
