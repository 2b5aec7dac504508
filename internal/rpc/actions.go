package rpc

import (
	"strings"

	"github.com/mesh-intelligence/nuzlocke/pkg/types"
)

// Action names served by the tracker socket.
const (
	ActionGetRun            = "get-run"
	ActionGetCandidatePool  = "get-candidate-pool"
	ActionUpdateEntryStatus = "update-entry-status"
	ActionDeleteEntry       = "delete-entry"
	ActionCreateRun         = "create-run"
	ActionAddEntry          = "add-entry"
	ActionListRuns          = "list-runs"
	ActionListSpecies       = "list-species"
)

type runRequest struct {
	RunID string `cbor:"run_id"`
}

type candidatePoolRequest struct {
	RegionID string `cbor:"region_id"`
	RunID    string `cbor:"run_id"`
}

type updateEntryRequest struct {
	RunID   string              `cbor:"run_id"`
	Payload types.UpdatePayload `cbor:"payload"`
}

type deleteEntryRequest struct {
	RunID   string `cbor:"run_id"`
	EntryID string `cbor:"entry_id"`
}

type deleteEntryResponse struct {
	ID string `cbor:"id"`
}

type createRunRequest struct {
	Mode     types.Mode `cbor:"mode"`
	RegionID string     `cbor:"region_id"`
	GameID   string     `cbor:"game_id"`
}

type addEntryRequest struct {
	RunID string           `cbor:"run_id"`
	Input types.EntryInput `cbor:"input"`
}

// knownErrors are the sentinels a client can match with errors.Is after
// they cross the socket as text.
var knownErrors = []error{
	types.ErrRunNotFound,
	types.ErrRegionNotFound,
	types.ErrNotFound,
	types.ErrInvalidStatus,
	types.ErrInvalidMode,
	types.ErrInvalidSpecies,
	types.ErrSpeciesMismatch,
	types.ErrPartnerNotAllowed,
	types.ErrPartnerNotInRun,
	types.ErrSelfPartner,
}

// knownError returns the sentinel whose text ends message, or nil.
func knownError(message string) error {
	for _, err := range knownErrors {
		if strings.HasSuffix(message, err.Error()) {
			return err
		}
	}
	return nil
}
