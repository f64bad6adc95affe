package validators

import (
	"context"

	"magpie/acl"
	"magpie/types"
)

// CheckTransfer gates an ownership transfer before any row moves. Only the
// main owner may transfer, never to themselves, and only to a user the list
// already knows.
func CheckTransfer(ctx context.Context, store Store, owners []types.Owner, callerID, newOwnerID string) *CheckError {
	if !acl.CanTransferOrDelete(owners, callerID) {
		return checkErr(CodeNotMainOwner, "only the main owner can transfer ownership")
	}

	if newOwnerID == callerID {
		return checkErr(CodeSelfTransfer, "you are already the main owner")
	}

	u, err := store.User(ctx, newOwnerID)

	if err != nil {
		return checkErrCtx(CodeStore, "failed to look up the new owner", err.Error())
	}

	if u == nil {
		return checkErrCtx(CodeNewOwnerUnknown, "the new owner has never logged into this list", newOwnerID)
	}

	return nil
}
