// Package acl resolves what a caller may do to an entity from its owner
// list. Entity existence must be checked before these; absence is NotFound,
// ownership failure is Forbidden, and the two must never be conflated.
package acl

import "magpie/types"

// CanEdit reports whether the caller appears anywhere in the owner list
func CanEdit(owners []types.Owner, callerID string) bool {
	for _, o := range owners {
		if o.ID == callerID {
			return true
		}
	}

	return false
}

// CanTransferOrDelete reports whether the caller is the main owner
func CanTransferOrDelete(owners []types.Owner, callerID string) bool {
	for _, o := range owners {
		if o.Main {
			return o.ID == callerID
		}
	}

	return false
}

// MainOwner returns the main owner entry, if any
func MainOwner(owners []types.Owner) (types.Owner, bool) {
	for _, o := range owners {
		if o.Main {
			return o, true
		}
	}

	return types.Owner{}, false
}
