package models

// MutationKind enumerates the state-changing actions an admin can take.
type MutationKind string

const (
	MutationBlock    MutationKind = "block"
	MutationUnblock  MutationKind = "unblock"
	MutationVerify   MutationKind = "verify"
	MutationUnverify MutationKind = "unverify"
	MutationApprove  MutationKind = "approve"
	MutationReject   MutationKind = "reject"
	MutationDelete   MutationKind = "delete"
)

// Valid reports whether k is a known mutation kind.
func (k MutationKind) Valid() bool {
	switch k {
	case MutationBlock, MutationUnblock, MutationVerify, MutationUnverify,
		MutationApprove, MutationReject, MutationDelete:
		return true
	}
	return false
}

// MutationIntent is created when an admin clicks an action button and is
// held until the confirmation dialog is accepted or dismissed.
type MutationIntent struct {
	ID              string       `json:"id"`
	TargetID        string       `json:"target_id"`
	TargetName      string       `json:"target_name"`
	Kind            MutationKind `json:"kind"`
	ConfirmedByUser bool         `json:"confirmed_by_user"`
}
