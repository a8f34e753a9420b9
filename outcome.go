package authgate

// OutcomeKind defines a public type used by authgate APIs.
//
// OutcomeKind instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type OutcomeKind uint8

const (
	// OutcomeVerified means the submission matched a stored identity.
	OutcomeVerified OutcomeKind = iota
	// OutcomeMalformed means the submission failed shape validation and the
	// identity store was never consulted.
	OutcomeMalformed
	// OutcomeNotFound means no identity record exists for the identifier.
	OutcomeNotFound
	// OutcomeMismatch means the identity exists but the secret did not match.
	OutcomeMismatch
	// OutcomeStoreUnavailable means the identity store failed transiently.
	OutcomeStoreUnavailable
)

// Outcome is the tagged result of one credential verification.
//
// NotFound and Mismatch are deliberately indistinguishable to end users of
// the orchestrator; they stay distinguishable here for audit purposes only.
type Outcome struct {
	Kind OutcomeKind

	// Identity is set only when Kind is OutcomeVerified.
	Identity *Identity

	// FieldErrors carries per-field validation messages when Kind is
	// OutcomeMalformed.
	FieldErrors map[string][]string

	// Cause carries the underlying store error when Kind is
	// OutcomeStoreUnavailable.
	Cause error
}

func (o Outcome) String() string {
	switch o.Kind {
	case OutcomeVerified:
		return "verified"
	case OutcomeMalformed:
		return "malformed"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeMismatch:
		return "mismatch"
	case OutcomeStoreUnavailable:
		return "store_unavailable"
	default:
		return "unknown"
	}
}
