package chem

// OutcomeKind classifies a direction resolution.
type OutcomeKind uint8

const (
	// OutcomeInvalid marks a pairing the policy table does not permit.
	// It is a diagnostic condition, not an error: no transfer occurs.
	OutcomeInvalid OutcomeKind = iota
	OutcomeTransferToOne
	OutcomeTransferToTwo
	// OutcomeBothBlocked is a legitimate stand-off (both sides declare the
	// same exclusive role); Reason carries the user-facing explanation.
	OutcomeBothBlocked
)

type Outcome struct {
	Kind   OutcomeKind
	Reason string
}

var (
	toOne = Outcome{Kind: OutcomeTransferToOne}
	toTwo = Outcome{Kind: OutcomeTransferToTwo}
)

// Resolve maps a pair of policies to the receiving side.
//
// Normal containers yield to the counterpart's stricter role. A syringe
// draws in while it has room and switches to supplying once full. Pairings
// of two output-only or two input-only containers are blocked with a
// reason; anything naming NO_TRANSFER, and any syringe on the "two" side,
// is invalid.
func Resolve(one, two Policy, oneIsFull bool) Outcome {
	switch one {
	case PolicyNormal:
		switch two {
		case PolicyNormal:
			return toTwo
		case PolicyOutputOnly:
			return toOne
		case PolicyInputOnly:
			return toTwo
		}
	case PolicySyringe:
		switch two {
		case PolicyNormal:
			if oneIsFull {
				return toTwo
			}
			return toOne
		case PolicyOutputOnly:
			return toOne
		case PolicyInputOnly:
			return toTwo
		}
	case PolicyOutputOnly:
		switch two {
		case PolicyNormal:
			return toTwo
		case PolicyOutputOnly:
			return Outcome{Kind: OutcomeBothBlocked, Reason: "both output-only"}
		case PolicyInputOnly:
			return toTwo
		}
	case PolicyInputOnly:
		switch two {
		case PolicyNormal:
			return toOne
		case PolicyOutputOnly:
			return toOne
		case PolicyInputOnly:
			return Outcome{Kind: OutcomeBothBlocked, Reason: "both input-only"}
		}
	}
	return Outcome{Kind: OutcomeInvalid}
}
