package chem

import "fmt"

// Policy constrains whether a container may act as a transfer source,
// a destination, both, or neither. Fixed at configuration time.
type Policy uint8

const (
	PolicyNormal Policy = iota
	PolicySyringe
	PolicyOutputOnly
	PolicyInputOnly
	PolicyNoTransfer
)

var policyNames = map[Policy]string{
	PolicyNormal:     "NORMAL",
	PolicySyringe:    "SYRINGE",
	PolicyOutputOnly: "OUTPUT_ONLY",
	PolicyInputOnly:  "INPUT_ONLY",
	PolicyNoTransfer: "NO_TRANSFER",
}

func (p Policy) String() string {
	if s, ok := policyNames[p]; ok {
		return s
	}
	return fmt.Sprintf("POLICY_%d", uint8(p))
}

func ParsePolicy(s string) (Policy, error) {
	for p, name := range policyNames {
		if name == s {
			return p, nil
		}
	}
	return PolicyNoTransfer, fmt.Errorf("unknown transfer policy: %q", s)
}
