package chem

// Side says whether the current evaluation runs with authority.
// Trait enforcement is authority-gated; everything else is not.
type Side uint8

const (
	SidePredicted Side = iota
	SideAuthoritative
)

// Peer is the capability surface an entity presents to the gate.
// A nil container means the entity has no transfer capability.
type Peer interface {
	TransferContainer() *Container
	HasTrait(TraitID) bool
	CanBeDrenched() bool
}

// CanAssist decides whether a cooperative transfer between src and dst
// may be attempted at all. Direction is resolved separately.
func CanAssist(src, dst Peer, side Side) bool {
	srcC := src.TransferContainer()
	dstC := dst.TransferContainer()
	if srcC == nil || dstC == nil {
		return false
	}
	if srcC.policy == PolicyNoTransfer || dstC.policy == PolicyNoTransfer {
		return false
	}
	if side == SideAuthoritative {
		if len(srcC.required) > 0 && !presentsAny(dst, srcC.required) {
			return false
		}
		// TODO: the destination gate reads the source's required-trait set;
		// confirm whether it should read the destination container's own.
		if len(dstC.required) > 0 && !presentsAny(dst, srcC.required) {
			return false
		}
	}
	// A syringe never receives an assist-initiated transfer.
	if dstC.policy == PolicySyringe {
		return false
	}
	return true
}

// CanHarm decides whether src may spill its contents onto dst.
func CanHarm(src, dst Peer, side Side) bool {
	srcC := src.TransferContainer()
	if srcC == nil || srcC.policy == PolicyNoTransfer {
		return false
	}
	return dst.CanBeDrenched()
}

func presentsAny(p Peer, traits map[TraitID]struct{}) bool {
	for t := range traits {
		if p.HasTrait(t) {
			return true
		}
	}
	return false
}
