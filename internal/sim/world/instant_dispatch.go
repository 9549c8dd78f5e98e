package world

import "fluidworks.ai/internal/protocol"

type instantHandler func(*World, *Actor, protocol.InstantReq, uint64)

var instantDispatch = map[string]instantHandler{
	InstantTypeTransfer:    handleInstantTransfer,
	InstantTypeDrench:      handleInstantDrench,
	InstantTypeConsume:     handleInstantConsume,
	InstantTypeCycleAmount: handleInstantCycleAmount,
}
