package world

import "fmt"

const (
	InstantTypeTransfer    = "TRANSFER"
	InstantTypeDrench      = "DRENCH"
	InstantTypeConsume     = "CONSUME"
	InstantTypeCycleAmount = "CYCLE_AMOUNT"
)

var supportedInstantTypes = []string{
	InstantTypeTransfer,
	InstantTypeDrench,
	InstantTypeConsume,
	InstantTypeCycleAmount,
}

func validateActionDispatchMaps() error {
	return validateDispatchMap("instantDispatch", instantDispatch, supportedInstantTypes)
}

func validateDispatchMap[T any](name string, handlers map[string]T, supported []string) error {
	allowed := make(map[string]struct{}, len(supported))
	for _, s := range supported {
		allowed[s] = struct{}{}
	}
	for k := range handlers {
		if _, ok := allowed[k]; !ok {
			return fmt.Errorf("%s contains unsupported type %q", name, k)
		}
	}
	for _, s := range supported {
		if _, ok := handlers[s]; !ok {
			return fmt.Errorf("%s missing handler for %q", name, s)
		}
	}
	return nil
}
