package chem

import (
	"fmt"
	"math"
	"strconv"
)

// Namer resolves a container to a display name for result messages.
type Namer interface {
	ContainerName(c *Container) string
}

// Result reports one executed (or refused) transfer. All failures are
// data; Execute never panics and never returns a Go error.
type Result struct {
	Success bool
	Message string
	Amount  float64
	// Excess is material the destination refused (capacity or whitelist).
	// The caller decides its disposition; it is never silently dropped.
	Excess *Mix
}

type Executor struct {
	namer Namer
	diag  Diagnostics
}

func NewExecutor(namer Namer, diag Diagnostics) *Executor {
	if namer == nil {
		namer = fallbackNamer{}
	}
	if diag == nil {
		diag = NopDiagnostics{}
	}
	return &Executor{namer: namer, diag: diag}
}

// Execute resolves direction between one and two and performs the transfer.
func (e *Executor) Execute(one, two *Container) Result {
	return e.ExecuteResolved(one, two, Resolve(one.policy, two.policy, one.IsFull()))
}

// ExecuteResolved performs a transfer for an already-resolved outcome.
func (e *Executor) ExecuteResolved(one, two *Container, out Outcome) Result {
	var receiver, source *Container
	switch out.Kind {
	case OutcomeTransferToOne:
		receiver, source = one, two
	case OutcomeTransferToTwo:
		receiver, source = two, one
	case OutcomeBothBlocked:
		return Result{Message: out.Reason}
	default:
		e.diag.Event("INVALID_PAIRING", map[string]any{
			"one": one.policy.String(),
			"two": two.policy.String(),
		})
		return Result{}
	}

	if source.IsEmpty() {
		return Result{Message: fmt.Sprintf("%s is empty", e.namer.ContainerName(source))}
	}

	wasEmpty := receiver.IsEmpty()
	wasFull := receiver.IsFull()
	moved := source.Take(source.amount)
	accepted, excess := receiver.Add(moved)
	if accepted <= epsilon {
		// Fully rejected: the extraction is carried in Excess so the caller
		// can put it back; no material is unaccounted for.
		msg := fmt.Sprintf("%s cannot hold the mixture", e.namer.ContainerName(receiver))
		if wasFull {
			msg = fmt.Sprintf("%s is full", e.namer.ContainerName(receiver))
		}
		return Result{Message: msg, Excess: excess}
	}

	var msg string
	if wasEmpty {
		msg = fmt.Sprintf("You fill %s with %s units from %s",
			e.namer.ContainerName(receiver), fmtAmount(accepted), e.namer.ContainerName(source))
	} else {
		msg = fmt.Sprintf("You transfer %s units from %s to %s",
			fmtAmount(accepted), e.namer.ContainerName(source), e.namer.ContainerName(receiver))
	}
	if excess.IsEmpty() {
		excess = nil
	}
	return Result{Success: true, Message: msg, Amount: accepted, Excess: excess}
}

// Consume moves the configured amount out of source with no receiver.
// It always succeeds; the material is gone as far as the engine cares.
func (e *Executor) Consume(source *Container) Result {
	amount := source.amount
	source.Take(amount)
	return Result{Success: true, Amount: amount, Message: "Reagents were consumed"}
}

// fmtAmount rounds to two decimals and trims trailing zeros.
func fmtAmount(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}

type fallbackNamer struct{}

func (fallbackNamer) ContainerName(c *Container) string { return "the container" }
