package world

import (
	"fmt"

	"fluidworks.ai/internal/protocol"
	"fluidworks.ai/internal/sim/chem"
)

func handleInstantTransfer(w *World, a *Actor, inst protocol.InstantReq, nowTick uint64) {
	target := w.entityByID(inst.TargetID)
	if target == nil || target == &a.Entity {
		a.AddEvent(actionResult(nowTick, inst.ID, false, protocol.ErrInvalidTarget, "no such target"))
		return
	}
	if !chem.CanAssist(&a.Entity, target, chem.SideAuthoritative) {
		a.AddEvent(actionResult(nowTick, inst.ID, false, protocol.ErrNoPermission, "transfer not permitted"))
		return
	}

	one, two := a.Vessel, target.Vessel
	out := chem.Resolve(one.Policy(), two.Policy(), one.IsFull())
	res := w.exec.ExecuteResolved(one, two, out)

	if res.Excess != nil {
		// Rejected material flows back to wherever it was drawn from.
		source := one
		if out.Kind == chem.OutcomeTransferToOne {
			source = two
		}
		source.Reinstate(res.Excess)
	}

	w.auditTransfer(AuditEntry{
		Tick:    nowTick,
		Actor:   a.ID,
		Action:  InstantTypeTransfer,
		Source:  a.ID,
		Dest:    target.ID,
		Amount:  res.Amount,
		OK:      res.Success,
		Message: res.Message,
	})

	if res.Success {
		a.AddEvent(actionResult(nowTick, inst.ID, true, "", res.Message))
		return
	}
	code := protocol.ErrBlocked
	if out.Kind == chem.OutcomeTransferToOne || out.Kind == chem.OutcomeTransferToTwo {
		// Direction resolved but the transfer itself refused: empty source
		// or a destination that would not take anything.
		code = protocol.ErrNoResource
	}
	a.AddEvent(actionResult(nowTick, inst.ID, false, code, res.Message))
}

func handleInstantDrench(w *World, a *Actor, inst protocol.InstantReq, nowTick uint64) {
	target := w.entityByID(inst.TargetID)
	if target == nil || target == &a.Entity {
		a.AddEvent(actionResult(nowTick, inst.ID, false, protocol.ErrInvalidTarget, "no such target"))
		return
	}
	if !chem.CanHarm(&a.Entity, target, chem.SideAuthoritative) {
		a.AddEvent(actionResult(nowTick, inst.ID, false, protocol.ErrNoPermission, "drench not permitted"))
		return
	}
	if a.Vessel.IsEmpty() {
		a.AddEvent(actionResult(nowTick, inst.ID, false, protocol.ErrNoResource,
			fmt.Sprintf("%s is empty", a.VesselName)))
		return
	}

	// The harm path skips direction resolution: the full contents land on
	// the recipient.
	spilled := a.Vessel.Take(a.Vessel.Quantity())
	amount := spilled.Quantity()
	target.Drenched.Pour(spilled)

	w.auditTransfer(AuditEntry{
		Tick:   nowTick,
		Actor:  a.ID,
		Action: InstantTypeDrench,
		Source: a.ID,
		Dest:   target.ID,
		Amount: amount,
		OK:     true,
	})

	if victim := w.actors[target.ID]; victim != nil {
		victim.AddEvent(protocol.Event{
			"t":      nowTick,
			"type":   "DRENCHED",
			"by":     a.ID,
			"amount": amount,
		})
	}
	a.AddEvent(actionResult(nowTick, inst.ID, true, "",
		fmt.Sprintf("You splash %s onto %s", a.VesselName, target.Name)))
}

func handleInstantConsume(w *World, a *Actor, inst protocol.InstantReq, nowTick uint64) {
	res := w.exec.Consume(a.Vessel)

	w.auditTransfer(AuditEntry{
		Tick:    nowTick,
		Actor:   a.ID,
		Action:  InstantTypeConsume,
		Source:  a.ID,
		Amount:  res.Amount,
		OK:      res.Success,
		Message: res.Message,
	})

	a.AddEvent(actionResult(nowTick, inst.ID, true, "", res.Message))
}

func handleInstantCycleAmount(w *World, a *Actor, inst protocol.InstantReq, nowTick uint64) {
	if len(a.Vessel.Presets()) == 0 {
		a.AddEvent(actionResult(nowTick, inst.ID, false, protocol.ErrBadRequest, "amount cycling unavailable"))
		return
	}
	v := chem.Cycle(a.Vessel)
	a.AddEvent(actionResult(nowTick, inst.ID, true, "",
		fmt.Sprintf("transfer amount set to %v units", v)))
}
