package world

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"fluidworks.ai/internal/protocol"
	"fluidworks.ai/internal/sim/chem"
	"fluidworks.ai/internal/sim/tuning"
)

type Config struct {
	ID         string
	TickRateHz int
}

type JoinRequest struct {
	Name   string
	Vessel string // archetype id; empty means the tuning default
	Out    chan []byte
	Resp   chan JoinResponse
}

type JoinResponse struct {
	Welcome protocol.WelcomeMsg
	Err     string
}

type ActionEnvelope struct {
	ActorID string
	Act     protocol.ActMsg
}

// World is a single-threaded authoritative simulation.
// All state must be accessed only from the world loop goroutine.
type World struct {
	cfg  Config
	tune tuning.Tuning

	tick atomic.Uint64

	actors      map[string]*Actor
	fixtures    map[string]*Entity
	clients     map[string]*clientState
	byContainer map[*chem.Container]*Entity

	inbox chan ActionEnvelope
	join  chan JoinRequest
	leave chan string
	stop  chan struct{}

	nextActorNum  atomic.Uint64
	nextVesselNum atomic.Uint64

	// Optional sinks (may be nil). Implemented in internal/persistence/*.
	auditLogger AuditLogger
	history     HistoryWriter
	diag        chem.Diagnostics

	exec *chem.Executor
}

type clientState struct {
	Out chan []byte
}

func New(cfg Config, tune tuning.Tuning) (*World, error) {
	if cfg.TickRateHz <= 0 {
		cfg.TickRateHz = tune.TickRateHz
	}
	if cfg.TickRateHz <= 0 {
		return nil, fmt.Errorf("tick rate must be positive")
	}
	if err := tune.Validate(); err != nil {
		return nil, err
	}

	w := &World{
		cfg:         cfg,
		tune:        tune,
		actors:      map[string]*Actor{},
		fixtures:    map[string]*Entity{},
		clients:     map[string]*clientState{},
		byContainer: map[*chem.Container]*Entity{},
		inbox:       make(chan ActionEnvelope, 1024),
		join:        make(chan JoinRequest, 64),
		leave:       make(chan string, 64),
		stop:        make(chan struct{}),
		diag:        chem.NopDiagnostics{},
	}
	w.exec = chem.NewExecutor(w, chem.NopDiagnostics{})

	for _, p := range tune.Placements {
		if err := w.placeFixture(p); err != nil {
			return nil, err
		}
	}
	return w, nil
}

func (w *World) SetAuditLogger(l AuditLogger) { w.auditLogger = l }
func (w *World) SetHistory(h HistoryWriter)   { w.history = h }

// SetDiagnostics installs the sink for engine-internal conditions.
// Must be called before Run.
func (w *World) SetDiagnostics(d chem.Diagnostics) {
	if d == nil {
		d = chem.NopDiagnostics{}
	}
	w.diag = d
	w.exec = chem.NewExecutor(w, d)
}

func (w *World) Inbox() chan<- ActionEnvelope { return w.inbox }
func (w *World) Join() chan<- JoinRequest     { return w.join }
func (w *World) Leave() chan<- string         { return w.leave }

func (w *World) CurrentTick() uint64 { return w.tick.Load() }

func (w *World) Run(ctx context.Context) error {
	interval := time.Second / time.Duration(w.cfg.TickRateHz)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var pendingActions []ActionEnvelope
	var pendingJoins []JoinRequest
	var pendingLeaves []string

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.stop:
			return nil
		case req := <-w.join:
			pendingJoins = append(pendingJoins, req)
		case id := <-w.leave:
			pendingLeaves = append(pendingLeaves, id)
		case env := <-w.inbox:
			pendingActions = append(pendingActions, env)
		case <-ticker.C:
			w.step(pendingJoins, pendingLeaves, pendingActions)
			pendingJoins = pendingJoins[:0]
			pendingLeaves = pendingLeaves[:0]
			pendingActions = pendingActions[:0]
		}
	}
}

func (w *World) Stop() { close(w.stop) }

func (w *World) step(joins []JoinRequest, leaves []string, actions []ActionEnvelope) {
	nowTick := w.tick.Add(1)

	for _, req := range joins {
		w.handleJoin(req)
	}
	for _, id := range leaves {
		delete(w.clients, id)
	}
	for _, env := range actions {
		a := w.actors[env.ActorID]
		if a == nil {
			continue
		}
		w.applyAct(a, env.Act, nowTick)
	}

	w.flushEvents(nowTick)
}

func (w *World) handleJoin(req JoinRequest) {
	resp := JoinResponse{}
	defer func() {
		if req.Resp == nil {
			return
		}
		select {
		case req.Resp <- resp:
		default:
		}
	}()

	archetype := req.Vessel
	if archetype == "" {
		archetype = w.tune.ActorVessel
	}
	def, ok := w.tune.Vessel(archetype)
	if !ok {
		resp.Err = fmt.Sprintf("unknown vessel archetype %q", archetype)
		return
	}

	name := req.Name
	if name == "" {
		name = "actor"
	}
	idNum := w.nextActorNum.Add(1)
	actorID := fmt.Sprintf("A%d", idNum)

	vessel, err := w.buildContainer(def, nil)
	if err != nil {
		resp.Err = err.Error()
		return
	}

	a := &Actor{
		Entity: Entity{
			ID:         actorID,
			Name:       name,
			Archetype:  def.ID,
			VesselName: fmt.Sprintf("%s's %s", name, strings.ToLower(def.ID)),
			Vessel:     vessel,
			Drenchable: true,
			Drenched:   chem.EmptyMix(),
		},
	}
	w.actors[actorID] = a
	w.byContainer[vessel] = &a.Entity
	if req.Out != nil {
		w.clients[actorID] = &clientState{Out: req.Out}
	}

	resp.Welcome = protocol.WelcomeMsg{
		Type:            protocol.TypeWelcome,
		ProtocolVersion: protocol.Version,
		ActorID:         actorID,
		WorldParams: protocol.WorldParams{
			TickRateHz: w.cfg.TickRateHz,
			MinAmount:  w.tune.Transfer.MinAmount,
			MaxAmount:  w.tune.Transfer.MaxAmount,
		},
		Vessel: w.vesselObs(&a.Entity),
	}
}

func (w *World) placeFixture(p tuning.PlacementDef) error {
	def, _ := w.tune.Vessel(p.Vessel)
	vessel, err := w.buildContainer(def, p.Contents)
	if err != nil {
		return fmt.Errorf("placement %q: %w", p.Name, err)
	}
	idNum := w.nextVesselNum.Add(1)
	e := &Entity{
		ID:         fmt.Sprintf("V%d", idNum),
		Name:       p.Name,
		Archetype:  def.ID,
		VesselName: "the " + p.Name,
		Vessel:     vessel,
		Drenched:   chem.EmptyMix(),
	}
	for _, t := range p.Traits {
		if e.Traits == nil {
			e.Traits = map[chem.TraitID]bool{}
		}
		e.Traits[chem.TraitID(t)] = true
	}
	w.fixtures[e.ID] = e
	w.byContainer[vessel] = e
	return nil
}

func (w *World) buildContainer(def tuning.VesselDef, contents map[string]float64) (*chem.Container, error) {
	policy, err := chem.ParsePolicy(def.Policy)
	if err != nil {
		return nil, fmt.Errorf("vessel %s: %w", def.ID, err)
	}
	presets := def.Presets
	if presets == nil {
		presets = w.tune.Transfer.DefaultPresets
	}
	cfg := chem.ContainerConfig{
		Policy:   policy,
		Capacity: def.Capacity,
		Amount:   def.Amount,
		Presets:  presets,
		Bounds: chem.AmountBounds{
			Min: w.tune.Transfer.MinAmount,
			Max: w.tune.Transfer.MaxAmount,
		},
	}
	for _, s := range def.Whitelist {
		cfg.Whitelist = append(cfg.Whitelist, chem.SubstanceID(s))
	}
	for _, t := range def.RequiredTraits {
		cfg.RequiredTraits = append(cfg.RequiredTraits, chem.TraitID(t))
	}
	if len(contents) > 0 {
		cfg.Contents = map[chem.SubstanceID]float64{}
		for s, q := range contents {
			cfg.Contents[chem.SubstanceID(s)] = q
		}
	}
	c, err := chem.NewContainer(cfg)
	if err != nil {
		return nil, fmt.Errorf("vessel %s: %w", def.ID, err)
	}
	return c, nil
}

// entityByID resolves either a fixture or an actor's entity.
func (w *World) entityByID(id string) *Entity {
	if e := w.fixtures[id]; e != nil {
		return e
	}
	if a := w.actors[id]; a != nil {
		return &a.Entity
	}
	return nil
}

// ContainerName implements chem.Namer over world entities.
func (w *World) ContainerName(c *chem.Container) string {
	if e := w.byContainer[c]; e != nil {
		return e.VesselName
	}
	return "the container"
}
