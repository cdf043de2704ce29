package combat

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/looplab/fsm"
	"go.uber.org/zap"
)

// DefaultMaxTurns caps a battle at this many individual combatant turns when
// no WithMaxTurns option is given.
const DefaultMaxTurns = 1000

// Battle phases.
const (
	PhaseSetup     = "setup"
	PhaseTurnCycle = "turn_cycle"
	PhaseResolved  = "resolved"
)

const (
	eventStart   = "start"
	eventResolve = "resolve"
)

// ErrBattleResolved is returned by Step once the battle has reached its outcome.
var ErrBattleResolved = errors.New("battle already resolved")

// BattleOption configures a Battle.
type BattleOption func(*Battle)

// WithMaxTurns sets the max-turn safeguard. Values <= 0 select DefaultMaxTurns.
func WithMaxTurns(n int) BattleOption {
	return func(b *Battle) {
		if n > 0 {
			b.maxTurns = n
		}
	}
}

// WithLogger sets the logger used for move and resolution logging.
func WithLogger(logger *zap.Logger) BattleOption {
	return func(b *Battle) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithMoveHook registers fn to be called after every move. Hooks run in
// registration order.
func WithMoveHook(fn func(Move)) BattleOption {
	return func(b *Battle) {
		if fn != nil {
			b.hooks = append(b.hooks, fn)
		}
	}
}

type slot struct {
	side Side
	c    Combatant
}

// Battle drives one heroes-versus-monsters fight through the phases
// setup → turn_cycle → resolved.
//
// A Battle is single-threaded; it must not be stepped concurrently.
type Battle struct {
	// ID identifies the battle in logs.
	ID string

	heroes   []Combatant
	monsters []Combatant
	order    []slot
	pos      int

	maxTurns int
	logger   *zap.Logger
	hooks    []func(Move)

	phase   *fsm.FSM
	turns   int
	rounds  int
	outcome Outcome
}

// NewBattle sets up a battle between the given rosters. Roster order is turn order.
//
// Precondition: every hero must belong to SideHeroes and every monster to
// SideMonsters; no entry may be nil.
// Postcondition: Returns a Battle in PhaseSetup, or an error describing the
// first invalid roster entry.
func NewBattle(heroes, monsters []Combatant, opts ...BattleOption) (*Battle, error) {
	if err := checkRoster(heroes, SideHeroes); err != nil {
		return nil, err
	}
	if err := checkRoster(monsters, SideMonsters); err != nil {
		return nil, err
	}

	b := &Battle{
		ID:       uuid.New().String(),
		heroes:   append([]Combatant(nil), heroes...),
		monsters: append([]Combatant(nil), monsters...),
		maxTurns: DefaultMaxTurns,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	for _, h := range b.heroes {
		b.order = append(b.order, slot{side: SideHeroes, c: h})
	}
	for _, m := range b.monsters {
		b.order = append(b.order, slot{side: SideMonsters, c: m})
	}

	b.phase = fsm.NewFSM(
		PhaseSetup,
		fsm.Events{
			{Name: eventStart, Src: []string{PhaseSetup}, Dst: PhaseTurnCycle},
			{Name: eventResolve, Src: []string{PhaseSetup, PhaseTurnCycle}, Dst: PhaseResolved},
		},
		fsm.Callbacks{
			"enter_" + PhaseTurnCycle: func(_ context.Context, _ *fsm.Event) {
				b.logger.Debug("battle started",
					zap.String("battle", b.ID),
					zap.Int("heroes", len(b.heroes)),
					zap.Int("monsters", len(b.monsters)),
					zap.Int("max_turns", b.maxTurns),
				)
			},
			"enter_" + PhaseResolved: func(_ context.Context, _ *fsm.Event) {
				b.logger.Info("battle resolved",
					zap.String("battle", b.ID),
					zap.String("result", b.outcome.Result.String()),
					zap.String("winner", b.outcome.Winner.String()),
					zap.Int("turns", b.outcome.Turns),
					zap.Int("rounds", b.outcome.Rounds),
				)
			},
		},
	)
	return b, nil
}

func checkRoster(cs []Combatant, side Side) error {
	for i, c := range cs {
		if c == nil {
			return fmt.Errorf("%s roster entry %d is nil", side, i)
		}
		if c.Side() != side {
			return fmt.Errorf("%s roster entry %d (%s) is a %s combatant", side, i, c.Name(), c.Side())
		}
	}
	return nil
}

// Phase returns the current phase name.
func (b *Battle) Phase() string { return b.phase.Current() }

// Resolved reports whether the battle has reached its terminal phase.
func (b *Battle) Resolved() bool { return b.phase.Is(PhaseResolved) }

// Turns returns the number of combatant turns taken so far.
func (b *Battle) Turns() int { return b.turns }

// Rounds returns the number of turn cycles begun so far.
func (b *Battle) Rounds() int { return b.rounds }

// Heroes returns the hero roster in turn order.
func (b *Battle) Heroes() []Combatant { return append([]Combatant(nil), b.heroes...) }

// Monsters returns the monster roster in turn order.
func (b *Battle) Monsters() []Combatant { return append([]Combatant(nil), b.monsters...) }

// Outcome returns the final outcome. Before resolution it returns a live
// ResultUndecided snapshot of the rosters.
func (b *Battle) Outcome() Outcome {
	if b.Resolved() {
		return b.outcome
	}
	return Outcome{
		Result:   ResultUndecided,
		Turns:    b.turns,
		Rounds:   b.rounds,
		Heroes:   snapshots(b.heroes),
		Monsters: snapshots(b.monsters),
	}
}

// Step plays the next living combatant's turn.
//
// Postcondition: Returns the move taken, or ErrBattleResolved if the battle
// is (or became, at start) resolved. Termination is checked after every move.
func (b *Battle) Step() (Move, error) {
	if b.phase.Is(PhaseSetup) {
		b.fire(eventStart)
		if b.settleIfOver() {
			return Move{}, ErrBattleResolved
		}
	}
	if b.Resolved() {
		return Move{}, ErrBattleResolved
	}

	actor, side := b.nextActor()
	if actor == nil {
		// Unreachable while settleIfOver guarantees a living combatant per side.
		panic("combat: turn cycle has no living combatant")
	}

	allies := Living(b.roster(side))
	enemies := Living(b.roster(side.Opponent()))
	mv := actor.DecideMove(allies, enemies)
	b.turns++
	b.mustHoldInvariants()

	b.logger.Debug("move",
		zap.String("battle", b.ID),
		zap.Int("turn", b.turns),
		zap.Int("round", b.rounds),
		zap.String("actor", mv.ActorName),
		zap.String("action", mv.Action.String()),
		zap.String("target", mv.TargetName),
		zap.Float64("amount", mv.Amount),
		zap.Float64("effective", mv.Effective),
	)
	for _, hook := range b.hooks {
		hook(mv)
	}

	if !b.settleIfOver() && b.turns >= b.maxTurns {
		b.resolve(ResultTurnLimit)
	}
	return mv, nil
}

// Run steps the battle until it resolves and returns the outcome.
func (b *Battle) Run() Outcome {
	for {
		if _, err := b.Step(); errors.Is(err, ErrBattleResolved) {
			return b.outcome
		}
	}
}

// RunBattle sets up and runs a battle to completion.
//
// Postcondition: Returns the resolved Outcome, or an error if the rosters are invalid.
func RunBattle(heroes, monsters []Combatant, opts ...BattleOption) (Outcome, error) {
	b, err := NewBattle(heroes, monsters, opts...)
	if err != nil {
		return Outcome{}, err
	}
	return b.Run(), nil
}

func (b *Battle) roster(side Side) []Combatant {
	if side == SideHeroes {
		return b.heroes
	}
	return b.monsters
}

// nextActor advances the cursor to the next living combatant, counting a new
// round each time the cursor passes the start of the order.
func (b *Battle) nextActor() (Combatant, Side) {
	for range b.order {
		if b.pos == 0 {
			b.rounds++
		}
		s := b.order[b.pos]
		b.pos = (b.pos + 1) % len(b.order)
		if s.c.IsAlive() {
			return s.c, s.side
		}
	}
	return nil, SideNone
}

// settleIfOver resolves the battle when a roster has no living members.
func (b *Battle) settleIfOver() bool {
	heroesUp := len(Living(b.heroes)) > 0
	monstersUp := len(Living(b.monsters)) > 0
	switch {
	case heroesUp && monstersUp:
		return false
	case !heroesUp && !monstersUp:
		b.resolve(ResultDraw)
	case heroesUp:
		b.resolve(ResultHeroesWin)
	default:
		b.resolve(ResultMonstersWin)
	}
	return true
}

func (b *Battle) resolve(r Result) {
	winner := SideNone
	switch r {
	case ResultHeroesWin:
		winner = SideHeroes
	case ResultMonstersWin:
		winner = SideMonsters
	}
	b.outcome = Outcome{
		Result:   r,
		Winner:   winner,
		Turns:    b.turns,
		Rounds:   b.rounds,
		Heroes:   snapshots(b.heroes),
		Monsters: snapshots(b.monsters),
	}
	b.fire(eventResolve)
}

// fire triggers a phase transition. An invalid transition is an engine bug.
func (b *Battle) fire(event string) {
	if err := b.phase.Event(context.Background(), event); err != nil {
		panic(fmt.Sprintf("combat: phase transition %q from %q failed: %v", event, b.phase.Current(), err))
	}
}

func (b *Battle) mustHoldInvariants() {
	for _, s := range b.order {
		hp := s.c.HP()
		if hp < 0 || s.c.IsAlive() != (hp > 0) {
			panic(fmt.Sprintf("combat: invariant violated after turn %d: %s hp=%v alive=%t",
				b.turns, s.c.Name(), hp, s.c.IsAlive()))
		}
	}
}
