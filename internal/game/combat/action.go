package combat

import "fmt"

// ActionType identifies what a combatant did on its turn.
// The zero value (ActionUnknown) is intentionally invalid.
type ActionType int

const (
	ActionUnknown     ActionType = iota // zero value; intentionally invalid
	ActionPass                          // no state change
	ActionAttack                        // plain attack
	ActionHeal                          // healer restores an ally
	ActionRaiseShield                   // tank braces; may be a no-op when already raised
	ActionShieldStrike                  // tank lowers shield, then attacks
	ActionChargedAttack                 // attacker powers up, then attacks
)

// String returns the human-readable name of the ActionType.
func (a ActionType) String() string {
	switch a {
	case ActionPass:
		return "pass"
	case ActionAttack:
		return "attack"
	case ActionHeal:
		return "heal"
	case ActionRaiseShield:
		return "raise shield"
	case ActionShieldStrike:
		return "shield strike"
	case ActionChargedAttack:
		return "charged attack"
	default:
		return "unknown"
	}
}

// Move records what one combatant did during its turn.
type Move struct {
	Action     ActionType
	ActorID    string
	ActorName  string
	TargetID   string // empty for pass
	TargetName string
	// Amount is the damage sent or hp healed; zero for pass and shield moves.
	Amount float64
	// Effective is the hp the target actually lost or gained.
	Effective float64
	// TargetDown is true when the move left the target dead.
	TargetDown bool
}

// Narrative renders the move as a single English sentence.
func (m Move) Narrative() string {
	switch m.Action {
	case ActionPass:
		return fmt.Sprintf("%s holds position.", m.ActorName)
	case ActionHeal:
		return fmt.Sprintf("%s heals %s for %s.", m.ActorName, m.TargetName, formatAmount(m.Effective))
	case ActionRaiseShield:
		return fmt.Sprintf("%s raises a shield against %s.", m.ActorName, m.TargetName)
	case ActionAttack, ActionShieldStrike, ActionChargedAttack:
		s := fmt.Sprintf("%s uses %s on %s for %s damage.", m.ActorName, m.Action, m.TargetName, formatAmount(m.Effective))
		if m.TargetDown {
			s += fmt.Sprintf(" %s falls.", m.TargetName)
		}
		return s
	default:
		return fmt.Sprintf("%s does nothing recognisable.", m.ActorName)
	}
}

func passMove(actor Combatant) Move {
	return Move{Action: ActionPass, ActorID: actor.ID(), ActorName: actor.Name()}
}

// strike runs actor.Attack against target and records the outcome as a Move.
func strike(action ActionType, actor, target Combatant) Move {
	before := target.HP()
	sent := actor.Attack(target)
	return Move{
		Action:     action,
		ActorID:    actor.ID(),
		ActorName:  actor.Name(),
		TargetID:   target.ID(),
		TargetName: target.Name(),
		Amount:     sent,
		Effective:  before - target.HP(),
		TargetDown: !target.IsAlive(),
	}
}
