package combat

// Result is how a battle ended.
type Result int

const (
	ResultUndecided Result = iota
	ResultHeroesWin
	ResultMonstersWin
	// ResultDraw only occurs when both rosters are empty at setup; the
	// per-move termination check rules out simultaneous elimination.
	ResultDraw
	// ResultTurnLimit means the max-turn safeguard stopped the battle.
	ResultTurnLimit
)

// String returns a human-readable result label.
func (r Result) String() string {
	switch r {
	case ResultHeroesWin:
		return "heroes win"
	case ResultMonstersWin:
		return "monsters win"
	case ResultDraw:
		return "draw"
	case ResultTurnLimit:
		return "turn limit reached"
	default:
		return "undecided"
	}
}

// MarshalYAML renders the result as its label.
func (r Result) MarshalYAML() (interface{}, error) { return r.String(), nil }

// MarshalYAML renders the side as its label.
func (s Side) MarshalYAML() (interface{}, error) { return s.String(), nil }

// Outcome summarises a resolved battle.
type Outcome struct {
	Result Result `yaml:"result"`
	// Winner is SideNone for draws and turn-limit stops.
	Winner   Side       `yaml:"winner"`
	Turns    int        `yaml:"turns"`
	Rounds   int        `yaml:"rounds"`
	Heroes   []Snapshot `yaml:"heroes"`
	Monsters []Snapshot `yaml:"monsters"`
}

// Snapshot is a read-only copy of one combatant's final state.
type Snapshot struct {
	ID              string  `yaml:"id"`
	Name            string  `yaml:"name"`
	Role            string  `yaml:"role"`
	HP              float64 `yaml:"hp"`
	Power           float64 `yaml:"power"`
	Alive           bool    `yaml:"alive"`
	MagicPower      float64 `yaml:"magic_power,omitempty"`
	Defense         float64 `yaml:"defense,omitempty"`
	Shield          string  `yaml:"shield,omitempty"`
	PowerMultiplier float64 `yaml:"power_multiplier,omitempty"`
	Enraged         bool    `yaml:"enraged,omitempty"`
}

// TakeSnapshot copies c's observable state, including role-specific fields.
func TakeSnapshot(c Combatant) Snapshot {
	s := Snapshot{
		ID:    c.ID(),
		Name:  c.Name(),
		Role:  c.Role().String(),
		HP:    c.HP(),
		Power: c.Power(),
		Alive: c.IsAlive(),
	}
	switch v := c.(type) {
	case *Healer:
		s.MagicPower = v.MagicPower()
	case *Tank:
		s.Defense = v.Defense()
		s.Shield = v.Shield().String()
	case *Attacker:
		s.PowerMultiplier = v.PowerMultiplier()
	case *Monster:
		s.Enraged = v.Enraged()
	}
	return s
}

func snapshots(cs []Combatant) []Snapshot {
	out := make([]Snapshot, 0, len(cs))
	for _, c := range cs {
		out = append(out, TakeSnapshot(c))
	}
	return out
}
