package combat

// lowestHP returns the first combatant holding the minimum hp, scanning left
// to right, or nil for an empty slice.
func lowestHP(cs []Combatant) Combatant {
	var best Combatant
	for _, c := range cs {
		if best == nil || c.HP() < best.HP() {
			best = c
		}
	}
	return best
}

// highestHP returns the first combatant holding the maximum hp, or nil.
func highestHP(cs []Combatant) Combatant {
	var best Combatant
	for _, c := range cs {
		if best == nil || c.HP() > best.HP() {
			best = c
		}
	}
	return best
}

// firstOfVariant returns the first combatant whose variant is one of vs, or nil.
func firstOfVariant(cs []Combatant, vs ...Variant) Combatant {
	for _, c := range cs {
		for _, v := range vs {
			if c.Variant() == v {
				return c
			}
		}
	}
	return nil
}

// Living returns the combatants in cs that are still alive, preserving order.
//
// Postcondition: every returned combatant reports IsAlive() == true.
func Living(cs []Combatant) []Combatant {
	var alive []Combatant
	for _, c := range cs {
		if c.IsAlive() {
			alive = append(alive, c)
		}
	}
	return alive
}
