package entity

// tickCooldowns decrements every entry by one and deletes entries that
// reach 0. The map never holds values <= 0; "ready" is absence.
func tickCooldowns(cooldowns map[string]int) {
	for id, turns := range cooldowns {
		turns--
		if turns <= 0 {
			delete(cooldowns, id)
		} else {
			cooldowns[id] = turns
		}
	}
}

// setCooldown writes an entry only when turns > 0.
func setCooldown(cooldowns map[string]int, id string, turns int) {
	if turns > 0 {
		cooldowns[id] = turns
	}
}

// cloneCooldowns copies a cooldown map.
func cloneCooldowns(cooldowns map[string]int) map[string]int {
	out := make(map[string]int, len(cooldowns))
	for id, turns := range cooldowns {
		out[id] = turns
	}
	return out
}
