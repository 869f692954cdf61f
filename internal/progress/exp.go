package progress

// levelUpBound caps the level-up loop so a misconfigured EXP curve can
// never spin a grant forever.
const levelUpBound = 100

// GrantExp adds EXP to the record and applies level-ups: each level grants
// one unspent stat point, and levels listed in the balance file's reward
// table record a pending spell choice. Returns the number of levels gained.
func GrantExp(rec *Record, curve ExpCurve, amount int) int {
	if amount <= 0 {
		return 0
	}
	rec.Exp += amount

	levels := 0
	for i := 0; i < levelUpBound; i++ {
		need := curve.ExpToNext(rec.Level)
		if rec.Exp < need {
			break
		}
		rec.Exp -= need
		rec.Level++
		rec.UnspentPoints++
		levels++
		if options := curve.RewardsAt(rec.Level); len(options) > 0 {
			rec.PendingSpells = append(rec.PendingSpells, SpellChoice{
				Level:   rec.Level,
				Options: append([]string(nil), options...),
			})
		}
	}
	return levels
}

// ExpCurve abstracts the EXP requirements and level rewards so grants can
// be tested without a full balance file. *gamedata.Balance satisfies it.
type ExpCurve interface {
	ExpToNext(level int) int
	RewardsAt(level int) []string
}
