package effect

// ID identifies an effect kind. Values are shared with designer tables and
// must never be renumbered.
type ID int32

// StatType identifies a stat that multiplier and additive sources modify.
type StatType int32

// ConditionType identifies a crowd-control condition queried by strength.
type ConditionType int32

const (
	IDAttackMultiplier ID = 3001
	IDDefenseBonus     ID = 3002
	IDAccuracyBlind    ID = 3005
	IDPoison           ID = 3008
	IDStun             ID = 3011
	IDConfuse          ID = 3013
	IDKnockback        ID = 3014
)

const (
	StatAttack   StatType = 3001
	StatDefense  StatType = 3002
	StatAccuracy StatType = 3005
)

const (
	ConditionStun      ConditionType = 3011
	ConditionConfuse   ConditionType = 3013
	ConditionKnockback ConditionType = 3014
)
