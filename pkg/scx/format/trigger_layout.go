package format

// EffectField names one integer slot of a trigger effect.
type EffectField uint8

const (
	EffectAIGoal EffectField = iota
	EffectAmount
	EffectResource
	EffectDiplomacy
	EffectNumSelected
	EffectLocationObject
	EffectUnitType
	EffectPlayerSource
	EffectPlayerTarget
	EffectTechnology
	EffectStringID
	EffectSoundID
	EffectDisplayTime
	EffectTriggerIndex
	EffectLocationX
	EffectLocationY
	EffectAreaX1
	EffectAreaY1
	EffectAreaX2
	EffectAreaY2
	EffectUnitGroup
	EffectUnitClass
	EffectInstructionPanel
	EffectUnitType2
	EffectTerrain
)

// ConditionField names one integer slot of a trigger condition.
type ConditionField uint8

const (
	ConditionAmount ConditionField = iota
	ConditionResource
	ConditionUnitObject
	ConditionNextObject
	ConditionUnitType
	ConditionPlayer
	ConditionTechnology
	ConditionTimer
	ConditionUnknown
	ConditionAreaX1
	ConditionAreaY1
	ConditionAreaX2
	ConditionAreaY2
	ConditionUnitGroup
	ConditionUnitClass
	ConditionAISignal
	ConditionTerrain
	ConditionInverted
)

// FieldKind classifies what ID space a slot refers to.
type FieldKind uint8

const (
	KindPlain FieldKind = iota
	KindUnitType
	KindTerrain
)

// Trigger system versions where the layouts change.
const (
	triggersAoK        = 1.0
	triggersOrder      = 1.4
	triggersObjectives = 1.5
	triggersNameID     = 1.8
	triggersExtended   = 2.0
)

var (
	effectLayoutLegacy = []EffectField{
		EffectAIGoal, EffectAmount, EffectResource, EffectDiplomacy,
		EffectNumSelected, EffectLocationObject, EffectUnitType, EffectPlayerSource,
		EffectPlayerTarget, EffectTechnology, EffectStringID, EffectSoundID,
		EffectDisplayTime, EffectTriggerIndex, EffectLocationX, EffectLocationY,
	}
	effectLayoutAoK = append(append([]EffectField{}, effectLayoutLegacy...),
		EffectAreaX1, EffectAreaY1, EffectAreaX2, EffectAreaY2,
		EffectUnitGroup, EffectUnitClass, EffectInstructionPanel,
	)
	effectLayoutExtended = []EffectField{
		EffectAIGoal, EffectAmount, EffectResource, EffectDiplomacy,
		EffectNumSelected, EffectLocationObject, EffectUnitType, EffectUnitType2,
		EffectTerrain, EffectPlayerSource, EffectPlayerTarget, EffectTechnology,
		EffectStringID, EffectSoundID, EffectDisplayTime, EffectTriggerIndex,
		EffectLocationX, EffectLocationY, EffectAreaX1, EffectAreaY1,
		EffectAreaX2, EffectAreaY2, EffectUnitGroup, EffectUnitClass,
		EffectInstructionPanel,
	}

	conditionLayoutLegacy = []ConditionField{
		ConditionAmount, ConditionResource, ConditionUnitObject, ConditionNextObject,
		ConditionUnitType, ConditionPlayer, ConditionTechnology, ConditionTimer,
		ConditionUnknown, ConditionAreaX1, ConditionAreaY1, ConditionAreaX2,
		ConditionAreaY2,
	}
	conditionLayoutAoK = append(append([]ConditionField{}, conditionLayoutLegacy...),
		ConditionUnitGroup, ConditionUnitClass, ConditionAISignal,
	)
	conditionLayoutExtended = []ConditionField{
		ConditionAmount, ConditionResource, ConditionUnitObject, ConditionNextObject,
		ConditionUnitType, ConditionTerrain, ConditionPlayer, ConditionTechnology,
		ConditionTimer, ConditionUnknown, ConditionAreaX1, ConditionAreaY1,
		ConditionAreaX2, ConditionAreaY2, ConditionUnitGroup, ConditionUnitClass,
		ConditionAISignal, ConditionInverted,
	}
)

// EffectLayout returns the slot order of effect fields for a trigger system version.
func EffectLayout(version float64) []EffectField {
	switch {
	case version >= triggersExtended:
		return effectLayoutExtended
	case version >= triggersAoK:
		return effectLayoutAoK
	default:
		return effectLayoutLegacy
	}
}

// ConditionLayout returns the slot order of condition fields for a trigger system version.
func ConditionLayout(version float64) []ConditionField {
	switch {
	case version >= triggersExtended:
		return conditionLayoutExtended
	case version >= triggersAoK:
		return conditionLayoutAoK
	default:
		return conditionLayoutLegacy
	}
}

// Kind reports which ID space the effect slot refers to.
func (f EffectField) Kind() FieldKind {
	switch f {
	case EffectUnitType, EffectUnitType2:
		return KindUnitType
	case EffectTerrain:
		return KindTerrain
	}
	return KindPlain
}

// Kind reports which ID space the condition slot refers to.
func (f ConditionField) Kind() FieldKind {
	switch f {
	case ConditionUnitType:
		return KindUnitType
	case ConditionTerrain:
		return KindTerrain
	}
	return KindPlain
}

func indexOf[F comparable](layout []F, f F) int {
	for i, candidate := range layout {
		if candidate == f {
			return i
		}
	}
	return -1
}

// reslot moves named slots from one layout to another. Slots the target
// layout has but the source lacks are set to -1.
func reslot[F comparable](fields []int32, from, to []F) []int32 {
	out := make([]int32, len(to))
	for i, f := range to {
		out[i] = -1
		if j := indexOf(from, f); j >= 0 && j < len(fields) {
			out[i] = fields[j]
		}
	}
	return out
}
