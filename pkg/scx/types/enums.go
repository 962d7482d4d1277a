package types

import (
	"fmt"

	scxerrors "github.com/provide-io/genie/go/genie/pkg/scx/errors"
)

// ParseDiplomaticStanceError reports an unknown stance ID.
type ParseDiplomaticStanceError struct {
	Value int32
}

func (e *ParseDiplomaticStanceError) Error() string {
	return fmt.Sprintf("invalid diplomatic stance %d (must be 0/1/3)", e.Value)
}

// Is matches ErrUnrecognizedValue.
func (e *ParseDiplomaticStanceError) Is(target error) bool {
	return target == scxerrors.ErrUnrecognizedValue
}

// DiplomaticStance is one player's stance toward another.
type DiplomaticStance int32

const (
	StanceAlly    DiplomaticStance = 0
	StanceNeutral DiplomaticStance = 1
	StanceEnemy   DiplomaticStance = 3
)

// ParseDiplomaticStance decodes a wire stance.
func ParseDiplomaticStance(n int32) (DiplomaticStance, error) {
	switch n {
	case 0, 1, 3:
		return DiplomaticStance(n), nil
	}
	return 0, &ParseDiplomaticStanceError{Value: n}
}

// Int32 encodes the stance.
func (s DiplomaticStance) Int32() int32 {
	return int32(s)
}

func (s DiplomaticStance) String() string {
	switch s {
	case StanceAlly:
		return "ally"
	case StanceNeutral:
		return "neutral"
	case StanceEnemy:
		return "enemy"
	}
	return fmt.Sprintf("stance(%d)", int32(s))
}

// ParseDataSetError reports an unknown data set ID.
type ParseDataSetError struct {
	Value int32
}

func (e *ParseDataSetError) Error() string {
	return fmt.Sprintf("invalid data set %d (must be 0/1)", e.Value)
}

// Is matches ErrUnrecognizedValue.
func (e *ParseDataSetError) Is(target error) bool {
	return target == scxerrors.ErrUnrecognizedValue
}

// DataSet selects the HD Edition base data.
type DataSet int32

const (
	DataSetBaseGame   DataSet = 0
	DataSetExpansions DataSet = 1
)

// ParseDataSet decodes a wire data set.
func ParseDataSet(n int32) (DataSet, error) {
	switch n {
	case 0, 1:
		return DataSet(n), nil
	}
	return 0, &ParseDataSetError{Value: n}
}

// Int32 encodes the data set.
func (d DataSet) Int32() int32 {
	return int32(d)
}

// ParseDLCPackageError reports an unknown DLC ID.
type ParseDLCPackageError struct {
	Value int32
}

func (e *ParseDLCPackageError) Error() string {
	return fmt.Sprintf("unknown dlc package %d", e.Value)
}

// Is matches ErrUnrecognizedValue.
func (e *ParseDLCPackageError) Is(target error) bool {
	return target == scxerrors.ErrUnrecognizedValue
}

// DLCPackage is an HD Edition DLC identifier.
type DLCPackage int32

const (
	DLCAgeOfKings      DLCPackage = 2
	DLCAgeOfConquerors DLCPackage = 3
	DLCTheForgotten    DLCPackage = 4
	DLCAfricanKingdoms DLCPackage = 5
	DLCRiseOfTheRajas  DLCPackage = 6
)

// AllDLCPackages lists every known package in wire order.
var AllDLCPackages = []DLCPackage{
	DLCAgeOfKings,
	DLCAgeOfConquerors,
	DLCTheForgotten,
	DLCAfricanKingdoms,
	DLCRiseOfTheRajas,
}

// ParseDLCPackage decodes a wire DLC ID.
func ParseDLCPackage(n int32) (DLCPackage, error) {
	if n >= int32(DLCAgeOfKings) && n <= int32(DLCRiseOfTheRajas) {
		return DLCPackage(n), nil
	}
	return 0, &ParseDLCPackageError{Value: n}
}

// Int32 encodes the package.
func (d DLCPackage) Int32() int32 {
	return int32(d)
}

func (d DLCPackage) String() string {
	switch d {
	case DLCAgeOfKings:
		return "age_of_kings"
	case DLCAgeOfConquerors:
		return "age_of_conquerors"
	case DLCTheForgotten:
		return "the_forgotten"
	case DLCAfricanKingdoms:
		return "african_kingdoms"
	case DLCRiseOfTheRajas:
		return "rise_of_the_rajas"
	}
	return fmt.Sprintf("dlc(%d)", int32(d))
}

// ParseVictoryConditionError reports an unknown victory condition type.
type ParseVictoryConditionError struct {
	Value int32
}

func (e *ParseVictoryConditionError) Error() string {
	return fmt.Sprintf("invalid victory condition %d (must be 0-11)", e.Value)
}

// Is matches ErrUnrecognizedValue.
func (e *ParseVictoryConditionError) Is(target error) bool {
	return target == scxerrors.ErrUnrecognizedValue
}

// VictoryCondition is the type of a per-player victory entry.
type VictoryCondition int32

const (
	VictoryCapture         VictoryCondition = 0
	VictoryCreate          VictoryCondition = 1
	VictoryDestroy         VictoryCondition = 2
	VictoryDestroyMultiple VictoryCondition = 3
	VictoryBringToArea     VictoryCondition = 4
	VictoryBringToObject   VictoryCondition = 5
	VictoryAttribute       VictoryCondition = 6
	VictoryExplore         VictoryCondition = 7
	VictoryCreateInArea    VictoryCondition = 8
	VictoryDestroyAll      VictoryCondition = 9
	VictoryDestroyPlayer   VictoryCondition = 10
	VictoryPoints          VictoryCondition = 11
)

// ParseVictoryCondition decodes a wire victory condition type.
func ParseVictoryCondition(n int32) (VictoryCondition, error) {
	if n >= int32(VictoryCapture) && n <= int32(VictoryPoints) {
		return VictoryCondition(n), nil
	}
	return 0, &ParseVictoryConditionError{Value: n}
}

// Int32 encodes the victory condition.
func (c VictoryCondition) Int32() int32 {
	return int32(c)
}
