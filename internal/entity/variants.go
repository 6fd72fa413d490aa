package entity

import (
	"fmt"

	"github.com/rocketscienceinc/boardgame-backend/internal/apperror"
)

// Variant identifies one of the predefined board configurations.
type Variant string

const (
	VariantRaceClassic     Variant = "race-classic"
	VariantRaceLucky       Variant = "race-lucky"
	VariantRaceBrutal      Variant = "race-brutal"
	VariantPropertyClassic Variant = "property-classic"
)

func (that Variant) IsRace() bool {
	return that == VariantRaceClassic || that == VariantRaceLucky || that == VariantRaceBrutal
}

func (that Variant) IsProperty() bool {
	return that == VariantPropertyClassic
}

func (that Variant) IsValid() bool {
	return that.IsRace() || that.IsProperty()
}

// DiceCount - the race variants roll a single die, the property variant two.
func (that Variant) DiceCount() int {
	if that.IsProperty() {
		return 2
	}

	return 1
}

// BuildBoard - constructs the fixed topology and action set for a variant.
// The chain topology is never persisted; loads rebuild it through here.
func BuildBoard(variant Variant) (*Board, error) {
	switch variant {
	case VariantRaceClassic:
		return newRaceBoard(variant, "Classic Race", raceClassicLayout)
	case VariantRaceLucky:
		return newRaceBoard(variant, "Lucky Race", raceLuckyLayout)
	case VariantRaceBrutal:
		return newRaceBoard(variant, "Brutal Race", raceBrutalLayout)
	case VariantPropertyClassic:
		return newPropertyBoard(variant)
	default:
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownVariant, variant)
	}
}
