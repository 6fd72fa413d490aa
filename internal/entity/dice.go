package entity

import (
	"math/rand"
	"time"
)

const dieSides = 6

// Die is an independent uniform random-integer generator in 1..6.
type Die struct {
	rng  *rand.Rand
	last int
}

func NewDie(rng *rand.Rand) *Die {
	return &Die{rng: rng}
}

func (that *Die) Roll() int {
	that.last = that.rng.Intn(dieSides) + 1

	return that.last
}

func (that *Die) LastValue() int { return that.last }

// DiceSet aggregates a fixed number of dice. It is stateless between rolls
// except for the last values kept for display.
type DiceSet struct {
	dice       []*Die
	lastValues []int
}

// NewDiceSet - creates count dice sharing rng. A nil rng falls back to a
// time-seeded source.
func NewDiceSet(count int, rng *rand.Rand) *DiceSet {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	dice := make([]*Die, count)
	for i := range dice {
		dice[i] = NewDie(rng)
	}

	return &DiceSet{dice: dice}
}

func (that *DiceSet) Roll() []int {
	values := make([]int, len(that.dice))
	for i, die := range that.dice {
		values[i] = die.Roll()
	}

	that.lastValues = values

	return values
}

func (that *DiceSet) LastValues() []int { return that.lastValues }

func (that *DiceSet) Count() int { return len(that.dice) }

// IsDoubles - reports whether every die in values shows the same face, for
// rolls of at least two dice.
func IsDoubles(values []int) bool {
	if len(values) < 2 {
		return false
	}

	for _, value := range values[1:] {
		if value != values[0] {
			return false
		}
	}

	return true
}

// Sum - totals a roll.
func Sum(values []int) int {
	total := 0
	for _, value := range values {
		total += value
	}

	return total
}
