package game

// Shared money rules.
const (
	StartingMoney = 1500
	PassGoReward  = 200
	BailAmount    = 50

	jailReleaseTurnCount = 3

	// Base rent is cost*2/10; an owner holding the whole color group
	// charges the full cost instead.
	rentMultiplier = 2
	rentDivisor    = 10
)

// Chance effect parameters.
const (
	chanceEffectCount    = 6
	chanceForwardSteps   = 3
	chanceCreditAmount   = 100
	chanceDebitAmount    = 100
	chanceTransferAmount = 50
)

const (
	chanceEffectForward = iota
	chanceEffectCredit
	chanceEffectDebit
	chanceEffectLandmark
	chanceEffectCollect
	chanceEffectPayout
)
