package game

type Rules interface {
	Rounds() int
	TotalLeaders() int
	MinFreeLeaders() int
	MaxBuildSlots() int
	PolicySlots(numPlayers int) int
	EraOfRound(round int) Era
	// BoardRoundEffects reports whether this-round effects printed on face-up
	// built cards apply at the end of the policy phase alongside the policy card.
	BoardRoundEffects() bool
}
