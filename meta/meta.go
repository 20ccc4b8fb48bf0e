// meta/meta.go
package meta

// ROUNDS defines the number of rounds in a standard game.
const ROUNDS = 10

// MIN_PLAYERS and MAX_PLAYERS bound the seating.
const MIN_PLAYERS = 2
const MAX_PLAYERS = 6

// TOTAL_LEADERS defines the leader tokens each player owns (one always sits on the ring).
const TOTAL_LEADERS = 7

// MIN_FREE_LEADERS defines how many unlocked leaders cleanup must leave each player.
const MIN_FREE_LEADERS = 2

// MAX_BUILD_SLOTS defines the board capacity for settled cards.
const MAX_BUILD_SLOTS = 20

// EXTRA_POLICY_SLOTS defines how many more policy cards than players sit on the ring.
const EXTRA_POLICY_SLOTS = 5

// MAX_STEPS defines the harness step budget for one game.
const MAX_STEPS = 20000
