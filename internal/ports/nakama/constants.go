package nakama

const (
	// RpcQuickMatch is the Nakama RPC id clients call to find or create a lobby-capable match.
	RpcQuickMatch = "quick_match"

	// MatchNameSettlers is the authoritative match handler name registered with Nakama.
	MatchNameSettlers = "settlers_match"

	// MatchLabelKey_OpenSeats is the label key carrying the open seat count.
	MatchLabelKey_OpenSeats = "open"
)

// Op codes for client messages and server events.
const (
	// Client -> Server
	OpStartGame    int64 = 1
	OpSubmitAction int64 = 2

	// Server -> Client events
	OpMatchSnapshot int64 = 101
	OpGameStarted   int64 = 102
	OpActionApplied int64 = 103
	OpBotTurnPlayed int64 = 104
	OpGameEnded     int64 = 105
	OpGameError     int64 = 201
)
