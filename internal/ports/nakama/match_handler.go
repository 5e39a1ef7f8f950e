package nakama

import (
	"context"
	"database/sql"
	"encoding/json"
	"math/rand"
	"strconv"
	"time"

	"github.com/heroiclabs/nakama-common/runtime"

	"settlers/internal/bot"
	"settlers/internal/config"
	"settlers/internal/domain"
	"settlers/internal/ports"
)

// EngineFactory builds the authoritative rules engine for one match. The
// embedding server supplies it before any match is created; this module
// hosts the bots, the engine owns the rules.
type EngineFactory func(ctx context.Context, matchID string, playerIDs []string) (ports.GameEngine, error)

var engineFactory EngineFactory

// SetEngineFactory installs the per-match engine constructor.
func SetEngineFactory(f EngineFactory) {
	engineFactory = f
}

// MatchState holds the authoritative runtime state for the Nakama match handler.
type MatchState struct {
	Seats     [4]string                   `json:"seats"`      // user ids, empty string means seat is empty
	OwnerSeat int                         `json:"owner_seat"` // seat index of the match owner
	Tick      int64                       `json:"tick"`
	Presences map[string]runtime.Presence `json:"-"` // userID -> presence for targeted messaging
	Engine    ports.GameEngine            `json:"-"` // nil while in lobby
	Bots      map[string]*bot.Bot         `json:"-"` // active bots by user id

	BotsEnabled          bool  `json:"bots_enabled"`
	BotMinDelay          int   `json:"bot_min_delay"`           // min seconds a bot waits before acting
	BotMaxDelay          int   `json:"bot_max_delay"`           // max seconds a bot waits before acting
	BotAutoFillDelay     int   `json:"bot_auto_fill_delay"`     // seconds before filling empty seats with bots
	BotWaitUntil         int64 `json:"bot_wait_until"`          // tick when the pending bot turn fires
	LastSinglePlayerTick int64 `json:"last_single_player_tick"` // tick when a lone human started waiting
}

func (ms *MatchState) GetOpenSeatsCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat == "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetOccupiedSeatCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" {
			count++
		}
	}
	return count
}

func (ms *MatchState) GetHumanPlayerCount() int {
	count := 0
	for _, seat := range ms.Seats {
		if seat != "" && !bot.IsBot(seat) {
			count++
		}
	}
	return count
}

// isHumanSeat reports whether the seat index belongs to a human player.
func isHumanSeat(seats []string, seatIndex int) bool {
	if seatIndex < 0 || seatIndex >= len(seats) {
		return false
	}
	userID := seats[seatIndex]
	return userID != "" && !bot.IsBot(userID)
}

// findFirstHumanSeat returns the first seat index with a human occupant or -1 if none exist.
func findFirstHumanSeat(seats []string) int {
	for i, userID := range seats {
		if userID != "" && !bot.IsBot(userID) {
			return i
		}
	}
	return -1
}

// shouldTerminateNoHumans returns true when there are no humans in the match.
func shouldTerminateNoHumans(seats []string) bool {
	return findFirstHumanSeat(seats) == -1
}

func newMatchHandler() runtime.Match {
	return &matchHandler{}
}

type matchHandler struct{}

// MatchInit is called when the match is created.
func (mh *matchHandler) MatchInit(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, params map[string]interface{}) (interface{}, int, string) {
	logger.Debug("MatchInit: Initializing match handler.")

	if err := bot.LoadIdentities("data/bot_identities.json"); err != nil {
		logger.Warn("MatchInit: Could not load bot identities: %v", err)
	}

	state := &MatchState{
		Tick:      time.Now().Unix(),
		Presences: make(map[string]runtime.Presence),
		OwnerSeat: -1,
		Bots:      make(map[string]*bot.Bot),
	}

	// Environment overrides win over the settings file.
	settings := config.GetBotSettings()
	if settings != nil {
		state.BotMinDelay = settings.MinDelaySeconds
		state.BotMaxDelay = settings.MaxDelaySeconds
		state.BotAutoFillDelay = settings.AutoFillDelaySeconds
	}

	env, _ := ctx.Value(runtime.RUNTIME_CTX_ENV).(map[string]string)
	if val, ok := env["settlers_bots_enabled"]; ok {
		state.BotsEnabled = val == "true"
	}
	if val, ok := env["settlers_bot_min_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMinDelay = i
		}
	}
	if val, ok := env["settlers_bot_max_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotMaxDelay = i
		}
	}
	if val, ok := env["settlers_bot_auto_fill_delay_sec"]; ok {
		if i, err := strconv.Atoi(val); err == nil {
			state.BotAutoFillDelay = i
		}
	}

	if state.BotMinDelay == 0 {
		state.BotMinDelay = 1
	}
	if state.BotMaxDelay == 0 {
		state.BotMaxDelay = 3
	}
	if state.BotAutoFillDelay == 0 {
		state.BotAutoFillDelay = 5
	}

	labelBytes, err := json.Marshal(map[string]interface{}{
		MatchLabelKey_OpenSeats: state.GetOpenSeatsCount(),
		"game":                  "settlers",
		"phase":                 "lobby",
	})
	if err != nil {
		logger.Error("MatchInit: Failed to marshal label: %v", err)
		return nil, 0, ""
	}

	tickRate := 1
	return state, tickRate, string(labelBytes)
}

func (mh *matchHandler) MatchJoinAttempt(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presence runtime.Presence, metadata map[string]string) (interface{}, bool, string) {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state, false, "state not found"
	}

	// Allow join if there is an empty seat OR a bot to replace before the
	// game starts.
	if matchState.GetOpenSeatsCount() <= 0 {
		hasBot := false
		if matchState.Engine == nil {
			for _, seat := range matchState.Seats {
				if bot.IsBot(seat) {
					hasBot = true
					break
				}
			}
		}
		if !hasBot {
			return state, false, "Match full"
		}
	}

	return state, true, ""
}

func (mh *matchHandler) MatchJoin(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchJoin: state not found")
		return state
	}

	for _, p := range presences {
		matchState.Presences[p.GetUserId()] = p

		// Assign seat: empty seats first, then bots while still in lobby.
		assigned := false
		for i, seatUserID := range matchState.Seats {
			if seatUserID == "" {
				matchState.Seats[i] = p.GetUserId()
				assigned = true
				break
			}
		}

		if !assigned && matchState.Engine == nil {
			for i, seatUserID := range matchState.Seats {
				if bot.IsBot(seatUserID) {
					logger.Info("MatchJoin: Replacing bot %s with human %s in seat %d", seatUserID, p.GetUserId(), i)
					delete(matchState.Bots, seatUserID)
					matchState.Seats[i] = p.GetUserId()
					assigned = true
					break
				}
			}
		}

		if !assigned {
			logger.Warn("MatchJoin: User %s joined but no seat (empty or bot) was available.", p.GetUserId())
			continue
		}
	}

	// Ensure owner seat is assigned to a human player only.
	if !isHumanSeat(matchState.Seats[:], matchState.OwnerSeat) {
		matchState.OwnerSeat = findFirstHumanSeat(matchState.Seats[:])
		if matchState.OwnerSeat >= 0 {
			logger.Debug("MatchJoin: Owner set to human seat %d.", matchState.OwnerSeat)
		}
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastSnapshot(matchState, dispatcher, logger)

	return matchState
}

// MatchLeave is called when one or more players leave the match.
func (mh *matchHandler) MatchLeave(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, presences []runtime.Presence) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		logger.Error("MatchLeave: state not found")
		return state
	}

	for _, p := range presences {
		delete(matchState.Presences, p.GetUserId())

		for i, seatUserID := range matchState.Seats {
			if seatUserID == p.GetUserId() {
				matchState.Seats[i] = ""
				logger.Debug("MatchLeave: User %s left, seat %d freed.", p.GetUserId(), i)
				break
			}
		}
	}

	newOwnerSeat := findFirstHumanSeat(matchState.Seats[:])
	if newOwnerSeat != matchState.OwnerSeat {
		matchState.OwnerSeat = newOwnerSeat
		if newOwnerSeat >= 0 {
			logger.Debug("MatchLeave: Owner set to human seat %d.", newOwnerSeat)
		}
	}

	if shouldTerminateNoHumans(matchState.Seats[:]) {
		logger.Info("MatchLeave: Terminating match with no humans.")
		return nil
	}

	mh.updateLabel(matchState, dispatcher, logger)
	mh.broadcastSnapshot(matchState, dispatcher, logger)

	return matchState
}

func (mh *matchHandler) MatchLoop(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, messages []runtime.MatchData) interface{} {
	matchState, ok := state.(*MatchState)
	if !ok {
		return state
	}

	matchState.Tick = tick

	for _, msg := range messages {
		switch msg.GetOpCode() {
		case OpStartGame:
			mh.handleStartGame(ctx, matchState, dispatcher, logger, msg)
		case OpSubmitAction:
			mh.handleSubmitAction(ctx, matchState, dispatcher, logger, msg)
		default:
			logger.Warn("MatchLoop: Unknown opcode received: %d", msg.GetOpCode())
		}
	}

	if matchState.BotsEnabled {
		mh.processBots(ctx, matchState, dispatcher, logger)
	}

	return matchState
}

// processBots fills empty seats after the auto-fill delay and runs one
// full bot turn when the engine reports a bot as the current player.
func (mh *matchHandler) processBots(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Engine == nil {
		humanCount := state.GetHumanPlayerCount()
		if humanCount != 1 {
			state.LastSinglePlayerTick = 0
			return
		}
		if state.LastSinglePlayerTick == 0 {
			state.LastSinglePlayerTick = state.Tick
			logger.Debug("processBots: Single player detected, starting auto-fill timer.")
		}
		if state.Tick-state.LastSinglePlayerTick < int64(state.BotAutoFillDelay) {
			return
		}

		added := false
		for i, seat := range state.Seats {
			if seat == "" {
				identity := bot.IdentityFor(i)
				state.Seats[i] = identity.UserID
				logger.Info("processBots: Added bot %s (%s) to seat %d", identity.Username, identity.UserID, i)
				added = true
			}
		}
		if added {
			mh.updateLabel(state, dispatcher, logger)
			mh.broadcastSnapshot(state, dispatcher, logger)
		}
		state.LastSinglePlayerTick = 0
		return
	}

	snapshot := state.Engine.Snapshot()
	if snapshot == nil || snapshot.Phase == domain.PhaseEnded {
		state.BotWaitUntil = 0
		return
	}

	currentID := snapshot.CurrentPlayer
	if !bot.IsBot(currentID) {
		state.BotWaitUntil = 0
		return
	}

	if state.BotWaitUntil == 0 {
		delay := rand.Intn(state.BotMaxDelay-state.BotMinDelay+1) + state.BotMinDelay
		state.BotWaitUntil = state.Tick + int64(delay)
		logger.Debug("processBots: Bot %s will act at tick %d (current %d)", currentID, state.BotWaitUntil, state.Tick)
		return
	}
	if state.Tick < state.BotWaitUntil {
		return
	}
	state.BotWaitUntil = 0

	agent, exists := state.Bots[currentID]
	if !exists {
		agent = bot.New(state.Engine, bot.Config{PlayerID: currentID}, bot.WithTuning(config.TuningOrDefault()))
		state.Bots[currentID] = agent
	}

	result := agent.ExecuteTurn(ctx)
	if !result.Success {
		logger.Warn("processBots: Bot %s turn %s failed: %s", currentID, result.TurnID, result.Error)
	}

	mh.broadcastEvent(state, dispatcher, logger, OpBotTurnPlayed, BotTurnEvent{
		UserID:     currentID,
		TurnID:     result.TurnID,
		Success:    result.Success,
		Actions:    result.Stats.ActionsCount,
		FinalPhase: string(result.FinalPhase),
		Error:      result.Error,
	})
	mh.broadcastSnapshot(state, dispatcher, logger)
	mh.checkGameEnd(state, dispatcher, logger)
}

func (mh *matchHandler) handleStartGame(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	senderSeat := seatOf(state, senderID)

	logger.Info("StartGame: Request received from %s (seat=%d, owner_seat=%d, occupied=%d)", senderID, senderSeat, state.OwnerSeat, state.GetOccupiedSeatCount())

	if senderSeat != state.OwnerSeat {
		logger.Warn("StartGame: User %s tried to start game but is not owner (owner_seat=%d)", senderID, state.OwnerSeat)
		return
	}
	if state.Engine != nil {
		logger.Warn("StartGame: Game already running.")
		return
	}
	if engineFactory == nil {
		logger.Error("StartGame: No engine factory installed.")
		mh.sendError(state, dispatcher, logger, senderID, 500, "match engine unavailable")
		return
	}

	occupied := state.GetOccupiedSeatCount()
	if occupied < 2 {
		logger.Warn("StartGame: Cannot start with %d players. Need at least 2.", occupied)
		return
	}

	var playerIDs []string
	for _, seat := range state.Seats {
		if seat != "" {
			playerIDs = append(playerIDs, seat)
		}
	}

	matchID, _ := ctx.Value(runtime.RUNTIME_CTX_MATCH_ID).(string)
	engine, err := engineFactory(ctx, matchID, playerIDs)
	if err != nil {
		logger.Error("StartGame: Failed to create engine: %v", err)
		mh.sendError(state, dispatcher, logger, senderID, 500, "failed to start game")
		return
	}
	state.Engine = engine

	// Fresh bots per game so goal state never leaks between games.
	state.Bots = make(map[string]*bot.Bot)
	state.BotWaitUntil = 0

	mh.updateLabel(state, dispatcher, logger)
	mh.broadcastEvent(state, dispatcher, logger, OpGameStarted, mh.snapshot(state))
	logger.Info("StartGame: Game started with %d players.", occupied)
}

func (mh *matchHandler) handleSubmitAction(ctx context.Context, state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, msg runtime.MatchData) {
	senderID := msg.GetUserId()
	if state.Engine == nil {
		logger.Warn("handleSubmitAction: Game not started.")
		return
	}
	if seatOf(state, senderID) < 0 {
		logger.Warn("handleSubmitAction: User %s is not seated.", senderID)
		return
	}

	var req ActionRequest
	if err := json.Unmarshal(msg.GetData(), &req); err != nil {
		logger.Warn("handleSubmitAction: Invalid payload from %s: %v", senderID, err)
		mh.sendError(state, dispatcher, logger, senderID, 400, "invalid action payload")
		return
	}

	action := actionFromWire(senderID, req)
	result := state.Engine.ProcessAction(ctx, state.Engine.Snapshot(), action)
	if !result.Success {
		logger.Warn("handleSubmitAction: User %s action %s rejected: %s", senderID, action.Type, result.Err)
		mh.sendError(state, dispatcher, logger, senderID, 400, result.Err)
		return
	}

	mh.broadcastEvent(state, dispatcher, logger, OpActionApplied, actionToWire(senderID, action))
	mh.broadcastSnapshot(state, dispatcher, logger)
	mh.checkGameEnd(state, dispatcher, logger)
}

// checkGameEnd broadcasts the result and drops back to lobby once the
// engine reports the ended phase.
func (mh *matchHandler) checkGameEnd(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	if state.Engine == nil {
		return
	}
	snapshot := state.Engine.Snapshot()
	if snapshot == nil || snapshot.Phase != domain.PhaseEnded {
		return
	}

	ev := GameEndedEvent{Scores: make(map[string]int, len(snapshot.Players))}
	bestScore := -1
	for _, p := range snapshot.PlayersInOrder() {
		ev.Scores[p.ID] = p.Score
		if p.Score > bestScore {
			bestScore = p.Score
			ev.WinnerID = p.ID
		}
	}
	logger.Info("Game ended, winner %s with %d points.", ev.WinnerID, bestScore)
	mh.broadcastEvent(state, dispatcher, logger, OpGameEnded, ev)

	state.Engine = nil
	state.Bots = make(map[string]*bot.Bot)
	state.BotWaitUntil = 0
	mh.updateLabel(state, dispatcher, logger)
}

// snapshot assembles the public view broadcast to clients.
func (mh *matchHandler) snapshot(state *MatchState) MatchSnapshot {
	snap := MatchSnapshot{
		Seats:     state.Seats[:],
		OwnerSeat: state.OwnerSeat,
		Tick:      state.Tick,
		Phase:     "lobby",
	}

	var game *domain.GameState
	if state.Engine != nil {
		game = state.Engine.Snapshot()
	}
	if game != nil {
		snap.Phase = string(game.Phase)
		snap.Turn = game.Turn
		snap.CurrentPlayer = game.CurrentPlayer
	}

	for i, userID := range state.Seats {
		if userID == "" {
			continue
		}
		view := PlayerView{
			UserID:  userID,
			Seat:    i,
			IsOwner: i == state.OwnerSeat,
			IsBot:   bot.IsBot(userID),
		}
		if p, exists := state.Presences[userID]; exists {
			view.DisplayName = p.GetUsername()
		} else if name := bot.Username(userID); name != "" {
			view.DisplayName = name
		} else {
			view.DisplayName = userID
		}
		if game != nil {
			if p := game.Player(userID); p != nil {
				view.Score = p.Score
				view.ResourceCount = p.Resources.Total()
				view.DevCards = p.DevCards
			}
		}
		snap.Players = append(snap.Players, view)
	}
	return snap
}

func (mh *matchHandler) broadcastSnapshot(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	mh.broadcastEvent(state, dispatcher, logger, OpMatchSnapshot, mh.snapshot(state))
}

func (mh *matchHandler) broadcastEvent(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, opCode int64, payload interface{}) {
	bytes, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal event for opcode %d: %v", opCode, err)
		return
	}
	if err := dispatcher.BroadcastMessage(opCode, bytes, nil, nil, true); err != nil {
		logger.Error("Failed to broadcast opcode %d: %v", opCode, err)
	}
}

// sendError sends an ErrorEvent to a specific user.
func (mh *matchHandler) sendError(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger, userID string, code int, message string) {
	payload := ErrorEvent{Code: code, Message: message}
	bytes, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal ErrorEvent: %v", err)
		return
	}

	presence, ok := state.Presences[userID]
	if !ok {
		logger.Warn("Cannot send error to %s: Presence not found", userID)
		return
	}

	if err := dispatcher.BroadcastMessage(OpGameError, bytes, []runtime.Presence{presence}, nil, true); err != nil {
		logger.Error("Failed to send error to %s: %v", userID, err)
	}
}

func (mh *matchHandler) updateLabel(state *MatchState, dispatcher runtime.MatchDispatcher, logger runtime.Logger) {
	phase := "lobby"
	if state.Engine != nil {
		phase = "playing"
	}

	labelBytes, err := json.Marshal(map[string]interface{}{
		MatchLabelKey_OpenSeats: state.GetOpenSeatsCount(),
		"game":                  "settlers",
		"phase":                 phase,
	})
	if err != nil {
		logger.Error("UpdateLabel: Failed to marshal: %v", err)
		return
	}
	if err := dispatcher.MatchLabelUpdate(string(labelBytes)); err != nil {
		logger.Error("UpdateLabel: Failed to update: %v", err)
	}
}

func (mh *matchHandler) MatchTerminate(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, reason int) interface{} {
	logger.Debug("MatchTerminate: Match terminated for reason %d", reason)
	return state
}

func (mh *matchHandler) MatchSignal(ctx context.Context, logger runtime.Logger, db *sql.DB, nk runtime.NakamaModule, dispatcher runtime.MatchDispatcher, tick int64, state interface{}, data string) (interface{}, string) {
	return state, ""
}

func seatOf(state *MatchState, userID string) int {
	for i, seat := range state.Seats {
		if seat == userID {
			return i
		}
	}
	return -1
}
