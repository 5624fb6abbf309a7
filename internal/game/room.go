package game

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/aaronzipp/undercover/internal/models"
)

// Room is one game session. All exported methods take the room lock, so a
// room is safe for concurrent use; mutating methods return the public
// snapshot taken in the same critical section.
type Room struct {
	mu sync.Mutex

	code            string
	hostID          string
	undercoverCount int // 0 means automatic
	phase           models.Phase
	players         map[string]*models.Player // playerID -> Player
	joinOrder       []string
	scores          map[string]*models.PlayerScore // playerID -> PlayerScore (persistent)

	turnOrder        []string
	currentTurnIndex int
	roundNumber      int
	clues            []models.Clue
	votes            map[string]string // voterID -> targetID
	dealtUndercovers int
	civilianWord     string
	undercoverWord   string
	eliminatedPlayer string
	winner           models.Winner
	lastGuess        string

	revision  uint64 // bumped by every accepted mutation
	closed    bool
	createdAt time.Time

	rng   Random
	words WordSource
}

// VoteOutcome is the result of a vote. When the vote completed the ballot,
// Resolved is set and EliminatedID names who went out; by then the room may
// already have moved on to the next round.
type VoteOutcome struct {
	State        models.PublicState
	Resolved     bool
	EliminatedID string
	Tally        map[string]int
	Ended        bool
}

// GuessOutcome is the result of Mr. White's guess. The room is always in
// results afterwards.
type GuessOutcome struct {
	State   models.PublicState
	Correct bool
}

// Departure is the result of removing a player
type Departure struct {
	State models.PublicState
	Empty bool
	Ended bool         // the departure decided the game
	Votes *VoteOutcome // set when the departure completed the ballot
}

// NewRoom creates a room in the lobby with hostID seated as host
func NewRoom(code, hostID, hostName string, rng Random, words WordSource) (*Room, error) {
	if !ValidRoomCode(code) {
		return nil, ErrInvalidRoomCode
	}
	if !ValidPlayerName(hostName) {
		return nil, ErrInvalidPlayerName
	}
	if rng == nil {
		rng = DefaultRandom()
	}

	r := &Room{
		code:        code,
		phase:       models.PhaseLobby,
		players:     make(map[string]*models.Player),
		scores:      make(map[string]*models.PlayerScore),
		votes:       make(map[string]string),
		roundNumber: 1,
		createdAt:   time.Now(),
		rng:         rng,
		words:       words,
	}
	r.seat(hostID, strings.TrimSpace(hostName))
	return r, nil
}

// Code returns the room code
func (r *Room) Code() string {
	return r.code
}

// CreatedAt returns when the room was created
func (r *Room) CreatedAt() time.Time {
	return r.createdAt
}

// Phase returns the current phase
func (r *Room) Phase() models.Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

// HostID returns the id of the current host, or "" for an empty room
func (r *Room) HostID() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hostID
}

// HasPlayer reports whether playerID is seated in the room
func (r *Room) HasPlayer(playerID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.players[playerID]
	return ok
}

// IsEmpty reports whether nobody is seated
func (r *Room) IsEmpty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players) == 0
}

// PlayerCount returns the number of seated players
func (r *Room) PlayerCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}

// Members returns the seated player ids in join order
func (r *Room) Members() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.joinOrder)
}

// Close marks the room as removed from the registry. Later joins fail with
// ErrRoomNotFound.
func (r *Room) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
}

// CloseIfEmpty closes the room only if nobody is seated and reports whether
// it did
func (r *Room) CloseIfEmpty() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.players) > 0 {
		return false
	}
	r.closed = true
	return true
}

// AddPlayer seats a new player. Joining is only possible in the lobby and
// names must be unique ignoring case.
func (r *Room) AddPlayer(playerID, name string) (models.PublicState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return models.PublicState{}, ErrRoomNotFound
	}
	if _, ok := r.players[playerID]; ok {
		return models.PublicState{}, ErrAlreadyInRoom
	}
	if r.phase != models.PhaseLobby {
		return models.PublicState{}, ErrGameInProgress
	}
	if !ValidPlayerName(name) {
		return models.PublicState{}, ErrInvalidPlayerName
	}
	name = strings.TrimSpace(name)
	for _, p := range r.players {
		if strings.EqualFold(p.Name, name) {
			return models.PublicState{}, ErrDuplicateName
		}
	}

	r.seat(playerID, name)
	return r.commit(), nil
}

// RemovePlayer drops a player, whatever the phase. A removal during a game
// may complete the clue round or the ballot, or decide the game outright.
func (r *Room) RemovePlayer(playerID string) (Departure, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	player, ok := r.players[playerID]
	if !ok {
		return Departure{}, ErrNotInRoom
	}

	delete(r.players, playerID)
	delete(r.scores, playerID)
	r.joinOrder = slices.DeleteFunc(r.joinOrder, func(id string) bool { return id == playerID })
	r.ensureHost()

	dep := Departure{Empty: len(r.players) == 0}
	if !dep.Empty && r.phase.InGame() {
		r.dropFromRound(playerID, player.Role, &dep)
	}
	dep.State = r.commit()
	return dep, nil
}

// UpdateSettings lets the host pick the undercover count while in the lobby.
// Zero restores the automatic count; any other value must lie in
// [1, players-2], so a fixed count needs at least three seated players.
func (r *Room) UpdateSettings(playerID string, undercoverCount int) (models.PublicState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.requireLobby(); err != nil {
		return models.PublicState{}, err
	}
	if err := r.requireHost(playerID); err != nil {
		return models.PublicState{}, err
	}
	if undercoverCount < 0 || undercoverCount > len(r.players)-2 {
		return models.PublicState{}, ErrUndercoverCount
	}

	r.undercoverCount = undercoverCount
	return r.commit(), nil
}

// StartGame deals roles and words and opens the first clue round
func (r *Room) StartGame(playerID string) (models.PublicState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.requireLobby(); err != nil {
		return models.PublicState{}, err
	}
	if err := r.requireHost(playerID); err != nil {
		return models.PublicState{}, err
	}

	n := len(r.joinOrder)
	count := r.undercoverCount
	if count == 0 {
		count = DefaultUndercoverCount(n)
	}
	roles, err := AssignRoles(r.rng, n, count)
	if err != nil {
		return models.PublicState{}, err
	}
	words, civilianWord, undercoverWord := AssignWords(roles, r.words)

	for i, id := range r.joinOrder {
		p := r.players[id]
		p.Role = roles[i]
		p.Word = words[i]
		p.IsAlive = true
	}

	turnOrder := slices.Clone(r.joinOrder)
	r.rng.Shuffle(len(turnOrder), func(i, j int) {
		turnOrder[i], turnOrder[j] = turnOrder[j], turnOrder[i]
	})
	// Mr. White has no word, so never let them open the first round
	if r.players[turnOrder[0]].Role == models.RoleMrWhite {
		for i := 1; i < len(turnOrder); i++ {
			if r.players[turnOrder[i]].Role != models.RoleMrWhite {
				turnOrder[0], turnOrder[i] = turnOrder[i], turnOrder[0]
				break
			}
		}
	}

	r.turnOrder = turnOrder
	r.currentTurnIndex = 0
	r.roundNumber = 1
	r.clues = nil
	r.votes = make(map[string]string)
	r.dealtUndercovers = ClampUndercoverCount(n, count)
	r.civilianWord = civilianWord
	r.undercoverWord = undercoverWord
	r.eliminatedPlayer = ""
	r.winner = models.WinnerNone
	r.lastGuess = ""
	r.setPhase(models.PhasePlaying)

	return r.commit(), nil
}

// SubmitClue records the current player's clue and passes the turn. The last
// clue of a round opens the vote.
func (r *Room) SubmitClue(playerID, clue string) (models.PublicState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != models.PhasePlaying {
		return models.PublicState{}, ErrInvalidPhase
	}
	player, ok := r.players[playerID]
	if !ok {
		return models.PublicState{}, ErrNotInRoom
	}
	if r.currentTurn() != playerID {
		return models.PublicState{}, ErrNotYourTurn
	}
	clue = strings.TrimSpace(clue)
	if clue == "" {
		return models.PublicState{}, ErrEmptyClue
	}

	r.clues = append(r.clues, models.Clue{
		PlayerID:   playerID,
		PlayerName: player.Name,
		Clue:       clue,
		Round:      r.roundNumber,
	})
	r.currentTurnIndex++
	if r.currentTurnIndex >= len(r.turnOrder) {
		r.openVote()
	}
	return r.commit(), nil
}

// SubmitVote records voterID's vote. A voter may change their vote until the
// ballot is complete; the last outstanding vote resolves the round.
func (r *Room) SubmitVote(voterID, targetID string) (VoteOutcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != models.PhaseVoting {
		return VoteOutcome{}, ErrInvalidPhase
	}
	voter, ok := r.players[voterID]
	if !ok {
		return VoteOutcome{}, ErrNotInRoom
	}
	if !voter.IsAlive {
		return VoteOutcome{}, ErrPlayerDead
	}
	target, ok := r.players[targetID]
	if !ok || !target.IsAlive {
		return VoteOutcome{}, ErrInvalidVoteTarget
	}

	r.votes[voterID] = targetID

	var out VoteOutcome
	if len(r.votes) >= r.aliveCount() {
		out = r.resolveVotes()
	}
	out.State = r.commit()
	return out, nil
}

// Guess takes Mr. White's one guess at the civilian word. A correct guess
// wins outright. Either way the game ends; after a wrong guess the winner is
// whichever faction the survivors favour, possibly none.
func (r *Room) Guess(playerID, guess string) (GuessOutcome, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != models.PhaseMrWhiteGuess {
		return GuessOutcome{}, ErrInvalidPhase
	}
	if _, ok := r.players[playerID]; !ok {
		return GuessOutcome{}, ErrNotInRoom
	}
	if playerID != r.eliminatedPlayer {
		return GuessOutcome{}, ErrNotMrWhite
	}

	r.lastGuess = strings.TrimSpace(guess)
	var out GuessOutcome
	if GuessMatches(r.lastGuess, r.civilianWord) {
		out.Correct = true
		r.finish(models.WinnerMrWhite)
	} else {
		r.guessFailed()
	}
	out.State = r.commit()
	return out, nil
}

// PlayAgain returns a finished room to the lobby. Roster, host and scores
// are kept.
func (r *Room) PlayAgain(playerID string) (models.PublicState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != models.PhaseResults {
		return models.PublicState{}, ErrInvalidPhase
	}
	if _, ok := r.players[playerID]; !ok {
		return models.PublicState{}, ErrNotInRoom
	}

	for _, p := range r.players {
		p.Role = models.RoleNone
		p.Word = ""
		p.IsAlive = true
	}
	r.turnOrder = nil
	r.currentTurnIndex = 0
	r.roundNumber = 1
	r.clues = nil
	r.votes = make(map[string]string)
	r.dealtUndercovers = 0
	r.civilianWord = ""
	r.undercoverWord = ""
	r.eliminatedPlayer = ""
	r.winner = models.WinnerNone
	r.lastGuess = ""
	r.setPhase(models.PhaseLobby)

	return r.commit(), nil
}

// PublicState returns the snapshot every participant may see
func (r *Room) PublicState() models.PublicState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot()
}

// PrivateState returns playerID's own role and word
func (r *Room) PrivateState(playerID string) (models.PrivateState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.players[playerID]
	if !ok {
		return models.PrivateState{}, ErrNotInRoom
	}
	return models.PrivateState{
		Role:    p.Role,
		Word:    models.WordPtr(p.Word),
		IsAlive: p.IsAlive,
	}, nil
}

// Reveal exposes every role and word. It is only available in results.
func (r *Room) Reveal() (models.Reveal, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.phase != models.PhaseResults {
		return models.Reveal{}, false
	}

	players := make([]models.RevealedPlayer, 0, len(r.joinOrder))
	for _, id := range r.joinOrder {
		p := r.players[id]
		players = append(players, models.RevealedPlayer{
			ID:      p.ID,
			Name:    p.Name,
			Role:    p.Role,
			Word:    models.WordPtr(p.Word),
			IsAlive: p.IsAlive,
		})
	}
	return models.Reveal{
		Winner:         r.winner,
		Players:        players,
		CivilianWord:   r.civilianWord,
		UndercoverWord: r.undercoverWord,
		MrWhiteGuess:   r.lastGuess,
	}, true
}

// seat adds a player to the lobby (must be called with lock held)
func (r *Room) seat(playerID, name string) {
	r.players[playerID] = &models.Player{
		ID:      playerID,
		Name:    name,
		IsAlive: true,
	}
	r.joinOrder = append(r.joinOrder, playerID)
	r.scores[playerID] = &models.PlayerScore{}
	r.ensureHost()
}

// ensureHost keeps exactly one host while the room is non-empty. The
// longest-seated player takes over when the host leaves.
func (r *Room) ensureHost() {
	if _, ok := r.players[r.hostID]; !ok {
		r.hostID = ""
		if len(r.joinOrder) > 0 {
			r.hostID = r.joinOrder[0]
		}
	}
	for id, p := range r.players {
		p.IsHost = id == r.hostID
	}
}

func (r *Room) requireLobby() error {
	switch {
	case r.phase.InGame():
		return ErrGameInProgress
	case r.phase != models.PhaseLobby:
		return ErrInvalidPhase
	}
	return nil
}

func (r *Room) requireHost(playerID string) error {
	if _, ok := r.players[playerID]; !ok {
		return ErrNotInRoom
	}
	if playerID != r.hostID {
		return ErrNotHost
	}
	return nil
}

// setPhase moves the room along the transition table. Every caller has
// validated its command first, so an illegal move is a bug.
func (r *Room) setPhase(next models.Phase) {
	if !r.phase.CanTransitionTo(next) {
		panic(fmt.Sprintf("game: illegal phase transition %s -> %s in room %s", r.phase, next, r.code))
	}
	r.phase = next
}

func (r *Room) currentTurn() string {
	if r.phase != models.PhasePlaying || r.currentTurnIndex >= len(r.turnOrder) {
		return ""
	}
	return r.turnOrder[r.currentTurnIndex]
}

func (r *Room) aliveCount() int {
	n := 0
	for _, p := range r.players {
		if p.IsAlive {
			n++
		}
	}
	return n
}

func (r *Room) openVote() {
	r.votes = make(map[string]string)
	r.setPhase(models.PhaseVoting)
}

// resolveVotes eliminates the most voted player and advances the game
func (r *Room) resolveVotes() VoteOutcome {
	eliminated, tally := TallyVotes(r.votes, r.rng)
	out := VoteOutcome{Resolved: true, EliminatedID: eliminated, Tally: tally}

	if p, ok := r.players[eliminated]; ok {
		p.IsAlive = false
		r.eliminatedPlayer = eliminated
		if p.Role == models.RoleMrWhite {
			r.setPhase(models.PhaseMrWhiteGuess)
			return out
		}
	}

	if winner := CheckWinner(r.players); winner != models.WinnerNone {
		r.finish(winner)
		out.Ended = true
		return out
	}
	r.startNextRound()
	return out
}

// guessFailed ends the game after Mr. White missed or forfeited the guess
func (r *Room) guessFailed() {
	r.finish(CheckWinner(r.players))
}

func (r *Room) startNextRound() {
	r.roundNumber++
	r.turnOrder = slices.DeleteFunc(r.turnOrder, func(id string) bool {
		p, ok := r.players[id]
		return !ok || !p.IsAlive
	})
	r.currentTurnIndex = 0
	r.votes = make(map[string]string)
	r.eliminatedPlayer = ""
	r.setPhase(models.PhasePlaying)
}

// finish enters results and settles the scores. A game that ends without a
// winner is not scored.
func (r *Room) finish(winner models.Winner) {
	r.winner = winner
	r.setPhase(models.PhaseResults)
	if winner == models.WinnerNone {
		return
	}
	for id, p := range r.players {
		score := r.scores[id]
		if winner.Wins(p.Role) {
			score.GamesWon++
		} else {
			score.GamesLost++
		}
	}
}

// dropFromRound repairs the round after a player left mid-game
func (r *Room) dropFromRound(playerID string, role models.Role, dep *Departure) {
	if idx := slices.Index(r.turnOrder, playerID); idx >= 0 {
		r.turnOrder = slices.Delete(r.turnOrder, idx, idx+1)
		if idx < r.currentTurnIndex {
			r.currentTurnIndex--
		}
	}
	delete(r.votes, playerID)
	for voter, target := range r.votes {
		if target == playerID {
			delete(r.votes, voter)
		}
	}

	if r.phase == models.PhaseMrWhiteGuess {
		// Mr. White walking out forfeits the guess
		if playerID == r.eliminatedPlayer && role == models.RoleMrWhite {
			r.guessFailed()
			dep.Ended = true
		}
		return
	}

	if r.aliveCount() == 0 {
		r.finish(models.WinnerNone)
		dep.Ended = true
		return
	}
	if winner := CheckWinner(r.players); winner != models.WinnerNone {
		r.finish(winner)
		dep.Ended = true
		return
	}

	switch r.phase {
	case models.PhasePlaying:
		if r.currentTurnIndex >= len(r.turnOrder) {
			r.openVote()
		}
	case models.PhaseVoting:
		if len(r.votes) >= r.aliveCount() {
			out := r.resolveVotes()
			dep.Votes = &out
			dep.Ended = out.Ended
		}
	}
}

// snapshot builds the public view (must be called with lock held)
// commit records an accepted mutation and returns the resulting snapshot.
// Broadcasts leave the room lock before they are delivered, so clients order
// snapshots by revision.
func (r *Room) commit() models.PublicState {
	r.revision++
	return r.snapshot()
}

func (r *Room) snapshot() models.PublicState {
	players := make([]models.PublicPlayer, 0, len(r.joinOrder))
	for _, id := range r.joinOrder {
		p := r.players[id]
		players = append(players, models.PublicPlayer{
			ID:      p.ID,
			Name:    p.Name,
			IsHost:  p.IsHost,
			IsAlive: p.IsAlive,
		})
	}

	scores := make(map[string]models.PlayerScore, len(r.scores))
	for id, s := range r.scores {
		scores[id] = *s
	}

	clues := make([]models.Clue, len(r.clues))
	copy(clues, r.clues)

	return models.PublicState{
		RoomCode:        r.code,
		Revision:        r.revision,
		Phase:           r.phase,
		PlayerCount:     len(r.players),
		UndercoverCount: r.displayUndercoverCount(),
		Players:         players,
		CurrentTurn:     r.currentTurn(),
		RoundNumber:     r.roundNumber,
		Clues:           clues,
		Winner:          r.winner,
		Scores:          scores,
	}
}

func (r *Room) displayUndercoverCount() int {
	if r.dealtUndercovers > 0 {
		return r.dealtUndercovers
	}
	n := len(r.players)
	if r.undercoverCount > 0 {
		return r.undercoverCount
	}
	return DefaultUndercoverCount(n)
}
