// Package play holds the interactive game model behind the GUI: board
// selection, move history, game status and engine replies.
package play

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/amarchess/amarchess/internal/engine"
	"github.com/amarchess/amarchess/internal/notation"
	"github.com/amarchess/amarchess/internal/rules"
)

// Mode represents the game mode.
type Mode int

const (
	HumanVsHuman Mode = iota
	HumanVsComputer
)

// Status describes whether and how the game ended.
type Status int

const (
	Ongoing Status = iota
	Checkmate
	Stalemate
	Repetition
)

// reply is a finished engine search for one position.
type reply struct {
	hash   uint64
	result engine.Result
}

// Session is a single game. It is owned by one goroutine (the GUI update
// loop); engine searches run on a copy of the position and report back
// through a channel that Poll drains.
type Session struct {
	pos      rules.Position
	history  []rules.Move
	san      []string
	hashes   []uint64
	sel      Selection
	lastMove rules.Move
	status   Status

	mode  Mode
	human rules.Color
	depth int
	opts  engine.Options

	pending    chan reply
	lastSearch engine.Result
}

// NewSession starts a game from the initial position.
func NewSession(mode Mode, human rules.Color, depth int, opts engine.Options) *Session {
	s := &Session{mode: mode, human: human, depth: engine.EvenDepth(depth), opts: opts}
	s.Reset(rules.NewPosition())
	return s
}

// Reset starts over from pos, abandoning any running search.
func (s *Session) Reset(pos rules.Position) {
	s.pos = pos
	s.history = nil
	s.san = nil
	s.hashes = []uint64{pos.Hash()}
	s.sel = NoSelection
	s.lastMove = rules.NoMove
	s.pending = nil
	s.lastSearch = engine.Result{}
	s.updateStatus()
}

// Click handles a click on sq by the human player.
func (s *Session) Click(sq rules.Square) {
	if !s.HumanToMove() {
		return
	}
	sel, m := s.sel.Click(s.pos, sq)
	s.sel = sel
	if m != rules.NoMove {
		if err := s.Play(m); err != nil {
			log.Warn().Err(err).Msg("click-move")
		}
	}
}

// Play applies m, records it and, in HumanVsComputer mode, starts the
// engine when it is the computer's turn.
func (s *Session) Play(m rules.Move) error {
	if s.status != Ongoing {
		return fmt.Errorf("game over: %w", rules.ErrIllegalMove)
	}
	if _, err := s.pos.FindMove(m.String()); err != nil {
		return err
	}

	san, err := notation.FormatSAN(s.pos, m)
	if err != nil {
		san = m.String()
	}
	s.pos = s.pos.Play(m)
	s.history = append(s.history, m)
	s.san = append(s.san, san)
	s.hashes = append(s.hashes, s.pos.Hash())
	s.lastMove = m
	s.sel = NoSelection
	s.updateStatus()

	log.Info().Str("move", san).Str("fen", s.pos.FEN()).Msg("move-played")

	if s.status == Ongoing && s.mode == HumanVsComputer && s.pos.SideToMove() != s.human {
		s.StartEngine()
	}
	return nil
}

// StartEngine asks the engine to pick a move for the side to move.
// It returns false when the game is over or a search is already running.
func (s *Session) StartEngine() bool {
	if s.status != Ongoing || s.pending != nil {
		return false
	}

	pos, depth := s.pos, s.depth
	eng := engine.NewEngine(s.opts)
	ch := make(chan reply, 1)
	s.pending = ch
	s.sel = NoSelection

	log.Info().Int("depth", depth).Str("side", pos.SideToMove().String()).Msg("engine-thinking")
	go func() {
		ch <- reply{hash: pos.Hash(), result: eng.Search(pos, depth)}
	}()
	return true
}

// Poll plays the engine's move if its search has finished. It returns true
// when a move was played.
func (s *Session) Poll() bool {
	if s.pending == nil {
		return false
	}
	select {
	case r := <-s.pending:
		return s.accept(r)
	default:
		return false
	}
}

// Wait blocks until the running search, if any, has finished and its move
// has been played.
func (s *Session) Wait() bool {
	if s.pending == nil {
		return false
	}
	return s.accept(<-s.pending)
}

func (s *Session) accept(r reply) bool {
	s.pending = nil
	if r.hash != s.pos.Hash() {
		return false
	}
	s.lastSearch = r.result
	if err := s.Play(r.result.Move); err != nil {
		log.Error().Err(err).Str("move", r.result.Move.String()).Msg("engine-move-rejected")
		return false
	}
	return true
}

func (s *Session) updateStatus() {
	switch {
	case len(s.pos.LegalMoves()) == 0 && s.pos.InCheck():
		s.status = Checkmate
	case len(s.pos.LegalMoves()) == 0:
		s.status = Stalemate
	case s.repetitions() >= 3:
		s.status = Repetition
	default:
		s.status = Ongoing
	}
}

func (s *Session) repetitions() int {
	current := s.pos.Hash()
	count := 0
	for _, h := range s.hashes {
		if h == current {
			count++
		}
	}
	return count
}

// SetMode changes the game mode and lets the engine move if it is now its turn.
func (s *Session) SetMode(m Mode) {
	s.mode = m
	s.maybeEngineTurn()
}

// SetHuman sets the colour played by the human in HumanVsComputer mode.
func (s *Session) SetHuman(c rules.Color) {
	s.human = c
	s.maybeEngineTurn()
}

func (s *Session) maybeEngineTurn() {
	if s.mode == HumanVsComputer && s.pos.SideToMove() != s.human {
		s.StartEngine()
	}
}

// SetDepth sets the engine depth for later searches.
func (s *Session) SetDepth(depth int) { s.depth = engine.EvenDepth(depth) }

// SetOptions sets the engine capabilities for later searches.
func (s *Session) SetOptions(opts engine.Options) { s.opts = opts }

// HumanToMove reports whether clicks on the board are accepted.
func (s *Session) HumanToMove() bool {
	if s.status != Ongoing || s.pending != nil {
		return false
	}
	return s.mode == HumanVsHuman || s.pos.SideToMove() == s.human
}

// Winner returns the side that delivered mate.
func (s *Session) Winner() (rules.Color, bool) {
	if s.status != Checkmate {
		return rules.White, false
	}
	return s.pos.SideToMove().Opponent(), true
}

// ResultText describes the finished game, or "" while it is ongoing.
func (s *Session) ResultText() string {
	switch s.status {
	case Checkmate:
		w, _ := s.Winner()
		if w == rules.White {
			return "White wins by checkmate!"
		}
		return "Black wins by checkmate!"
	case Stalemate:
		return "Draw by stalemate"
	case Repetition:
		return "Draw by threefold repetition"
	}
	return ""
}

// Position returns the current position.
func (s *Session) Position() rules.Position {
	return s.pos
}

// Selection returns the board selection.
func (s *Session) Selection() Selection {
	return s.sel
}

// LastMove returns the most recent move, or NoMove.
func (s *Session) LastMove() rules.Move {
	return s.lastMove
}

// SANHistory returns the moves played so far in SAN.
func (s *Session) SANHistory() []string {
	return s.san
}

// Status returns the game status.
func (s *Session) Status() Status {
	return s.status
}

func (s *Session) Mode() Mode {
	return s.mode
}

func (s *Session) Human() rules.Color {
	return s.human
}

func (s *Session) Depth() int {
	return s.depth
}

func (s *Session) Options() engine.Options {
	return s.opts
}

// Thinking reports whether an engine search is running.
func (s *Session) Thinking() bool {
	return s.pending != nil
}

// LastSearch returns the engine search behind the last computer move.
func (s *Session) LastSearch() engine.Result {
	return s.lastSearch
}

// Moves returns the moves played so far.
func (s *Session) Moves() []rules.Move {
	return s.history
}
