// Package uci implements the Universal Chess Interface protocol.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/amarchess/amarchess/internal/engine"
	"github.com/amarchess/amarchess/internal/notation"
	"github.com/amarchess/amarchess/internal/rules"
)

// DefaultDepth is used by "go" commands without a depth.
const DefaultDepth = 4

// UCI implements the Universal Chess Interface protocol.
type UCI struct {
	engine   *engine.Engine
	position rules.Position
	depth    int

	in  io.Reader
	out io.Writer
	mu  sync.Mutex // serializes writes to out

	// Search state
	searchDone chan struct{}
}

// New creates a new UCI protocol handler reading commands from in and
// writing responses to out.
func New(eng *engine.Engine, in io.Reader, out io.Writer) *UCI {
	return &UCI{
		engine:   eng,
		position: rules.NewPosition(),
		depth:    DefaultDepth,
		in:       in,
		out:      out,
	}
}

// SetDepth sets the depth used by "go" without an explicit depth.
func (u *UCI) SetDepth(depth int) {
	u.depth = engine.EvenDepth(depth)
}

// Run processes commands until "quit" or the end of input. A running search
// always completes and reports its bestmove before Run returns.
func (u *UCI) Run() error {
	defer u.wait()

	scanner := bufio.NewScanner(u.in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "uci":
			u.handleUCI()
		case "isready":
			u.wait()
			u.println("readyok")
		case "ucinewgame":
			u.wait()
			u.position = rules.NewPosition()
		case "position":
			u.wait()
			u.handlePosition(args)
		case "go":
			u.wait()
			u.handleGo(args)
		case "stop":
			u.wait()
		case "quit":
			return nil
		case "setoption":
			u.wait()
			u.handleSetOption(args)
		// Debug commands
		case "d":
			u.wait()
			u.handleDisplay()
		case "eval":
			u.wait()
			u.handleEval()
		case "perft":
			u.wait()
			u.handlePerft(args)
		default:
			u.infoString("unknown command: %s", cmd)
		}
	}
	return scanner.Err()
}

// handleUCI responds to the "uci" command.
func (u *UCI) handleUCI() {
	opts := u.engine.Options()
	u.println("id name AmarChess")
	u.println("id author AmarChess developers")
	u.println("")
	u.printf("option name Depth type spin default %d min 2 max %d\n", u.depth, engine.MaxDepth)
	u.printf("option name TranspositionTable type check default %t\n", opts.Transposition)
	u.printf("option name CaptureFirst type check default %t\n", opts.CaptureFirst)
	u.println("uciok")
}

// handlePosition parses and sets up a position.
// Formats:
//   - position startpos
//   - position startpos moves e2e4 e7e5
//   - position fen <fen>
//   - position fen <fen> moves e2e4
func (u *UCI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	movesAt := slices.Index(args, "moves")
	if movesAt < 0 {
		movesAt = len(args)
	}

	var pos rules.Position
	switch args[0] {
	case "startpos":
		pos = rules.NewPosition()
	case "fen":
		var err error
		pos, err = rules.FromFEN(strings.Join(args[1:movesAt], " "))
		if err != nil {
			u.warn(err, "invalid position")
			return
		}
	default:
		return
	}

	if movesAt < len(args) {
		for _, moveStr := range args[movesAt+1:] {
			m, err := notation.ParseUCI(pos, moveStr)
			if err != nil {
				u.warn(err, "invalid move")
				return
			}
			pos = pos.Play(m)
		}
	}
	u.position = pos
}

// handleGo starts a search. Only "depth" is honoured; odd depths are
// rounded up since the search advances two plies per iteration.
func (u *UCI) handleGo(args []string) {
	depth := u.depth
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			if i+1 < len(args) {
				if d, err := strconv.Atoi(args[i+1]); err == nil {
					depth = engine.EvenDepth(d)
				}
				i++
			}
		case "wtime", "btime", "movetime", "infinite", "nodes":
			u.infoString("%s ignored, searching to depth %d", args[i], depth)
		}
	}

	pos := u.position
	if err := engine.CheckRequest(pos, depth); err != nil {
		u.warn(err, "cannot search")
		u.println("bestmove 0000")
		return
	}

	// Configure info callback
	u.engine.OnInfo = func(info engine.SearchInfo) {
		u.sendInfo(info)
	}

	u.searchDone = make(chan struct{})
	go func() {
		defer close(u.searchDone)
		res := u.engine.Search(pos, depth)
		u.printf("bestmove %s\n", res.Move)
	}()
}

// wait blocks until the running search, if any, has reported.
func (u *UCI) wait() {
	if u.searchDone != nil {
		<-u.searchDone
		u.searchDone = nil
	}
}

// sendInfo outputs search info in UCI format.
func (u *UCI) sendInfo(info engine.SearchInfo) {
	var parts []string

	parts = append(parts, fmt.Sprintf("depth %d", info.Depth))

	// Score
	if engine.IsMate(info.Score) {
		plies := engine.MatePlies(info.Score, info.Depth)
		mateIn := (plies + 1) / 2
		if plies < 0 {
			mateIn = (plies - 1) / 2
		}
		parts = append(parts, fmt.Sprintf("score mate %d", mateIn))
	} else {
		parts = append(parts, fmt.Sprintf("score cp %d", info.Score))
	}

	parts = append(parts, fmt.Sprintf("nodes %d", info.Nodes))
	parts = append(parts, fmt.Sprintf("time %d", info.Time.Milliseconds()))

	// NPS
	if info.Time > 0 {
		nps := uint64(float64(info.Nodes) / info.Time.Seconds())
		parts = append(parts, fmt.Sprintf("nps %d", nps))
	}
	if info.Best != rules.NoMove {
		parts = append(parts, "pv "+info.Best.String())
	}

	u.printf("info %s\n", strings.Join(parts, " "))
}

// handleSetOption processes "setoption" commands.
func (u *UCI) handleSetOption(args []string) {
	// Format: setoption name <name> value <value>
	var name, value string
	readingName := false
	readingValue := false

	for _, arg := range args {
		switch arg {
		case "name":
			readingName = true
			readingValue = false
		case "value":
			readingName = false
			readingValue = true
		default:
			if readingName {
				if name != "" {
					name += " "
				}
				name += arg
			} else if readingValue {
				if value != "" {
					value += " "
				}
				value += arg
			}
		}
	}

	opts := u.engine.Options()
	switch strings.ToLower(name) {
	case "depth":
		d, err := strconv.Atoi(value)
		if err != nil {
			u.warn(err, "invalid depth")
			return
		}
		u.SetDepth(d)
	case "transpositiontable":
		opts.Transposition = strings.ToLower(value) == "true"
	case "capturefirst":
		opts.CaptureFirst = strings.ToLower(value) == "true"
	default:
		u.infoString("unknown option: %s", name)
		return
	}
	u.engine.SetOptions(opts)
}

// handleDisplay prints the board, white at the bottom.
func (u *UCI) handleDisplay() {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		sb.WriteString(strconv.Itoa(rank + 1))
		for file := 0; file < 8; file++ {
			sb.WriteByte(' ')
			sb.WriteByte(pieceChar(u.position, rules.NewSquare(file, rank)))
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("  a b c d e f g h\n")
	u.printf("%sFen: %s\nKey: %016x\n", sb.String(), u.position.FEN(), u.position.Hash())
}

func pieceChar(pos rules.Position, sq rules.Square) byte {
	p, ok := pos.PieceAt(sq)
	if !ok {
		return '.'
	}
	c := " pnbrqk"[p.Type]
	if p.Color == rules.White {
		c -= 'a' - 'A'
	}
	return c
}

// handleEval prints the static evaluation.
func (u *UCI) handleEval() {
	white := engine.Evaluate(u.position)
	u.printf("info string eval %d (white %d)\n", u.engine.Evaluate(u.position), white)
}

// handlePerft runs a perft test.
func (u *UCI) handlePerft(args []string) {
	depth := 1
	if len(args) > 0 {
		depth, _ = strconv.Atoi(args[0])
	}
	if depth < 1 {
		u.infoString("perft depth must be positive")
		return
	}

	start := time.Now()
	divide := rules.Divide(u.position, depth)
	elapsed := time.Since(start)

	moves := make([]string, 0, len(divide))
	var nodes uint64
	for m, n := range divide {
		moves = append(moves, m)
		nodes += n
	}
	slices.Sort(moves)
	for _, m := range moves {
		u.printf("%s: %d\n", m, divide[m])
	}

	u.printf("Nodes: %d\n", nodes)
	u.printf("Time: %v\n", elapsed)
}

func (u *UCI) infoString(format string, args ...any) {
	u.printf("info string "+format+"\n", args...)
}

func (u *UCI) warn(err error, msg string) {
	log.Warn().Err(err).Msg(msg)
	u.infoString("%s: %v", msg, err)
}

func (u *UCI) println(s string) {
	u.printf("%s\n", s)
}

func (u *UCI) printf(format string, args ...any) {
	u.mu.Lock()
	defer u.mu.Unlock()
	fmt.Fprintf(u.out, format, args...)
}
