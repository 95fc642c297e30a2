package ui

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog/log"

	"github.com/amarchess/amarchess/internal/engine"
	"github.com/amarchess/amarchess/internal/play"
	"github.com/amarchess/amarchess/internal/rules"
	"github.com/amarchess/amarchess/internal/storage"
)

// UI Constants
const (
	ScreenWidth  = 960
	ScreenHeight = play.BoardSize
	BoardSize    = play.BoardSize
	PanelWidth   = ScreenWidth - BoardSize
)

// Game implements ebiten.Game interface.
type Game struct {
	session    *play.Session
	difficulty engine.Difficulty

	// Storage; nil runs without persistence.
	storage *storage.Storage
	prefs   *storage.UserPreferences

	// Components
	renderer *Renderer
	input    *InputHandler
	panel    *Panel

	started  time.Time
	recorded bool

	// HiDPI scaling
	scale float64
}

// NewGame creates a new chess game from saved preferences. store may be nil.
func NewGame(store *storage.Storage, prefs *storage.UserPreferences) *Game {
	if prefs == nil {
		prefs = storage.DefaultPreferences()
	}

	mode := play.HumanVsHuman
	if prefs.GameMode == storage.ModeHumanVsComputer {
		mode = play.HumanVsComputer
	}

	g := &Game{
		session:    play.NewSession(mode, prefs.PlayerColor, prefs.Difficulty.Depth(), prefs.EngineOptions()),
		difficulty: prefs.Difficulty,
		storage:    store,
		prefs:      prefs,
		renderer:   NewRenderer(),
		input:      &InputHandler{},
		started:    time.Now(),
		scale:      1.0,
	}
	g.panel = NewPanel(g)
	g.renderer.SetFlipped(prefs.PlayerColor == rules.Black && mode == play.HumanVsComputer)

	log.Info().Str("user", prefs.Username).Str("mode", prefs.GameMode.String()).
		Str("difficulty", prefs.Difficulty.String()).Msg("game-start")

	g.engineTurn()
	return g
}

// Update handles game logic updates.
func (g *Game) Update() error {
	g.input.Update(g.scale)

	switch {
	case IsKeyJustPressed(ebiten.KeyN):
		g.NewGameAction()
	case IsKeyJustPressed(ebiten.KeyM):
		g.EngineMoveAction()
	case IsKeyJustPressed(ebiten.KeyF):
		g.FlipAction()
	}

	if !g.panel.HandleInput(g.input) {
		g.handleBoardInput()
	}

	g.session.Poll()
	g.recordResult()
	g.updateCursor()
	return nil
}

// handleBoardInput forwards board clicks to the session.
func (g *Game) handleBoardInput() {
	if !g.input.IsLeftJustPressed() {
		return
	}
	mx, my := g.input.MousePosition()
	if sq := play.SquareAt(mx, my, g.renderer.Flipped()); sq != rules.NoSquare {
		g.session.Click(sq)
	}
}

// updateCursor sets the cursor shape based on what's being hovered.
func (g *Game) updateCursor() {
	if g.panel.AnyButtonHovered() {
		ebiten.SetCursorShape(ebiten.CursorShapePointer)
	} else {
		ebiten.SetCursorShape(ebiten.CursorShapeDefault)
	}
}

// Draw renders the game.
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.SetScale(g.scale)
	g.panel.SetScale(g.scale)

	screen.Fill(g.renderer.Theme().Background)

	pos := g.session.Position()
	g.renderer.DrawBoard(screen)
	g.renderer.DrawCheck(screen, pos)
	g.renderer.DrawHighlights(screen, g.session.Selection(), g.session.LastMove())
	g.renderer.DrawPieces(screen, pos)

	g.panel.Draw(screen)
}

// Layout returns the game's screen dimensions.
// Uses device scale factor for crisp rendering on HiDPI displays.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.scale = ebiten.Monitor().DeviceScaleFactor()
	if g.scale < 1.0 {
		g.scale = 1.0
	}
	return int(float64(ScreenWidth) * g.scale), int(float64(ScreenHeight) * g.scale)
}

// engineTurn starts the engine if the computer is to move.
func (g *Game) engineTurn() {
	s := g.session
	if s.Mode() == play.HumanVsComputer && s.Position().SideToMove() != s.Human() {
		s.StartEngine()
	}
}

// NewGameAction resets the game to the starting position.
func (g *Game) NewGameAction() {
	g.recordResult()
	g.session.Reset(rules.NewPosition())
	g.started = time.Now()
	g.recorded = false
	g.engineTurn()
}

// EngineMoveAction lets the engine play for the side to move.
func (g *Game) EngineMoveAction() {
	if !g.session.StartEngine() {
		log.Debug().Msg("engine-move-ignored")
	}
}

// FlipAction turns the board around.
func (g *Game) FlipAction() {
	g.renderer.SetFlipped(!g.renderer.Flipped())
}

// SetMode switches between human and computer opponents.
func (g *Game) SetMode(m play.Mode) {
	if g.session.Mode() == m {
		return
	}
	g.session.SetMode(m)
	g.prefs.GameMode = storage.ModeHumanVsHuman
	if m == play.HumanVsComputer {
		g.prefs.GameMode = storage.ModeHumanVsComputer
	}
	g.savePreferences()
}

// SetHuman sets the colour played against the computer.
func (g *Game) SetHuman(c rules.Color) {
	if g.session.Human() == c {
		return
	}
	g.session.SetHuman(c)
	g.renderer.SetFlipped(c == rules.Black)
	g.prefs.PlayerColor = c
	g.savePreferences()
}

// SetDifficulty changes the engine depth for later searches.
func (g *Game) SetDifficulty(d engine.Difficulty) {
	g.difficulty = d
	g.session.SetDepth(d.Depth())
	g.prefs.Difficulty = d
	g.savePreferences()
}

// ToggleTransposition switches the transposition table on or off.
func (g *Game) ToggleTransposition() {
	g.prefs.Transposition = !g.prefs.Transposition
	g.session.SetOptions(g.prefs.EngineOptions())
	g.savePreferences()
}

// ToggleCaptureFirst switches capture-first move ordering on or off.
func (g *Game) ToggleCaptureFirst() {
	g.prefs.CaptureFirst = !g.prefs.CaptureFirst
	g.session.SetOptions(g.prefs.EngineOptions())
	g.savePreferences()
}

func (g *Game) savePreferences() {
	if g.storage == nil {
		return
	}
	if err := g.storage.SavePreferences(g.prefs); err != nil {
		log.Error().Err(err).Msg("save-preferences")
	}
}

// recordResult stores the outcome of a finished game once.
func (g *Game) recordResult() {
	s := g.session
	if g.recorded || s.Status() == play.Ongoing {
		return
	}
	g.recorded = true

	result := storage.GameResult{
		Draw:       s.Status() != play.Checkmate,
		Mode:       g.prefs.GameMode,
		Difficulty: g.difficulty,
		Duration:   time.Since(g.started),
	}
	if winner, ok := s.Winner(); ok {
		result.Won = s.Mode() == play.HumanVsHuman || winner == s.Human()
	}
	log.Info().Str("result", s.ResultText()).Dur("duration", result.Duration).Msg("game-over")

	if g.storage == nil {
		return
	}
	if err := g.storage.RecordGame(result); err != nil {
		log.Error().Err(err).Msg("record-game")
	}
}

// Close releases the storage.
func (g *Game) Close() error {
	if g.storage == nil {
		return nil
	}
	return g.storage.Close()
}
