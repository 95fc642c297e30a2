package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/amarchess/amarchess/internal/play"
	"github.com/amarchess/amarchess/internal/rules"
)

// Theme defines the color scheme for the board.
type Theme struct {
	LightSquare    color.RGBA
	DarkSquare     color.RGBA
	SelectedSquare color.RGBA
	LegalMoveColor color.RGBA
	LastMoveColor  color.RGBA
	CheckColor     color.RGBA
	Background     color.RGBA
	TextColor      color.RGBA
}

// DefaultTheme returns the default color theme.
func DefaultTheme() *Theme {
	return &Theme{
		LightSquare:    color.RGBA{240, 217, 181, 255}, // Tan
		DarkSquare:     color.RGBA{181, 136, 99, 255},  // Brown
		SelectedSquare: color.RGBA{247, 247, 105, 180}, // Yellow highlight
		LegalMoveColor: color.RGBA{130, 151, 105, 200}, // Green dots
		LastMoveColor:  color.RGBA{180, 190, 100, 90},
		CheckColor:     color.RGBA{255, 100, 100, 180}, // Red
		Background:     color.RGBA{40, 44, 52, 255},
		TextColor:      color.RGBA{220, 220, 220, 255},
	}
}

// Renderer handles all board drawing operations.
type Renderer struct {
	sprites *SpriteManager
	theme   *Theme
	scale   float64 // HiDPI scale factor
	flipped bool
}

// NewRenderer creates a new renderer.
func NewRenderer() *Renderer {
	return &Renderer{
		sprites: NewSpriteManager(play.SquareSize),
		theme:   DefaultTheme(),
		scale:   1.0,
	}
}

// SetScale sets the HiDPI scale factor for rendering.
func (r *Renderer) SetScale(scale float64) {
	r.scale = scale
}

// SetFlipped draws black at the bottom when set.
func (r *Renderer) SetFlipped(flipped bool) {
	r.flipped = flipped
}

// Flipped reports whether black is drawn at the bottom.
func (r *Renderer) Flipped() bool {
	return r.flipped
}

// Theme returns the active theme.
func (r *Renderer) Theme() *Theme {
	return r.theme
}

// s returns the scaled value for rendering.
func (r *Renderer) s(v int) float32 {
	return float32(float64(v) * r.scale)
}

// DrawBoard draws the chess board squares and coordinates.
func (r *Renderer) DrawBoard(screen *ebiten.Image) {
	for sq := rules.Square(0); sq < rules.NoSquare; sq++ {
		c := r.theme.LightSquare
		if (sq.File()+sq.Rank())%2 == 0 {
			c = r.theme.DarkSquare
		}
		r.fillSquare(screen, sq, c)
	}
	r.drawCoordinates(screen)
}

// drawCoordinates labels the bottom rank with files and the left file
// with ranks.
func (r *Renderer) drawCoordinates(screen *ebiten.Image) {
	face := scaledFace(regularFace, r.scale*0.8)
	if face == nil {
		return
	}
	for i := 0; i < 8; i++ {
		file, rank := i, i
		if r.flipped {
			file, rank = 7-i, 7-i
		}
		c := r.theme.LightSquare
		if i%2 == 0 {
			c = r.theme.DarkSquare
		}
		r.drawLabel(screen, face, string(rune('a'+file)), i*play.SquareSize+play.SquareSize-10, play.BoardSize-16, c)

		c = r.theme.DarkSquare
		if i%2 == 0 {
			c = r.theme.LightSquare
		}
		r.drawLabel(screen, face, string(rune('1'+rank)), 3, (7-i)*play.SquareSize+2, c)
	}
}

func (r *Renderer) drawLabel(screen *ebiten.Image, face *text.GoTextFace, s string, x, y int, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(r.s(x)), float64(r.s(y)))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, face, op)
}

// DrawHighlights draws last move, selection and legal target highlights.
func (r *Renderer) DrawHighlights(screen *ebiten.Image, sel play.Selection, lastMove rules.Move) {
	if lastMove != rules.NoMove {
		r.fillSquare(screen, lastMove.From(), r.theme.LastMoveColor)
		r.fillSquare(screen, lastMove.To(), r.theme.LastMoveColor)
	}
	if !sel.Active() {
		return
	}
	r.fillSquare(screen, sel.From, r.theme.SelectedSquare)
	for _, sq := range sel.Targets {
		r.drawLegalMoveIndicator(screen, sq)
	}
}

// DrawCheck highlights the king of the side to move if it is in check.
func (r *Renderer) DrawCheck(screen *ebiten.Image, pos rules.Position) {
	if !pos.InCheck() {
		return
	}
	king := rules.Piece{Type: rules.King, Color: pos.SideToMove()}
	for sq := rules.Square(0); sq < rules.NoSquare; sq++ {
		if p, ok := pos.PieceAt(sq); ok && p == king {
			r.fillSquare(screen, sq, r.theme.CheckColor)
			return
		}
	}
}

// fillSquare draws a colored overlay on a square.
func (r *Renderer) fillSquare(screen *ebiten.Image, sq rules.Square, c color.RGBA) {
	if sq == rules.NoSquare {
		return
	}
	x, y := play.SquareOrigin(sq, r.flipped)
	vector.DrawFilledRect(screen, r.s(x), r.s(y), r.s(play.SquareSize), r.s(play.SquareSize), c, false)
}

// drawLegalMoveIndicator draws a circle on legal move squares.
func (r *Renderer) drawLegalMoveIndicator(screen *ebiten.Image, sq rules.Square) {
	x, y := play.SquareOrigin(sq, r.flipped)
	cx := r.s(x) + r.s(play.SquareSize)/2
	cy := r.s(y) + r.s(play.SquareSize)/2
	radius := r.s(play.SquareSize) * 0.15

	vector.DrawFilledCircle(screen, cx, cy, radius, r.theme.LegalMoveColor, false)
}

// DrawPieces draws all pieces on the board.
func (r *Renderer) DrawPieces(screen *ebiten.Image, pos rules.Position) {
	for sq := rules.Square(0); sq < rules.NoSquare; sq++ {
		p, ok := pos.PieceAt(sq)
		if !ok {
			continue
		}
		x, y := play.SquareOrigin(sq, r.flipped)
		r.sprites.DrawPieceAt(screen, p, float64(r.s(x)), float64(r.s(y)), r.scale)
	}
}
