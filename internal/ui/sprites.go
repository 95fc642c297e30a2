package ui

import (
	"fmt"
	"image"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog/log"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/amarchess/amarchess/internal/rules"
)

// Piece outlines on a 45x45 canvas. FILL and LINE are replaced per colour.
var pieceShapes = map[rules.PieceType]string{
	rules.Pawn: `<circle cx="22.5" cy="14" r="5"/>
<path d="M16 36c0-7 2.5-12 6.5-15 4 3 6.5 8 6.5 15z"/>`,
	rules.Knight: `<path d="M14 36c0-8 6-11 8-16-3 1.5-6 3-8 1 1.5-6 6-9.5 10-11l1.5-3 2 3.2c6 2.5 9 10 8 25.8z"/>
<circle cx="21.5" cy="15" r="1.3" fill="LINE"/>`,
	rules.Bishop: `<ellipse cx="22.5" cy="22" rx="6.5" ry="9"/>
<circle cx="22.5" cy="10" r="2.5"/>
<path d="M14 36c2-4 4.5-5.5 8.5-5.5s6.5 1.5 8.5 5.5z"/>
<path d="M20 21l5-5" fill="none" stroke-width="1.8"/>`,
	rules.Rook: `<path d="M12 36v-4h21v4z"/>
<path d="M14.5 32l1-13h14l1 13z"/>
<path d="M12 19v-7h4v3h4.5v-3h4v3h4.5v-3h4v7z"/>`,
	rules.Queen: `<path d="M11 36l-2.5-20 6.5 10 3-13.5 4.5 12.5 4.5-12.5 3 13.5 6.5-10-2.5 20z"/>
<circle cx="8.5" cy="14" r="2.2"/><circle cx="17.5" cy="10.5" r="2.2"/>
<circle cx="27.5" cy="10.5" r="2.2"/><circle cx="36.5" cy="14" r="2.2"/>`,
	rules.King: `<path d="M11.5 36c-2.5-9 2-15 11-15s13.5 6 11 15z"/>
<path d="M22.5 5v12M17.5 9.5h10" fill="none" stroke-width="2.2"/>`,
}

// pieceSVG returns a standalone SVG document for p.
func pieceSVG(p rules.Piece) string {
	fill, line := "#f8f8f8", "#111111"
	if p.Color == rules.Black {
		fill, line = "#2a2a2a", "#e8e8e8"
	}
	shape := strings.NewReplacer("FILL", fill, "LINE", line).Replace(pieceShapes[p.Type])
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="45" height="45" viewBox="0 0 45 45">
<g fill="%s" stroke="%s" stroke-width="1.5" stroke-linejoin="round">
<path d="M9 39.5h27v-3H9z"/>
%s
</g>
</svg>`, fill, line, shape)
}

// SpriteManager manages piece sprites.
type SpriteManager struct {
	pieces      map[rules.Piece]*ebiten.Image
	size        int     // Display size (e.g., 80)
	renderScale float64 // Render at higher resolution for quality (e.g., 3.0)
}

// NewSpriteManager creates a new sprite manager with pieces of the given size.
func NewSpriteManager(size int) *SpriteManager {
	sm := &SpriteManager{
		pieces:      make(map[rules.Piece]*ebiten.Image),
		size:        size,
		renderScale: 3.0, // Render at 3x resolution for sharp scaling
	}
	sm.loadPieces()
	return sm
}

// loadPieces rasterizes every piece sprite.
func (sm *SpriteManager) loadPieces() {
	renderSize := int(float64(sm.size) * sm.renderScale)

	for _, c := range []rules.Color{rules.White, rules.Black} {
		for _, pt := range rules.PieceTypes {
			p := rules.Piece{Type: pt, Color: c}

			icon, err := oksvg.ReadIconStream(strings.NewReader(pieceSVG(p)))
			if err != nil {
				log.Error().Err(err).Str("color", c.String()).Int("type", int(pt)).Msg("piece-svg")
				continue
			}
			icon.SetTarget(0, 0, float64(renderSize), float64(renderSize))

			rgba := image.NewRGBA(image.Rect(0, 0, renderSize, renderSize))
			scanner := rasterx.NewScannerGV(renderSize, renderSize, rgba, rgba.Bounds())
			raster := rasterx.NewDasher(renderSize, renderSize, scanner)
			icon.Draw(raster, 1.0)

			sm.pieces[p] = ebiten.NewImageFromImage(rgba)
		}
	}
}

// DrawPieceAt draws a piece at the given pixel coordinates.
func (sm *SpriteManager) DrawPieceAt(screen *ebiten.Image, p rules.Piece, x, y float64, scale float64) {
	sprite := sm.pieces[p]
	if sprite == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	// Scale down from render resolution to display size
	s := scale / sm.renderScale
	op.GeoM.Scale(s, s)
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(sprite, op)
}
