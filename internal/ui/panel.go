package ui

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/amarchess/amarchess/internal/engine"
	"github.com/amarchess/amarchess/internal/play"
	"github.com/amarchess/amarchess/internal/rules"
)

// Panel dimensions
const (
	PanelPadding   = 20
	SectionSpacing = 16
	ButtonHeight   = 36
	TabHeight      = 30
	SectionLabelH  = 20
	statusBarH     = 70
)

// Panel colors
var (
	panelBg         = color.RGBA{38, 40, 45, 255}
	tabActiveBg     = color.RGBA{76, 132, 96, 255}
	tabInactiveBg   = color.RGBA{50, 54, 60, 255}
	tabHoverBg      = color.RGBA{65, 70, 78, 255}
	buttonBg        = color.RGBA{50, 54, 60, 255}
	buttonHoverBg   = color.RGBA{65, 70, 78, 255}
	buttonPressedBg = color.RGBA{40, 44, 50, 255}
	buttonBorder    = color.RGBA{70, 75, 82, 255}
	accentColor     = color.RGBA{76, 175, 120, 255}
	accentHover     = color.RGBA{96, 195, 140, 255}
	textPrimary     = color.RGBA{240, 240, 245, 255}
	textSecondary   = color.RGBA{160, 165, 175, 255}
	textMuted       = color.RGBA{120, 125, 135, 255}
	dividerColor    = color.RGBA{60, 65, 72, 255}
	moveRowAlt      = color.RGBA{44, 48, 54, 255}
	statusThinking  = color.RGBA{100, 180, 255, 255}
	statusGameOver  = color.RGBA{255, 200, 80, 255}
)

// Button represents a clickable UI element.
type Button struct {
	X, Y, W, H int
	Label      string
	OnClick    func()
	Active     func() bool // nil for plain buttons
	Visible    func() bool // nil means always shown
	primary    bool
	hovered    bool
}

func (b *Button) shown() bool {
	return b.Visible == nil || b.Visible()
}

func (b *Button) contains(mx, my int) bool {
	return mx >= b.X && mx < b.X+b.W && my >= b.Y && my < b.Y+b.H
}

// section is the label above a row of buttons.
type section struct {
	label   string
	y       int
	visible func() bool
}

// Panel represents the side panel with controls and move history.
type Panel struct {
	game     *Game
	scale    float64
	buttons  []*Button
	sections []section
	historyY int

	// Move history scroll
	scrollY    int
	maxScrollY int
}

// NewPanel creates a new panel for the given game.
func NewPanel(g *Game) *Panel {
	p := &Panel{game: g, scale: 1.0}
	p.createButtons()
	return p
}

// SetScale sets the HiDPI scale factor for drawing.
func (p *Panel) SetScale(scale float64) {
	p.scale = scale
}

// row lays out labels as equal-width buttons starting at y.
func row(y, h int, labels ...string) []*Button {
	contentX := BoardSize + PanelPadding
	w := (PanelWidth - PanelPadding*2) / len(labels)
	out := make([]*Button, len(labels))
	for i, l := range labels {
		out[i] = &Button{X: contentX + i*w, Y: y, W: w, H: h, Label: l}
	}
	return out
}

// createButtons initializes all panel buttons.
func (p *Panel) createButtons() {
	g := p.game
	y := PanelPadding

	actions := row(y, ButtonHeight, "New Game", "Engine Move", "Flip")
	actions[0].primary = true
	actions[0].OnClick = g.NewGameAction
	actions[1].OnClick = g.EngineMoveAction
	actions[2].OnClick = g.FlipAction
	p.buttons = append(p.buttons, actions...)
	y += ButtonHeight + SectionSpacing

	vsComputer := func() bool { return g.session.Mode() == play.HumanVsComputer }

	add := func(label string, visible func() bool, buttons []*Button) {
		for _, b := range buttons {
			b.Visible = visible
		}
		p.sections = append(p.sections, section{label: label, y: y, visible: visible})
		p.buttons = append(p.buttons, buttons...)
		y += SectionLabelH + TabHeight + SectionSpacing
	}

	modes := row(y+SectionLabelH, TabHeight, "vs Human", "vs Computer")
	for i, b := range modes {
		mode := play.Mode(i)
		b.OnClick = func() { g.SetMode(mode) }
		b.Active = func() bool { return g.session.Mode() == mode }
	}
	add("Game Mode", nil, modes)

	sides := row(y+SectionLabelH, TabHeight, "White", "Black")
	for i, b := range sides {
		c := rules.Color(i)
		b.OnClick = func() { g.SetHuman(c) }
		b.Active = func() bool { return g.session.Human() == c }
	}
	add("Play As", vsComputer, sides)

	diffs := row(y+SectionLabelH, TabHeight, "Easy", "Medium", "Hard")
	for i, b := range diffs {
		d := engine.Difficulty(i)
		b.Label = fmt.Sprintf("%s (%d)", b.Label, d.Depth())
		b.OnClick = func() { g.SetDifficulty(d) }
		b.Active = func() bool { return g.difficulty == d }
	}
	add("Difficulty", vsComputer, diffs)

	search := row(y+SectionLabelH, TabHeight, "Table", "Captures First")
	search[0].OnClick = g.ToggleTransposition
	search[0].Active = func() bool { return g.session.Options().Transposition }
	search[1].OnClick = g.ToggleCaptureFirst
	search[1].Active = func() bool { return g.session.Options().CaptureFirst }
	add("Search", nil, search)

	p.historyY = y
}

// HandleInput processes input for the panel. Returns true if input was handled.
func (p *Panel) HandleInput(input *InputHandler) bool {
	mx, my := input.MousePosition()

	_, wheelY := ebiten.Wheel()
	if wheelY != 0 && mx >= BoardSize && my >= p.historyY && my < ScreenHeight-statusBarH {
		p.scrollY -= int(wheelY * 30) // 30px per scroll tick
		p.scrollY = max(0, min(p.scrollY, p.maxScrollY))
	}

	for _, b := range p.buttons {
		b.hovered = b.shown() && b.contains(mx, my)
	}

	if !input.IsLeftJustPressed() {
		return false
	}
	for _, b := range p.buttons {
		if b.hovered {
			b.OnClick()
			return true
		}
	}
	return false
}

// AnyButtonHovered returns true if any button in the panel is hovered.
func (p *Panel) AnyButtonHovered() bool {
	for _, b := range p.buttons {
		if b.hovered {
			return true
		}
	}
	return false
}

// Draw renders the panel.
func (p *Panel) Draw(screen *ebiten.Image) {
	p.fillRect(screen, BoardSize, 0, PanelWidth, ScreenHeight, panelBg)

	for _, sec := range p.sections {
		if sec.visible == nil || sec.visible() {
			p.drawText(screen, sec.label, BoardSize+PanelPadding, sec.y, textMuted)
		}
	}
	for _, b := range p.buttons {
		if b.shown() {
			p.drawButton(screen, b)
		}
	}

	p.drawText(screen, "Moves", BoardSize+PanelPadding, p.historyY, textMuted)
	p.drawMoveHistory(screen, p.historyY+SectionLabelH+4)

	p.drawStatusBar(screen)
}

func (p *Panel) drawButton(screen *ebiten.Image, b *Button) {
	active := b.Active != nil && b.Active()

	bg, border, fg := buttonBg, buttonBorder, textSecondary
	switch {
	case b.primary && b.hovered:
		bg, border, fg = accentHover, accentHover, textPrimary
	case b.primary:
		bg, border, fg = accentColor, accentColor, textPrimary
	case active:
		bg, border, fg = tabActiveBg, tabActiveBg, textPrimary
	case b.hovered && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
		bg, border = buttonPressedBg, accentColor
	case b.hovered:
		bg, border = buttonHoverBg, accentColor
	case b.Active != nil:
		bg = tabInactiveBg
	}
	if b.Active != nil && !active && b.hovered {
		bg = tabHoverBg
	}

	p.fillRect(screen, b.X, b.Y, b.W, b.H, bg)
	vector.StrokeRect(screen, p.s(b.X), p.s(b.Y), p.s(b.W), p.s(b.H), 1, border, false)
	p.drawTextCentered(screen, b.Label, b.X+b.W/2, b.Y+b.H/2, fg)
}

func (p *Panel) drawMoveHistory(screen *ebiten.Image, startY int) {
	moves := p.game.session.SANHistory()
	if len(moves) == 0 {
		p.drawText(screen, "No moves yet", BoardSize+PanelPadding, startY+5, textMuted)
		return
	}

	x := BoardSize + PanelPadding
	rowHeight := 22
	maxY := ScreenHeight - statusBarH
	visibleHeight := maxY - startY

	totalRows := (len(moves) + 1) / 2
	contentHeight := totalRows * rowHeight
	p.maxScrollY = max(0, contentHeight-visibleHeight)
	p.scrollY = min(p.scrollY, p.maxScrollY)

	startRow := p.scrollY / rowHeight
	y := startY - (p.scrollY % rowHeight)

	for i := startRow * 2; i < len(moves); i += 2 {
		if y > maxY-rowHeight {
			break
		}
		if y >= startY {
			if (i/2)%2 == 1 {
				p.fillRect(screen, x-4, y-2, PanelWidth-PanelPadding*2+8, rowHeight, moveRowAlt)
			}
			p.drawText(screen, fmt.Sprintf("%d.", i/2+1), x, y, textMuted)
			p.drawText(screen, moves[i], x+36, y, textPrimary)
			if i+1 < len(moves) {
				p.drawText(screen, moves[i+1], x+120, y, textPrimary)
			}
		}
		y += rowHeight
	}

	if p.maxScrollY > 0 {
		scrollPct := float64(p.scrollY) / float64(p.maxScrollY)
		indicatorH := max(20, visibleHeight*visibleHeight/contentHeight)
		indicatorY := startY + int(scrollPct*float64(visibleHeight-indicatorH))
		p.fillRect(screen, BoardSize+PanelWidth-8, indicatorY, 4, indicatorH, textMuted)
	}
}

func (p *Panel) drawStatusBar(screen *ebiten.Image) {
	s := p.game.session
	statusY := ScreenHeight - statusBarH + 10
	x := BoardSize + PanelPadding

	p.fillRect(screen, x, statusY-10, PanelWidth-PanelPadding*2, 1, dividerColor)

	var statusText string
	statusColor := textPrimary
	switch {
	case s.Status() != play.Ongoing:
		statusText, statusColor = s.ResultText(), statusGameOver
	case s.Thinking():
		statusText, statusColor = fmt.Sprintf("Engine thinking (depth %d)...", s.Depth()), statusThinking
	default:
		statusText = "White to move"
		if s.Position().SideToMove() == rules.Black {
			statusText = "Black to move"
		}
	}
	p.drawTextFace(screen, boldFace, statusText, x, statusY, statusColor)

	if res := s.LastSearch(); res.Move != rules.NoMove {
		info := fmt.Sprintf("%s  %s  %d nodes  %v", res.Move, engine.ScoreToString(res.Score, res.Depth),
			res.Nodes, res.Time.Round(time.Millisecond))
		if n := len(res.Iterations); n > 0 && s.Options().Transposition {
			info += fmt.Sprintf("  tt %.0f%%", res.Iterations[n-1].HitRate)
		}
		p.drawText(screen, info, x, statusY+22, textSecondary)
	}
}

func (p *Panel) s(v int) float32 {
	return float32(float64(v) * p.scale)
}

func (p *Panel) fillRect(screen *ebiten.Image, x, y, w, h int, c color.Color) {
	vector.DrawFilledRect(screen, p.s(x), p.s(y), p.s(w), p.s(h), c, false)
}

// Text drawing helpers
func (p *Panel) drawText(screen *ebiten.Image, str string, x, y int, c color.Color) {
	p.drawTextFace(screen, regularFace, str, x, y, c)
}

func (p *Panel) drawTextFace(screen *ebiten.Image, base *text.GoTextFace, str string, x, y int, c color.Color) {
	face := scaledFace(base, p.scale)
	if face == nil {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(p.s(x)), float64(p.s(y)))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, str, face, op)
}

func (p *Panel) drawTextCentered(screen *ebiten.Image, str string, centerX, centerY int, c color.Color) {
	face := scaledFace(regularFace, p.scale)
	if face == nil {
		return
	}
	w, h := MeasureText(str, face)
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(p.s(centerX))-w/2, float64(p.s(centerY))-h/2)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, str, face, op)
}
