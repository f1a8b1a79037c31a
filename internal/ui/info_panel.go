// internal/ui/info_panel.go
package ui

import (
	"image"
	"image/color"
	"math"

	"go-companion-combat/internal/config"
	"go-companion-combat/internal/types"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

const (
	panelHeight    = 120
	panelMargin    = 5
	animationSpeed = 10.0
	lineHeight     = 18
	columnSpacing  = 260
)

// Button представляет кликабельную кнопку в UI.
type Button struct {
	Rect image.Rectangle
	Text string
}

// InfoPanel — выезжающая снизу панель со сведениями о выбранной сущности.
type InfoPanel struct {
	IsVisible    bool
	TargetEntity types.EntityID
	ActionButton Button
	// OnAction вызывается при клике по кнопке действия.
	OnAction func(id types.EntityID)

	fontFace font.Face
	currentY float64
	targetY  float64
}

func NewInfoPanel(face font.Face) *InfoPanel {
	return &InfoPanel{
		fontFace: face,
		currentY: config.ScreenHeight,
		targetY:  config.ScreenHeight,
	}
}

func (p *InfoPanel) SetTarget(entityID types.EntityID) {
	p.TargetEntity = entityID
	p.IsVisible = true
	p.targetY = config.ScreenHeight - panelHeight
}

func (p *InfoPanel) Hide() {
	p.targetY = config.ScreenHeight
}

// Update анимирует панель. Возвращает true, если клик в (x, y) попал
// в панель и обработан ею.
func (p *InfoPanel) Update(clicked bool, x, y int) bool {
	if p.currentY != p.targetY {
		diff := p.targetY - p.currentY
		if math.Abs(diff) < animationSpeed {
			p.currentY = p.targetY
		} else if diff > 0 {
			p.currentY += animationSpeed
		} else {
			p.currentY -= animationSpeed
		}
		if p.currentY >= config.ScreenHeight {
			p.IsVisible = false
			p.TargetEntity = types.NoEntity
		}
	}

	if !clicked || !p.IsVisible {
		return false
	}
	pt := image.Point{X: x, Y: y}
	if p.ActionButton.Text != "" && pt.In(p.ActionButton.Rect) {
		if p.OnAction != nil {
			p.OnAction(p.TargetEntity)
		}
		return true
	}
	return pt.In(p.rect())
}

func (p *InfoPanel) rect() image.Rectangle {
	return image.Rect(
		panelMargin,
		int(p.currentY)+panelMargin,
		config.ScreenWidth-panelMargin,
		int(p.currentY)+panelHeight-panelMargin,
	)
}

// Draw рисует заголовок и строки в две колонки. action — подпись кнопки,
// пустая строка прячет кнопку.
func (p *InfoPanel) Draw(screen *ebiten.Image, title string, lines []string, action string) {
	if !p.IsVisible && p.currentY >= config.ScreenHeight {
		return
	}
	panelRect := p.rect()

	bgColor := color.RGBA{R: 25, G: 35, B: 45, A: 230}
	vector.DrawFilledRect(screen, float32(panelRect.Min.X), float32(panelRect.Min.Y), float32(panelRect.Dx()), float32(panelRect.Dy()), bgColor, true)
	borderColor := color.RGBA{R: 70, G: 130, B: 180, A: 255}
	vector.StrokeRect(screen, float32(panelRect.Min.X), float32(panelRect.Min.Y), float32(panelRect.Dx()), float32(panelRect.Dy()), 2, borderColor, true)

	x := panelRect.Min.X + 15
	y := panelRect.Min.Y + 22
	text.Draw(screen, title, p.fontFace, x, y, config.TextLightColor)
	y += lineHeight + 4
	rows := (panelHeight - 50) / lineHeight
	for i, line := range lines {
		col, row := i/rows, i%rows
		text.Draw(screen, line, p.fontFace, x+col*columnSpacing, y+row*lineHeight, config.TextLightColor)
	}

	p.ActionButton.Text = action
	if action != "" {
		p.drawActionButton(screen, panelRect)
	}
}

func (p *InfoPanel) drawActionButton(screen *ebiten.Image, panelRect image.Rectangle) {
	btnWidth := 120
	btnHeight := 32
	p.ActionButton.Rect = image.Rect(
		panelRect.Max.X-btnWidth-20,
		panelRect.Max.Y-btnHeight-20,
		panelRect.Max.X-20,
		panelRect.Max.Y-20,
	)
	btnColor := color.RGBA{R: 180, G: 140, B: 20, A: 255} // Золотой цвет
	vector.DrawFilledRect(screen, float32(p.ActionButton.Rect.Min.X), float32(p.ActionButton.Rect.Min.Y), float32(btnWidth), float32(btnHeight), btnColor, true)

	textBounds := text.BoundString(p.fontFace, p.ActionButton.Text)
	textX := p.ActionButton.Rect.Min.X + (btnWidth-textBounds.Dx())/2
	textY := p.ActionButton.Rect.Min.Y + (btnHeight-textBounds.Dy())/2 - textBounds.Min.Y
	text.Draw(screen, p.ActionButton.Text, p.fontFace, textX, textY, color.White)
}
