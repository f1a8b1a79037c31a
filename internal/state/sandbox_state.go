// internal/state/sandbox_state.go
package state

import (
	"fmt"
	"image/color"
	"time"

	"go-companion-combat/internal/app"
	"go-companion-combat/internal/companion"
	"go-companion-combat/internal/component"
	"go-companion-combat/internal/config"
	"go-companion-combat/internal/system"
	"go-companion-combat/internal/types"
	"go-companion-combat/internal/ui"
	"go-companion-combat/pkg/logger"
	"go-companion-combat/pkg/render"
	"go-companion-combat/pkg/utils"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var _ State = (*SandboxState)(nil)

// SandboxState — основное состояние окна: мир, кнопки и карточки компаньонов.
type SandboxState struct {
	sm       *StateMachine
	sandbox  *app.Sandbox
	camera   render.Camera
	ground   *GroundRenderer
	pause    *ui.PauseButton
	speed    *ui.SpeedButton
	info     *ui.InfoPanel
	levels   []*ui.LevelIndicator
	satiety  []*ui.SatiationIndicator
	dots     []*ui.StateIndicator
	selected types.EntityID
	message  string
	msgUntil time.Time
}

func NewSandboxState(sm *StateMachine, sandbox *app.Sandbox) *SandboxState {
	camera := render.Camera{
		Scale:        config.WorldScale,
		ScreenWidth:  config.ScreenWidth,
		ScreenHeight: config.ScreenHeight,
	}
	gs := &SandboxState{
		sm:      sm,
		sandbox: sandbox,
		camera:  camera,
		ground: NewGroundRenderer(camera, config.GroundCellSize, func(p utils.Vec3) color.RGBA {
			return config.BiomeColors[string(app.BiomeAt(p))]
		}),
		pause: ui.NewPauseButton(
			float32(config.ScreenWidth-config.PauseButtonOffsetX), float32(config.SpeedButtonY),
			float32(config.SpeedButtonSize), config.PauseColor, config.PlayColor),
		speed: ui.NewSpeedButton(
			float32(config.ScreenWidth-config.SpeedButtonOffsetX), float32(config.SpeedButtonY),
			float32(config.SpeedButtonSize), config.SpeedButtonColors),
	}
	for i := range sandbox.Members() {
		y := float32(config.HUDPanelY + i*config.HUDCardHeight)
		gs.levels = append(gs.levels, ui.NewLevelIndicator(config.HUDPanelX, y+18))
		gs.satiety = append(gs.satiety, ui.NewSatiationIndicator(config.HUDPanelX, y+50))
		gs.dots = append(gs.dots, ui.NewStateIndicator(config.HUDPanelX+140, y+8, config.IndicatorRadius))
	}
	gs.info = ui.NewInfoPanel(basicfont.Face7x13)
	gs.info.OnAction = gs.feed
	return gs
}

func (g *SandboxState) Enter() {
	g.pause.SetPaused(false)
	g.sandbox.SetPaused(false)
}

// SetPaused синхронизирует кнопку и симуляцию при выходе из паузы.
func (g *SandboxState) SetPaused(paused bool) {
	g.pause.SetPaused(paused)
	g.sandbox.SetPaused(paused)
}

func (g *SandboxState) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.openPause()
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.save()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.reload()
	}

	clicked := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	x, y := ebiten.CursorPosition()
	if g.info.Update(clicked, x, y) {
		clicked = false
	}
	if clicked {
		switch {
		case g.pause.IsClicked(x, y):
			g.pause.TogglePause()
			g.openPause()
			return
		case g.speed.IsClicked(x, y):
			g.speed.ToggleState()
			g.sandbox.SetSpeed(config.SpeedMultipliers[g.speed.CurrentState])
		default:
			g.selected = g.findEntityAt(x, y)
			if g.selected != types.NoEntity {
				g.info.SetTarget(g.selected)
			} else {
				g.info.Hide()
			}
		}
	}

	g.sandbox.Update(deltaTime)
}

func (g *SandboxState) openPause() {
	g.SetPaused(true)
	g.sm.SetState(NewPauseState(g.sm, g))
}

func (g *SandboxState) save() {
	path := g.sandbox.Settings().StatePath
	if path == "" {
		g.flash("COMPANION_STATE_PATH is not set")
		return
	}
	if err := g.sandbox.Save(path); err != nil {
		logger.Log.WithError(err).Warn("sandbox: save failed")
		g.flash("save failed")
		return
	}
	g.flash("saved to " + path)
}

func (g *SandboxState) reload() {
	path := g.sandbox.Settings().DefsPath
	if path == "" {
		g.flash("COMPANION_DEFS_PATH is not set")
		return
	}
	if err := g.sandbox.ReloadDefs(path); err != nil {
		logger.Log.WithError(err).Warn("sandbox: reload failed")
		g.flash("reload failed")
		return
	}
	g.flash("balance reloaded")
}

// feed кормит выбранного компаньона из панели сведений.
func (g *SandboxState) feed(id types.EntityID) {
	if c := g.member(id); c != nil {
		c.Feed(config.FeedAmount)
		g.flash("fed " + string(c.State().Element))
	}
}

func (g *SandboxState) member(id types.EntityID) *companion.Companion {
	for _, c := range g.sandbox.Members() {
		if c.EntityID() == id {
			return c
		}
	}
	return nil
}

func (g *SandboxState) flash(msg string) {
	g.message = msg
	g.msgUntil = time.Now().Add(2 * time.Second)
}

// findEntityAt возвращает ближайшую к курсору живую сущность в пределах двух блоков.
func (g *SandboxState) findEntityAt(x, y int) types.EntityID {
	p := g.camera.ScreenToWorld(float32(x), float32(y))
	found := g.sandbox.World.FindEntities(component.Sphere{Center: p, Radius: 2}, func(e component.Entity) bool {
		return e.Kind.IsLiving()
	})
	best := types.NoEntity
	bestDist := 0.0
	for _, e := range found {
		d := e.Position.Horizontal().DistanceSq(p)
		if best == types.NoEntity || d < bestDist {
			best, bestDist = e.ID, d
		}
	}
	return best
}

func (g *SandboxState) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	g.ground.Draw(screen)
	g.drawClouds(screen)
	g.drawEntities(screen)
	g.drawExplosions(screen)
	g.drawHUD(screen)
	g.speed.Draw(screen)
	g.pause.Draw(screen)
}

func (g *SandboxState) drawClouds(screen *ebiten.Image) {
	for _, c := range g.sandbox.World.Clouds() {
		if !g.camera.Visible(c.Position, float32(c.Radius*g.camera.Scale)) {
			continue
		}
		clr, ok := config.ParticleColors[c.Particle]
		if !ok {
			clr = config.TextLightColor
		}
		x, y := g.camera.WorldToScreen(c.Position)
		r := float32(c.Radius * g.camera.Scale)
		vector.DrawFilledCircle(screen, x, y, r, render.WithAlpha(clr, 60), true)
		vector.StrokeCircle(screen, x, y, r, 1, render.WithAlpha(clr, 160), true)
	}
}

func (g *SandboxState) drawEntities(screen *ebiten.Image) {
	for _, e := range g.sandbox.World.Entities() {
		if e.Kind == types.KindCloud || !g.camera.Visible(e.Position, 20) {
			continue
		}
		x, y := g.camera.WorldToScreen(e.Position)
		switch e.Kind {
		case types.KindProjectile:
			clr, ok := config.ElementColors[e.Species]
			if !ok {
				clr = config.ProjectileColor
			}
			vector.DrawFilledCircle(screen, x, y, 3, clr, true)
			continue
		case types.KindItem:
			vector.DrawFilledRect(screen, x-3, y-3, 6, 6, config.ItemColor, false)
			continue
		}

		clr := g.entityColor(e)
		if _, slowed := g.sandbox.World.Effect(e.ID, types.EffectSlowness); slowed {
			clr = render.BlendColor(clr, config.ParticleColors["snowflake"], 0.5)
		}
		radius := float32(e.Height * g.camera.Scale / 3)
		vector.DrawFilledCircle(screen, x, y, radius, clr, true)
		if e.ID == g.selected {
			vector.StrokeCircle(screen, x, y, radius+3, 2, config.StrokeColor, true)
		}
		if e.Kind == types.KindHostile && e.MaxHealth > 0 {
			ratio := float32(e.Health / e.MaxHealth)
			vector.DrawFilledRect(screen, x-radius, y-radius-5, 2*radius, 3, render.DarkenColor(config.HostileColor), false)
			vector.DrawFilledRect(screen, x-radius, y-radius-5, 2*radius*ratio, 3, config.HostileColor, false)
		}
	}
}

func (g *SandboxState) entityColor(e component.Entity) color.RGBA {
	switch e.Kind {
	case types.KindHostile:
		return config.HostileColor
	case types.KindPassive:
		return config.PassiveColor
	case types.KindPlayer:
		return config.PlayerColor
	case types.KindCompanion:
		if c := g.member(e.ID); c != nil {
			return config.ElementColors[string(c.State().Element)]
		}
	}
	return config.TextLightColor
}

// drawExplosions рисует затухающие кольца взрывов за последнюю секунду.
func (g *SandboxState) drawExplosions(screen *ebiten.Image) {
	now := g.sandbox.Tick()
	list := g.sandbox.World.Explosions()
	for i := len(list) - 1; i >= 0; i-- {
		ex := list[i]
		age := now - ex.Tick
		if age > config.TicksPerSecond {
			break
		}
		fade := 1 - float64(age)/config.TicksPerSecond
		x, y := g.camera.WorldToScreen(ex.Position)
		r := float32(float64(ex.Power) * 2 * g.camera.Scale * (1 - fade/2))
		vector.StrokeCircle(screen, x, y, r, 2, render.WithAlpha(config.ExplosionColor, uint8(255*fade)), true)
	}
}

func (g *SandboxState) drawHUD(screen *ebiten.Image) {
	face := basicfont.Face7x13
	waves := g.sandbox.Waves
	header := fmt.Sprintf("tick %d  wave %d  killed %d  leaked %d  items %d  x%.0f",
		g.sandbox.Tick(), waves.Number(), waves.Killed, waves.Leaked, g.sandbox.Collected, g.sandbox.Speed())
	text.Draw(screen, header, face, config.HUDPanelX, 24, config.TextLightColor)

	lib := g.sandbox.Defs.Current()
	for i, c := range g.sandbox.Members() {
		st := c.State()
		y := config.HUDPanelY + i*config.HUDCardHeight
		label := fmt.Sprintf("%s  L%d  %s", st.Element, st.Level, c.Scheduler().State())
		if clouds := len(c.Clouds().Clouds()); clouds > 0 {
			label += fmt.Sprintf("  clouds %d", clouds)
		}
		text.Draw(screen, label, face, config.HUDPanelX, y+12, config.ElementColors[string(st.Element)])

		g.dots[i].Draw(screen, config.SchedulerColors[c.Scheduler().State()])
		fill := render.DarkenColor(config.ElementColors[string(st.Element)])
		g.levels[i].Draw(screen, st.Level, st.Experience, system.ExperienceToNext(lib, st.Level), fill)
		g.satiety[i].Draw(screen, st.Satiation, system.MaxSatiation(lib, st.Level))
	}

	g.drawInfo(screen)
	if g.message != "" && time.Now().Before(g.msgUntil) {
		text.Draw(screen, g.message, face, config.ScreenWidth/2-len(g.message)*7/2, config.ScreenHeight-40, config.TextLightColor)
	}
}

// drawInfo заполняет панель сведений о выбранной сущности.
func (g *SandboxState) drawInfo(screen *ebiten.Image) {
	e, ok := g.sandbox.World.Entity(g.info.TargetEntity)
	if g.info.TargetEntity != types.NoEntity && !ok {
		g.info.Hide()
	}
	title := fmt.Sprintf("#%d %s %s", e.ID, e.Kind, e.Species)
	if e.CustomName != "" {
		title += " \"" + e.CustomName + "\""
	}
	lines := []string{
		fmt.Sprintf("health %.1f / %.1f", e.Health, e.MaxHealth),
		fmt.Sprintf("position %.1f %.1f %.1f", e.Position.X, e.Position.Y, e.Position.Z),
		fmt.Sprintf("biome %s", g.sandbox.World.BiomeAt(e.Position)),
	}
	for _, tag := range []types.EffectTag{types.EffectSlowness, types.EffectMiningFatigue, types.EffectBlindness, types.EffectRegeneration, types.EffectSpeed, types.EffectBurning} {
		if eff, has := g.sandbox.World.Effect(e.ID, tag); has {
			lines = append(lines, fmt.Sprintf("%s %d (%d ticks)", tag, eff.Amplifier+1, eff.Remaining))
		}
	}

	action := ""
	if c := g.member(e.ID); c != nil {
		stats := c.Stats(g.sandbox.World)
		lines = append(lines,
			fmt.Sprintf("damage %.1f  cooldown %d", stats.Damage, stats.CooldownTicks),
			fmt.Sprintf("control %.2f  home %v", stats.ControlStrength, stats.HomeBiomeBoosted),
		)
		for slot, en := range c.State().Enchantments {
			if !en.Empty() {
				lines = append(lines, fmt.Sprintf("slot %d: %s %d", slot, en.Type, en.Level))
			}
		}
		action = "Feed"
	}
	g.info.Draw(screen, title, lines, action)
}

func (g *SandboxState) Exit() {}
