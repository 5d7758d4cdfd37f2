package main

import (
	"fmt"
	"image/color"
	"log"
	"sync"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/ambient/common"
	"github.com/milk9111/ambient/ecs/system"
	"github.com/milk9111/ambient/prefabs"
	"github.com/milk9111/ambient/region"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"
	"gopkg.in/yaml.v3"
)

const (
	radiusStep = 25.0
	boostStep  = 0.05
	maxRadius  = 1000.0
	maxBoost   = 2.0
)

// Tuning edits a region's proximity params at runtime.
type Tuning struct {
	region   *region.Region
	defaults system.ProximityParams
	status   string

	radiusLabel *widget.Text
	boostLabel  *widget.Text
	statusLabel *widget.Text

	clipOnce sync.Once
	clipErr  error
}

func NewTuning(r *region.Region, reg *prefabs.Registry) *Tuning {
	t := &Tuning{region: r}
	t.SetDefaults(reg)
	return t
}

// SetDefaults records the registry's params as the reset target.
func (t *Tuning) SetDefaults(reg *prefabs.Registry) {
	t.defaults = system.DefaultProximityParams()
	if reg != nil {
		t.defaults = system.ProximityParams{Radius: reg.Radius, Boost: reg.Boost}.Normalized()
	}
}

func (t *Tuning) NudgeRadius(d float64) {
	p := t.region.Params()
	p.Radius = common.Clamp(p.Radius+d, 0, maxRadius)
	t.region.SetParams(p)
}

func (t *Tuning) NudgeBoost(d float64) {
	p := t.region.Params()
	p.Boost = common.Clamp(p.Boost+d, 0, maxBoost)
	t.region.SetParams(p)
}

func (t *Tuning) Reset() {
	t.region.SetParams(t.defaults)
	t.status = "reset"
}

// YAML renders the current params as a proximity block for the field file.
func (t *Tuning) YAML() ([]byte, error) {
	doc := struct {
		Proximity system.ProximityParams `yaml:"proximity"`
	}{Proximity: t.region.Params()}
	return yaml.Marshal(doc)
}

// Copy puts YAML on the system clipboard.
func (t *Tuning) Copy() error {
	t.clipOnce.Do(func() { t.clipErr = clipboard.Init() })
	if t.clipErr != nil {
		t.status = "clipboard unavailable"
		return fmt.Errorf("clipboard: %w", t.clipErr)
	}
	b, err := t.YAML()
	if err != nil {
		return err
	}
	clipboard.Write(clipboard.FmtText, b)
	t.status = "copied"
	return nil
}

// Refresh syncs the overlay labels with the region.
func (t *Tuning) Refresh() {
	p := t.region.Params()
	if t.radiusLabel != nil {
		t.radiusLabel.Label = fmt.Sprintf("Radius: %.0f", p.Radius)
	}
	if t.boostLabel != nil {
		t.boostLabel.Label = fmt.Sprintf("Boost: %.2f", p.Boost)
	}
	if t.statusLabel != nil {
		t.statusLabel.Label = t.status
	}
}

// NewTuningUI builds the overlay toggled with Tab: radius and boost steppers,
// reset, and copy-as-yaml.
func NewTuningUI(t *Tuning) *ebitenui.UI {
	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})
	btnPressed := imageui.NewNineSliceColor(color.NRGBA{R: 0x55, G: 0x55, B: 0x55, A: 255})

	goFace := ebtext.NewGoXFace(basicfont.Face7x13)
	var face ebtext.Face = goFace

	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}

	label := func(s string) *widget.Text {
		return widget.NewText(
			widget.TextOpts.Text(s, &face, white),
			widget.TextOpts.WidgetOpts(widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})),
		)
	}
	button := func(s string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnPressed}),
			widget.ButtonOpts.Text(s, &face, btnTextColor),
			widget.ButtonOpts.ClickedHandler(func(*widget.ButtonClickedEventArgs) {
				onClick()
				t.Refresh()
			}),
		)
	}
	row := func(children ...widget.PreferredSizeLocateableWidget) *widget.Container {
		c := widget.NewContainer(
			widget.ContainerOpts.Layout(widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(8),
			)),
		)
		for _, child := range children {
			c.AddChild(child)
		}
		return c
	}

	t.radiusLabel = label("")
	t.boostLabel = label("")
	t.statusLabel = label("")
	t.Refresh()

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(common.BaseWidth/4, 0),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionEnd, VerticalPosition: widget.AnchorLayoutPositionStart}),
		),
	)
	panel.AddChild(label("Tuning"))
	panel.AddChild(row(
		button("-", func() { t.NudgeRadius(-radiusStep) }),
		t.radiusLabel,
		button("+", func() { t.NudgeRadius(radiusStep) }),
	))
	panel.AddChild(row(
		button("-", func() { t.NudgeBoost(-boostStep) }),
		t.boostLabel,
		button("+", func() { t.NudgeBoost(boostStep) }),
	))
	panel.AddChild(row(
		button("Reset", t.Reset),
		button("Copy YAML", func() {
			if err := t.Copy(); err != nil {
				log.Printf("tuning: %v", err)
			}
		}),
	))
	panel.AddChild(t.statusLabel)

	root := widget.NewContainer(
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
	)
	root.AddChild(panel)

	return &ebitenui.UI{Container: root}
}
