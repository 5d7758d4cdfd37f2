// Command ambient-term paints the shape field in a terminal. Mouse motion is
// the pointer, focus loss is a pointer-leave, and arrow keys scroll.
package main

import (
	"flag"
	"io"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/ambient/prefabs"
	"github.com/milk9111/ambient/region"
)

// Terminal cells are drawn as cellW x cellH pixel blocks of the region.
const (
	cellW = 8
	cellH = 16

	scrollStep = cellH * 2
)

func main() {
	shapes := flag.String("shapes", prefabs.DefaultFieldFile, "field file in prefabs/")
	fps := flag.Int("fps", 30, "frames per second")
	debug := flag.Bool("debug", false, "log shape lifecycle")
	dark := flag.Bool("dark", true, "use the dark theme")
	logPath := flag.String("log", "", "write logs to this file instead of discarding them")
	flag.Parse()

	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		log.SetOutput(f)
	} else {
		log.SetOutput(io.Discard)
	}

	reg, err := prefabs.LoadRegistry(*shapes)
	if err != nil {
		log.Fatal(err)
	}
	r := region.FromRegistry(reg, *debug)
	if err := r.MountAll(); err != nil {
		log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()

	t := &term{screen: screen, region: r, dark: *dark}
	t.resize(screen.Size())
	r.SetVisible(true)

	if *fps <= 0 {
		*fps = 30
	}
	t.run(time.Second / time.Duration(*fps))
}

type term struct {
	screen tcell.Screen
	region *region.Region
	dark   bool
	scroll float64
	height float64
}

func (t *term) run(frame time.Duration) {
	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	go t.screen.ChannelEvents(events, quit)

	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	step := frame.Seconds()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			if !t.handle(ev) {
				close(quit)
				return
			}
		case <-ticker.C:
			t.region.Update(step)
			t.draw()
		}
	}
}

// handle applies one event; false means quit.
func (t *term) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC, ev.Rune() == 'q':
			return false
		case ev.Key() == tcell.KeyDown:
			t.scrollBy(scrollStep)
		case ev.Key() == tcell.KeyUp:
			t.scrollBy(-scrollStep)
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		t.region.PointerMove(cellCenter(x, y))
		switch ev.Buttons() {
		case tcell.WheelDown:
			t.scrollBy(scrollStep)
		case tcell.WheelUp:
			t.scrollBy(-scrollStep)
		}
	case *tcell.EventFocus:
		if !ev.Focused {
			t.region.PointerLeave()
		}
	case *tcell.EventResize:
		t.resize(ev.Size())
		t.screen.Sync()
	}
	return true
}

func (t *term) resize(cols, rows int) {
	t.height = float64(rows * cellH)
	t.region.Resize(float64(cols*cellW), t.height)
}

func (t *term) scrollBy(d float64) {
	t.scroll += d
	if t.scroll < 0 {
		t.scroll = 0
	}
	if t.scroll > t.height {
		t.scroll = t.height
	}
	t.region.Scroll(t.scroll)
}

func (t *term) draw() {
	cols, rows := t.screen.Size()
	canvas := Rasterize(t.region.Samples(), cols, rows, t.dark)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			c := canvas[y*cols+x]
			style := tcell.StyleDefault.Background(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
			t.screen.SetContent(x, y, ' ', nil, style)
		}
	}
	t.screen.Show()
}

func cellCenter(col, row int) (float64, float64) {
	return float64(col*cellW) + cellW/2, float64(row*cellH) + cellH/2
}
