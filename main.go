package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/ambient/common"
	"github.com/milk9111/ambient/prefabs"
)

func main() {
	shapes := flag.String("shapes", prefabs.DefaultFieldFile, "field file in prefabs/ (embedded copy used when missing on disk)")
	watch := flag.Bool("watch", false, "reload the field file and filler scripts when they change on disk")
	debug := flag.Bool("debug", false, "draw anchors and influence rings, log shape lifecycle")
	dark := flag.Bool("dark", false, "use the dark theme")
	tps := flag.Int("tps", 0, "ticks per second (0 follows the display)")
	flag.Parse()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("ambient")
	if *tps > 0 {
		ebiten.SetTPS(*tps)
	} else {
		ebiten.SetTPS(ebiten.SyncWithFPS)
	}

	game, err := NewGame(*shapes, *watch, *debug, *dark)
	if err != nil {
		log.Fatal(err)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
