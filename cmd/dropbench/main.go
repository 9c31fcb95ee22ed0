//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"dropbench/internal/app"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	driver, err := cfg.Open()
	if err != nil {
		log.Fatal(err)
	}

	game := app.New(driver, cfg.Scale, cfg.Seed)
	defer game.Close()
	w, h := game.ScreenSize()

	ebiten.SetWindowTitle("dropbench — " + driver.Strategy())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Print(err)
	}
}
