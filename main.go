package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/nodefield/internal/ambient"
	"github.com/iburimskiy/nodefield/internal/config"
	"github.com/iburimskiy/nodefield/internal/game"
	"github.com/iburimskiy/nodefield/internal/term"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a nodefield.yaml (default: search $"+config.EnvConfig+", ./nodefield.yaml, ~/.config/nodefield)")
		terminal   = flag.Bool("term", false, "draw in the terminal instead of a window")
		hum        = flag.Bool("ambient", false, "play an ambient drone that follows the links")
		debug      = flag.Bool("debug", false, "show TPS and node counts")
	)
	flag.Parse()

	cfg, path, err := loadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if path != "" {
		log.Printf("loaded config %s", path)
	}

	var h *ambient.Hum
	if *hum || cfg.Ambient.Enabled {
		h = ambient.NewHum(ambient.SampleRate, cfg.Ambient.Frequency, cfg.Ambient.Volume)
		if err := ambient.Start(h); err != nil {
			// Non-fatal, the field runs silent
			log.Printf("ambient audio disabled: %v", err)
			h = nil
		} else {
			defer ambient.Close()
		}
	}

	if *terminal {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		if err := term.Run(ctx, cfg, h); err != nil {
			log.Fatal(err)
		}
		return
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetTPS(cfg.Window.TPS)
	if cfg.Window.Resizable != nil && *cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	g := game.NewGame(cfg, game.WithHum(h), game.WithDebug(*debug))
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}

func loadConfig(path string) (*config.Config, string, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}
