// Command player is a headless diagnostic binary for the Renderer: it
// loads the default movie, drives a fixed number of Play calls, and
// either dumps raw BGRA frames to stdout or reports wrap/cycle counts.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/apex/log"
	logcli "github.com/apex/log/handlers/cli"

	"github.com/basso-labs/ledsign/internal/config"
	"github.com/basso-labs/ledsign/internal/demomovie"
	"github.com/basso-labs/ledsign/internal/player"
	"github.com/basso-labs/ledsign/internal/rasterizer"
)

func main() {
	fs := flag.NewFlagSet("player", flag.ExitOnError)
	common := config.RegisterCommon(fs)
	width := fs.Int("width", config.DefaultWidth, "sign pixel width")
	height := fs.Int("height", config.DefaultHeight, "sign pixel height")
	fps := fs.Int("fps", config.DefaultFPS, "renderer frame rate")
	frames := fs.Int("frames", 0, "number of Play calls to drive; 0 means one full cycle")
	dumpFrames := fs.Bool("dump", false, "write raw BGRA frames to stdout instead of reporting counts")
	fs.Parse(os.Args[1:])

	log.SetHandler(logcli.New(os.Stderr))
	if common.Debug {
		log.SetLevel(log.DebugLevel)
	}

	canvas := rasterizer.New(*width, *height)
	engine := player.New(canvas, demomovie.Registry(), *fps)
	if err := engine.Load(demomovie.Movie()); err != nil {
		log.Errorf("ledsign: player: fatal: %s", err.Error())
		os.Exit(1)
	}

	n := *frames
	if n <= 0 {
		n = engine.Frames()
	}

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	wraps := 0
	for i := 0; i < n; i++ {
		if engine.Play() {
			wraps++
		}
		if *dumpFrames {
			out.Write(engine.GetImageData())
		}
	}

	if !*dumpFrames {
		fmt.Fprintf(os.Stderr, "ledsign: player: frames=%d wraps=%d cycle=%d\n", n, wraps, engine.Cycle())
	}
}
