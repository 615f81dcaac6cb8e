// Command director runs the Orchestrator: it drives the player engine,
// pushes rendered frames into the broker's queue, and relays brightness
// updates from the Ambient controller to the renderer.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/apex/log"
	logcli "github.com/apex/log/handlers/cli"

	"github.com/basso-labs/ledsign/internal/brokerclient"
	"github.com/basso-labs/ledsign/internal/config"
	"github.com/basso-labs/ledsign/internal/demomovie"
	"github.com/basso-labs/ledsign/internal/director"
	"github.com/basso-labs/ledsign/internal/player"
	"github.com/basso-labs/ledsign/internal/rasterizer"
)

func main() {
	fs := flag.NewFlagSet("director", flag.ExitOnError)
	common := config.RegisterCommon(fs)
	width := fs.Int("width", config.DefaultWidth, "sign pixel width")
	height := fs.Int("height", config.DefaultHeight, "sign pixel height")
	fps := fs.Int("fps", config.DefaultFPS, "renderer frame rate")
	fs.Parse(os.Args[1:])

	log.SetHandler(logcli.New(os.Stderr))
	if common.Debug {
		log.SetLevel(log.DebugLevel)
	}

	if err := run(common.Broker, *width, *height, *fps); err != nil {
		log.Errorf("ledsign: director: fatal: %s", err.Error())
		os.Exit(1)
	}
}

func run(brokerPath string, width, height, fps int) error {
	broker := brokerclient.New(brokerPath)
	defer broker.Close()

	canvas := rasterizer.New(width, height)
	engine := player.New(canvas, demomovie.Registry(), fps)
	if err := engine.Load(demomovie.Movie()); err != nil {
		return err
	}

	d := director.New(engine, broker, log.Log, fps)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stopBrightness, err := d.Startup(ctx)
	if err != nil {
		return err
	}
	defer stopBrightness()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigc
		log.Info("ledsign: director: shutting down")
		d.Stop()
		cancel()
	}()

	d.Run(ctx)
	return nil
}
