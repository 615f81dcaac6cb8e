// Command sender runs the Transport: it pops frames from the broker and
// emits them to the FPGA receiver card on a raw Layer-2 socket.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/apex/log"
	logcli "github.com/apex/log/handlers/cli"

	"github.com/basso-labs/ledsign"
	"github.com/basso-labs/ledsign/internal/brokerclient"
	"github.com/basso-labs/ledsign/internal/config"
	"github.com/basso-labs/ledsign/internal/sender"
)

func main() {
	fs := flag.NewFlagSet("sender", flag.ExitOnError)
	common := config.RegisterCommon(fs)
	iface := fs.String("iface", config.DefaultInterface, "network interface to bind the raw socket to")
	width := fs.Int("width", config.DefaultWidth, "sign pixel width")
	height := fs.Int("height", config.DefaultHeight, "sign pixel height")
	pcapFile := fs.String("pcap", "", "optional: dump every emitted packet to this PCAP file")
	fs.Parse(os.Args[1:])

	log.SetHandler(logcli.New(os.Stderr))
	if common.Debug {
		log.SetLevel(log.DebugLevel)
	}

	if err := run(*iface, common.Broker, *pcapFile, *width, *height); err != nil {
		log.Errorf("ledsign: sender: fatal: %s", err.Error())
		os.Exit(1)
	}
}

func run(iface, brokerPath, pcapFile string, width, height int) error {
	socket := ledsign.Must1(sender.OpenRawSocket(iface))

	if pcapFile != "" {
		var err error
		socket, err = sender.NewPCAPDumper(pcapFile, socket, log.Log)
		if err != nil {
			return err
		}
	}
	defer socket.Close()

	broker := brokerclient.New(brokerPath)
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	seedBrightnessIfAbsent(ctx, broker)

	s := sender.New(socket, sender.RawMonotonicClock{}, broker, log.Log, width, height)

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigc
		log.Info("ledsign: sender: shutting down")
		s.Stop()
		cancel()
	}()

	s.Run(ctx)
	return nil
}

// seedBrightnessIfAbsent sets sender:brightness to its default if it has
// never been published, per spec.md §4.1 startup.
func seedBrightnessIfAbsent(ctx context.Context, broker brokerclient.Client) {
	if _, ok, err := broker.GetInt(ctx, brokerclient.SenderBrightnessKey); err == nil && !ok {
		_ = broker.SetInt(ctx, brokerclient.SenderBrightnessKey, brokerclient.DefaultSenderBrightness)
	}
}

var _ ledsign.Logger = log.Log
