// Command sensors runs the Ambient controller: it samples a BH1750
// light sensor over I2C and publishes a smoothed, rate-limited
// brightness value to the broker.
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
	"github.com/basso-labs/ledsign/internal/sensors"
)

func main() {
	fs := flag.NewFlagSet("sensors", flag.ExitOnError)
	common := config.RegisterCommon(fs)
	bus := fs.String("bus", sensors.DefaultBusName, "I2C bus the light sensor is attached to")
	fs.Parse(os.Args[1:])

	log.SetHandler(logcli.New(os.Stderr))
	if common.Debug {
		log.SetLevel(log.DebugLevel)
	}

	if err := run(*bus, common.Broker); err != nil {
		log.Errorf("ledsign: sensors: fatal: %s", err.Error())
		os.Exit(1)
	}
}

func run(busName, brokerPath string) error {
	bus := ledsign.Must1(sensors.OpenBus(busName))
	defer bus.Close()

	broker := brokerclient.New(brokerPath)
	defer broker.Close()

	sensor := sensors.NewSensor(bus)
	c := sensors.NewController(sensor, broker, log.Log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigc
		log.Info("ledsign: sensors: shutting down")
		cancel()
	}()

	c.Run(ctx)
	return nil
}
