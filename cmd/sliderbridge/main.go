// Command sliderbridge loads a configuration file, builds a session
// from it, and runs until it receives SIGINT or SIGTERM. The
// configuration is read once, at start.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"sliderbridge/config"
	"sliderbridge/session"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the override config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("sliderbridge: loading %s: %v", *configPath, err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sess, err := session.New(ctx, cfg)
	if err != nil {
		log.Fatalf("sliderbridge: %v", err)
	}

	log.Printf("sliderbridge: running with deviceMode=%s outputMode=%s ledMode=%s",
		cfg.DeviceMode, cfg.OutputMode, cfg.LEDMode)

	<-ctx.Done()
	log.Printf("sliderbridge: shutting down")
	sess.Stop()
}
