package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/isdelr/tagpulse-be/internal/config"
	"github.com/isdelr/tagpulse-be/internal/logger"
	"github.com/isdelr/tagpulse-be/internal/simulator"
	"github.com/rs/zerolog/log"
)

func main() {
	server := flag.String("server", fmt.Sprintf("http://localhost:%d", config.DefaultPort), "base URL of the event API")
	profilePath := flag.String("profile", "", "path to a YAML simulator profile; defaults are used when empty")
	count := flag.Int("count", 0, "stop after this many ticks; 0 runs until interrupted")
	timeout := flag.Duration("timeout", 5*time.Second, "per-request timeout")
	level := flag.String("log-level", "info", "log level")
	flag.Parse()

	logger.Init(*level)

	profile, err := simulator.LoadProfile(*profilePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load simulator profile")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	generator := simulator.NewGenerator(profile, rand.New(rand.NewSource(time.Now().UnixNano())))
	log.Info().Strs("tags", generator.Tags()).Str("server", *server).Msg("Tag pool ready")

	runner := simulator.NewRunner(simulator.NewClient(*server, *timeout), generator, profile, os.Stdout)
	if err := runner.Run(ctx, *count); err != nil {
		log.Fatal().Err(err).Msg("Simulator failed")
	}
}
