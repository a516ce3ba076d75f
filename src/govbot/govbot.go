package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/cosmosnotify/govbot/src/govbot/components/assessment"
	"github.com/cosmosnotify/govbot/src/govbot/components/feed"
	"github.com/cosmosnotify/govbot/src/govbot/components/monitor"
	"github.com/cosmosnotify/govbot/src/govbot/components/notify"
	"github.com/cosmosnotify/govbot/src/govbot/components/telegram"
	"github.com/cosmosnotify/govbot/src/govbot/config"
	"github.com/cosmosnotify/govbot/src/shared/events"
)

func main() {
	_ = godotenv.Load()

	interval := flag.Duration("interval", 0, "run the check continuously at this interval (0 runs a single cycle)")
	flag.Parse()

	configPath := getenv("GOVBOT_CONFIG", "config.json")
	instructionsPath := getenv("GOVBOT_INSTRUCTIONS", "instructions.md")

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config %s: %v", configPath, err)
	}

	ctx := context.Background()

	assessor, err := assessment.New(ctx, cfg.AIToken, cfg.AIModel, instructionsPath)
	if err != nil {
		log.Fatalf("Failed to initialize AI service: %v", err)
	}

	feedClient := feed.NewClient(cfg.ProposalsAPI)
	tg := telegram.NewClient(cfg.TelegramToken)
	publisher := notify.NewPublisher(tg, cfg.ExplorerURL)

	var ev monitor.Events
	if cfg.RedisURL != "" {
		pub, err := events.Connect(cfg.RedisURL)
		if err != nil {
			log.Printf("Failed to connect to redis, events disabled: %v", err)
		} else {
			defer pub.Close()
			ev = pub
		}
	}

	mon := monitor.New(configPath, feedClient, assessor, publisher, ev)

	if *interval <= 0 {
		if err := mon.RunCycle(ctx); err != nil {
			log.Fatalf("Check cycle failed: %v", err)
		}
		return
	}

	log.Printf("Starting proposal monitor (interval %s)", *interval)
	if err := mon.RunCycle(ctx); err != nil {
		log.Printf("Check cycle failed: %v", err)
	}

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)

	for {
		select {
		case <-sc:
			log.Println("Proposal monitor stopped")
			return
		case <-ticker.C:
			if err := mon.RunCycle(ctx); err != nil {
				log.Printf("Check cycle failed: %v", err)
			}
		}
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
