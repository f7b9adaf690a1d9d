package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/dnldd/elliott/service"
)

// handleTermination processes context cancellation signals or interrupt signals from the OS.
func handleTermination(ctx context.Context, cancel context.CancelFunc) {
	// Listen for interrupt signals.
	signals := []os.Signal{os.Interrupt}
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, signals...)

	// Wait for the context to be cancelled or an interrupt signal.
	for {
		select {
		case <-ctx.Done():
			return

		case <-interrupt:
			cancel()
		}
	}
}

func main() {
	var cfg Config
	err := loadConfig(&cfg, "")
	if err != nil {
		log.Printf("loading config: %v", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	analysisCfg := service.AnalysisConfig{
		Markets:    cfg.Markets,
		DataDir:    cfg.DataDir,
		InsightDir: cfg.InsightDir,
		OutputDir:  cfg.OutputDir,
		Cancel:     cancel,
	}
	analysis, err := service.NewAnalysis(&analysisCfg)
	if err != nil {
		log.Printf("creating analysis service: %v", err)
		return
	}

	go handleTermination(ctx, cancel)
	analysis.Run(ctx)
}
