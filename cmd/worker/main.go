package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/sweeplabs/modsweep/internal/setup"
	"github.com/sweeplabs/modsweep/internal/worker/scan"
	"github.com/urfave/cli/v3"
)

// WorkerLogDir specifies where worker log files are stored.
const WorkerLogDir = "logs/worker_logs"

func main() {
	if err := run(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	app := &cli.Command{
		Name:  "worker",
		Usage: "Start the modsweep scan workers",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Value:   1,
				Usage:   "Number of workers to start",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "scan",
				Usage: "Start comment scan workers",
				Action: func(ctx context.Context, c *cli.Command) error {
					return runWorkers(ctx, c.Int("workers"))
				},
			},
		},
	}

	return app.Run(context.Background(), os.Args)
}

// runWorkers starts count scan workers and blocks until interrupted.
func runWorkers(ctx context.Context, count int64) error {
	app, err := setup.InitializeApp(ctx, WorkerLogDir, true)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer app.Cleanup()

	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var wg sync.WaitGroup

	for i := int64(0); i < count; i++ {
		wg.Add(1)

		go func(workerID int64) {
			defer wg.Done()

			logger := app.Logger.Named(fmt.Sprintf("scan_worker_%d", workerID))
			scan.NewWorker(app, logger).Start(ctx)
		}(i)
	}

	app.Logger.Info("All workers started, waiting for interrupt")
	wg.Wait()

	return nil
}
