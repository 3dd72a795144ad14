package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/muthuvel/santhai/app/jobs"
	"github.com/muthuvel/santhai/app/services"
	"github.com/muthuvel/santhai/pkg/cache"
	"github.com/muthuvel/santhai/pkg/database"
	"github.com/muthuvel/santhai/pkg/queue"
	"github.com/muthuvel/santhai/pkg/schedule"
)

var queueWorkersFlag int

// bootWorker opens the database and redis and registers job types, so a
// standalone worker process consumes the same queue the server pushes to.
func bootWorker() error {
	if err := bootDB(); err != nil {
		return err
	}
	if err := cache.Connect(); err != nil {
		return fmt.Errorf("queue requires redis: %w", err)
	}
	queue.SetDriver(queue.NewRedisDriver(cache.RDB))
	jobs.RegisterAll()
	return nil
}

// santhai queue:work
var queueWorkCmd = &cobra.Command{
	Use:   "queue:work",
	Short: "Start the queue worker",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootWorker(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		workers := queueWorkersFlag
		if workers < 1 {
			workers = 5
		}

		fmt.Printf("Queue worker started (%d workers). Press Ctrl+C to stop.\n", workers)
		queue.StartWorkers(ctx, workers)

		<-ctx.Done()
		fmt.Println("\nQueue worker stopped.")
		return nil
	},
}

// santhai schedule:run
var scheduleRunCmd = &cobra.Command{
	Use:   "schedule:run",
	Short: "Start the task scheduler",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := bootWorker(); err != nil {
			return err
		}

		db := database.DB
		settings := services.NewSettingsService(db)
		notifier := services.NewNotifierService(db, settings)
		campaigns := services.NewCampaignService(db, settings, notifier)

		schedule.EveryMinute().
			Name("campaigns.dispatch_due").
			WithoutOverlapping().
			Run(func() {
				campaigns.DispatchDue(time.Now())
			})

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		tasks := schedule.List()
		fmt.Println("Registered scheduled tasks:")
		for _, t := range tasks {
			fmt.Println("  -", t)
		}

		fmt.Println("Scheduler started. Press Ctrl+C to stop.")
		schedule.Start(ctx)

		<-ctx.Done()
		fmt.Println("\nScheduler stopped.")
		return nil
	},
}

func init() {
	queueWorkCmd.Flags().IntVarP(&queueWorkersFlag, "workers", "w", 5, "Number of concurrent workers")
}
