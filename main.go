package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/example/todo-list-demo/config"
	"github.com/example/todo-list-demo/modules/activity"
	"github.com/example/todo-list-demo/modules/api"
	"github.com/example/todo-list-demo/modules/task"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (environment variables are used when empty)")
	flag.Parse()

	log.Println("=== To-Do List Server ===")

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logLevel := mono.LogLevelInfo
	if cfg.QuietLogs() {
		logLevel = mono.LogLevelError
	}

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(cfg.ShutdownTimeout),
		mono.WithLogLevel(logLevel),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Order: independent modules first, then modules with dependencies
	app.Register(activity.NewModule()) // Event consumer (subscribes to task events)
	app.Register(task.NewModule(task.Options{
		DBPath:         cfg.DBPath,
		DBDebug:        cfg.DBDebug,
		SeedDemoData:   cfg.SeedDemoData,
		StrictDueDates: cfg.StrictDueDates,
	})) // Task store and mutation services, emits events
	app.Register(api.NewModule(cfg.HTTPAddress)) // HTTP adapter (depends on task)

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo(cfg)

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo(cfg config.Config) {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Printf("Database: %s (seed demo data: %t, strict due dates: %t)", cfg.DBPath, cfg.SeedDemoData, cfg.StrictDueDates)
	log.Println("")
	log.Printf("REST API Endpoints (%s):", cfg.HTTPAddress)
	log.Println("  GET    /api/tasks   - List all tasks")
	log.Println("  POST   /api/tasks   - Create a task {title, description?, due_date}")
	log.Println("  DELETE /api/tasks   - Delete a task {id}")
	log.Println("  PATCH  /api/tasks   - Set status {id, status} or edit {id, title?, description?, due_date?, status?}")
	log.Println("  GET    /health      - Health check")
	log.Println("")
	log.Println("CLI: go run ./cmd/todo list --sort asc")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
