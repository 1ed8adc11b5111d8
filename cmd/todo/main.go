// Package main provides the todo command-line client. It drives the task list
// view against a running server.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const defaultServer = "http://localhost:3000"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// options are the flags shared by every command.
type options struct {
	server string
	sort   string
	filter string
}

func rootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "todo",
		Short: "Manage the to-do list",
		Long: `todo talks to the task server and prints the task list after every
change. Sorting and filtering are applied locally and never stored.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	server := os.Getenv("TODO_SERVER")
	if server == "" {
		server = defaultServer
	}

	cmd.PersistentFlags().StringVar(&opts.server, "server", server, "Task server base URL (env TODO_SERVER)")
	cmd.PersistentFlags().StringVar(&opts.sort, "sort", "none", "Sort by due date (none, asc, desc)")
	cmd.PersistentFlags().StringVar(&opts.filter, "filter", "all", "Show tasks by status (all, pending, completed)")

	cmd.AddCommand(
		listCmd(opts),
		addCmd(opts),
		statusCmd(opts, "done", "Mark a task as completed", "Completed"),
		statusCmd(opts, "undo", "Mark a task as pending", "Pending"),
		editCmd(opts),
		rmCmd(opts),
	)

	return cmd
}
