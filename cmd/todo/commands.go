package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/example/todo-list-demo/client"
	domain "github.com/example/todo-list-demo/domain/task"
	"github.com/example/todo-list-demo/view"
	"github.com/spf13/cobra"
)

func listCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := mount(opts, view.New(client.New(opts.server)))
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), list)
		},
	}
}

func addCmd(opts *options) *cobra.Command {
	var description, dueDate string

	cmd := &cobra.Command{
		Use:   "add TITLE",
		Short: "Add a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := mount(opts, view.New(client.New(opts.server)))
			if err != nil {
				return err
			}

			list.SetTitle(args[0])
			list.SetDescription(description)
			list.SetDueDate(dueDate)
			if !list.Add() {
				return errors.New(list.Message())
			}
			return render(cmd.OutOrStdout(), list)
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Task description")
	cmd.Flags().StringVar(&dueDate, "due", "", "Due date (dd/mm/yyyy)")
	_ = cmd.MarkFlagRequired("due")

	return cmd
}

// statusCmd builds done/undo. A task already in the target status is left
// alone.
func statusCmd(opts *options, use, short, target string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " ID",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			list, err := mount(opts, view.New(client.New(opts.server)))
			if err != nil {
				return err
			}

			current, ok := findTask(list, id)
			if !ok {
				return fmt.Errorf("task %d not found", id)
			}
			if string(current.Status) != target && !list.ToggleStatus(id) {
				return errors.New(list.Message())
			}
			return render(cmd.OutOrStdout(), list)
		},
	}
}

func editCmd(opts *options) *cobra.Command {
	var title, description, dueDate string

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Change the title, description or due date of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			list, err := mount(opts, view.New(client.New(opts.server)))
			if err != nil {
				return err
			}

			if !list.BeginEdit(id) {
				return errors.New(list.Message())
			}
			if cmd.Flags().Changed("title") {
				list.SetEditTitle(title)
			}
			if cmd.Flags().Changed("description") {
				list.SetEditDescription(description)
			}
			if cmd.Flags().Changed("due") {
				list.SetEditDueDate(dueDate)
			}
			if !list.SaveEdit() {
				return errors.New(list.Message())
			}
			return render(cmd.OutOrStdout(), list)
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "New description")
	cmd.Flags().StringVar(&dueDate, "due", "", "New due date (dd/mm/yyyy)")

	return cmd
}

func rmCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:     "rm ID",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			list, err := mount(opts, view.New(client.New(opts.server)))
			if err != nil {
				return err
			}

			if !list.Delete(id) {
				return errors.New(list.Message())
			}
			return render(cmd.OutOrStdout(), list)
		},
	}
}

// mount applies the sort and filter flags and loads the list.
func mount(opts *options, list *view.TaskList) (*view.TaskList, error) {
	switch opts.sort {
	case "none", "":
		list.SetSort(view.SortNone)
	case "asc":
		list.SetSort(view.SortAscending)
	case "desc":
		list.SetSort(view.SortDescending)
	default:
		return nil, fmt.Errorf("invalid --sort %q (want none, asc or desc)", opts.sort)
	}

	switch opts.filter {
	case "all", "":
		list.SetFilter(view.FilterBoth)
	case "pending":
		list.SetFilter(view.FilterPendingOnly)
	case "completed":
		list.SetFilter(view.FilterCompletedOnly)
	default:
		return nil, fmt.Errorf("invalid --filter %q (want all, pending or completed)", opts.filter)
	}

	if !list.Mount() {
		return nil, errors.New(list.Message())
	}
	return list, nil
}

func findTask(list *view.TaskList, id int64) (domain.Task, bool) {
	tasks, _ := list.Tasks()
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
	}
	return domain.Task{}, false
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", arg)
	}
	return id, nil
}

// render prints the visible rows, or the empty-state message.
func render(w io.Writer, list *view.TaskList) error {
	if msg := list.EmptyState(); msg != "" {
		_, err := fmt.Fprintln(w, msg)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tSTATUS\tDUE\tTITLE\tDESCRIPTION")
	for _, t := range list.Visible() {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", t.ID, t.Status, t.DueDate, t.Title, t.Description)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "sort: %s  filter: %s\n", list.Sort(), list.Filter())
	return err
}
