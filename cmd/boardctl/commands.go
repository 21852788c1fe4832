package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"taskboard/internal/adapter/http/mapper"
	"taskboard/internal/board"
	"taskboard/internal/core/domain"
)

var errActorRequired = errors.New("--as is required for this command")

func newRootCmd() *cobra.Command {
	var (
		flags globalFlags
		a     *app
	)

	rootCmd := &cobra.Command{
		Use:          "boardctl",
		Short:        "Work with a taskboard API from the terminal",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			built, err := newApp(flags)
			if err != nil {
				return err
			}
			a = built
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a != nil {
				a.close()
			}
		},
	}
	rootCmd.PersistentFlags().StringVar(&flags.apiURL, "api-url", "", "taskboard API base URL (default TASKBOARD_API_URL)")
	rootCmd.PersistentFlags().StringVar(&flags.actor, "as", "", "employee id the commands act as")
	rootCmd.PersistentFlags().DurationVar(&flags.timeout, "timeout", 0, "per request timeout (default TASKBOARD_API_TIMEOUT)")

	current := func() *app { return a }
	rootCmd.AddCommand(
		newBoardCmd(current),
		newMoveCmd(current),
		newAssignCmd(current),
		newUnassignCmd(current),
		newShowCmd(current),
		newCommentCmd(current),
		newReportCmd(current),
		newReconcileCmd(current),
		newEmployeesCmd(current),
	)
	return rootCmd
}

func requireActor(a *app) (string, error) {
	if a.actor == "" {
		return "", errActorRequired
	}
	return a.actor, nil
}

func newBoardCmd(current func() *app) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "board",
		Short: "Print the task board, one column per status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store := board.NewStore(current().tasks)
			if err := store.Load(cmd.Context(), userID); err != nil {
				return err
			}
			printBoard(cmd.OutOrStdout(), store)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "only show tasks assigned to this employee id")
	return cmd
}

func newMoveCmd(current func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "move [task-id] [status]",
		Short: "Move a task to another column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := current()
			store := board.NewStore(a.tasks)
			if err := store.Load(cmd.Context(), ""); err != nil {
				return err
			}

			controller := board.NewDragController(store, a.tasks, a.notifier)
			if err := controller.Start(args[0]); err != nil {
				return err
			}
			if err := controller.Drop(cmd.Context(), domain.TaskStatus(args[1])); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "moved %s to %s\n", args[0], args[1])
			return nil
		},
	}
}

type assignOptions struct {
	title       string
	description string
	priority    string
	status      string
	dueDate     string
	tags        []string
	users       []string
}

func newAssignCmd(current func() *app) *cobra.Command {
	var opts assignOptions

	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Create one task per employee and group them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a := current()
			actor, err := requireActor(a)
			if err != nil {
				return err
			}

			fields, err := opts.fields()
			if err != nil {
				return err
			}
			assignees, err := resolveAssignees(cmd, a, opts.users)
			if err != nil {
				return err
			}

			result, err := a.assignments.Create(cmd.Context(), domain.AssignmentInput{
				TaskFields: fields,
				Assignees:  assignees,
				CreatedBy:  actor,
			})
			printResult(cmd.OutOrStdout(), result)
			return err
		},
	}
	cmd.Flags().StringVar(&opts.title, "title", "", "task title")
	cmd.Flags().StringVar(&opts.description, "description", "", "task description")
	cmd.Flags().StringVar(&opts.priority, "priority", "", "low, medium or high")
	cmd.Flags().StringVar(&opts.status, "status", "", "initial column")
	cmd.Flags().StringVar(&opts.dueDate, "due", "", "due date as YYYY-MM-DD")
	cmd.Flags().StringSliceVar(&opts.tags, "tag", nil, "tag, repeatable")
	cmd.Flags().StringSliceVar(&opts.users, "user", nil, "assignee employee id, repeatable")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

func (o assignOptions) fields() (domain.TaskFields, error) {
	fields := domain.TaskFields{
		Title:       strings.TrimSpace(o.title),
		Description: o.description,
		Priority:    domain.TaskPriority(o.priority),
		Status:      domain.TaskStatus(o.status),
		Tags:        domain.NormalizeTags(o.tags),
	}
	if fields.Title == "" {
		return domain.TaskFields{}, errors.New("--title must not be blank")
	}
	if fields.Status != "" && !fields.Status.Valid() {
		return domain.TaskFields{}, domain.ErrInvalidStatus
	}
	if fields.Priority != "" && !fields.Priority.Valid() {
		return domain.TaskFields{}, fmt.Errorf("unknown priority %q", o.priority)
	}
	if o.dueDate != "" {
		dueDate, err := time.Parse(mapper.DueDateLayout, o.dueDate)
		if err != nil {
			return domain.TaskFields{}, fmt.Errorf("parse --due: %w", err)
		}
		fields.DueDate = &dueDate
	}
	return fields, nil
}

// resolveAssignees fills names from the employee directory. Unknown ids are
// kept with the id as their name.
func resolveAssignees(cmd *cobra.Command, a *app, userIDs []string) ([]domain.Assignee, error) {
	employees, err := a.employees.ListEmployees(cmd.Context())
	if err != nil {
		return nil, err
	}
	byID := make(map[string]domain.Employee, len(employees))
	for _, employee := range employees {
		byID[employee.UserID] = employee
	}

	assignees := make([]domain.Assignee, 0, len(userIDs))
	for _, userID := range userIDs {
		userID = strings.TrimSpace(userID)
		if employee, ok := byID[userID]; ok {
			assignees = append(assignees, employee.Assignee())
			continue
		}
		assignees = append(assignees, domain.Assignee{UserID: userID, Name: userID})
	}
	return assignees, nil
}

func newUnassignCmd(current func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "unassign [task-id] [user-id]",
		Short: "Remove an employee from a grouped task and delete their copy",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := current()
			actor, err := requireActor(a)
			if err != nil {
				return err
			}

			session, err := a.assignments.Open(cmd.Context(), args[0], actor)
			if err != nil {
				return err
			}
			result, err := a.assignments.RemoveAssignee(cmd.Context(), session, args[1])
			printResult(cmd.OutOrStdout(), result)
			return err
		},
	}
}

func newShowCmd(current func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show [task-id]",
		Short: "Print a task with its comments and issue reports",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := current()
			panel := board.NewDetailPanel(a.tasks, a.comments, a.actor, a.notifier)
			detail, err := panel.Open(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printDetail(cmd.OutOrStdout(), detail)
			return nil
		},
	}
}

func newCommentCmd(current func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "comment [task-id] [text]",
		Short: "Add a comment to a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := current()
			actor, err := requireActor(a)
			if err != nil {
				return err
			}
			panel := board.NewDetailPanel(a.tasks, a.comments, actor, a.notifier)
			comment, err := panel.AddComment(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "comment %s added\n", comment.ID)
			return nil
		},
	}
}

func newReportCmd(current func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "report [task-id] [message]",
		Short: "Report an issue on a task",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := current()
			panel := board.NewDetailPanel(a.tasks, a.comments, a.actor, a.notifier)
			report, err := panel.ReportIssue(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "report %s filed\n", report.ID)
			return nil
		},
	}
}

func newReconcileCmd(current func() *app) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Remove group entries whose task no longer exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := current().reconciler.Reconcile(cmd.Context(), dryRun)
			if err != nil {
				return err
			}
			printReconcileReport(cmd.OutOrStdout(), report)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "only list dangling entries")
	return cmd
}

func newEmployeesCmd(current func() *app) *cobra.Command {
	return &cobra.Command{
		Use:   "employees",
		Short: "List the employee directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			employees, err := current().employees.ListEmployees(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "USER ID\tNAME\tROLE\tDEPARTMENT")
			for _, employee := range employees {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", employee.UserID, employee.Name, employee.Role, employee.Department)
			}
			return w.Flush()
		},
	}
}

func printBoard(out io.Writer, store *board.Store) {
	columns := store.Columns()
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, status := range domain.TaskStatuses {
		tasks := columns[status]
		fmt.Fprintf(w, "%s (%d)\n", status, len(tasks))
		for _, task := range tasks {
			fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%s\n", task.ID, task.Title, assigneeLabel(task), task.Priority, dueLabel(task))
		}
	}
	_ = w.Flush()
}

func printResult(out io.Writer, result domain.AssignmentResult) {
	if result.Primary != nil {
		fmt.Fprintf(out, "primary %s\n", result.Primary.ID)
	}
	for _, task := range result.Created {
		fmt.Fprintf(out, "created %s for %s\n", task.ID, assigneeLabel(task))
	}
	for _, id := range result.Removed {
		fmt.Fprintf(out, "removed %s\n", id)
	}
	if result.Group != nil {
		fmt.Fprintf(out, "group %s (%d assignees)\n", result.Group.ID, len(result.Group.Users))
	}
}

func printDetail(out io.Writer, detail board.Detail) {
	task := detail.Task
	fmt.Fprintf(out, "%s  %s\n", task.ID, task.Title)
	fmt.Fprintf(out, "status: %s  priority: %s  due: %s\n", task.Status, task.Priority, dueLabel(task))
	fmt.Fprintf(out, "assignee: %s\n", assigneeLabel(task))
	if len(task.Tags) > 0 {
		fmt.Fprintf(out, "tags: %s\n", strings.Join(task.Tags, ", "))
	}
	if task.Description != "" {
		fmt.Fprintf(out, "\n%s\n", task.Description)
	}

	fmt.Fprintf(out, "\ncomments (%d)\n", len(task.Comments))
	for _, comment := range task.Comments {
		fmt.Fprintf(out, "  [%s] %s: %s\n", comment.CreatedAt.Format(time.RFC3339), comment.Author, comment.Content)
	}
	fmt.Fprintf(out, "reports (%d)\n", len(detail.Reports))
	for _, report := range detail.Reports {
		fmt.Fprintf(out, "  [%s] %s\n", report.CreatedAt.Format(time.RFC3339), report.Message)
	}
}

func printReconcileReport(out io.Writer, report domain.ReconcileReport) {
	fmt.Fprintf(out, "groups checked: %d, entries checked: %d\n", report.GroupsChecked, report.EntriesChecked)
	for _, ref := range report.Dangling {
		fmt.Fprintf(out, "dangling: group %s task %s user %s\n", ref.GroupID, ref.Entry.TaskID, ref.Entry.UserID)
	}
	for _, id := range report.EmptyGroups {
		fmt.Fprintf(out, "empty group: %s\n", id)
	}
	if report.DryRun {
		fmt.Fprintln(out, "dry run, nothing removed")
		return
	}
	fmt.Fprintf(out, "removed: %d\n", report.Repaired)
}

func assigneeLabel(task domain.Task) string {
	switch {
	case task.AssigneeName != "":
		return task.AssigneeName
	case task.AssigneeUserID != "":
		return task.AssigneeUserID
	default:
		return "unassigned"
	}
}

func dueLabel(task domain.Task) string {
	if task.DueDate == nil {
		return "-"
	}
	return task.DueDate.Format(mapper.DueDateLayout)
}
