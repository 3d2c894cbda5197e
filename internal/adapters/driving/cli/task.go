package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/taskd/internal/core/domain"
)

// stdinIsTerminal reports whether delete should ask for confirmation.
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

var taskCmd = &cobra.Command{
	Use:     "task",
	Aliases: []string{"tasks"},
	Short:   "Manage tasks",
	Long:    `List, create, edit, complete and delete tasks.`,
}

var taskListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks, newest first",
	Args:    cobra.NoArgs,
	RunE:    runTaskList,
}

var taskGetCmd = &cobra.Command{
	Use:   "get [id]",
	Short: "Show a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskGet,
}

var taskAddCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Create a task",
	Long: `Create a task. Multiple arguments are joined into one title.

Examples:
  taskd task add "Buy milk"
  taskd task add Write report -d "due friday"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTaskAdd,
}

var taskUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Change a task",
	Long: `Change the title, description or completion of a task.
Only the flags given are applied. An empty --description clears it.`,
	Args: cobra.ExactArgs(1),
	RunE: runTaskUpdate,
}

var taskDoneCmd = &cobra.Command{
	Use:   "done [id]",
	Short: "Mark a task completed",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return setCompleted(cmd, args[0], true) },
}

var taskReopenCmd = &cobra.Command{
	Use:   "reopen [id]",
	Short: "Mark a task not completed",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return setCompleted(cmd, args[0], false) },
}

var taskDeleteCmd = &cobra.Command{
	Use:     "delete [id]",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Args:    cobra.ExactArgs(1),
	RunE:    runTaskDelete,
}

var (
	taskJSON          bool
	listCompleted     string
	addDescription    string
	updateTitle       string
	updateDescription string
	updateCompleted   bool
	deleteYes         bool
)

func init() {
	taskCmd.PersistentFlags().BoolVar(&taskJSON, "json", false, "output as JSON")
	taskListCmd.Flags().StringVar(&listCompleted, "completed", "", "filter by completion (true or false)")
	taskAddCmd.Flags().StringVarP(&addDescription, "description", "d", "", "task description")
	taskUpdateCmd.Flags().StringVarP(&updateTitle, "title", "t", "", "new title")
	taskUpdateCmd.Flags().StringVarP(&updateDescription, "description", "d", "", "new description")
	taskUpdateCmd.Flags().BoolVarP(&updateCompleted, "completed", "c", false, "completion state")
	taskDeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "do not ask for confirmation")

	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskGetCmd)
	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskUpdateCmd)
	taskCmd.AddCommand(taskDoneCmd)
	taskCmd.AddCommand(taskReopenCmd)
	taskCmd.AddCommand(taskDeleteCmd)
	rootCmd.AddCommand(taskCmd)
}

func runTaskList(cmd *cobra.Command, _ []string) error {
	if err := requireTasks(); err != nil {
		return err
	}

	var filter domain.TaskFilter
	if listCompleted != "" {
		completed, err := domain.ParseCompleted(listCompleted)
		if err != nil {
			return fmt.Errorf("--completed: %w", err)
		}
		filter.Completed = &completed
	}

	tasks, err := taskService.List(cmd.Context(), filter)
	if err != nil {
		return fmt.Errorf("failed to list tasks: %w", err)
	}

	if taskJSON {
		return printJSON(cmd, tasks)
	}
	if len(tasks) == 0 {
		cmd.Println("No tasks found.")
		return nil
	}
	for i := range tasks {
		cmd.Println(formatTaskLine(&tasks[i]))
	}
	return nil
}

func runTaskGet(cmd *cobra.Command, args []string) error {
	if err := requireTasks(); err != nil {
		return err
	}
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}

	task, err := taskService.Get(cmd.Context(), id)
	if err != nil {
		return taskError(id, err)
	}
	return printTask(cmd, task)
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	if err := requireTasks(); err != nil {
		return err
	}

	task, err := taskService.Create(cmd.Context(), domain.NewTask{
		Title:       strings.Join(args, " "),
		Description: addDescription,
	})
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	if taskJSON {
		return printJSON(cmd, task)
	}
	cmd.Printf("Created task #%d: %s\n", task.ID, task.Title)
	return nil
}

func runTaskUpdate(cmd *cobra.Command, args []string) error {
	if err := requireTasks(); err != nil {
		return err
	}
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}

	var patch domain.TaskPatch
	flags := cmd.Flags()
	if flags.Changed("title") {
		patch.Title = &updateTitle
	}
	if flags.Changed("description") {
		patch.Description = &updateDescription
	}
	if flags.Changed("completed") {
		patch.Completed = &updateCompleted
	}
	if patch.IsEmpty() {
		return errors.New("nothing to update: pass --title, --description or --completed")
	}

	task, err := taskService.Update(cmd.Context(), id, patch)
	if err != nil {
		return taskError(id, err)
	}
	if taskJSON {
		return printJSON(cmd, task)
	}
	cmd.Printf("Updated task #%d\n", task.ID)
	return printTask(cmd, task)
}

func setCompleted(cmd *cobra.Command, arg string, completed bool) error {
	if err := requireTasks(); err != nil {
		return err
	}
	id, err := parseTaskID(arg)
	if err != nil {
		return err
	}

	task, err := taskService.Update(cmd.Context(), id, domain.TaskPatch{Completed: &completed})
	if err != nil {
		return taskError(id, err)
	}
	if taskJSON {
		return printJSON(cmd, task)
	}
	cmd.Println(formatTaskLine(task))
	return nil
}

func runTaskDelete(cmd *cobra.Command, args []string) error {
	if err := requireTasks(); err != nil {
		return err
	}
	id, err := parseTaskID(args[0])
	if err != nil {
		return err
	}

	if !deleteYes && stdinIsTerminal() {
		task, err := taskService.Get(cmd.Context(), id)
		if err != nil {
			return taskError(id, err)
		}
		cmd.Printf("Delete task #%d %q? [y/N]: ", task.ID, task.Title)
		answer := readLine(bufio.NewReader(cmd.InOrStdin()))
		if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
			cmd.Println("Aborted.")
			return nil
		}
	}

	if err := taskService.Delete(cmd.Context(), id); err != nil {
		return taskError(id, err)
	}
	cmd.Printf("Deleted task #%d\n", id)
	return nil
}

func parseTaskID(arg string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimPrefix(arg, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q: must be a positive integer", arg)
	}
	return id, nil
}

func taskError(id int64, err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("task #%d not found", id)
	}
	return err
}

func formatTaskLine(task *domain.Task) string {
	check := "[ ]"
	if task.Completed {
		check = "[x]"
	}
	return fmt.Sprintf("%s #%-4d %s", check, task.ID, task.Title)
}

func printTask(cmd *cobra.Command, task *domain.Task) error {
	if taskJSON {
		return printJSON(cmd, task)
	}
	cmd.Printf("ID:          %d\n", task.ID)
	cmd.Printf("Title:       %s\n", task.Title)
	if task.Description != "" {
		cmd.Printf("Description: %s\n", task.Description)
	}
	cmd.Printf("Completed:   %t\n", task.Completed)
	cmd.Printf("Created:     %s\n", domain.FormatTimestamp(task.CreatedAt))
	cmd.Printf("Updated:     %s\n", domain.FormatTimestamp(task.UpdatedAt))
	return nil
}

// taskJSONView is the JSON shape printed by --json.
type taskJSONView struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Completed   bool   `json:"completed"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func toJSONView(t *domain.Task) taskJSONView {
	return taskJSONView{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Completed:   t.Completed,
		CreatedAt:   domain.FormatTimestamp(t.CreatedAt),
		UpdatedAt:   domain.FormatTimestamp(t.UpdatedAt),
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	switch t := v.(type) {
	case *domain.Task:
		v = toJSONView(t)
	case []domain.Task:
		views := make([]taskJSONView, len(t))
		for i := range t {
			views[i] = toJSONView(&t[i])
		}
		v = views
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}
