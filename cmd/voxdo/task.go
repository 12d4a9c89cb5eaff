package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
}

var taskAddCmd = &cobra.Command{
	Use:   "add [transcript...]",
	Short: "Add a task from a sentence",
	Long:  `Adds a task from a free-form sentence. Priority, due date and time are extracted from the phrasing, e.g. "buy milk tomorrow at 5pm, it's urgent".`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskAdd,
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	RunE:  runTaskList,
}

var taskShowCmd = &cobra.Command{
	Use:   "show [task-id]",
	Short: "Show task details",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskShow,
}

var taskDoneCmd = &cobra.Command{
	Use:   "done [task-id]",
	Short: "Mark a task completed",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskDone,
}

var taskRmCmd = &cobra.Command{
	Use:   "rm [task-id]",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskRm,
}

var (
	taskStatus   string
	taskPriority string
)

func init() {
	taskCmd.AddCommand(taskAddCmd, taskListCmd, taskShowCmd, taskDoneCmd, taskRmCmd)

	taskListCmd.Flags().StringVar(&taskStatus, "status", "", "Filter by status (pending, in-progress, completed)")
	taskListCmd.Flags().StringVar(&taskPriority, "priority", "", "Filter by priority (low, medium, high)")
}

func runTaskAdd(cmd *cobra.Command, args []string) error {
	transcript := strings.Join(args, " ")

	resp, err := apiPost("/tasks", map[string]string{"transcript": transcript})
	if err != nil {
		return err
	}

	var task map[string]interface{}
	if err := json.Unmarshal(resp, &task); err != nil {
		return err
	}

	fmt.Printf("Created task: %s (%s)\n", task["title"], truncateID(task["id"].(string)))
	return nil
}

func runTaskList(cmd *cobra.Command, args []string) error {
	url := "/tasks"
	var params []string
	if taskStatus != "" {
		params = append(params, "status="+taskStatus)
	}
	if taskPriority != "" {
		params = append(params, "priority="+taskPriority)
	}
	if len(params) > 0 {
		url += "?" + strings.Join(params, "&")
	}

	resp, err := apiGet(url)
	if err != nil {
		return err
	}

	var tasks []map[string]interface{}
	if err := json.Unmarshal(resp, &tasks); err != nil {
		return err
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tPRIORITY\tSTATUS\tDUE")
	for _, t := range tasks {
		id := truncateID(t["id"].(string))
		title := truncate(t["title"].(string), 40)
		priority := t["priority"].(string)
		status := t["status"].(string)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", id, title, priority, status, formatDue(t))
	}
	w.Flush()
	return nil
}

func runTaskShow(cmd *cobra.Command, args []string) error {
	resp, err := apiGet("/tasks/" + args[0])
	if err != nil {
		return err
	}

	var task map[string]interface{}
	if err := json.Unmarshal(resp, &task); err != nil {
		return err
	}

	fmt.Printf("ID:         %s\n", task["id"])
	fmt.Printf("Title:      %s\n", task["title"])
	fmt.Printf("Priority:   %s\n", task["priority"])
	fmt.Printf("Status:     %s\n", task["status"])
	if due := formatDue(task); due != "" {
		fmt.Printf("Due:        %s\n", due)
	}
	if tr, ok := task["transcript"].(string); ok && tr != "" {
		fmt.Printf("Heard:      %s\n", tr)
	}
	fmt.Printf("Created:    %s\n", task["created_at"])
	fmt.Printf("Updated:    %s\n", task["updated_at"])

	return nil
}

func runTaskDone(cmd *cobra.Command, args []string) error {
	resp, err := apiPost("/tasks/"+args[0]+"/complete", nil)
	if err != nil {
		return err
	}

	var task map[string]interface{}
	if err := json.Unmarshal(resp, &task); err != nil {
		return err
	}

	fmt.Printf("Completed: %s\n", task["title"])
	return nil
}

func runTaskRm(cmd *cobra.Command, args []string) error {
	if _, err := apiDelete("/tasks/" + args[0]); err != nil {
		return err
	}

	fmt.Printf("Deleted task %s\n", args[0])
	return nil
}

// --- Helpers ---

func formatDue(task map[string]interface{}) string {
	due, ok := task["due_date"].(string)
	if !ok || len(due) < 10 {
		return ""
	}
	out := due[:10]
	if t, ok := task["due_time"].(string); ok && t != "" {
		out += " " + t
	}
	return out
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func truncateID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
