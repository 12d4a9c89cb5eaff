package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/voxdo/voxdo/internal/nlp"
)

var sayCmd = &cobra.Command{
	Use:   "say [transcript...]",
	Short: "Send an utterance to the daemon",
	Long: `Sends a free-form sentence to the daemon, which parses and executes it.

Examples:
  voxdo say add task buy milk tomorrow at 5pm
  voxdo say "this is urgent, finish the report by friday"
  voxdo say mark done: call the dentist`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSay,
}

var parseCmd = &cobra.Command{
	Use:   "parse [transcript...]",
	Short: "Parse an utterance locally and print the command as JSON",
	Long:  `Parses a sentence without contacting the daemon or changing any state. Useful for inspecting what an utterance would do.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runParse,
}

func runSay(cmd *cobra.Command, args []string) error {
	transcript := strings.Join(args, " ")

	resp, err := apiPost("/commands", map[string]string{"transcript": transcript})
	if err != nil {
		return err
	}

	var result struct {
		OK    bool   `json:"ok"`
		Reply string `json:"reply"`
		Tasks []struct {
			Title    string `json:"title"`
			Priority string `json:"priority"`
			Status   string `json:"status"`
		} `json:"tasks"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return err
	}

	fmt.Println(result.Reply)
	for _, t := range result.Tasks {
		fmt.Printf("  [%s] %s (%s)\n", t.Status, t.Title, t.Priority)
	}

	if !result.OK {
		os.Exit(1)
	}
	return nil
}

func runParse(cmd *cobra.Command, args []string) error {
	transcript := strings.Join(args, " ")
	command := nlp.ParseAt(transcript, time.Now())

	out, err := json.MarshalIndent(command, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
