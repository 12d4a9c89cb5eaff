package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent voice commands",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Number of entries to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	resp, err := apiGet("/history?limit=" + strconv.Itoa(historyLimit))
	if err != nil {
		return err
	}

	var recs []map[string]interface{}
	if err := json.Unmarshal(resp, &recs); err != nil {
		return err
	}

	if len(recs) == 0 {
		fmt.Println("No commands yet")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tACTION\tOUTCOME\tHEARD")
	for _, r := range recs {
		when, _ := r["timestamp"].(string)
		if len(when) >= 16 {
			when = when[:16]
		}
		action, _ := r["action"].(string)
		outcome, _ := r["outcome"].(string)
		heard, _ := r["transcript"].(string)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", when, action, outcome, truncate(heard, 50))
	}
	w.Flush()
	return nil
}
