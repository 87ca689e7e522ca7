package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/scholium/scholium/internal/config"
	"github.com/scholium/scholium/internal/conversation"
)

var (
	historyLimit  int
	historySearch string
	historyClear  bool
)

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "Number of recent exchanges to show")
	historyCmd.Flags().StringVar(&historySearch, "search", "", "Show only exchanges matching a keyword")
	historyCmd.Flags().BoolVar(&historyClear, "clear", false, "Delete the user's conversation history")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show conversation history",
	Long: `Show the user's question-and-answer history, most recent last.

Examples:
  sch history --limit 5 --human
  sch history --search "bunching"
  sch history --clear`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

// HistoryResult is the response for the history command.
type HistoryResult struct {
	UserID string              `json:"user_id"`
	Turns  []conversation.Turn `json:"turns"`
}

func runHistory(cmd *cobra.Command, args []string) error {
	root := mustFindLibrary()
	cfg := mustLoadConfig(root)
	user := activeUser(cfg)

	manager, err := conversation.NewManager(config.HistoryPath(root))
	if err != nil {
		exitWithError(ExitError, "opening conversation history: %v", err)
	}

	if historyClear {
		removed, err := manager.Clear(user)
		if err != nil {
			exitWithError(ExitError, "clearing history: %v", err)
		}
		status := "cleared"
		if !removed {
			status = "no history"
		}
		if humanOutput {
			fmt.Println(status)
		} else {
			outputJSON(StatusResponse{Status: status})
		}
		return nil
	}

	var turns []conversation.Turn
	if historySearch != "" {
		turns, err = manager.Search(user, historySearch)
	} else {
		turns, err = manager.History(user, historyLimit)
	}
	if err != nil {
		exitWithError(ExitError, "reading history: %v", err)
	}
	if turns == nil {
		turns = []conversation.Turn{}
	}

	if humanOutput {
		printTurns(turns)
	} else {
		outputJSON(HistoryResult{UserID: user, Turns: turns})
	}
	return nil
}

func printTurns(turns []conversation.Turn) {
	if len(turns) == 0 {
		fmt.Println("No conversation history.")
		return
	}
	for _, t := range turns {
		fmt.Printf("[%s]\n", t.Timestamp.Format("2006-01-02 15:04"))
		fmt.Printf("Q: %s\n", t.Question)
		fmt.Printf("A: %s\n", truncateString(t.Answer, PassageMaxLen))
		if len(t.Sources) > 0 {
			fmt.Printf("   sources: %s\n", strings.Join(t.Sources, ", "))
		}
		fmt.Println()
	}
}
