package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scholium/scholium/internal/config"
	"github.com/scholium/scholium/internal/conversation"
	"github.com/scholium/scholium/internal/llm"
)

const historyContextTurns = 3

var (
	askK         int
	askNoHistory bool
)

func init() {
	askCmd.Flags().IntVar(&askK, "k", 0, "Number of passages to ground the answer in (0 = configured default)")
	askCmd.Flags().BoolVar(&askNoHistory, "no-history", false, "Skip conversation context and don't record this exchange")
	rootCmd.AddCommand(askCmd)
}

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer a question from the library",
	Long: `Answer a question using passages retrieved from the user's indexed
documents. The answer cites its sources with file and page, and the
exchange is recorded in conversation history for follow-up questions.

Examples:
  sch ask "What factors drive bus bunching?"
  sch ask "And how is it mitigated?" --human`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

// AskResult is the response for the ask command.
type AskResult struct {
	Question string   `json:"question"`
	Answer   string   `json:"answer"`
	Sources  []string `json:"sources"`
}

func runAsk(cmd *cobra.Command, args []string) error {
	root := mustFindLibrary()
	cfg := mustLoadConfig(root)
	user := activeUser(cfg)

	store := mustOpenStore(root)
	provider := newEmbeddingProvider(cfg)
	vs := mustOpenVector(store, user, provider)

	manager, err := conversation.NewManager(config.HistoryPath(root))
	if err != nil {
		exitWithError(ExitError, "opening conversation history: %v", err)
	}

	k := askK
	if k <= 0 {
		k = cfg.RetrievalDepth()
	}

	ctx := context.Background()
	question := args[0]

	passages, err := vs.Query(ctx, question, k)
	if err != nil {
		exitWithError(ExitError, "retrieving passages: %v", err)
	}
	if len(passages) == 0 {
		exitWithError(ExitDataError, "no indexed content matches the question; ingest PDFs first")
	}

	var history string
	if !askNoHistory {
		history, err = manager.RecentContext(user, historyContextTurns)
		if err != nil {
			exitWithError(ExitError, "reading conversation history: %v", err)
		}
	}

	client := newLLMClient(cfg)
	answer, err := client.Answer(ctx, question, passages, history)
	if err != nil {
		exitWithError(ExitError, "generating answer: %v", err)
	}

	sources := llm.SourceList(passages)
	if !askNoHistory {
		if err := manager.Append(user, question, answer, sources); err != nil {
			exitWithError(ExitError, "recording conversation: %v", err)
		}
	}

	if humanOutput {
		fmt.Println(answer)
		fmt.Println()
		fmt.Println("Sources:")
		for _, s := range sources {
			fmt.Printf("  %s\n", s)
		}
	} else {
		outputJSON(AskResult{Question: question, Answer: answer, Sources: sources})
	}

	return nil
}
