package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scholium/scholium/internal/vector"
)

var retrieveK int

func init() {
	retrieveCmd.Flags().IntVar(&retrieveK, "k", 0, "Number of passages to retrieve (0 = configured default)")
	rootCmd.AddCommand(retrieveCmd)
}

var retrieveCmd = &cobra.Command{
	Use:   "retrieve <query>",
	Short: "Retrieve relevant passages from indexed PDFs",
	Long: `Retrieve the passages most relevant to a query from the user's
indexed documents, with their source file and page.

Examples:
  sch retrieve "headway optimization"
  sch retrieve "fare models" --k 8 --human`,
	Args: cobra.ExactArgs(1),
	RunE: runRetrieve,
}

func runRetrieve(cmd *cobra.Command, args []string) error {
	root := mustFindLibrary()
	cfg := mustLoadConfig(root)
	user := activeUser(cfg)

	store := mustOpenStore(root)
	provider := newEmbeddingProvider(cfg)
	vs := mustOpenVector(store, user, provider)

	k := retrieveK
	if k <= 0 {
		k = cfg.RetrievalDepth()
	}

	passages, err := vs.Query(context.Background(), args[0], k)
	if err != nil {
		exitWithError(ExitError, "retrieving passages: %v", err)
	}

	if humanOutput {
		if len(passages) == 0 {
			fmt.Println("No passages found")
		} else {
			for _, p := range passages {
				fmt.Printf("- %s\n  [%s, p.%d] (%.2f)\n\n",
					truncateString(p.Text, PassageMaxLen), p.Filename, p.Page, p.Similarity)
			}
		}
	} else {
		if passages == nil {
			passages = []vector.Passage{}
		}
		outputJSON(passages)
	}

	return nil
}
