// Package main provides the sch CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/scholium/scholium/internal/config"
	"github.com/scholium/scholium/internal/embedding"
	"github.com/scholium/scholium/internal/library"
	"github.com/scholium/scholium/internal/llm"
	"github.com/scholium/scholium/internal/vector"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

// userID selects whose library slice to operate on
var userID string

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sch",
	Short: "Research assistant over your PDF library",
	Long: `sch ingests PDF papers into a local library, extracts their
bibliographic metadata, and indexes their text for retrieval.

Questions are answered from retrieved passages with page-level citations,
and external academic APIs can be searched for related work. All commands
output JSON by default for easy integration with other tools.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	_ = godotenv.Load()
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&userID, "user", "", "User whose library to operate on")
	rootCmd.Version = Version
}

// getStartingDirectory returns the directory to search for a library from.
// Checks SCHOLIUM_ROOT, then global config library_path, then the cwd.
func getStartingDirectory() (string, int) {
	if root := os.Getenv("SCHOLIUM_ROOT"); root != "" {
		return root, 0
	}
	if root := config.GetLibraryPath(); root != "" {
		return root, 0
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", outputError(ExitError, "getting current directory: %v", err)
	}
	return cwd, 0
}

// mustFindLibrary finds and validates the library, exits on error.
// Returns the library root path.
func mustFindLibrary() string {
	start, exitCode := getStartingDirectory()
	if exitCode != 0 {
		os.Exit(exitCode)
	}

	root, err := config.FindLibrary(start)
	if err != nil {
		fmt.Fprintln(os.Stderr, config.HelpfulConfigMessage())
		os.Exit(ExitConfigError)
	}
	return root
}

// mustLoadConfig loads library configuration, exits on error.
func mustLoadConfig(root string) *config.Config {
	cfg, err := config.Load(root)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// activeUser resolves the --user flag against the configured default.
func activeUser(cfg *config.Config) string {
	if userID != "" {
		return userID
	}
	return cfg.UserID()
}

// mustOpenStore opens the library's user store, exits on error.
func mustOpenStore(root string) *library.Store {
	store, err := library.NewStore(config.StorePath(root))
	if err != nil {
		exitWithError(ExitError, "opening store: %v", err)
	}
	return store
}

// mustOpenCatalog opens the user's document catalog, exits on error.
// The caller is responsible for calling Close() on the returned catalog.
func mustOpenCatalog(store *library.Store, user string) *library.Catalog {
	path, err := store.CatalogPath(user)
	if err != nil {
		exitWithError(ExitError, "locating catalog: %v", err)
	}
	catalog, err := library.OpenCatalog(path)
	if err != nil {
		exitWithError(ExitError, "opening catalog: %v", err)
	}
	return catalog
}

// newEmbeddingProvider builds the configured embedding provider.
func newEmbeddingProvider(cfg *config.Config) embedding.Provider {
	if cfg.EmbedProvider == "openai" {
		var opts []embedding.OpenAIOption
		if cfg.EmbedModel != "" {
			opts = append(opts, embedding.WithOpenAIModel(cfg.EmbedModel, embedding.DefaultOpenAIDimensions))
		}
		return embedding.NewOpenAIProvider(config.GetOpenAIAPIKey(), config.GetOpenAIBaseURL(), opts...)
	}

	var opts []embedding.OllamaOption
	if url := config.GetOllamaURL(); url != "" {
		opts = append(opts, embedding.WithBaseURL(url))
	}
	if cfg.EmbedModel != "" {
		opts = append(opts, embedding.WithModel(cfg.EmbedModel))
	}
	return embedding.NewOllamaProvider(opts...)
}

// mustOpenVector opens the user's vector index, exits on error.
func mustOpenVector(store *library.Store, user string, provider embedding.Provider) *vector.Store {
	dir, err := store.IndexDir(user)
	if err != nil {
		exitWithError(ExitError, "locating index: %v", err)
	}
	vs, err := vector.Open(dir, provider)
	if err != nil {
		exitWithError(ExitError, "opening vector index: %v", err)
	}
	return vs
}

// newLLMClient builds the chat model client from configuration.
func newLLMClient(cfg *config.Config) *llm.Client {
	return llm.New(config.GetOpenAIAPIKey(), config.GetOpenAIBaseURL(),
		llm.WithModel(cfg.LLMModel))
}
