// Package config handles library and global configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents library configuration stored in .scholium/config.json.
type Config struct {
	EmbedProvider string `json:"embed_provider"`         // "ollama" or "openai"
	EmbedModel    string `json:"embed_model,omitempty"`  // Provider-specific model override
	LLMModel      string `json:"llm_model,omitempty"`    // Chat model override
	PDFReader     string `json:"pdf_reader,omitempty"`   // Reader preference: system, zathura, etc.
	TopK          int    `json:"top_k,omitempty"`        // Retrieval depth
	DefaultUser   string `json:"default_user,omitempty"` // User when --user is not given
}

const (
	ScholiumDir = ".scholium"
	ConfigFile  = "config.json"
	StoreDir    = "store"
	SummaryDir  = "summaries"
	HistoryDir  = "conversations"
)

// DefaultTopK is the retrieval depth when top_k is not configured.
const DefaultTopK = 4

// DefaultUserID identifies the library owner when no user is named.
const DefaultUserID = "local"

// ValidProviders lists the supported embedding providers.
var ValidProviders = []string{"ollama", "openai"}

// ValidReaders lists the supported PDF reader values.
var ValidReaders = []string{"system", "zathura", "evince", "okular", "skim"}

// ScholiumPath returns the path to the .scholium directory from a root path.
func ScholiumPath(root string) string {
	return filepath.Join(root, ScholiumDir)
}

// ConfigPath returns the path to config.json from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, ScholiumDir, ConfigFile)
}

// StorePath returns the path to the user data store from a root path.
func StorePath(root string) string {
	return filepath.Join(root, ScholiumDir, StoreDir)
}

// SummaryPath returns the path to the summary cache from a root path.
func SummaryPath(root string) string {
	return filepath.Join(root, ScholiumDir, SummaryDir)
}

// HistoryPath returns the path to conversation history from a root path.
func HistoryPath(root string) string {
	return filepath.Join(root, ScholiumDir, HistoryDir)
}

// IsLibrary checks if the given path contains a scholium library.
func IsLibrary(root string) bool {
	info, err := os.Stat(ScholiumPath(root))
	return err == nil && info.IsDir()
}

// FindLibrary walks up from the given path to find a scholium library.
// Returns the library root path or an error if not found.
func FindLibrary(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsLibrary(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("not in a scholium library (no .scholium directory found)")
		}
		abs = parent
	}
}

// Load reads configuration from the library at the given root.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// Save writes configuration to the library at the given root.
func (c *Config) Save(root string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// UserID returns the configured default user, falling back to DefaultUserID.
func (c *Config) UserID() string {
	if c.DefaultUser != "" {
		return c.DefaultUser
	}
	return DefaultUserID
}

// RetrievalDepth returns the configured top_k, falling back to DefaultTopK.
func (c *Config) RetrievalDepth() int {
	if c.TopK > 0 {
		return c.TopK
	}
	return DefaultTopK
}

// ValidateProvider checks that the embedding provider value is valid.
func ValidateProvider(provider string) error {
	if provider == "" {
		return nil // Empty defaults to "ollama"
	}

	for _, valid := range ValidProviders {
		if provider == valid {
			return nil
		}
	}

	return fmt.Errorf("invalid embed_provider: %s (valid: %v)", provider, ValidProviders)
}

// ValidatePDFReader checks that the reader value is valid.
func ValidatePDFReader(reader string) error {
	if reader == "" {
		return nil // Empty defaults to "system"
	}

	for _, valid := range ValidReaders {
		if reader == valid {
			return nil
		}
	}

	return fmt.Errorf("invalid pdf_reader: %s (valid: %v)", reader, ValidReaders)
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path // Return original if we can't get home directory
	}

	return filepath.Join(home, path[1:])
}
