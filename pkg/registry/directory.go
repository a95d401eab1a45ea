package registry

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/hashgraph-online/nft-standards-sdk-go/pkg/nft"
)

// Directory remembers which standard a contract implements. It stores
// standard identity only, never token state.
type Directory interface {
	Lookup(ctx context.Context, contractID string) (nft.StandardID, bool, error)
	Record(ctx context.Context, contractID string, id nft.StandardID) error
}

type MemoryDirectory struct {
	mu        sync.RWMutex
	standards map[string]nft.StandardID
}

var _ Directory = (*MemoryDirectory)(nil)

func NewMemoryDirectory() *MemoryDirectory {
	return &MemoryDirectory{standards: make(map[string]nft.StandardID)}
}

func (directory *MemoryDirectory) Lookup(_ context.Context, contractID string) (nft.StandardID, bool, error) {
	directory.mu.RLock()
	defer directory.mu.RUnlock()
	id, ok := directory.standards[strings.TrimSpace(contractID)]
	return id, ok, nil
}

func (directory *MemoryDirectory) Record(_ context.Context, contractID string, id nft.StandardID) error {
	contractID = strings.TrimSpace(contractID)
	if contractID == "" {
		return fmt.Errorf("contract ID is required")
	}
	if err := id.Validate(); err != nil {
		return err
	}

	directory.mu.Lock()
	defer directory.mu.Unlock()
	directory.standards[contractID] = id
	return nil
}

func (directory *MemoryDirectory) Len() int {
	directory.mu.RLock()
	defer directory.mu.RUnlock()
	return len(directory.standards)
}

type directoryFile struct {
	Contracts []directoryEntry `yaml:"contracts"`
}

type directoryEntry struct {
	ID       string `yaml:"id"`
	Standard string `yaml:"standard"`
}

// LoadDirectoryFile reads a YAML file of the form
//
//	contracts:
//	  - id: ryjl3-tyaaa-aaaaa-aaaba-cai
//	    standard: ext
func LoadDirectoryFile(path string) (*MemoryDirectory, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read directory file: %w", err)
	}
	return ParseDirectory(content)
}

func ParseDirectory(content []byte) (*MemoryDirectory, error) {
	var file directoryFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("decode directory file: %w", err)
	}

	directory := NewMemoryDirectory()
	for index, entry := range file.Contracts {
		if err := directory.Record(context.Background(), entry.ID, nft.StandardID(strings.TrimSpace(entry.Standard))); err != nil {
			return nil, fmt.Errorf("directory entry %d: %w", index, err)
		}
	}
	return directory, nil
}
