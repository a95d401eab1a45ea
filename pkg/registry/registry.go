package registry

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/hashgraph-online/nft-standards-sdk-go/pkg/nft"
)

// Constructor binds an adapter to one contract.
type Constructor func(ref nft.ContractRef) (nft.NFT, error)

// ProbeFunc reports whether a contract implements a standard. Probes must
// only issue query calls.
type ProbeFunc func(ctx context.Context, ref nft.ContractRef) (bool, error)

// Descriptor associates a standard with its constructor and optional probe.
type Descriptor struct {
	ID          nft.StandardID
	Description string
	New         Constructor
	Probe       ProbeFunc
}

func (descriptor Descriptor) validate() error {
	if err := descriptor.ID.Validate(); err != nil {
		return err
	}
	if descriptor.New == nil {
		return fmt.Errorf("standard %q has no constructor", descriptor.ID)
	}
	return nil
}

type State string

const (
	// StateBuilt is the state after construction.
	StateBuilt State = "built"
	// StateExtended means at least one standard was registered after construction.
	StateExtended State = "extended"
)

const DefaultProbeConcurrency = 4

type Options struct {
	Logger *zerolog.Logger
	// Directory remembers contract standards for ResolveContract.
	Directory Directory
	// ProbeConcurrency bounds the probes Detect runs at once.
	ProbeConcurrency int
}

type RegisterOptions struct {
	// Replace overwrites an existing descriptor with the same ID.
	Replace bool
}

type Registry struct {
	mu               sync.RWMutex
	order            []nft.StandardID
	descriptors      map[nft.StandardID]Descriptor
	state            State
	logger           zerolog.Logger
	directory        Directory
	probeConcurrency int
}

// New creates an empty Registry.
func New(options Options) *Registry {
	logger := zerolog.Nop()
	if options.Logger != nil {
		logger = options.Logger.With().Str("component", "nft-registry").Logger()
	}
	concurrency := options.ProbeConcurrency
	if concurrency <= 0 {
		concurrency = DefaultProbeConcurrency
	}

	return &Registry{
		order:            make([]nft.StandardID, 0),
		descriptors:      make(map[nft.StandardID]Descriptor),
		state:            StateBuilt,
		logger:           logger,
		directory:        options.Directory,
		probeConcurrency: concurrency,
	}
}

// NewDefault creates a Registry seeded with the built-in standards.
func NewDefault(options Options) *Registry {
	registry := New(options)
	for _, descriptor := range DefaultDescriptors() {
		if err := registry.add(descriptor, false); err != nil {
			panic(err)
		}
	}
	return registry
}

// Register adds a standard. It fails with nft.ErrDuplicateStandard when the
// ID is taken and options.Replace is false.
func (registry *Registry) Register(descriptor Descriptor, options RegisterOptions) error {
	if err := registry.add(descriptor, options.Replace); err != nil {
		return err
	}

	registry.mu.Lock()
	registry.state = StateExtended
	registry.mu.Unlock()

	registry.logger.Debug().
		Str("standard", string(descriptor.ID)).
		Bool("replace", options.Replace).
		Msg("registered NFT standard")
	return nil
}

func (registry *Registry) add(descriptor Descriptor, replace bool) error {
	descriptor.ID = nft.StandardID(strings.TrimSpace(string(descriptor.ID)))
	if err := descriptor.validate(); err != nil {
		return err
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()

	if _, exists := registry.descriptors[descriptor.ID]; exists {
		if !replace {
			return &nft.Error{Kind: nft.ErrDuplicateStandard, Standard: descriptor.ID}
		}
	} else {
		registry.order = append(registry.order, descriptor.ID)
	}
	registry.descriptors[descriptor.ID] = descriptor
	return nil
}

// Resolve instantiates the adapter registered for id bound to ref.
func (registry *Registry) Resolve(id nft.StandardID, ref nft.ContractRef) (nft.NFT, error) {
	descriptor, ok := registry.Lookup(id)
	if !ok {
		return nil, &nft.Error{Kind: nft.ErrUnknownStandard, Standard: id, Contract: ref.ID}
	}

	adapter, err := descriptor.New(ref)
	if err != nil {
		return nil, fmt.Errorf("construct %s adapter for %s: %w", id, ref.ID, err)
	}
	if adapter == nil {
		return nil, fmt.Errorf("construct %s adapter for %s: constructor returned no adapter", id, ref.ID)
	}
	return adapter, nil
}

// ResolveContract resolves the adapter for ref, consulting the directory
// before falling back to Detect. Detected standards are recorded.
func (registry *Registry) ResolveContract(ctx context.Context, ref nft.ContractRef) (nft.NFT, error) {
	if err := ref.Validate(); err != nil {
		return nil, err
	}

	if registry.directory != nil {
		id, found, err := registry.directory.Lookup(ctx, ref.ID)
		if err != nil {
			return nil, fmt.Errorf("look up standard of %s: %w", ref.ID, err)
		}
		if found {
			registry.logger.Debug().
				Str("contract", ref.ID).
				Str("standard", string(id)).
				Msg("contract standard found in directory")
			return registry.Resolve(id, ref)
		}
	}

	id, err := registry.Detect(ctx, ref)
	if err != nil {
		return nil, err
	}
	if registry.directory != nil {
		if err := registry.directory.Record(ctx, ref.ID, id); err != nil {
			return nil, fmt.Errorf("record standard of %s: %w", ref.ID, err)
		}
	}
	return registry.Resolve(id, ref)
}

// Lookup returns the descriptor registered for id.
func (registry *Registry) Lookup(id nft.StandardID) (Descriptor, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	descriptor, ok := registry.descriptors[id]
	return descriptor, ok
}

// Standards returns the catalog in registration order.
func (registry *Registry) Standards() []nft.StandardInfo {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	result := make([]nft.StandardInfo, 0, len(registry.order))
	for _, id := range registry.order {
		result = append(result, nft.StandardInfo{
			ID:          id,
			Description: registry.descriptors[id].Description,
		})
	}
	return result
}

func (registry *Registry) State() State {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	return registry.state
}

func (registry *Registry) descriptorsInOrder() []Descriptor {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	result := make([]Descriptor, 0, len(registry.order))
	for _, id := range registry.order {
		result = append(result, registry.descriptors[id])
	}
	return result
}
