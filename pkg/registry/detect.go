package registry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hashgraph-online/nft-standards-sdk-go/pkg/nft"
)

// Detect probes ref with every registered standard that has a probe and
// returns the one that matched. Several matches fail with
// nft.ErrAmbiguousStandard and none with nft.ErrUnknownStandard. A probe
// failure other than a contract rejection aborts detection.
func (registry *Registry) Detect(ctx context.Context, ref nft.ContractRef) (nft.StandardID, error) {
	if err := ref.Validate(); err != nil {
		return "", err
	}

	candidates := make([]Descriptor, 0)
	for _, descriptor := range registry.descriptorsInOrder() {
		if descriptor.Probe != nil {
			candidates = append(candidates, descriptor)
		}
	}

	started := time.Now()
	matched := make([]bool, len(candidates))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(registry.probeConcurrency)
	for i, descriptor := range candidates {
		group.Go(func() error {
			ok, err := descriptor.Probe(groupCtx, queryOnly(ref))
			if err != nil {
				return fmt.Errorf("probe %s: %w", descriptor.ID, err)
			}
			matched[i] = ok
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return "", err
	}

	matches := make([]nft.StandardID, 0, 1)
	for i, descriptor := range candidates {
		if matched[i] {
			matches = append(matches, descriptor.ID)
		}
	}

	logEvent := registry.logger.Debug().
		Str("contract", ref.ID).
		Int("probes", len(candidates)).
		Dur("elapsed", time.Since(started))

	switch len(matches) {
	case 0:
		logEvent.Msg("no standard matched contract")
		return "", &nft.Error{Kind: nft.ErrUnknownStandard, Contract: ref.ID, Message: "no registered standard matched"}
	case 1:
		logEvent.Str("standard", string(matches[0])).Msg("detected contract standard")
		return matches[0], nil
	default:
		names := make([]string, 0, len(matches))
		for _, id := range matches {
			names = append(names, string(id))
		}
		logEvent.Strs("candidates", names).Msg("several standards matched contract")
		return "", &nft.Error{
			Kind:     nft.ErrAmbiguousStandard,
			Contract: ref.ID,
			Message:  "matched " + strings.Join(names, ", "),
		}
	}
}

// queryOnly rebinds ref so that update calls fail before reaching the
// transport.
func queryOnly(ref nft.ContractRef) nft.ContractRef {
	inner := ref.Caller
	ref.Caller = nft.CallerFunc(func(ctx context.Context, request nft.CallRequest) (nft.RawResult, error) {
		if request.Kind != nft.CallQuery {
			return nil, fmt.Errorf("probe attempted %s call %s", request.Kind, request.Method)
		}
		return inner.Call(ctx, request)
	})
	return ref
}
