package nft

import (
	"context"
	"iter"
)

// LazyTokens defers fetch until the returned sequence is iterated. A fetch
// error is yielded once and ends the sequence.
func LazyTokens(ctx context.Context, fetch func(ctx context.Context) ([]TokenID, error)) iter.Seq2[TokenID, error] {
	return func(yield func(TokenID, error) bool) {
		tokens, err := fetch(ctx)
		if err != nil {
			yield("", err)
			return
		}
		for _, token := range tokens {
			if err := ctx.Err(); err != nil {
				yield("", err)
				return
			}
			if !yield(token, nil) {
				return
			}
		}
	}
}

// CollectTokens drains a token sequence.
func CollectTokens(tokens iter.Seq2[TokenID, error]) ([]TokenID, error) {
	result := make([]TokenID, 0)
	for token, err := range tokens {
		if err != nil {
			return nil, err
		}
		result = append(result, token)
	}
	return result, nil
}

// CountTokens drains a token sequence and returns its length.
func CountTokens(tokens iter.Seq2[TokenID, error]) (uint64, error) {
	count := uint64(0)
	for _, err := range tokens {
		if err != nil {
			return 0, err
		}
		count++
	}
	return count, nil
}
