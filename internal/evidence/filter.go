// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package evidence

import (
	"errors"
	"fmt"

	"github.com/pdiddy/policy-engine/pkg/types"
)

// ErrUnknownQuality is returned for a quality tier other than high, medium or low.
var ErrUnknownQuality = errors.New("unknown quality tier")

// FilterByQuality keeps the records whose tier is at least minQuality,
// preserving order.
func FilterByQuality(evidence []types.ScoredEvidence, minQuality types.QualityTier) ([]types.ScoredEvidence, error) {
	if !minQuality.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownQuality, minQuality)
	}
	out := make([]types.ScoredEvidence, 0, len(evidence))
	for _, e := range evidence {
		if e.Quality.Rank() >= minQuality.Rank() {
			out = append(out, e)
		}
	}
	return out, nil
}
