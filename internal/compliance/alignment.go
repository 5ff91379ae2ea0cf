// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package compliance

import (
	"strings"

	"github.com/pdiddy/policy-engine/pkg/types"
)

// CheckAlignment reports which regulation names occur in content,
// case-insensitively. Both lists keep the order of regs.
func CheckAlignment(content string, regs []string) types.AlignmentResult {
	lower := strings.ToLower(content)
	res := types.AlignmentResult{Aligned: []string{}, NotAligned: []string{}}
	for _, reg := range regs {
		name := strings.TrimSpace(reg)
		if name == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(name)) {
			res.Aligned = append(res.Aligned, reg)
		} else {
			res.NotAligned = append(res.NotAligned, reg)
		}
	}
	return res
}
