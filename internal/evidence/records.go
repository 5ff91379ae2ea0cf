// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package evidence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/policy-engine/pkg/types"
)

// LoadRecords reads a list of article records from a .json, .yaml or .yml
// file and normalizes each one.
func LoadRecords(path string) ([]types.ArticleRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading records %s: %w", path, err)
	}

	var records []types.ArticleRecord
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = json.Unmarshal(data, &records)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &records)
	default:
		return nil, fmt.Errorf("unsupported records file %s: use .json, .yaml or .yml", path)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing records %s: %w", path, err)
	}

	for i := range records {
		records[i] = records[i].Normalize()
	}
	return records, nil
}

// LoadSynthesis reads an EvidenceSynthesis written by the process command.
func LoadSynthesis(path string) (types.EvidenceSynthesis, error) {
	var s types.EvidenceSynthesis
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("reading synthesis %s: %w", path, err)
	}
	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, &s)
	} else {
		err = yaml.Unmarshal(data, &s)
	}
	if err != nil {
		return s, fmt.Errorf("parsing synthesis %s: %w", path, err)
	}
	return s, nil
}
