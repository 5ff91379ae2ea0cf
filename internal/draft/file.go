// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package draft

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/policy-engine/pkg/types"
)

// LoadDraft reads a draft from a .json file, or YAML for any other
// extension.
func LoadDraft(path string) (types.PolicyDraft, error) {
	var d types.PolicyDraft
	data, err := os.ReadFile(path)
	if err != nil {
		return d, fmt.Errorf("reading draft: %w", err)
	}
	if isJSON(path) {
		err = json.Unmarshal(data, &d)
	} else {
		err = yaml.Unmarshal(data, &d)
	}
	if err != nil {
		return d, fmt.Errorf("parsing draft %s: %w", path, err)
	}
	if d.Components == nil {
		d.Components = map[string]string{}
	}
	return d, nil
}

// SaveDraft writes d to path as JSON or YAML by extension, creating the
// parent directory.
func SaveDraft(path string, d types.PolicyDraft) error {
	var (
		data []byte
		err  error
	)
	if isJSON(path) {
		data, err = json.MarshalIndent(d, "", "  ")
	} else {
		data, err = yaml.Marshal(d)
	}
	if err != nil {
		return fmt.Errorf("marshaling draft: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating draft directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing draft %s: %w", path, err)
	}
	return nil
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}
