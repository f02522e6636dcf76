package mlmodel

import (
	"errors"
	"fmt"
)

// LabelDecoder inverts a multi-label binarizer: column k of an indicator row
// corresponds to Classes[k].
type LabelDecoder struct {
	SchemaVersion string   `json:"schema_version" yaml:"schema_version"`
	Classes       []string `json:"classes" yaml:"classes"`
}

// LoadDecoder reads and validates a label decoder artifact.
func LoadDecoder(path string) (*LabelDecoder, error) {
	d := &LabelDecoder{}
	if err := decodeArtifact(path, d); err != nil {
		return nil, err
	}
	if len(d.Classes) == 0 {
		return nil, fmt.Errorf("invalid decoder artifact %s: classes is empty", path)
	}
	seen := make(map[string]bool, len(d.Classes))
	for _, c := range d.Classes {
		if seen[c] {
			return nil, fmt.Errorf("invalid decoder artifact %s: duplicate class %q", path, c)
		}
		seen[c] = true
	}
	return d, nil
}

// InverseTransform maps each indicator row to the labels whose bit is set,
// in class order. Rows never decode to nil.
func (d *LabelDecoder) InverseTransform(indicators [][]int) ([][]string, error) {
	out := make([][]string, len(indicators))
	for i, row := range indicators {
		if len(row) != len(d.Classes) {
			return nil, fmt.Errorf("row %d: expected indicator matrix with width %d, got %d", i, len(d.Classes), len(row))
		}
		labels := make([]string, 0, len(row))
		for k, bit := range row {
			switch bit {
			case 0:
			case 1:
				labels = append(labels, d.Classes[k])
			default:
				return nil, errors.New("expected only 0s and 1s in label indicator matrix")
			}
		}
		out[i] = labels
	}
	return out, nil
}
