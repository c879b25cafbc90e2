package pipeline

import (
	"strings"

	"github.com/matzehuels/lintrans/pkg/geom"
)

// ParseFormats splits a comma-separated format list, lowercasing and
// dropping duplicates. An empty string yields nil.
func ParseFormats(s string) ([]string, error) {
	var formats []string
	seen := make(map[string]bool)
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" || seen[f] {
			continue
		}
		if err := ValidateFormat(f); err != nil {
			return nil, err
		}
		seen[f] = true
		formats = append(formats, f)
	}
	return formats, nil
}

// ParseVertices parses a vertex list such as "1,1;3,1;2,3". An empty
// string yields nil, which selects the default triangle.
func ParseVertices(s string) (geom.Shape, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	return geom.ParseShape(s)
}

// ParseMatrix parses a scale such as "2" or "2,3". An empty string yields
// nil, which selects diag(2, 2).
func ParseMatrix(s string) (*geom.ScalingMatrix, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	m, err := geom.ParseScale(s)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
