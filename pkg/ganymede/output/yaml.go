package output

import (
	"bytes"

	"gopkg.in/yaml.v3"

	"github.com/ganymede-tools/ganymede/pkg/ganymede/models"
)

// ToYAML serializes notebook data to YAML.
func ToYAML(nb *models.NotebookData) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(nb); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
