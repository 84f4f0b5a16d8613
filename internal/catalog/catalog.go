// Package catalog holds the default category set shipped with the binary.
package catalog

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"promptkit/internal/domain/models"
)

//go:embed data/categories.yaml
var dataFiles embed.FS

type categoriesFile struct {
	Categories []models.Category `yaml:"categories"`
}

// DefaultCategories returns the embedded categories in file order.
func DefaultCategories() ([]models.Category, error) {
	data, err := dataFiles.ReadFile("data/categories.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read categories: %w", err)
	}

	var f categoriesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to unmarshal categories: %w", err)
	}

	seen := make(map[string]bool, len(f.Categories))
	for _, c := range f.Categories {
		key := strings.ToLower(strings.TrimSpace(c.Name))
		if key == "" {
			return nil, fmt.Errorf("category with empty name")
		}
		if seen[key] {
			return nil, fmt.Errorf("duplicate category %q", c.Name)
		}
		seen[key] = true
	}
	return f.Categories, nil
}
