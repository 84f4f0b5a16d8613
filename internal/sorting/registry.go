package sorting

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/*.yaml
var configFiles embed.FS

// Trending is the fallback sort key.
const Trending = "trending"

// OrderColumn is one ORDER BY term.
type OrderColumn struct {
	Column    string `yaml:"column"`
	Direction string `yaml:"direction"`
}

// Option is a named sort for the explore listing.
type Option struct {
	Key   string        `yaml:"key" json:"key"`
	Label string        `yaml:"label" json:"label"`
	Order []OrderColumn `yaml:"order" json:"-"`
}

type file struct {
	Default string   `yaml:"default"`
	Options []Option `yaml:"options"`
}

// Registry holds the sort options loaded from the embedded catalog.
type Registry struct {
	options    []Option
	byKey      map[string]*Option
	defaultKey string
	mu         sync.RWMutex
}

// NewRegistry loads config/sort_options.yaml.
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/sort_options.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read sort options: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Registry, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sort options: %w", err)
	}

	r := &Registry{
		options: f.Options,
		byKey:   make(map[string]*Option, len(f.Options)),
	}
	for i := range r.options {
		opt := &r.options[i]
		if opt.Key == "" {
			return nil, fmt.Errorf("sort option %d has no key", i)
		}
		if len(opt.Order) == 0 {
			return nil, fmt.Errorf("sort option %s has no order columns", opt.Key)
		}
		for _, col := range opt.Order {
			switch strings.ToLower(col.Direction) {
			case "asc", "desc":
			default:
				return nil, fmt.Errorf("sort option %s: invalid direction %q", opt.Key, col.Direction)
			}
		}
		if _, dup := r.byKey[opt.Key]; dup {
			return nil, fmt.Errorf("duplicate sort option %s", opt.Key)
		}
		r.byKey[opt.Key] = opt
	}

	r.defaultKey = f.Default
	if r.defaultKey == "" {
		r.defaultKey = Trending
	}
	if _, ok := r.byKey[r.defaultKey]; !ok {
		return nil, fmt.Errorf("default sort option %s is not defined", r.defaultKey)
	}
	return r, nil
}

// Resolve returns the option for key, or the default option when key is
// empty or unknown.
func (r *Registry) Resolve(key string) Option {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if opt, ok := r.byKey[key]; ok {
		return *opt
	}
	return *r.byKey[r.defaultKey]
}

// OrderBy renders the ORDER BY list for key. p.id is appended as a final
// tie-break so pagination is stable.
func (r *Registry) OrderBy(key string) string {
	opt := r.Resolve(key)
	terms := make([]string, 0, len(opt.Order)+1)
	for _, col := range opt.Order {
		terms = append(terms, col.Column+" "+strings.ToUpper(col.Direction))
	}
	terms = append(terms, "p.id ASC")
	return strings.Join(terms, ", ")
}

// Options lists the options in catalog order.
func (r *Registry) Options() []Option {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Option, len(r.options))
	copy(out, r.options)
	return out
}

// Default returns the key used for empty or unknown sort requests.
func (r *Registry) Default() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaultKey
}
