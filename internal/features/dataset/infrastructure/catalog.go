package infrastructure

import (
	_ "embed"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"tirewriter/backend/internal/features/dataset/domain"
)

//go:embed cases.yaml
var casesYAML []byte

// CaseRepository gives read access to the case catalog.
type CaseRepository interface {
	List() []domain.Case
	Get(ref string) (domain.Case, error)
}

// Catalog is an immutable, in-memory CaseRepository.
type Catalog struct {
	cases []domain.Case
	byKey map[string]int
}

type catalogFile struct {
	Cases []domain.Case `yaml:"cases"`
}

// LoadCatalog parses the embedded case catalog.
func LoadCatalog() (*Catalog, error) {
	return ParseCatalog(casesYAML)
}

// ParseCatalog builds a catalog from YAML. Keys must be unique and non-empty.
func ParseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse case catalog: %w", err)
	}
	if len(file.Cases) == 0 {
		return nil, fmt.Errorf("case catalog is empty")
	}

	c := &Catalog{cases: file.Cases, byKey: make(map[string]int, len(file.Cases))}
	for i, cs := range file.Cases {
		if cs.Key == "" {
			return nil, fmt.Errorf("case %d has no key", i+1)
		}
		if _, dup := c.byKey[cs.Key]; dup {
			return nil, fmt.Errorf("duplicate case key %q", cs.Key)
		}
		c.byKey[cs.Key] = i
	}
	return c, nil
}

// List returns a copy of the cases in catalog order.
func (c *Catalog) List() []domain.Case {
	out := make([]domain.Case, len(c.cases))
	copy(out, c.cases)
	return out
}

// Get resolves a case by key ("案例2") or by 1-based ordinal ("2").
func (c *Catalog) Get(ref string) (domain.Case, error) {
	if i, ok := c.byKey[ref]; ok {
		return c.cases[i], nil
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(c.cases) {
		return c.cases[n-1], nil
	}
	return domain.Case{}, fmt.Errorf("%w: %q", domain.ErrCaseNotFound, ref)
}

var _ CaseRepository = (*Catalog)(nil)
