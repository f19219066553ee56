package entitlement

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// planDoc is the YAML wire form of a plan. Limits are spelled out per action
// so catalog files stay readable; "unlimited" maps to the Unlimited sentinel.
type planDoc struct {
	Name              string          `yaml:"name"`
	Description       string          `yaml:"description"`
	Generations       *int64          `yaml:"generations"` // nil means unlimited
	Merges            *int64          `yaml:"merges"`      // nil means unlimited
	Shapes            []Shape         `yaml:"shapes"`
	Quality           Quality         `yaml:"quality"`
	Support           Support         `yaml:"support"`
	CommercialLicense bool            `yaml:"commercial_license"`
	APIAccess         bool            `yaml:"api_access"`
	CustomBranding    bool            `yaml:"custom_branding"`
	Price             Money           `yaml:"price"`
	Interval          BillingInterval `yaml:"interval"`
	PriceID           string          `yaml:"price_id"`
	Public            bool            `yaml:"public"`
}

// yamlSource loads the plan catalog from a YAML file, letting operators tune
// ceilings and pricing without a rebuild.
type yamlSource struct {
	path string
}

// NewYAMLSource returns a Source reading plans from the YAML file at path.
func NewYAMLSource(path string) Source {
	return &yamlSource{path: path}
}

// Load parses the catalog file into plans.
func (s *yamlSource) Load(ctx context.Context) (map[string]Plan, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read plan catalog %s: %w", s.path, err)
	}

	var docs map[string]planDoc
	if err := yaml.Unmarshal(data, &docs); err != nil {
		return nil, errors.Join(ErrInvalidPlanConfiguration, err)
	}

	plans := make(map[string]Plan, len(docs))
	for id, doc := range docs {
		plans[id] = Plan{
			ID:          id,
			Name:        doc.Name,
			Description: doc.Description,
			Limits: map[Action]int64{
				ActionGeneration: ceilingFromDoc(doc.Generations),
				ActionMerge:      ceilingFromDoc(doc.Merges),
			},
			Shapes:            doc.Shapes,
			Quality:           doc.Quality,
			Support:           doc.Support,
			CommercialLicense: doc.CommercialLicense,
			APIAccess:         doc.APIAccess,
			CustomBranding:    doc.CustomBranding,
			Price:             doc.Price,
			Interval:          doc.Interval,
			PriceID:           doc.PriceID,
			Public:            doc.Public,
		}
	}
	return plans, nil
}

func ceilingFromDoc(v *int64) int64 {
	if v == nil {
		return Unlimited
	}
	return *v
}
