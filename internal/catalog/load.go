package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type itemFile struct {
	Items []itemYAML `yaml:"items"`
}

type itemYAML struct {
	ID        string  `yaml:"id"`
	Name      string  `yaml:"name"`
	Category  string  `yaml:"category"`
	Rarity    string  `yaml:"rarity"`
	BasePrice int     `yaml:"base_price"`
	Weight    float64 `yaml:"weight"`
	StackSize int     `yaml:"stack_size"`
}

// LoadFile reads an item catalog from a YAML file.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse builds a catalog from YAML bytes.
func Parse(data []byte) (*Catalog, error) {
	var file itemFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(file.Items) == 0 {
		return nil, fmt.Errorf("parse catalog: no items")
	}

	defs := make([]ItemDefinition, 0, len(file.Items))
	for _, y := range file.Items {
		if y.ID == "" {
			return nil, fmt.Errorf("parse catalog: item with empty id")
		}
		if y.BasePrice <= 0 {
			return nil, fmt.Errorf("parse catalog: item %q: base_price must be positive", y.ID)
		}
		rarity, err := parseRarity(y.Rarity)
		if err != nil {
			return nil, fmt.Errorf("parse catalog: item %q: %w", y.ID, err)
		}
		name := y.Name
		if name == "" {
			name = y.ID
		}
		defs = append(defs, ItemDefinition{
			ID:        ItemID(y.ID),
			Name:      name,
			Category:  Category(y.Category),
			Rarity:    rarity,
			BasePrice: y.BasePrice,
			Weight:    y.Weight,
			StackSize: y.StackSize,
		})
	}
	return New(defs), nil
}

func parseRarity(s string) (Rarity, error) {
	switch strings.ToLower(s) {
	case "", "common":
		return RarityCommon, nil
	case "uncommon":
		return RarityUncommon, nil
	case "rare":
		return RarityRare, nil
	case "epic":
		return RarityEpic, nil
	case "legendary":
		return RarityLegendary, nil
	default:
		return RarityCommon, fmt.Errorf("unknown rarity %q", s)
	}
}
