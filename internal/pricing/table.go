package pricing

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	domainErrors "github.com/polkiloo/brisa/internal/domain/errors"
	"github.com/polkiloo/brisa/internal/domain/model"
)

// DefaultZones is the built-in Havana price list used when no zones file is configured.
var DefaultZones = []model.ZonePrice{
	{Zone: "Cerro", BasePrice: 600},
	{Zone: "Diez de Octubre", BasePrice: 600},
	{Zone: "Centro Habana", BasePrice: 700},
	{Zone: "Habana Vieja", BasePrice: 700},
	{Zone: "Plaza", BasePrice: 750},
	{Zone: "Vedado", BasePrice: 800},
	{Zone: "Nuevo Vedado", BasePrice: 840},
	{Zone: "Marianao", BasePrice: 900},
	{Zone: "Playa", BasePrice: 950},
	{Zone: "Boyeros", BasePrice: 1100},
}

// Table is an immutable zone to base price mapping that keeps declaration order.
type Table struct {
	zones []model.ZonePrice
	index map[string]int
}

// NewTable validates entries and builds a table. Names must be unique ignoring case.
func NewTable(zones []model.ZonePrice) (*Table, error) {
	if len(zones) == 0 {
		return nil, fmt.Errorf("%w: zone table is empty", domainErrors.ErrValidation)
	}
	t := &Table{
		zones: make([]model.ZonePrice, 0, len(zones)),
		index: make(map[string]int, len(zones)),
	}
	for _, z := range zones {
		name := strings.TrimSpace(z.Zone)
		if name == "" {
			return nil, fmt.Errorf("%w: zone name must not be empty", domainErrors.ErrValidation)
		}
		if z.BasePrice <= 0 {
			return nil, fmt.Errorf("%w: zone %q: base price must be positive, got %d", domainErrors.ErrValidation, name, z.BasePrice)
		}
		key := normalize(name)
		if _, dup := t.index[key]; dup {
			return nil, fmt.Errorf("%w: zone %q declared twice", domainErrors.ErrValidation, name)
		}
		t.index[key] = len(t.zones)
		t.zones = append(t.zones, model.ZonePrice{Zone: name, BasePrice: z.BasePrice})
	}
	return t, nil
}

// MustDefault returns the built-in table.
func MustDefault() *Table {
	t, err := NewTable(DefaultZones)
	if err != nil {
		panic(err)
	}
	return t
}

type zonesFile struct {
	Zones []model.ZonePrice `yaml:"zones"`
}

// LoadFile reads a YAML zone list of the form `zones: [{zone: Cerro, price: 600}]`.
func LoadFile(path string) (*Table, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read zones file: %w", err)
	}
	var f zonesFile
	if err := yaml.Unmarshal(content, &f); err != nil {
		return nil, fmt.Errorf("decode zones file: %w", err)
	}
	return NewTable(f.Zones)
}

// Lookup resolves a zone by name, ignoring case and surrounding whitespace.
func (t *Table) Lookup(name string) (model.ZonePrice, bool) {
	i, ok := t.index[normalize(name)]
	if !ok {
		return model.ZonePrice{}, false
	}
	return t.zones[i], true
}

// BasePrice returns the zone base price or zero for zones absent from the table.
func (t *Table) BasePrice(name string) int64 {
	z, ok := t.Lookup(name)
	if !ok {
		return 0
	}
	return z.BasePrice
}

// Zones returns a copy of the entries in declaration order.
func (t *Table) Zones() []model.ZonePrice {
	return append([]model.ZonePrice(nil), t.zones...)
}

// Names returns zone names in declaration order.
func (t *Table) Names() []string {
	names := make([]string, len(t.zones))
	for i, z := range t.zones {
		names[i] = z.Zone
	}
	return names
}

func normalize(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
