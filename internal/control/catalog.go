// Package control builds the Texture2Par control file: an ordered catalog
// of named parameters, pilot points, and the fixed-column text writer with
// its PEST template mode.
package control

import (
	"fmt"
	"strings"
)

// Parameter is one named scalar in a catalog: its literal value, the fmt
// verb used to render it, whether it is selected for external estimation,
// and an optional display-name override used for the placeholder token.
type Parameter struct {
	Name     string
	Format   string // fmt verb; "%d" renders the value as an integer
	Value    float64
	Estimate bool
	display  string
}

// Display returns the placeholder token name: the override when set,
// otherwise the parameter name.
func (p *Parameter) Display() string {
	if p.display != "" {
		return p.display
	}
	return p.Name
}

// render formats the literal value with the parameter's verb.
func (p *Parameter) render() string {
	if strings.Contains(p.Format, "d") {
		return fmt.Sprintf(p.Format, int(p.Value))
	}
	return fmt.Sprintf(p.Format, p.Value)
}

// Catalog is an ordered list of named parameters.
type Catalog struct {
	params []*Parameter
}

// NewCatalog builds a catalog preserving parameter order.
func NewCatalog(params ...*Parameter) *Catalog {
	return &Catalog{params: params}
}

// Get returns the named parameter, or nil.
func (c *Catalog) Get(name string) *Parameter {
	for _, p := range c.params {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// Set updates the named parameter's value.
func (c *Catalog) Set(name string, value float64) error {
	p := c.Get(name)
	if p == nil {
		return fmt.Errorf("unknown parameter %q", name)
	}
	p.Value = value
	return nil
}

// Select marks the named parameters as estimation targets. Unknown names
// are an error and leave the catalog unchanged.
func (c *Catalog) Select(names ...string) error {
	for _, name := range names {
		if c.Get(name) == nil {
			return fmt.Errorf("unknown parameter %q", name)
		}
	}
	for _, name := range names {
		c.Get(name).Estimate = true
	}
	return nil
}

// SetDisplayName overrides the placeholder token used for the named
// parameter without changing its catalog key.
func (c *Catalog) SetDisplayName(name, display string) error {
	p := c.Get(name)
	if p == nil {
		return fmt.Errorf("unknown parameter %q", name)
	}
	p.display = display
	return nil
}

// Names lists every parameter name in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.params))
	for i, p := range c.params {
		names[i] = p.Name
	}
	return names
}

// Selected lists the names currently flagged for estimation, in catalog
// order.
func (c *Catalog) Selected() []string {
	var names []string
	for _, p := range c.params {
		if p.Estimate {
			names = append(names, p.Name)
		}
	}
	return names
}
