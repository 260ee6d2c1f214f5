package circuit

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/circuitlab/dcsim/pkg/component"
	"github.com/circuitlab/dcsim/pkg/geometry"
)

// Document is the persisted-state wire format (spec.md §6): a JSON object
// with one key, "components".
type Document struct {
	Components []ComponentRecord `json:"components"`
}

// ComponentRecord is one component's wire representation.
type ComponentRecord struct {
	CID   string             `json:"cid"`
	CType string             `json:"ctype"`
	A     [2]int             `json:"a"`
	B     [2]int             `json:"b"`
	Props map[string]float64 `json:"props"`
	Meta  map[string]string  `json:"meta"`
}

// DefaultFilename is the default persistence target (spec.md §6).
const DefaultFilename = "circuit.json"

// ToJSON serializes c to pretty-printed UTF-8 JSON in the persisted-state
// format.
func (c *Circuit) ToJSON() ([]byte, error) {
	doc := c.toDocument()
	return json.MarshalIndent(doc, "", "  ")
}

func (c *Circuit) toDocument() Document {
	doc := Document{Components: make([]ComponentRecord, 0, c.Len())}
	for _, comp := range c.Components() {
		doc.Components = append(doc.Components, toRecord(comp))
	}
	return doc
}

func toRecord(comp *component.Component) ComponentRecord {
	props := make(map[string]float64, len(comp.Props))
	for k, v := range comp.Props {
		props[k] = v
	}
	meta := make(map[string]string, len(comp.Meta))
	for k, v := range comp.Meta {
		meta[k] = v
	}
	return ComponentRecord{
		CID:   comp.ID,
		CType: string(comp.Kind),
		A:     [2]int{comp.A.X, comp.A.Y},
		B:     [2]int{comp.B.X, comp.B.Y},
		Props: props,
		Meta:  meta,
	}
}

func fromRecord(r ComponentRecord) *component.Component {
	return &component.Component{
		ID:    r.CID,
		Kind:  component.Kind(r.CType),
		A:     geometry.Pt(r.A[0], r.A[1]),
		B:     geometry.Pt(r.B[0], r.B[1]),
		Props: copyFloatMap(r.Props),
		Meta:  copyStringMap(r.Meta),
	}
}

func copyFloatMap(m map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func copyStringMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// FromJSON parses a persisted-state document into a fresh Circuit.
func FromJSON(data []byte) (*Circuit, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("circuit: parsing document: %w", err)
	}

	c := New()
	for _, r := range doc.Components {
		c.Put(fromRecord(r))
	}
	return c, nil
}

// ApplyJSON replaces c's contents atomically (spec.md §6: "Loading
// replaces the in-memory circuit atomically") from a persisted-state
// document. On parse failure c is left unchanged.
func (c *Circuit) ApplyJSON(data []byte) error {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("circuit: parsing document: %w", err)
	}

	c.byID = make(map[string]*component.Component, len(doc.Components))
	c.order = c.order[:0]
	for _, r := range doc.Components {
		c.Put(fromRecord(r))
	}
	return nil
}

// Save writes c's JSON projection to path.
func (c *Circuit) Save(path string) error {
	data, err := c.ToJSON()
	if err != nil {
		return fmt.Errorf("circuit: serializing: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("circuit: writing %s: %w", path, err)
	}
	return nil
}

// Load replaces c's contents with the document read from path.
func (c *Circuit) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("circuit: reading %s: %w", path, err)
	}
	return c.ApplyJSON(data)
}

// LoadFile reads and parses a fresh Circuit from path.
func LoadFile(path string) (*Circuit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("circuit: reading %s: %w", path, err)
	}
	return FromJSON(data)
}
