package gridio

import (
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/midgard-regions/pkg/terrain"
)

// Document is a grid plus optional mapping metadata, the YAML form of a
// map file.
type Document struct {
	Name    string       `yaml:"name,omitempty"`
	Seed    *SeedSpec    `yaml:"seed,omitempty"`
	Status  string       `yaml:"seed_status,omitempty"`
	Rows    []Row        `yaml:"rows"`
	Regions []RegionSpec `yaml:"regions,omitempty"`
}

// SeedSpec is the seed cell of a document.
type SeedSpec struct {
	Row int `yaml:"row"`
	Col int `yaml:"col"`
}

// RegionSpec summarizes one labeled region.
type RegionSpec struct {
	Label int `yaml:"label"`
	Row   int `yaml:"row"`
	Col   int `yaml:"col"`
	Size  int `yaml:"size"`
}

// Row is one grid row. It is written in YAML flow style.
type Row []int

// MarshalYAML renders the row as a flow sequence: [0, 1, 2].
func (r Row) MarshalYAML() (interface{}, error) {
	n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle}
	for _, v := range r {
		n.Content = append(n.Content, &yaml.Node{
			Kind:  yaml.ScalarNode,
			Tag:   "!!int",
			Value: strconv.Itoa(v),
		})
	}
	return n, nil
}

// NewDocument wraps g. The rows share memory with g.
func NewDocument(name string, g terrain.Grid) *Document {
	doc := &Document{Name: name, Rows: make([]Row, len(g))}
	for i, row := range g {
		doc.Rows[i] = Row(row)
	}
	return doc
}

// FromResult builds a document for a finished mapping run.
func FromResult(name string, seed *terrain.Coord, res *terrain.Result) *Document {
	doc := NewDocument(name, res.Grid)
	if seed != nil {
		doc.Seed = &SeedSpec{Row: seed.Row, Col: seed.Col}
		doc.Status = res.Seed.String()
	}
	for _, r := range res.Regions {
		doc.Regions = append(doc.Regions, RegionSpec{
			Label: r.Label,
			Row:   r.Start.Row,
			Col:   r.Start.Col,
			Size:  r.Size,
		})
	}
	return doc
}

// Grid returns the rows as a terrain grid sharing memory with the document.
func (d *Document) Grid() terrain.Grid {
	g := make(terrain.Grid, len(d.Rows))
	for i, row := range d.Rows {
		g[i] = []int(row)
	}
	return g
}

// SeedCoord returns the document seed, if any.
func (d *Document) SeedCoord() (terrain.Coord, bool) {
	if d.Seed == nil {
		return terrain.Coord{}, false
	}
	return terrain.Coord{Row: d.Seed.Row, Col: d.Seed.Col}, true
}
