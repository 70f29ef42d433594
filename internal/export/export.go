// Package export turns a generation result into a YAML or JSON document.
package export

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lawnchairsociety/galaxygen/internal/galaxy"
	"github.com/lawnchairsociety/galaxygen/internal/generator"
	"github.com/lawnchairsociety/galaxygen/internal/shape"
	"github.com/lawnchairsociety/galaxygen/internal/stats"
	"golang.org/x/crypto/blake2b"
	"gopkg.in/yaml.v3"
)

var ErrUnknownFormat = errors.New("export: unknown format")

// Formats
const (
	YAML = "yaml"
	JSON = "json"
)

// Document is the serialized form of a generation result.
type Document struct {
	Seed     int64  `yaml:"seed" json:"seed"`
	Shape    string `yaml:"shape" json:"shape"`
	Valid    bool   `yaml:"valid" json:"valid"`
	Attempts int    `yaml:"attempts" json:"attempts"`

	Stars          []Star          `yaml:"stars" json:"stars"`
	Constellations []Constellation `yaml:"constellations" json:"constellations"`
	Warps          []Link          `yaml:"warps" json:"warps"`
	Wormholes      []Link          `yaml:"wormholes" json:"wormholes"`
	Spawns         []int           `yaml:"spawns" json:"spawns"`

	Defects []Defect     `yaml:"defects" json:"defects"`
	Stats   *stats.Stats `yaml:"stats,omitempty" json:"stats,omitempty"`
}

type Star struct {
	ID            int      `yaml:"id" json:"id"`
	Name          string   `yaml:"name" json:"name"`
	X             float64  `yaml:"x" json:"x"`
	Y             float64  `yaml:"y" json:"y"`
	Type          string   `yaml:"type" json:"type"`
	Region        string   `yaml:"region" json:"region"`
	Constellation int      `yaml:"constellation" json:"constellation"`
	HomeWorld     int      `yaml:"home_world" json:"home_world"`
	Planets       []Planet `yaml:"planets" json:"planets,omitempty"`
}

type Planet struct {
	ID      int      `yaml:"id" json:"id"`
	Type    string   `yaml:"type" json:"type"`
	Size    string   `yaml:"size" json:"size"`
	Anomaly string   `yaml:"anomaly,omitempty" json:"anomaly,omitempty"`
	Moons   []string `yaml:"moons,omitempty" json:"moons,omitempty"`
	Deposit *Deposit `yaml:"deposit,omitempty" json:"deposit,omitempty"`
}

type Deposit struct {
	Name string `yaml:"name" json:"name"`
	Size int    `yaml:"size" json:"size"`
	Kind string `yaml:"kind" json:"kind"`
}

type Constellation struct {
	ID      int    `yaml:"id" json:"id"`
	Name    string `yaml:"name" json:"name"`
	Size    int    `yaml:"size" json:"size"`
	Members []int  `yaml:"members" json:"members,omitempty"`
}

// Link is an undirected warp between two star IDs
type Link struct {
	A int `yaml:"a" json:"a"`
	B int `yaml:"b" json:"b"`
}

type Defect struct {
	Stage   string `yaml:"stage" json:"stage"`
	Message string `yaml:"message" json:"message"`
	Fatal   bool   `yaml:"fatal,omitempty" json:"fatal,omitempty"`
	Attempt int    `yaml:"attempt" json:"attempt"`
}

// FromResult builds the document of r. A failed result only carries its
// defects.
func FromResult(r *generator.Result) *Document {
	doc := &Document{
		Seed:     r.Seed,
		Shape:    r.Shape,
		Valid:    r.Valid,
		Attempts: r.Attempts,
	}
	for _, d := range r.Defects {
		doc.Defects = append(doc.Defects, Defect{Stage: d.Stage, Message: d.Message, Fatal: d.Fatal, Attempt: d.Attempt})
	}
	if r.Galaxy == nil {
		return doc
	}

	g := r.Galaxy
	for _, s := range g.Stars {
		doc.Stars = append(doc.Stars, star(g, s))
	}
	for _, c := range g.Constellations {
		doc.Constellations = append(doc.Constellations, Constellation{
			ID:      c.ID,
			Name:    c.Name,
			Size:    len(c.Stars),
			Members: append([]int(nil), c.Stars...),
		})
	}
	for _, w := range g.Warps {
		if w.Wormhole {
			doc.Wormholes = append(doc.Wormholes, Link{A: w.A, B: w.B})
		} else {
			doc.Warps = append(doc.Warps, Link{A: w.A, B: w.B})
		}
	}
	doc.Spawns = append([]int(nil), g.SpawnStars...)
	doc.Stats = stats.Compute(g)
	return doc
}

func star(g *galaxy.Galaxy, s *galaxy.Star) Star {
	out := Star{
		ID:            s.ID,
		Name:          s.Name,
		X:             s.Position.X,
		Y:             s.Position.Y,
		Type:          s.Type,
		Region:        shape.FormatColor(s.Region),
		Constellation: s.Constellation,
		HomeWorld:     s.HomeWorld,
	}
	for _, id := range s.Planets {
		p := g.Planets[id]
		planet := Planet{ID: p.ID, Type: p.Type, Size: p.Size, Anomaly: p.Anomaly, Moons: p.Moons}
		if d := p.Deposit; d != nil {
			planet.Deposit = &Deposit{Name: d.Name, Size: d.Size, Kind: d.Kind.String()}
		}
		out.Planets = append(out.Planets, planet)
	}
	return out
}

// Encode writes doc to w in format
func Encode(w io.Writer, doc *Document, format string) error {
	switch strings.ToLower(format) {
	case YAML, "yml", "":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Marshal returns the encoded document
func Marshal(doc *Document, format string) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, doc, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile encodes doc into path, creating parent directories
func WriteFile(path string, doc *Document, format string) error {
	data, err := Marshal(doc, format)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Unmarshal decodes a YAML or JSON document
func Unmarshal(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse galaxy document: %w", err)
	}
	return &doc, nil
}

// ReadFile loads a document written by WriteFile
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Unmarshal(data)
}

// fingerprinted is the part of a document that identifies a galaxy. Empty
// lists are omitted so that a decoded document hashes like the original.
type fingerprinted struct {
	Shape          string          `json:"shape"`
	Stars          []Star          `json:"stars,omitempty"`
	Constellations []Constellation `json:"constellations,omitempty"`
	Warps          []Link          `json:"warps,omitempty"`
	Wormholes      []Link          `json:"wormholes,omitempty"`
	Spawns         []int           `json:"spawns,omitempty"`
}

// Fingerprint returns the hex blake2b-256 digest of the galaxy content of doc.
// Seed, attempts, defects and stats do not take part, so two runs producing
// the same galaxy share a fingerprint.
func Fingerprint(doc *Document) (string, error) {
	data, err := json.Marshal(fingerprinted{
		Shape:          doc.Shape,
		Stars:          doc.Stars,
		Constellations: doc.Constellations,
		Warps:          doc.Warps,
		Wormholes:      doc.Wormholes,
		Spawns:         doc.Spawns,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode fingerprint: %w", err)
	}
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
