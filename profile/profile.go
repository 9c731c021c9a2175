// Package profile holds the static addressing resources of the flip-disc
// modules: type codes, per-shape frame widths and the control bytes that
// energize each disc in either direction.
package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Type is the code name of a display module as declared in the chain.
type Type uint8

const (
	D7SEG Type = 0x7F
	D2X1  Type = 0x31 // same board as D3X1 with one disc left unpopulated
	D3X1  Type = 0x31
	D1X3  Type = 0x13
	D1X7  Type = 0x17
	D2X6  Type = 0x26
	D3X3  Type = 0x33
	D3X4  Type = 0x34
	D3X5  Type = 0x35
	NONE  Type = 0xFF
)

var typeNames = map[Type]string{
	D7SEG: "D7SEG",
	D3X1:  "D3X1",
	D1X3:  "D1X3",
	D1X7:  "D1X7",
	D2X6:  "D2X6",
	D3X3:  "D3X3",
	D3X4:  "D3X4",
	D3X5:  "D3X5",
	NONE:  "NONE",
}

func (t Type) String() string {
	if n, ok := typeNames[t]; ok {
		return n
	}
	return fmt.Sprintf("0x%02X", uint8(t))
}

// MarshalText lets Type round-trip through YAML and JSON as its name.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(b []byte) error {
	v, err := ParseType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// UnmarshalJSON takes a name or code as a string, or a bare number code.
func (t *Type) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		return t.UnmarshalText([]byte(s))
	}
	return t.UnmarshalText(b)
}

// ParseType accepts a module name (D7SEG, d3x1, ...) or a numeric code
// (0x7F, 127).
func ParseType(s string) (Type, error) {
	s = strings.TrimSpace(s)
	up := strings.ToUpper(s)
	if up == "D2X1" {
		return D2X1, nil
	}
	for t, n := range typeNames {
		if n == up {
			return t, nil
		}
	}
	v, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return NONE, fmt.Errorf("unknown module type %q", s)
	}
	return Type(v), nil
}

// Kind groups shapes by how their discs are addressed.
type Kind int

const (
	Segment Kind = iota
	Line
	Matrix
)

func (k Kind) String() string {
	switch k {
	case Segment:
		return "segment"
	case Line:
		return "line"
	case Matrix:
		return "matrix"
	}
	return "unknown"
}

var (
	ErrDiscRange       = errors.New("disc index out of range")
	ErrUnknownProfile  = errors.New("unknown addressing profile")
	ErrMalformedShape  = errors.New("malformed shape table")
	ErrDuplicateShapes = errors.New("shape declared twice")
)

// Shape describes one physical module type. On and Off are indexed by the
// 0-based disc number and hold Width bytes each.
type Shape struct {
	Type  Type
	Name  string
	Kind  Kind
	Rows  int
	Cols  int
	Width int
	On    [][]byte
	Off   [][]byte
}

func (s *Shape) Discs() int {
	return len(s.On)
}

// Control returns a copy of the bytes that flip disc to the requested side.
func (s *Shape) Control(disc int, on bool) ([]byte, error) {
	if disc < 0 || disc >= len(s.On) {
		return nil, fmt.Errorf("%s disc %d: %w", s.Name, disc, ErrDiscRange)
	}
	src := s.Off[disc]
	if on {
		src = s.On[disc]
	}
	return append([]byte(nil), src...), nil
}

func (s *Shape) validate() error {
	if s.Width <= 0 || len(s.On) != len(s.Off) || len(s.On) == 0 {
		return fmt.Errorf("%s: %w", s.Name, ErrMalformedShape)
	}
	if s.Kind != Segment && s.Rows*s.Cols != len(s.On) {
		return fmt.Errorf("%s: %d discs for %dx%d: %w", s.Name, len(s.On), s.Rows, s.Cols, ErrMalformedShape)
	}
	for i := range s.On {
		if len(s.On[i]) != s.Width || len(s.Off[i]) != s.Width {
			return fmt.Errorf("%s disc %d: %w", s.Name, i, ErrMalformedShape)
		}
	}
	return nil
}

// Profile is one generation of the addressing tables. Profiles are
// immutable once built.
type Profile struct {
	Name         string
	DefaultWidth int
	shapes       map[Type]*Shape
}

// New builds a profile from shapes. The width used for NONE and undeclared
// slots is the widest shape's width.
func New(name string, shapes ...*Shape) (*Profile, error) {
	p := &Profile{Name: name, shapes: make(map[Type]*Shape, len(shapes))}
	for _, s := range shapes {
		if err := s.validate(); err != nil {
			return nil, err
		}
		if _, ok := p.shapes[s.Type]; ok {
			return nil, fmt.Errorf("%s: %w", s.Type, ErrDuplicateShapes)
		}
		p.shapes[s.Type] = s
		if s.Width > p.DefaultWidth {
			p.DefaultWidth = s.Width
		}
	}
	return p, nil
}

func (p *Profile) Shape(t Type) (*Shape, bool) {
	s, ok := p.shapes[t]
	return s, ok
}

// Width is the number of frame bytes a slot of type t occupies.
func (p *Profile) Width(t Type) int {
	if s, ok := p.shapes[t]; ok {
		return s.Width
	}
	return p.DefaultWidth
}

func (p *Profile) Types() []Type {
	out := make([]Type, 0, len(p.shapes))
	for t := range p.shapes {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

var (
	mu       sync.RWMutex
	profiles = map[string]*Profile{}
)

// Register makes p available to Lookup under its name, replacing any
// profile registered before with the same name.
func Register(p *Profile) {
	mu.Lock()
	defer mu.Unlock()
	profiles[p.Name] = p
}

func Lookup(name string) (*Profile, error) {
	if name == "" {
		return Default(), nil
	}
	mu.RLock()
	defer mu.RUnlock()
	p, ok := profiles[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownProfile)
	}
	return p, nil
}

func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(profiles))
	for n := range profiles {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Default returns the flipo-2023 tables.
func Default() *Profile {
	return flipo2023
}
