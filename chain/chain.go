// Package chain is the module registry of a flip-disc daisy chain. It
// records which module sits in each of the eight slots and resolves a
// (type, occurrence) pair to a slot and its padding.
package chain

import (
	"fmt"
	"strings"

	"github.com/coreman2200/funtimes-flipdisc/profile"
)

const (
	MaxSlots = 8
	NotFound = -1
)

// Slot is one position of the chain. Occurrence is the 1-based rank of the
// slot among the slots of the same type.
type Slot struct {
	Type       profile.Type
	Occurrence int
	Width      int
}

// Chain is frozen between calls to Configure. It is not safe for
// concurrent use; the controller serializes access.
type Chain struct {
	prof   *profile.Profile
	slots  [MaxSlots]Slot
	counts map[profile.Type]int
	length int
}

// New returns a chain configured with types. A nil profile selects the
// default tables.
func New(p *profile.Profile, types ...profile.Type) *Chain {
	if p == nil {
		p = profile.Default()
	}
	c := &Chain{prof: p}
	c.Configure(types...)
	return c
}

// Configure replaces the whole layout. Entries beyond MaxSlots are dropped
// and missing entries become NONE.
func (c *Chain) Configure(types ...profile.Type) {
	c.counts = make(map[profile.Type]int, MaxSlots)
	c.length = 0
	for i := 0; i < MaxSlots; i++ {
		t := profile.NONE
		if i < len(types) {
			t = types[i]
		}
		c.counts[t]++
		c.slots[i] = Slot{
			Type:       t,
			Occurrence: c.counts[t],
			Width:      c.prof.Width(t),
		}
		c.length += c.slots[i].Width
	}
}

func (c *Chain) Profile() *profile.Profile {
	return c.prof
}

// FrameLength is the number of bytes in every frame sent to this chain.
func (c *Chain) FrameLength() int {
	return c.length
}

func (c *Chain) Slots() []Slot {
	out := make([]Slot, MaxSlots)
	copy(out, c.slots[:])
	return out
}

func (c *Chain) Slot(pos int) (Slot, bool) {
	if pos < 0 || pos >= MaxSlots {
		return Slot{}, false
	}
	return c.slots[pos], true
}

// Count is the number of configured slots of type t.
func (c *Chain) Count(t profile.Type) int {
	return c.counts[t]
}

// Locate returns the absolute position of occurrence occ of type t, or
// NotFound.
func (c *Chain) Locate(t profile.Type, occ int) int {
	for i, s := range c.slots {
		if s.Type == t && s.Occurrence == occ {
			return i
		}
	}
	return NotFound
}

// Fuse reports whether a request for occurrence occ of type t must be
// dropped because the chain does not hold that many modules of the type.
func (c *Chain) Fuse(occ int, t profile.Type) bool {
	return occ < 1 || occ > c.counts[t]
}

// BytesBefore sums the widths of the slots strictly before pos.
func (c *Chain) BytesBefore(pos int) int {
	if pos < 0 || pos >= MaxSlots {
		return 0
	}
	n := 0
	for i := 0; i < pos; i++ {
		n += c.slots[i].Width
	}
	return n
}

// BytesAfter sums the widths of the slots strictly after pos.
func (c *Chain) BytesAfter(pos int) int {
	if pos < 0 || pos >= MaxSlots {
		return 0
	}
	n := 0
	for i := pos + 1; i < MaxSlots; i++ {
		n += c.slots[i].Width
	}
	return n
}

func (c *Chain) String() string {
	parts := make([]string, 0, MaxSlots)
	for _, s := range c.slots {
		parts = append(parts, fmt.Sprintf("%s#%d", s.Type, s.Occurrence))
	}
	return fmt.Sprintf("chain{%s len=%d}", strings.Join(parts, " "), c.length)
}
