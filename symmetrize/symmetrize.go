// Package symmetrize combines two directional word alignments into one.
//
// The combination starts from the links both alignments agree on and grows
// toward their union along grid-adjacent cells ("grow-diag").
package symmetrize

import (
	"errors"
	"fmt"
	"sort"

	"github.com/happyhackingspace/wordalign/corpus"
	"github.com/happyhackingspace/wordalign/internal/sparse"
)

// ErrLengthMismatch is returned when two alignment lists cover different numbers of sentences.
var ErrLengthMismatch = errors.New("alignment lists differ in length")

// neighbors are the axis-adjacent and diagonal offsets as (de, df).
var neighbors = [8][2]int{
	{-1, 0}, {0, -1}, {1, 0}, {0, 1},
	{-1, -1}, {-1, 1}, {1, -1}, {1, 1},
}

// Table is the grid form of a sentence alignment, keyed by
// (english index, foreign index). A cell is marked when it is present.
type Table struct {
	cells *sparse.Table[int, int]
}

// NewTable creates an empty alignment table.
func NewTable() *Table {
	return &Table{cells: sparse.New[int, int](0)}
}

// FromLinks converts a pair-list alignment into table form.
func FromLinks(links corpus.SentenceAlignment) *Table {
	t := NewTable()
	for _, l := range links {
		t.Mark(l.E, l.F)
	}
	return t
}

// Mark marks cell (e, f).
func (t *Table) Mark(e, f int) {
	t.cells.Set(e, f, 1)
}

// Marked reports whether cell (e, f) is marked. Any coordinates may be
// probed, including negative ones.
func (t *Table) Marked(e, f int) bool {
	return t.cells.Has(e, f)
}

// Len returns the number of marked cells.
func (t *Table) Len() int {
	return t.cells.Len()
}

// Links converts the table back to pair-list form, ordered by english
// index and then foreign index.
func (t *Table) Links() corpus.SentenceAlignment {
	out := make(corpus.SentenceAlignment, 0, t.cells.Len())
	t.cells.Each(func(e, f int, _ float64) {
		out = append(out, corpus.Link{F: f, E: e})
	})
	sortLinks(out)
	return out
}

func (t *Table) clone() *Table {
	return &Table{cells: t.cells.Clone()}
}

func sortLinks(links corpus.SentenceAlignment) {
	sort.Slice(links, func(i, j int) bool {
		if links[i].E != links[j].E {
			return links[i].E < links[j].E
		}
		return links[i].F < links[j].F
	})
}

// Intersect returns the cells marked in both a and b.
func Intersect(a, b *Table) *Table {
	out := NewTable()
	a.cells.Each(func(e, f int, _ float64) {
		if b.Marked(e, f) {
			out.Mark(e, f)
		}
	})
	return out
}

// Union returns the cells marked in either a or b.
func Union(a, b *Table) *Table {
	out := a.clone()
	b.cells.Each(func(e, f int, _ float64) {
		out.Mark(e, f)
	})
	return out
}

// GrowDiag expands start toward union: every unmarked 8-neighbor of a
// marked cell that is present in union gets marked, until a full scan
// adds nothing. start is not modified.
func GrowDiag(start, union *Table) *Table {
	out := start.clone()
	for {
		added := false
		for _, l := range out.Links() {
			for _, d := range neighbors {
				e, f := l.E+d[0], l.F+d[1]
				if !out.Marked(e, f) && union.Marked(e, f) {
					out.Mark(e, f)
					added = true
				}
			}
		}
		if !added {
			return out
		}
	}
}

// Symmetrize merges two alignments of the same sentence with grow-diag.
// The result lies between their intersection and their union.
func Symmetrize(a, b corpus.SentenceAlignment) corpus.SentenceAlignment {
	ta, tb := FromLinks(a), FromLinks(b)
	return GrowDiag(Intersect(ta, tb), Union(ta, tb)).Links()
}

// Corpus symmetrizes two alignment lists sentence by sentence.
func Corpus(a, b []corpus.SentenceAlignment) ([]corpus.SentenceAlignment, error) {
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(a), len(b))
	}
	out := make([]corpus.SentenceAlignment, len(a))
	for i := range a {
		out[i] = Symmetrize(a[i], b[i])
	}
	return out, nil
}
