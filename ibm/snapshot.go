package ibm

import (
	"errors"
	"fmt"

	"github.com/happyhackingspace/wordalign/corpus"
)

// SnapshotVersion is the current snapshot schema version.
const SnapshotVersion = 1

var (
	// ErrSnapshotVersion is returned for a snapshot written by another schema version.
	ErrSnapshotVersion = errors.New("snapshot schema version mismatch")
	// ErrSnapshotShape is returned when a snapshot does not fit the corpus it seeds.
	ErrSnapshotShape = errors.New("snapshot does not match corpus")
)

// Snapshot is the best foreign index for every (sentence, english position)
// decoded by a trained model; -1 means no alignment. It is used to seed
// another model and is only meaningful for the corpus it was decoded from.
type Snapshot struct {
	Version   int     `json:"version"`
	Sentences [][]int `json:"sentences"`
}

// NewSnapshot decodes c with d and captures the result.
func NewSnapshot(d Decoder, c corpus.Corpus) *Snapshot {
	return &Snapshot{
		Version:   SnapshotVersion,
		Sentences: d.Decode(c),
	}
}

// Validate checks the snapshot's version and that its shape fits c.
func (s *Snapshot) Validate(c corpus.Corpus) error {
	if s.Version != SnapshotVersion {
		return fmt.Errorf("%w: got %d, want %d", ErrSnapshotVersion, s.Version, SnapshotVersion)
	}
	if len(s.Sentences) != len(c) {
		return fmt.Errorf("%w: %d sentences, corpus has %d", ErrSnapshotShape, len(s.Sentences), len(c))
	}
	for n, row := range s.Sentences {
		p := c[n]
		if len(row) != len(p.English) {
			return fmt.Errorf("%w: sentence %d has %d positions, want %d", ErrSnapshotShape, n, len(row), len(p.English))
		}
		for j, i := range row {
			if i < -1 || i >= len(p.Foreign) {
				return fmt.Errorf("%w: sentence %d position %d points at %d (foreign length %d)",
					ErrSnapshotShape, n, j, i, len(p.Foreign))
			}
		}
	}
	return nil
}

// Clone returns a deep copy.
func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{Version: s.Version, Sentences: make([][]int, len(s.Sentences))}
	for i, row := range s.Sentences {
		out.Sentences[i] = append([]int(nil), row...)
	}
	return out
}
