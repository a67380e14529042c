package ibm

import (
	"os"

	"github.com/cheggaaa/pb/v3"
)

// sweep reports per-sentence progress of one training pass on stderr.
// A nil sweep is a no-op.
type sweep struct {
	bar *pb.ProgressBar
}

func startSweep(enabled bool, total int) *sweep {
	if !enabled {
		return nil
	}
	bar := pb.New(total)
	bar.SetWriter(os.Stderr)
	bar.Start()
	return &sweep{bar: bar}
}

func (s *sweep) step() {
	if s == nil {
		return
	}
	s.bar.Increment()
}

func (s *sweep) finish() {
	if s == nil {
		return
	}
	s.bar.Finish()
}
