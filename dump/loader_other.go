//go:build !linux && !darwin

package dump

import (
	"fmt"
	"io"
	"os"
)

// Open loads the snapshot into memory on non-unix platforms.
func Open(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	sz := st.Size()
	if sz == 0 {
		f.Close()
		return nil, fmt.Errorf("empty snapshot file: %s", path)
	}

	buf := make([]byte, sz)
	if _, err := io.ReadFull(f, buf); err != nil {
		f.Close()
		return nil, err
	}

	return &Snapshot{
		f:    f,
		data: buf,
		size: sz,
		path: path,
	}, nil
}

// Close closes the file. The Snapshot and every view derived from it are
// invalid afterwards.
func (s *Snapshot) Close() error {
	var err error
	if s.f != nil {
		err = s.f.Close()
		s.f = nil
	}
	s.data = nil
	return err
}
