//go:build linux || darwin

package dump

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Open mmaps the snapshot read-only. Snapshots can run to hundreds of
// megabytes, so mapping beats reading them into the heap.
func Open(path string) (*Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	sz := st.Size()
	if sz == 0 {
		_ = f.Close()
		return nil, fmt.Errorf("empty snapshot file: %s", path)
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(sz), unix.PROT_READ, unix.MAP_PRIVATE)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("mmap failed: %w", err)
	}

	return &Snapshot{
		f:    f,
		data: data,
		size: sz,
		path: path,
	}, nil
}

// Close unmaps the snapshot and closes the file. The Snapshot and every
// view derived from it are invalid afterwards.
func (s *Snapshot) Close() error {
	var err error
	if s.data != nil {
		_ = unix.Munmap(s.data)
		s.data = nil
	}
	if s.f != nil {
		err = s.f.Close()
		s.f = nil
	}
	return err
}
