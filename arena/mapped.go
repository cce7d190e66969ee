package arena

import (
	"fmt"

	"github.com/joshuapare/arenakit/internal/mmbuf"
)

// MappedBuffer is a Buffer backed by a read-write shared mapping of a file,
// typically a pre-sized region file or shared memory segment. On platforms
// without mmap support the file is read into memory and Sync is a no-op.
type MappedBuffer struct {
	path    string
	data    []byte
	cleanup func() error
	closed  bool
}

// MapFile maps the file at path read-write and wraps it as a Buffer.
// The file's current size fixes the buffer length; it is never resized.
func MapFile(path string) (*MappedBuffer, error) {
	data, cleanup, err := mmbuf.Map(path)
	if err != nil {
		return nil, fmt.Errorf("arena: map %s: %w", path, err)
	}
	return &MappedBuffer{path: path, data: data, cleanup: cleanup}, nil
}

// Path returns the path of the backing file.
func (m *MappedBuffer) Path() string { return m.path }

func (m *MappedBuffer) Bytes() []byte { return m.data }

func (m *MappedBuffer) Len() int { return len(m.data) }

// Sync flushes modified pages to the backing file.
func (m *MappedBuffer) Sync() error {
	if m.closed {
		return fmt.Errorf("arena: %s: buffer is closed", m.path)
	}
	return mmbuf.Sync(m.data)
}

// Close unmaps the region. The slice returned by Bytes, and any allocation
// views derived from it, must not be used afterwards. Close is idempotent.
func (m *MappedBuffer) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true
	m.data = nil
	return m.cleanup()
}
