package stream

import (
	"io"
	"os"
)

// File adapts an *os.File to Stream.
type File struct {
	f   *os.File
	eof bool
}

// NewFile wraps an already-open *os.File.
func NewFile(f *os.File) *File {
	return &File{f: f}
}

// OpenFile opens path with the given flags/permissions and wraps the
// result, mirroring os.OpenFile's signature for familiarity at call sites.
func OpenFile(path string, flag int, perm os.FileMode) (*File, error) {
	f, err := os.OpenFile(path, flag, perm)
	if err != nil {
		return nil, err
	}
	return &File{f: f}, nil
}

func (s *File) Read(p []byte) (int, error) {
	n, err := s.f.Read(p)
	if err == io.EOF {
		s.eof = true
		return n, nil
	}
	return n, err
}

func (s *File) Write(p []byte) (int, error) {
	n, err := s.f.Write(p)
	if n > 0 {
		s.eof = false
	}
	return n, err
}

func (s *File) Seek(offset int64, whence Whence) (int64, error) {
	var w int
	switch whence {
	case SeekStart:
		w = io.SeekStart
	case SeekCurrent:
		w = io.SeekCurrent
	default:
		return 0, ErrInvalidWhence
	}
	pos, err := s.f.Seek(offset, w)
	if err == nil {
		s.eof = false
	}
	return pos, err
}

func (s *File) Tell() (int64, error) {
	return s.f.Seek(0, io.SeekCurrent)
}

func (s *File) EOF() bool { return s.eof }

func (s *File) Close() error { return s.f.Close() }

func (s *File) Kind() string { return "file" }
