package stream

// Null is a Stream that discards every write and yields nothing on read.
//
// Grounded on the original library's null stream, which reports 0 bytes
// transferred for both read and write and always reports EOF — a real
// empty, exhausted stream, not a size-accumulating sink. Useful as a
// session's bound stream in tests that exercise the EOF error path without
// a real backing store: since EOF is always reported, pkg/wire reads and
// writes against it fail with ErrEOF, never ErrCannotRead/ErrCannotWrite.
type Null struct{}

// NewNull returns a Null stream.
func NewNull() *Null { return &Null{} }

func (Null) Read(p []byte) (int, error) { return 0, nil }

func (Null) Write(p []byte) (int, error) { return 0, nil }

func (Null) Seek(offset int64, whence Whence) (int64, error) { return 0, nil }

func (Null) Tell() (int64, error) { return 0, nil }

func (Null) EOF() bool { return true }

func (Null) Close() error { return nil }

func (Null) Kind() string { return "null" }
