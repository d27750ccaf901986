package value

import (
	"fmt"
	"os"
)

// FileHandle wraps an open *os.File, grounded on the teacher's
// file.FileObject (Handle/Path pair backing fopen/fclose/fread/fwrite).
type FileHandle struct {
	Path string
	File *os.File
	Open bool
}

func NewFileHandle(path string, f *os.File) *FileHandle {
	return &FileHandle{Path: path, File: f, Open: true}
}

func (f *FileHandle) Type() Type { return FileType }

func (f *FileHandle) String() string {
	state := "closed"
	if f.Open {
		state = "open"
	}
	return fmt.Sprintf("<file %q (%s)>", f.Path, state)
}

func (f *FileHandle) Inspect() string { return f.String() }
