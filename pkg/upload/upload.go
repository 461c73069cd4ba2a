package upload

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

// http.DetectContentType requires up to 512 bytes.
const mimeDetectionBytes = 512

// ErrNoFile is returned when opening or reading a File that carries no
// underlying upload.
var ErrNoFile = errors.New("upload: no file")

// File wraps a multipart file header with a nil-safe accessor surface.
// The zero value represents an absent upload: Exists reports false and
// every accessor returns its zero value instead of panicking, so
// callers can chain off a lookup without checking presence first.
type File struct {
	header *multipart.FileHeader
}

// New wraps a multipart file header. A nil header yields an empty File.
func New(fh *multipart.FileHeader) *File {
	return &File{header: fh}
}

// Empty returns a File representing an absent upload.
func Empty() *File {
	return &File{}
}

// Exists reports whether an upload is actually present.
func (f *File) Exists() bool {
	return f != nil && f.header != nil
}

// Filename returns the client-reported file name, stripped of any
// directory components. Browsers differ on whether they send a path.
func (f *File) Filename() string {
	if !f.Exists() {
		return ""
	}
	return filepath.Base(f.header.Filename)
}

// Extension returns the file extension without the leading dot,
// lowercased. Empty when the name has no extension.
func (f *File) Extension() string {
	ext := filepath.Ext(f.Filename())
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// Size returns the upload size in bytes.
func (f *File) Size() int64 {
	if !f.Exists() {
		return 0
	}
	return f.header.Size
}

// ContentType returns the MIME type detected from the file's magic
// bytes, falling back to the client-declared Content-Type header when
// the content cannot be read. The client header alone is never trusted
// when the content is available.
func (f *File) ContentType() string {
	if !f.Exists() {
		return ""
	}

	src, err := f.header.Open()
	if err != nil {
		return f.declaredType()
	}
	defer src.Close()

	buf := make([]byte, mimeDetectionBytes)
	n, err := io.ReadFull(src, buf)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return f.declaredType()
	}

	detected := http.DetectContentType(buf[:n])
	// DetectContentType punts to octet-stream for unknown content;
	// prefer the declared type there if the client sent one.
	if detected == "application/octet-stream" {
		if declared := f.declaredType(); declared != "" {
			return declared
		}
	}
	return detected
}

func (f *File) declaredType() string {
	return f.header.Header.Get("Content-Type")
}

// Open returns a reader over the upload's content. The caller owns the
// returned file and must close it.
func (f *File) Open() (multipart.File, error) {
	if !f.Exists() {
		return nil, ErrNoFile
	}
	return f.header.Open()
}

// Bytes reads the whole upload into memory. Intended for small files;
// stream large uploads through Open instead.
func (f *File) Bytes() ([]byte, error) {
	src, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, src); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Descriptor exposes the underlying multipart header for integrations
// that need it, such as storage uploaders. Nil when no file is present.
func (f *File) Descriptor() *multipart.FileHeader {
	if !f.Exists() {
		return nil
	}
	return f.header
}
