package upload

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"

	"github.com/dmitrymomot/rulekit/pkg/validator"
)

// Content types accepted as images: the formats browsers render natively.
var imageMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// File is one uploaded file. It satisfies validator.FileLike.
type File struct {
	header *multipart.FileHeader
	name   string
	size   int64
	code   validator.UploadError

	detect   sync.Once
	mimeType string
}

// New wraps a received file.
func New(fh *multipart.FileHeader) *File {
	if fh == nil {
		return Failed("", validator.UploadErrNoFile)
	}
	return &File{header: fh, name: fh.Filename, size: fh.Size}
}

// Failed returns a file that was not received, carrying only the error code.
func Failed(name string, code validator.UploadError) *File {
	return &File{name: name, code: code}
}

// Name returns the client file name without any path components.
func (f *File) Name() string { return SanitizeFilename(f.name) }

func (f *File) Size() int64 { return f.size }

func (f *File) ErrorCode() validator.UploadError { return f.code }

// IsOK reports whether the file was received completely.
func (f *File) IsOK() bool { return f.code == validator.UploadErrOK && f.header != nil }

// Header returns the underlying multipart header, nil for failed uploads.
func (f *File) Header() *multipart.FileHeader { return f.header }

// Extension returns the lower-cased extension including the dot.
func (f *File) Extension() string {
	return strings.ToLower(filepath.Ext(f.name))
}

// ContentType returns the type sniffed from the file content, ignoring the
// type declared by the client. It is "" when the content cannot be read.
func (f *File) ContentType() string {
	f.detect.Do(func() {
		if f.IsOK() {
			f.mimeType, _ = DetectContentType(f.header)
		}
	})
	return f.mimeType
}

// IsImage reports whether the content is a JPEG, PNG, GIF or WebP image.
func (f *File) IsImage() bool {
	return imageMIMETypes[f.ContentType()]
}

// Open opens the file content.
func (f *File) Open() (multipart.File, error) {
	if f.header == nil {
		return nil, ErrNilFileHeader
	}
	file, err := f.header.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}
	return file, nil
}

// ReadAll reads the whole file into memory.
func (f *File) ReadAll() ([]byte, error) {
	file, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToReadFile, err)
	}
	return data, nil
}

// Hash returns the hex digest of the content. A nil h means SHA-256.
func (f *File) Hash(h hash.Hash) (string, error) {
	if h == nil {
		h = sha256.New()
	}
	file, err := f.Open()
	if err != nil {
		return "", err
	}
	defer func() { _ = file.Close() }()

	if _, err := io.Copy(h, file); err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToHashFile, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// DetectContentType sniffs the media type from the file's magic bytes.
// Parameters such as charset are dropped.
func DetectContentType(fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", ErrNilFileHeader
	}

	file, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToOpenFile, err)
	}
	defer func() { _ = file.Close() }()

	mt, err := mimetype.DetectReader(file)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrFailedToReadFile, err)
	}
	typ, _, _ := strings.Cut(mt.String(), ";")
	return strings.TrimSpace(typ), nil
}

// SanitizeFilename strips directories and NUL bytes from a client supplied
// name. Empty and special names become "unnamed".
func SanitizeFilename(filename string) string {
	filename = strings.ReplaceAll(filename, "\\", "/")
	filename = filepath.Base(filename)
	filename = strings.ReplaceAll(filename, "\x00", "")

	if filename == "." || filename == ".." || filename == "" || filename == "/" {
		filename = "unnamed"
	}
	return filename
}
