// Package attachment converts uploaded files into the base64 attachment
// records carried by a submission payload and the outbound email.
package attachment

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// MaxFileSize is the largest accepted source file, 5 MiB.
	MaxFileSize = 5 * 1024 * 1024

	// DefaultContentType is used when the caller supplies no MIME type.
	DefaultContentType = "application/octet-stream"

	// DispositionAttachment is the only disposition the relay sends.
	DispositionAttachment = "attachment"
)

// Attachment is a named, typed, base64-encoded blob bound to one submission.
type Attachment struct {
	Filename    string `json:"filename"`
	Type        string `json:"type"`
	Content     string `json:"content"`
	Disposition string `json:"disposition"`
}

// FileTooLargeError reports a source file exceeding MaxFileSize. The message
// names the offending file so it can be shown to the applicant verbatim.
type FileTooLargeError struct {
	Filename string
	Size     int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("%s is larger than 5MB", e.Filename)
}

// Encode builds an Attachment from in-memory file bytes. A nil data slice
// means no file was supplied and yields (nil, nil) so optional file fields
// can be skipped. The size cap is enforced before encoding.
func Encode(name, mimeType string, data []byte) (*Attachment, error) {
	if data == nil {
		return nil, nil
	}
	if name == "" {
		name = "attachment"
	}
	if int64(len(data)) > MaxFileSize {
		return nil, &FileTooLargeError{Filename: name, Size: int64(len(data))}
	}
	if mimeType == "" {
		mimeType = DefaultContentType
	}
	return &Attachment{
		Filename:    name,
		Type:        mimeType,
		Content:     base64.StdEncoding.EncodeToString(data),
		Disposition: DispositionAttachment,
	}, nil
}

// EncodeFile reads a file from disk and encodes it. An empty path yields
// (nil, nil). The fallback name is used when the path has no base name, and
// the MIME type is guessed from the file extension.
func EncodeFile(path, fallbackName string) (*Attachment, error) {
	if path == "" {
		return nil, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("cannot access file %s: %w", path, err)
	}
	name := filepath.Base(path)
	if name == "" || name == "." {
		name = fallbackName
	}
	if info.Size() > MaxFileSize {
		return nil, &FileTooLargeError{Filename: name, Size: info.Size()}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read file %s: %w", path, err)
	}
	return Encode(name, TypeForExtension(filepath.Ext(path)), data)
}

// TypeForExtension maps the accepted upload extensions to MIME types.
// Unknown extensions fall back to application/octet-stream.
func TypeForExtension(ext string) string {
	switch strings.ToLower(ext) {
	case ".pdf":
		return "application/pdf"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	default:
		return DefaultContentType
	}
}

// Decode returns the original bytes of an attachment's content.
func (a *Attachment) Decode() ([]byte, error) {
	return base64.StdEncoding.DecodeString(a.Content)
}
