package capture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Causes of a failed capture attempt. Implementations wrap these with
// device-specific detail.
var (
	ErrPermissionDenied = errors.New("capture permission denied")
	ErrDeviceFailure    = errors.New("capture device failure")
)

// JPEGContentType is the only content type this pipeline produces.
const JPEGContentType = "image/jpeg"

const filenameLayout = "20060102-150405"

// Attachment is a captured image resident in the scratch directory,
// plus the metadata the delivery layer needs.
type Attachment struct {
	Path        string
	Filename    string
	ContentType string
	TakenAt     time.Time
}

// NewAttachment builds the attachment metadata for an image captured at
// takenAt and stored under dir. The filename is derived from the
// capture timestamp (yyyyMMdd-HHmmss.jpg).
func NewAttachment(dir string, takenAt time.Time) *Attachment {
	name := takenAt.Format(filenameLayout) + ".jpg"
	return &Attachment{
		Path:        filepath.Join(dir, name),
		Filename:    name,
		ContentType: JPEGContentType,
		TakenAt:     takenAt,
	}
}

// Open returns a reader over the image bytes.
func (a *Attachment) Open() (io.ReadCloser, error) {
	f, err := os.Open(a.Path)
	if err != nil {
		return nil, fmt.Errorf("open attachment source: %w", err)
	}
	return f, nil
}

// Discard removes the image file. Captured images are scratch data and
// are not required to outlive the delivery attempt.
func (a *Attachment) Discard() error {
	err := os.Remove(a.Path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// Provider produces a single still image on demand. A failed attempt
// yields ErrPermissionDenied or ErrDeviceFailure (possibly wrapped);
// the caller surfaces the failure and waits for the next scheduled
// instant, it never aborts the process.
type Provider interface {
	Capture(ctx context.Context) (*Attachment, error)
}
