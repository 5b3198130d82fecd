package telegram

import (
	"bytes"
	"io"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ivanlukomskiy/chrono-capture/internal/domain/capture"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestImage(t *testing.T, data []byte) *capture.Attachment {
	t.Helper()
	dir := t.TempDir()
	att := capture.NewAttachment(dir, time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC))
	require.NoError(t, os.WriteFile(att.Path, data, 0o644))
	return att
}

func TestEncodePhoto_RoundTrip(t *testing.T) {
	jpegBytes := []byte{0xFF, 0xD8, 0xFF}
	att := writeTestImage(t, jpegBytes)

	payload, err := EncodePhoto("42", att)
	require.NoError(t, err)

	mediaType, params, err := mime.ParseMediaType(payload.ContentType)
	require.NoError(t, err)
	assert.Equal(t, "multipart/form-data", mediaType)
	assert.Equal(t, payload.Boundary, params["boundary"])

	reader := multipart.NewReader(bytes.NewReader(payload.Body), payload.Boundary)

	// First part: the chat_id text field.
	part, err := reader.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "chat_id", part.FormName())
	value, err := io.ReadAll(part)
	require.NoError(t, err)
	assert.Equal(t, "42", string(value))

	// Second part: the photo file field.
	part, err = reader.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "photo", part.FormName())
	assert.Equal(t, "image.jpg", part.FileName())
	assert.Equal(t, "image/jpeg", part.Header.Get("Content-Type"))
	data, err := io.ReadAll(part)
	require.NoError(t, err)
	assert.Equal(t, jpegBytes, data)

	_, err = reader.NextPart()
	assert.Equal(t, io.EOF, err)
}

func TestEncodePhoto_ContentTypeHasNoSpaceAfterSemicolon(t *testing.T) {
	att := writeTestImage(t, []byte{0x01})

	payload, err := EncodePhoto("42", att)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(payload.ContentType, "multipart/form-data;boundary="),
		"content type %q must not have a space after the semicolon", payload.ContentType)
}

func TestEncodePhoto_Terminator(t *testing.T) {
	att := writeTestImage(t, []byte{0x01, 0x02})

	payload, err := EncodePhoto("7", att)
	require.NoError(t, err)

	assert.True(t, bytes.HasSuffix(payload.Body, []byte("--"+payload.Boundary+"--\r\n")))
}

func TestEncodePhoto_FreshBoundaryPerCall(t *testing.T) {
	att := writeTestImage(t, []byte{0x01})

	first, err := EncodePhoto("42", att)
	require.NoError(t, err)
	second, err := EncodePhoto("42", att)
	require.NoError(t, err)

	assert.NotEqual(t, first.Boundary, second.Boundary)
}

func TestEncodePhoto_MissingSource(t *testing.T) {
	att := capture.NewAttachment(filepath.Join(t.TempDir(), "nope"), time.Now())

	_, err := EncodePhoto("42", att)
	assert.Error(t, err)
}
