package telegram

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/ivanlukomskiy/chrono-capture/internal/domain/capture"

	"github.com/google/uuid"
)

const crlf = "\r\n"

// Payload is a fully framed multipart/form-data request body together
// with the header value announcing its boundary.
type Payload struct {
	Body        []byte
	ContentType string
	Boundary    string
}

// newBoundary returns a part delimiter that is unique with high
// probability (wall clock plus a random UUID). Part contents are not
// scanned for collisions.
func newBoundary(now time.Time) string {
	return fmt.Sprintf("chronocapture%d%s", now.UnixMilli(), uuid.NewString())
}

// EncodePhoto frames the sendPhoto form: the chat_id text field first,
// then the photo file field named image.jpg. The field order, the fixed
// filename and the missing space in the Content-Type value are all
// wire-compatibility requirements of the remote API, not style.
func EncodePhoto(chatID string, att *capture.Attachment) (*Payload, error) {
	src, err := att.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	boundary := newBoundary(time.Now())
	var buf bytes.Buffer

	buf.WriteString("--" + boundary + crlf)
	buf.WriteString(`Content-Disposition: form-data; name="chat_id"` + crlf)
	buf.WriteString(crlf)
	buf.WriteString(chatID + crlf)

	buf.WriteString("--" + boundary + crlf)
	buf.WriteString(`Content-Disposition: form-data; name="photo";filename="image.jpg"` + crlf)
	buf.WriteString("Content-Type: " + att.ContentType + crlf)
	buf.WriteString(crlf)
	if _, err := io.Copy(&buf, src); err != nil {
		return nil, fmt.Errorf("read attachment source: %w", err)
	}
	buf.WriteString(crlf)
	buf.WriteString("--" + boundary + "--" + crlf)

	return &Payload{
		Body:        buf.Bytes(),
		ContentType: "multipart/form-data;boundary=" + boundary,
		Boundary:    boundary,
	}, nil
}
