package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"net/url"
	"sort"
	"strings"
)

// Body is the request payload for one send. It is a closed set of shapes so
// the encoding strategy is chosen once, from the resolved content type,
// instead of by repeated runtime inspection:
//
//   - Fields: a structured mapping, encoded as JSON, URL-encoded form, or
//     multipart fields depending on content type.
//   - Raw: bytes passed through to the wire unchanged.
//   - Multipart: a prepared multipart/form-data payload used verbatim.
type Body interface {
	body()
}

// Fields is a structured mapping body.
type Fields map[string]any

func (Fields) body() {}

// Raw is a pre-encoded body passed through unchanged.
type Raw []byte

func (Raw) body() {}

// Multipart is a prepared multipart/form-data request body.
type Multipart struct {
	// Fields are simple key-value form fields.
	Fields map[string]string
	// Files are file upload parts.
	Files []FileField
}

func (*Multipart) body() {}

// FileField is a file part of a multipart body.
type FileField struct {
	// FieldName is the form field name (e.g. "file").
	FieldName string
	// FileName is the file name sent to the server.
	FileName string
	// ContentType is the part MIME type. Empty means application/octet-stream.
	ContentType string
	// Data is the file content. Used if Reader is nil.
	Data []byte
	// Reader is an alternative to Data for large payloads.
	Reader io.Reader
}

// encodeBody serializes body for transmission according to the resolved
// content type. It returns the wire bytes and, for multipart bodies, the
// boundary-qualified content type that must replace the configured one.
func encodeBody(contentType string, body Body) ([]byte, string, error) {
	if body == nil {
		return nil, "", nil
	}

	switch {
	case strings.Contains(contentType, ContentTypeMultipart):
		mp, ok := body.(*Multipart)
		if !ok {
			// Build a form from scratch, appending each mapping key as a
			// field. Non-mapping bodies yield an empty form.
			mp = &Multipart{}
			if fields, ok := body.(Fields); ok {
				mp.Fields = make(map[string]string, len(fields))
				for k, v := range fields {
					mp.Fields[k] = fmt.Sprint(v)
				}
			}
		}
		return mp.encode()

	case strings.Contains(contentType, "application/x-www-form-urlencoded"):
		if fields, ok := body.(Fields); ok {
			return []byte(formEncode(fields)), "", nil
		}
		return rawBytes(body), "", nil

	case strings.Contains(contentType, ContentTypeJSON):
		if raw, ok := body.(Raw); ok {
			return raw, "", nil
		}
		data, err := json.Marshal(body)
		if err != nil {
			return nil, "", fmt.Errorf("encode json body: %w", err)
		}
		return data, "", nil

	default:
		// Unrecognized content types pass raw bodies through unchanged;
		// structured fields fall back to JSON encoding.
		if raw, ok := body.(Raw); ok {
			return raw, "", nil
		}
		data, err := json.Marshal(body)
		if err != nil {
			return nil, "", fmt.Errorf("encode body: %w", err)
		}
		return data, "", nil
	}
}

// formEncode renders fields as key=value pairs joined by &, percent-encoded
// with spaces as +, in deterministic key order.
func formEncode(fields Fields) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(fmt.Sprint(fields[k])))
	}
	return b.String()
}

// rawBytes extracts the wire bytes of a body without re-encoding. Only Raw
// bodies carry pre-encoded bytes; everything else yields nil.
func rawBytes(body Body) []byte {
	if raw, ok := body.(Raw); ok {
		return raw
	}
	return nil
}

// encode builds the multipart payload and its boundary content type.
func (m *Multipart) encode() ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range m.Fields {
		if err := w.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}

	for _, f := range m.Files {
		var part io.Writer
		var err error

		if f.ContentType != "" {
			header := make(textproto.MIMEHeader)
			header.Set("Content-Disposition",
				`form-data; name="`+escapeQuotes(f.FieldName)+`"; filename="`+escapeQuotes(f.FileName)+`"`)
			header.Set("Content-Type", f.ContentType)
			part, err = w.CreatePart(header)
		} else {
			part, err = w.CreateFormFile(f.FieldName, f.FileName)
		}
		if err != nil {
			return nil, "", err
		}

		if f.Data != nil {
			if _, err := part.Write(f.Data); err != nil {
				return nil, "", err
			}
		} else if f.Reader != nil {
			if _, err := io.Copy(part, f.Reader); err != nil {
				return nil, "", err
			}
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}

	return buf.Bytes(), w.FormDataContentType(), nil
}

// escapeQuotes replaces special characters in multipart header values.
func escapeQuotes(s string) string {
	var buf bytes.Buffer
	for _, b := range []byte(s) {
		if b == '"' || b == '\\' {
			buf.WriteByte('\\')
		}
		buf.WriteByte(b)
	}
	return buf.String()
}
