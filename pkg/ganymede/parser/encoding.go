package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrInvalidText indicates the document is not valid text in its encoding.
var ErrInvalidText = errors.New("invalid utf-8 text")

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// ReadText reads all of r as UTF-8 text.
// A UTF-8 byte order mark is dropped and a UTF-16 byte order mark switches
// decoding to UTF-16. Invalid UTF-8 yields an ErrInvalidText-wrapped error;
// any other error comes from r.
func ReadText(r io.Reader) ([]byte, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	if bytes.HasPrefix(raw, bomUTF16LE) || bytes.HasPrefix(raw, bomUTF16BE) {
		// ExpectBOM lets the mark pick the byte order and strips it.
		dec := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()
		data, _, err := transform.Bytes(dec, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidText, err)
		}
		return data, nil
	}

	data := bytes.TrimPrefix(raw, bomUTF8)
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%w: byte offset %d", ErrInvalidText, invalidOffset(data))
	}
	return data, nil
}

func invalidOffset(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return len(data)
}
