// Package encoding turns uploaded text files of unknown encoding into UTF-8.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	xenc "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	UTF8        = "UTF-8"
	UTF16LE     = "UTF-16LE"
	UTF16BE     = "UTF-16BE"
	Windows1252 = "windows-1252"
)

// sniffSize is how much of the input is inspected before decoding.
const sniffSize = 4096

var boms = []struct {
	prefix  []byte
	charset string
}{
	{[]byte{0xEF, 0xBB, 0xBF}, UTF8},
	{[]byte{0xFF, 0xFE}, UTF16LE},
	{[]byte{0xFE, 0xFF}, UTF16BE},
}

// decoders maps chardet charset names onto x/text decoders. Anything not
// listed falls back to Windows-1252, the usual spreadsheet export encoding.
var decoders = map[string]xenc.Encoding{
	UTF16LE:       unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	UTF16BE:       unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
	"ISO-8859-1":  charmap.Windows1252,
	Windows1252:   charmap.Windows1252,
	"ISO-8859-9":  charmap.ISO8859_9,
	"ISO-8859-15": charmap.ISO8859_15,
}

// NewUTF8Reader returns a reader yielding r as UTF-8 and the name of the
// detected source charset. BOMs are stripped.
func NewUTF8Reader(r io.Reader) (io.Reader, string, error) {
	br := bufio.NewReaderSize(r, sniffSize)

	head, err := br.Peek(sniffSize)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, "", fmt.Errorf("peek: %w", err)
	}

	for _, b := range boms {
		if !bytes.HasPrefix(head, b.prefix) {
			continue
		}

		_, _ = br.Discard(len(b.prefix))

		return wrap(br, b.charset), b.charset, nil
	}

	charset := Detect(head)

	return wrap(br, charset), charset, nil
}

// Detect guesses the charset of a sample without a BOM.
func Detect(sample []byte) string {
	if utf8.Valid(sample) {
		return UTF8
	}

	res, err := chardet.NewTextDetector().DetectBest(sample)
	if err == nil {
		if res.Charset == UTF8 {
			return UTF8
		}

		if _, ok := decoders[res.Charset]; ok {
			return res.Charset
		}
	}

	return Windows1252
}

func wrap(r io.Reader, charset string) io.Reader {
	if charset == UTF8 {
		return r
	}

	dec, ok := decoders[charset]
	if !ok {
		dec = charmap.Windows1252
	}

	return transform.NewReader(r, dec.NewDecoder())
}
