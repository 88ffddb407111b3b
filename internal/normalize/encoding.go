package normalize

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Encoding names reported by Decode and EncodeSingleByte.
const (
	EncodingUTF8BOM     = "utf-8-sig"
	EncodingUTF8        = "utf-8"
	EncodingLatin1      = "latin-1"
	EncodingWindows1252 = "cp1252"
)

// ErrUndecodable is wrapped by DecodeError when no candidate encoding accepts the input.
var ErrUndecodable = errors.New("could not decode file")

// DecodeError lists every encoding that was attempted.
type DecodeError struct {
	Tried []string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%v: tried %s", ErrUndecodable, strings.Join(e.Tried, ", "))
}

func (e *DecodeError) Unwrap() error { return ErrUndecodable }

// Candidate is one text encoding Decode may try.
type Candidate struct {
	Name   string
	decode func([]byte) (string, error)
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var (
	// UTF8BOM accepts valid UTF-8 and drops a leading byte order mark.
	UTF8BOM = Candidate{Name: EncodingUTF8BOM, decode: func(b []byte) (string, error) {
		return decodeUTF8(bytes.TrimPrefix(b, utf8BOM))
	}}
	// UTF8 accepts valid UTF-8 as is.
	UTF8 = Candidate{Name: EncodingUTF8, decode: decodeUTF8}
	// Latin1 maps every byte to the code point of the same value.
	Latin1 = Candidate{Name: EncodingLatin1, decode: charmapDecoder(charmap.ISO8859_1)}
	// Windows1252 is Latin-1 with printable characters in 0x80-0x9F.
	Windows1252 = Candidate{Name: EncodingWindows1252, decode: charmapDecoder(charmap.Windows1252)}
)

// DefaultCandidates is the order DCS and PHA-Pro exports are tried in.
var DefaultCandidates = []Candidate{UTF8BOM, UTF8, Latin1, Windows1252}

func decodeUTF8(b []byte) (string, error) {
	if !utf8.Valid(b) {
		return "", errors.New("invalid utf-8 sequence")
	}
	return string(b), nil
}

func charmapDecoder(cm *charmap.Charmap) func([]byte) (string, error) {
	return func(b []byte) (string, error) {
		out, _, err := transform.Bytes(cm.NewDecoder(), b)
		if err != nil {
			return "", err
		}
		return string(out), nil
	}
}

// Decode returns data as text using the first candidate that decodes it without error,
// along with the name of that candidate. With no candidates DefaultCandidates is used.
func Decode(data []byte, candidates ...Candidate) (string, string, error) {
	if len(candidates) == 0 {
		candidates = DefaultCandidates
	}
	tried := make([]string, 0, len(candidates))
	for _, c := range candidates {
		text, err := c.decode(data)
		if err == nil {
			return text, c.Name, nil
		}
		tried = append(tried, c.Name)
	}
	return "", "", &DecodeError{Tried: tried}
}

// EncodeSingleByte encodes text as Latin-1 so symbols such as the degree sign and
// non-breaking space stay one byte each. If any rune has no Latin-1 form the text
// is returned as UTF-8 instead.
func EncodeSingleByte(text string) ([]byte, string) {
	out, err := encodeWith(charmap.ISO8859_1.NewEncoder(), text)
	if err != nil {
		return []byte(text), EncodingUTF8
	}
	return out, EncodingLatin1
}

func encodeWith(enc *encoding.Encoder, text string) ([]byte, error) {
	out, _, err := transform.Bytes(enc, []byte(text))
	return out, err
}

// mojibake pairs UTF-8 text that was mis-decoded as Latin-1/cp1252 with the intended text.
var mojibake = strings.NewReplacer(
	"Â\u00a0", "\u00a0",
	"Â ", " ",
	"Â°", "°",
	"Â±", "±",
	"Âµ", "µ",
	"Â²", "²",
	"Â³", "³",
	"â€™", "’",
	"â€˜", "‘",
	"â€œ", "“",
	"â€\u009d", "”",
	"â€“", "–",
	"â€”", "—",
	"Ã©", "é",
)

// FixEncoding repairs known double-encoding artifacts. Unknown sequences are left alone.
func FixEncoding(s string) string {
	if !strings.ContainsAny(s, "ÂâÃ") {
		return s
	}
	return mojibake.Replace(s)
}
