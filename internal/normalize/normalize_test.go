package normalize

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode(t *testing.T) {
	testCases := []struct {
		name     string
		data     []byte
		wantText string
		wantEnc  string
	}{
		{name: "plain ascii", data: []byte("_Variable,17TI5879"), wantText: "_Variable,17TI5879", wantEnc: EncodingUTF8BOM},
		{name: "bom stripped", data: append([]byte{0xEF, 0xBB, 0xBF}, []byte("a,b")...), wantText: "a,b", wantEnc: EncodingUTF8BOM},
		{name: "utf8 degree", data: []byte("DEG °C"), wantText: "DEG °C", wantEnc: EncodingUTF8BOM},
		{name: "latin1 degree", data: []byte{'D', 'E', 'G', ' ', 0xB0, 'C'}, wantText: "DEG °C", wantEnc: EncodingLatin1},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			text, enc, err := Decode(tc.data)
			require.NoError(t, err)
			assert.Equal(t, tc.wantText, text)
			assert.Equal(t, tc.wantEnc, enc)
		})
	}
}

func TestDecodeAllCandidatesFail(t *testing.T) {
	_, _, err := Decode([]byte{0xff, 0xfe, 0x00}, UTF8BOM, UTF8)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUndecodable))
	var de *DecodeError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, []string{EncodingUTF8BOM, EncodingUTF8}, de.Tried)
}

func TestEncodeSingleByte(t *testing.T) {
	out, enc := EncodeSingleByte("50 °C\u00a0max")
	assert.Equal(t, EncodingLatin1, enc)
	assert.Equal(t, []byte{'5', '0', ' ', 0xB0, 'C', 0xA0, 'm', 'a', 'x'}, out)

	out, enc = EncodeSingleByte("pressure → high")
	assert.Equal(t, EncodingUTF8, enc)
	assert.Equal(t, []byte("pressure → high"), out)
}

func TestFixEncoding(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{name: "clean text untouched", in: "Close valve 17XV-100", want: "Close valve 17XV-100"},
		{name: "nbsp artifact", in: "Check\u00c2\u00a0pump", want: "Check\u00a0pump"},
		{name: "space artifact", in: "CheckÂ pump", want: "Check pump"},
		{name: "degree artifact", in: "Above 850 Â°F", want: "Above 850 °F"},
		{name: "smart quote artifact", in: "operatorâ€™s action", want: "operator’s action"},
		{name: "unknown sequence kept", in: "Ãx", want: "Ãx"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FixEncoding(tc.in))
		})
	}
}

func TestParseOpt(t *testing.T) {
	testCases := []struct {
		raw     string
		wantSet bool
		want    string
	}{
		{raw: "", wantSet: false},
		{raw: " ~ ", wantSet: false},
		{raw: "-", wantSet: false},
		{raw: "--------", wantSet: false},
		{raw: " 850 ", wantSet: true, want: "850"},
		{raw: "-5", wantSet: true, want: "-5"},
	}
	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			o := Parse(tc.raw)
			assert.Equal(t, tc.wantSet, o.IsSet())
			assert.Equal(t, tc.want, o.String())
		})
	}
	assert.Equal(t, "dflt", Parse("~").Or("dflt"))
}

func TestParseLimit(t *testing.T) {
	assert.False(t, ParseLimit("-9999999").IsSet())
	assert.False(t, ParseLimit("-9999999.0").IsSet())
	assert.False(t, ParseLimit("(N/A)").IsSet())
	assert.False(t, ParseLimit("n/a").IsSet())
	assert.True(t, ParseLimit("1,250").IsSet())
}

func TestNumbers(t *testing.T) {
	testCases := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{in: "900", want: "900", wantOK: true},
		{in: "900.0", want: "900", wantOK: true},
		{in: "1,250.50", want: "1250.5", wantOK: true},
		{in: "0.125", want: "0.125", wantOK: true},
		{in: "-3.10", want: "-3.1", wantOK: true},
		{in: "abc", want: "abc", wantOK: false},
		{in: "NaN", want: "NaN", wantOK: false},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, ok := FormatNumber(tc.in)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}

	assert.Equal(t, "1500", StripNumericThousands("1,500"))
	assert.Equal(t, "see note, below", StripNumericThousands("see note, below"))
	assert.Equal(t, "15", StripNumericThousands("15"))
	assert.Equal(t, "12345.6", StripThousands("12,345.6"))
}
