package filesystem

import (
	"testing"

	"github.com/GriffinCanCode/AgentOS/filesystem/internal/shared/fserr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupCodec(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"", "utf-8"},
		{"utf-8", "utf-8"},
		{"UTF8", "utf-8"},
		{" unicode-1-1-utf-8 ", "utf-8"},
		{"latin1", "windows-1252"},
		{"ISO-8859-1", "windows-1252"},
		{"latin-1", "windows-1252"},
		{"utf_8", "utf-8"},
		{"UTF_16LE", "utf-16le"},
		{"ascii", "ascii"},
		{"US-ASCII", "ascii"},
		{"utf-16le", "utf-16le"},
		{"shift_jis", "shift_jis"},
		{"auto", "auto"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			c, err := lookupCodec("read", tt.label)
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.name)
		})
	}

	_, err := lookupCodec("read", "klingon")
	assert.Equal(t, fserr.KindInvalid, fserr.KindOf(err))
}

func TestDecodeStrictUTF8(t *testing.T) {
	c, err := lookupCodec("read", "utf-8")
	require.NoError(t, err)

	_, _, err = c.decode("read", "/x", []byte{'o', 'k', 0xc3})
	assert.Equal(t, fserr.KindDecode, fserr.KindOf(err))

	out, used, err := c.decode("read", "/x", []byte("ok ✓"))
	require.NoError(t, err)
	assert.Equal(t, "ok ✓", out)
	assert.Equal(t, "utf-8", used)
}

func TestAutoPrefersUTF8(t *testing.T) {
	c, err := lookupCodec("read", "auto")
	require.NoError(t, err)

	out, used, err := c.decode("read", "/x", []byte("grüße"))
	require.NoError(t, err)
	assert.Equal(t, "grüße", out)
	assert.Equal(t, "utf-8", used)

	// auto writes UTF-8
	raw, err := c.encode("write", "/x", "grüße")
	require.NoError(t, err)
	assert.Equal(t, []byte("grüße"), raw)
}

func TestEncodeUnrepresentable(t *testing.T) {
	c, err := lookupCodec("write", "windows-1252")
	require.NoError(t, err)

	_, err = c.encode("write", "/x", "snowman ☃")
	assert.Equal(t, fserr.KindDecode, fserr.KindOf(err))
}

func TestLookupCodecFallsBackToIANA(t *testing.T) {
	// code page 437 is registered with IANA but absent from the WHATWG index
	c, err := lookupCodec("read", "IBM437")
	require.NoError(t, err)
	require.NotNil(t, c.enc)

	out, _, err := c.decode("read", "/x", []byte{0xb0})
	require.NoError(t, err)
	assert.Equal(t, "░", out)
}

func TestASCIIIsStrict(t *testing.T) {
	c, err := lookupCodec("read", "ascii")
	require.NoError(t, err)

	out, used, err := c.decode("read", "/x", []byte("plain"))
	require.NoError(t, err)
	assert.Equal(t, "plain", out)
	assert.Equal(t, "ascii", used)

	_, _, err = c.decode("read", "/x", []byte{'c', 'a', 'f', 0xe9})
	assert.Equal(t, fserr.KindDecode, fserr.KindOf(err))

	_, err = c.encode("write", "/x", "café")
	assert.Equal(t, fserr.KindDecode, fserr.KindOf(err))

	raw, err := c.encode("write", "/x", "cafe")
	require.NoError(t, err)
	assert.Equal(t, []byte("cafe"), raw)
}
