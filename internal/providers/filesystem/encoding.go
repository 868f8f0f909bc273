package filesystem

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/GriffinCanCode/AgentOS/filesystem/internal/shared/fserr"
	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/ianaindex"
)

const (
	EncodingUTF8 = "utf-8"
	// EncodingAuto detects the charset on read and writes UTF-8
	EncodingAuto = "auto"
	// EncodingASCII is 7-bit only in both directions
	EncodingASCII = "ascii"
)

// labelAliases maps common labels that neither index knows onto ones it does
var labelAliases = map[string]string{
	"latin-1": "latin1",
	"l1":      "latin1",
	"u8":      EncodingUTF8,
	"utf":     EncodingUTF8,
	"646":     EncodingASCII,
}

// codec converts between text and bytes for one named encoding. A nil enc
// with ascii unset means strict UTF-8.
type codec struct {
	name  string
	enc   encoding.Encoding
	auto  bool
	ascii bool
}

// lookupCodec resolves an encoding label. Labels are looked up in the WHATWG
// index first, so "latin1" and "iso-8859-1" both select windows-1252, then
// in the IANA registry. Underscores may stand in for hyphens.
func lookupCodec(op, label string) (codec, error) {
	label = strings.ToLower(strings.TrimSpace(label))
	if alias, ok := labelAliases[label]; ok {
		label = alias
	}
	switch label {
	case "", EncodingUTF8, "utf8":
		return codec{name: EncodingUTF8}, nil
	case EncodingAuto:
		return codec{name: EncodingAuto, auto: true}, nil
	case EncodingASCII, "us-ascii":
		return codec{name: EncodingASCII, ascii: true}, nil
	}

	enc, name, err := indexedEncoding(label)
	if err != nil {
		if hyphenated := strings.ReplaceAll(label, "_", "-"); hyphenated != label {
			return lookupCodec(op, hyphenated)
		}
		return codec{}, fserr.Wrap(fserr.KindInvalid, op, "", fmt.Sprintf("Unsupported encoding: %s", label), err)
	}
	if name == EncodingUTF8 {
		return codec{name: EncodingUTF8}, nil
	}
	return codec{name: name, enc: enc}, nil
}

// indexedEncoding finds label in the WHATWG index, falling back to IANA
func indexedEncoding(label string) (encoding.Encoding, string, error) {
	if enc, err := htmlindex.Get(label); err == nil {
		name, err := htmlindex.Name(enc)
		if err != nil {
			name = label
		}
		return enc, name, nil
	}

	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, "", err
	}
	// registered but not implemented by x/text
	if enc == nil {
		return nil, "", fmt.Errorf("encoding %s has no implementation", label)
	}
	name, err := ianaindex.MIME.Name(enc)
	if err != nil || name == "" {
		if name, err = ianaindex.IANA.Name(enc); err != nil {
			name = label
		}
	}
	return enc, strings.ToLower(name), nil
}

// decode turns file bytes into text and reports the encoding actually used
func (c codec) decode(op, path string, data []byte) (string, string, error) {
	if c.auto {
		detected, err := detectCodec(data)
		if err != nil {
			return "", "", fserr.Wrap(fserr.KindDecode, op, path, "Unable to detect file encoding", err)
		}
		c = detected
	}

	if c.ascii {
		if i := firstNonASCII(data); i >= 0 {
			return "", "", fserr.New(fserr.KindDecode, op, path,
				fmt.Sprintf("Unable to decode file with encoding ascii: byte 0x%02x at offset %d", data[i], i))
		}
		return string(data), EncodingASCII, nil
	}

	if c.enc == nil {
		if !utf8.Valid(data) {
			return "", "", fserr.New(fserr.KindDecode, op, path,
				"Unable to decode file with encoding utf-8")
		}
		return string(data), EncodingUTF8, nil
	}

	out, err := c.enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", "", fserr.Wrap(fserr.KindDecode, op, path,
			fmt.Sprintf("Unable to decode file with encoding %s", c.name), err)
	}
	return string(out), c.name, nil
}

// encode turns text into bytes. Auto always writes UTF-8.
func (c codec) encode(op, path, content string) ([]byte, error) {
	if c.ascii {
		if i := firstNonASCII([]byte(content)); i >= 0 {
			return nil, fserr.New(fserr.KindDecode, op, path, "Content cannot be encoded as ascii")
		}
		return []byte(content), nil
	}
	if c.auto || c.enc == nil {
		return []byte(content), nil
	}

	out, err := c.enc.NewEncoder().Bytes([]byte(content))
	if err != nil {
		return nil, fserr.Wrap(fserr.KindDecode, op, path,
			fmt.Sprintf("Content cannot be encoded as %s", c.name), err)
	}
	return out, nil
}

// firstNonASCII returns the offset of the first byte above 0x7f, or -1
func firstNonASCII(data []byte) int {
	for i, b := range data {
		if b >= utf8.RuneSelf {
			return i
		}
	}
	return -1
}

// detectCodec guesses the charset of data. Valid UTF-8 (including empty
// input) short-circuits detection.
func detectCodec(data []byte) (codec, error) {
	if utf8.Valid(data) {
		return codec{name: EncodingUTF8}, nil
	}

	result, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil {
		return codec{}, err
	}

	detected, err := lookupCodec("detect", result.Charset)
	if err != nil {
		return codec{}, fmt.Errorf("detected charset %q is not supported: %w", result.Charset, err)
	}
	return detected, nil
}
