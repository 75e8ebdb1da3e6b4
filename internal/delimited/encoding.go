package delimited

import (
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DecodeText converts raw file bytes to a UTF-8 string. Spreadsheet exports
// arrive as UTF-8 (with or without BOM) or UTF-16 with BOM; the BOM decides
// the decoding and is stripped. Bytes with no BOM are assumed UTF-8 and
// passed through unchanged, including on decode failure.
func DecodeText(data []byte) string {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	decoded, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return string(data)
	}
	return string(decoded)
}
