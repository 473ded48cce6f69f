package expand

import (
	"fmt"
	"strings"
)

// unescape decodes the escape sequences of a literal's content so the
// hash covers the bytes the host runtime would actually see. Supported:
// \" \\ \n \t \r \0 \xNN.
func unescape(content string) (string, error) {
	if !strings.ContainsRune(content, '\\') {
		return content, nil
	}

	var sb strings.Builder
	sb.Grow(len(content))

	for i := 0; i < len(content); i++ {
		b := content[i]
		if b != '\\' {
			sb.WriteByte(b)
			continue
		}
		i++
		if i >= len(content) {
			return "", fmt.Errorf("trailing backslash")
		}
		switch content[i] {
		case '"':
			sb.WriteByte('"')
		case '\\':
			sb.WriteByte('\\')
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '0':
			sb.WriteByte(0)
		case 'x':
			if i+2 >= len(content) {
				return "", fmt.Errorf("truncated \\x escape")
			}
			hi, okHi := hexVal(content[i+1])
			lo, okLo := hexVal(content[i+2])
			if !okHi || !okLo {
				return "", fmt.Errorf("invalid \\x escape `\\x%s`", content[i+1:i+3])
			}
			sb.WriteByte(hi<<4 | lo)
			i += 2
		default:
			return "", fmt.Errorf("unknown escape `\\%c`", content[i])
		}
	}
	return sb.String(), nil
}

func hexVal(b byte) (byte, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	}
	return 0, false
}
