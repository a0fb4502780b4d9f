package engine

import "strings"

// preprocessSource rewrites building script source into something zygomys
// accepts:
//
//   - :keyword becomes the string "__kw_keyword", so keywords never clash
//     with user variables of the same name;
//   - kebab-case identifiers become snake_case (extrusion-roof becomes
//     extrusion_roof), since zygomys reads a hyphen as subtraction;
//   - ; and ;; line comments become // comments.
//
// String literals and comment bodies are copied untouched.
func preprocessSource(source string) string {
	var out strings.Builder
	out.Grow(len(source) + len(source)/4)

	n := len(source)
	for i := 0; i < n; {
		c := source[i]
		switch {
		case c == '"' || c == '`':
			end := stringEnd(source, i)
			out.WriteString(source[i:end])
			i = end

		case c == ';':
			for i < n && source[i] == ';' {
				i++
			}
			end := strings.IndexByte(source[i:], '\n')
			if end < 0 {
				end = n - i
			}
			out.WriteString("//")
			out.WriteString(source[i : i+end])
			i += end

		case c == ':' && i+1 < n && source[i+1] == '=':
			out.WriteString(":=")
			i += 2

		case c == ':' && i+1 < n && isLetter(source[i+1]):
			j := i + 1
			for j < n && isKWChar(source[j]) {
				j++
			}
			out.WriteString(`"` + kwPrefix + source[i+1:j] + `"`)
			i = j

		case c == '-' && i > 0 && i+1 < n && isIdentChar(source[i-1]) && isLetter(source[i+1]):
			out.WriteByte('_')
			i++

		default:
			out.WriteByte(c)
			i++
		}
	}
	return out.String()
}

// stringEnd returns the index just past the string literal opening at
// start. Double-quoted strings honour backslash escapes; raw backtick
// strings do not. An unterminated literal runs to the end of the source.
func stringEnd(source string, start int) int {
	quote := source[start]
	i := start + 1
	for i < len(source) && source[i] != quote {
		if quote == '"' && source[i] == '\\' && i+1 < len(source) {
			i++
		}
		i++
	}
	if i < len(source) {
		i++
	}
	return i
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isKWChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '_'
}
