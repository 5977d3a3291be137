package engine

import (
	"strings"

	zygo "github.com/glycerine/zygomys/zygo"
)

// kwPrefix marks a string literal that was written as a :keyword.
const kwPrefix = "__kw_"

// preprocessSource rewrites scene source into something zygomys reads:
// ;-comments become //-comments, :name becomes the string "__kw_name" and
// a hyphen joining two identifier characters becomes an underscore
// (outline-sphere -> outline_sphere). String literals pass through as-is.
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
			out.WriteString("//")
			i++
			for i < n && source[i] == ';' {
				i++
			}
			end := strings.IndexByte(source[i:], '\n')
			if end < 0 {
				end = n - i
			}
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
			out.WriteByte('"')
			out.WriteString(kwPrefix)
			out.WriteString(source[i+1 : j])
			out.WriteByte('"')
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

// stringEnd returns the index just past the literal opening at start.
// Double-quoted literals honour backslash escapes; backtick literals don't.
// An unterminated literal runs to the end of src.
func stringEnd(src string, start int) int {
	quote := src[start]
	i := start + 1
	for i < len(src) {
		switch {
		case src[i] == quote:
			return i + 1
		case quote == '"' && src[i] == '\\' && i+1 < len(src):
			i += 2
		default:
			i++
		}
	}
	return len(src)
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isDigit(c byte) bool { return '0' <= c && c <= '9' }

func isIdentChar(c byte) bool { return isLetter(c) || isDigit(c) || c == '_' }

func isKWChar(c byte) bool { return isIdentChar(c) || c == '-' }

// keyword reports the name of a preprocessed :keyword.
func keyword(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	return strings.CutPrefix(str.S, kwPrefix)
}

// callArgs is a builtin's argument list split into :key value pairs and
// the remaining positional values.
type callArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs splits args. A trailing keyword with no value maps to nil.
func parseArgs(args []zygo.Sexp) callArgs {
	ca := callArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := keyword(args[i])
		if !ok {
			ca.positional = append(ca.positional, args[i])
			continue
		}
		if i+1 == len(args) {
			ca.kw[name] = zygo.SexpNull
			continue
		}
		i++
		ca.kw[name] = args[i]
	}
	return ca
}
