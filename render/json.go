package render

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	perrors "github.com/stateprinter/stateprinter/errors"
	"github.com/stateprinter/stateprinter/token"
)

// JSONName selects the JSON renderer
const JSONName = "json"

// JSON prints the graph as a JSON document. Output is always valid JSON:
// an object that is referenced again gets a leading "$id" member, a
// referenced sequence is wrapped as {"$id": N, "$values": [...]} and a
// back-reference is printed as {"$ref": N}. Scalars that are not JSON
// literals, such as enum names, are printed as strings.
type JSON struct{}

func (JSON) Name() string { return JSONName }

type jsonScope int

const (
	jsonObject jsonScope = iota
	jsonArray
	jsonWrappedArray
)

func (j JSON) Render(tokens []token.Token, opts Options) (string, error) {
	tokens = token.Compact(tokens)
	w := newWriter(opts)
	var stack []jsonScope

	for i := 0; i < len(tokens); i++ {
		t := tokens[i]
		switch t.Kind {
		case token.ScalarValue:
			w.writeLine(jsonKey(stack, t.Field) + jsonScalar(t.Value) + comma(tokens, i))

		case token.BackReference:
			w.writeLine(jsonKey(stack, t.Field) + `{"$ref": ` + t.Ref.String() + "}" + comma(tokens, i))

		case token.ComplexHeader:
			prefix := jsonKey(stack, t.Field)
			opener := next(tokens, i)
			i++
			switch opener {
			case token.StartScope:
				w.writeLine(prefix + "{")
				w.indent++
				stack = append(stack, jsonObject)
				if t.Ref.Valid() {
					w.writeLine(`"$id": ` + t.Ref.String() + comma(tokens, i))
				}
			case token.StartSequence:
				if t.Ref.Valid() {
					w.writeLine(prefix + "{")
					w.indent++
					w.writeLine(`"$id": ` + t.Ref.String() + ",")
					w.writeLine(`"$values": [`)
					w.indent++
					stack = append(stack, jsonWrappedArray)
				} else {
					w.writeLine(prefix + "[")
					w.indent++
					stack = append(stack, jsonArray)
				}
			default:
				return "", perrors.NewUnknownToken(j.Name(), opener.String())
			}

		case token.EndScope:
			stack = stack[:len(stack)-1]
			w.indent--
			w.writeLine("}" + comma(tokens, i))

		case token.EndSequence:
			scope := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			w.indent--
			if scope == jsonWrappedArray {
				w.writeLine("]")
				w.indent--
				w.writeLine("}" + comma(tokens, i))
			} else {
				w.writeLine("]" + comma(tokens, i))
			}

		default:
			return "", perrors.NewUnknownToken(j.Name(), t.Kind.String())
		}
	}
	return w.String(), nil
}

// comma returns the separator needed after the value ending at token i
func comma(tokens []token.Token, i int) string {
	k := next(tokens, i)
	if k == -1 || closes(k) {
		return ""
	}
	return ","
}

// jsonKey returns the member name prefix for a value inside an object
func jsonKey(stack []jsonScope, f *token.Field) string {
	if len(stack) == 0 || stack[len(stack)-1] != jsonObject || f == nil {
		return ""
	}
	name := f.Name
	if f.HasKey {
		name = f.Key
		if s, err := strconv.Unquote(name); err == nil {
			name = s
		}
	}
	return jsonString(name) + ": "
}

// jsonScalar returns v when it is a JSON literal and v as a string otherwise
func jsonScalar(v string) string {
	if strings.HasPrefix(v, `"`) {
		if s, err := strconv.Unquote(v); err == nil {
			return jsonString(s)
		}
	}
	if json.Valid([]byte(v)) {
		return v
	}
	return jsonString(v)
}

func jsonString(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}
