package render

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	perrors "github.com/stateprinter/stateprinter/errors"
	"github.com/stateprinter/stateprinter/token"
)

type Car struct{}
type SteeringWheel struct{}
type FoamGrip struct{}
type Course struct{}
type Student struct{}

var (
	carType      = reflect.TypeFor[*Car]()
	wheelType    = reflect.TypeFor[*SteeringWheel]()
	gripType     = reflect.TypeFor[*FoamGrip]()
	courseType   = reflect.TypeFor[*Course]()
	studentType  = reflect.TypeFor[*Student]()
	studentsType = reflect.TypeFor[[]*Student]()
)

func open() token.Token { return token.Structural(token.StartScope) }

func end() token.Token { return token.Structural(token.EndScope) }

func openSeq() token.Token { return token.Structural(token.StartSequence) }

func endSeq() token.Token { return token.Structural(token.EndSequence) }

func named(n string) *token.Field { return token.Named(n) }

// carTokens is an acyclic graph where every pointer was numbered on visit
func carTokens() []token.Token {
	return []token.Token{
		token.Header(named(""), carType, 0), open(),
		token.Null(named("Amplifiers")),
		token.Header(named("Wheel"), wheelType, 1), open(),
		token.Scalar(named("Size"), "3"),
		token.Header(named("Grip"), gripType, 2), open(),
		token.Scalar(named("Material"), `"Plastic"`),
		end(),
		end(),
		token.Scalar(named("Brand"), `"Toyota"`),
		end(),
	}
}

// courseTokens is a course whose students point back at it
func courseTokens() []token.Token {
	return []token.Token{
		token.Header(named(""), courseType, 0), open(),
		token.Header(named("Members"), studentsType, 1), openSeq(),
		token.Header(token.Indexed("Members", 0), studentType, 2), open(),
		token.Scalar(named("Name"), `"Stan"`),
		token.Back(named("Course"), 0),
		end(),
		token.Header(token.Indexed("Members", 1), studentType, 3), open(),
		token.Scalar(named("Name"), `"Richard"`),
		token.Back(named("Course"), 0),
		end(),
		endSeq(),
		end(),
	}
}

// dictTokens is map[int]int{1: 2, 2: 4}
func dictTokens() []token.Token {
	return []token.Token{
		token.Header(named("squares"), reflect.TypeFor[map[int]int](), 0), open(),
		token.Scalar(token.Keyed("1"), "2"),
		token.Scalar(token.Keyed("2"), "4"),
		end(),
	}
}

func render(t *testing.T, r Renderer, tokens []token.Token) string {
	t.Helper()
	out, err := r.Render(tokens, DefaultOptions())
	require.NoError(t, err)
	return out
}

func lines(l ...string) string {
	return strings.Join(l, "\n")
}

func TestCurly_Car(t *testing.T) {
	want := lines(
		"new Car()",
		"{",
		"    Amplifiers = null",
		"    Wheel = new SteeringWheel()",
		"    {",
		"        Size = 3",
		"        Grip = new FoamGrip()",
		"        {",
		`            Material = "Plastic"`,
		"        }",
		"    }",
		`    Brand = "Toyota"`,
		"}",
	)
	assert.Equal(t, want, render(t, Curly{}, carTokens()))
}

func TestCurly_Cycle(t *testing.T) {
	want := lines(
		"new Course(), ref: 0",
		"{",
		"    Members = new []*Student()",
		"    Members[0] = new Student()",
		"    {",
		`        Name = "Stan"`,
		"        Course = -> 0",
		"    }",
		"    Members[1] = new Student()",
		"    {",
		`        Name = "Richard"`,
		"        Course = -> 0",
		"    }",
		"}",
	)
	assert.Equal(t, want, render(t, Curly{}, courseTokens()))
}

func TestCurly_Dictionary(t *testing.T) {
	want := lines(
		"squares = new map[int]int()",
		"{",
		"    [1] = 2",
		"    [2] = 4",
		"}",
	)
	assert.Equal(t, want, render(t, Curly{}, dictTokens()))
}

func TestCurly_OptionsAndRootScalar(t *testing.T) {
	out, err := Curly{}.Render(carTokens()[:5], Options{Indent: "\t", NewLine: "\r\n"})
	require.NoError(t, err)
	assert.Equal(t, "new Car()\r\n{\r\n\tAmplifiers = null\r\n\tWheel = new SteeringWheel()\r\n\t{", out)

	assert.Equal(t, "42", render(t, Curly{}, []token.Token{token.Scalar(named(""), "42")}))
	assert.Equal(t, "x = 42", render(t, Curly{}, []token.Token{token.Scalar(named("x"), "42")}))
}

func TestJSON_Car(t *testing.T) {
	want := lines(
		"{",
		`    "Amplifiers": null,`,
		`    "Wheel": {`,
		`        "Size": 3,`,
		`        "Grip": {`,
		`            "Material": "Plastic"`,
		"        }",
		"    },",
		`    "Brand": "Toyota"`,
		"}",
	)
	out := render(t, JSON{}, carTokens())
	assert.Equal(t, want, out)
	assert.True(t, json.Valid([]byte(out)))
}

func TestJSON_Cycle(t *testing.T) {
	want := lines(
		"{",
		`    "$id": 0,`,
		`    "Members": [`,
		"        {",
		`            "Name": "Stan",`,
		`            "Course": {"$ref": 0}`,
		"        },",
		"        {",
		`            "Name": "Richard",`,
		`            "Course": {"$ref": 0}`,
		"        }",
		"    ]",
		"}",
	)
	out := render(t, JSON{}, courseTokens())
	assert.Equal(t, want, out)
	assert.True(t, json.Valid([]byte(out)))
}

func TestJSON_ReferencedSequenceIsWrapped(t *testing.T) {
	// A slice that contains itself through an interface element.
	tokens := []token.Token{
		token.Header(named(""), reflect.TypeFor[[]any](), 4), openSeq(),
		token.Scalar(token.Indexed("", 0), "1"),
		token.Back(token.Indexed("", 1), 4),
		endSeq(),
	}
	want := lines(
		"{",
		`    "$id": 0,`,
		`    "$values": [`,
		"        1,",
		`        {"$ref": 0}`,
		"    ]",
		"}",
	)
	out := render(t, JSON{}, tokens)
	assert.Equal(t, want, out)
	assert.True(t, json.Valid([]byte(out)))
}

func TestJSON_DictionaryAndScalars(t *testing.T) {
	tokens := []token.Token{
		token.Header(named(""), reflect.TypeFor[map[string]any](), token.NoReference), open(),
		token.Scalar(token.Keyed(`"day"`), "Tuesday"),
		token.Scalar(token.Keyed(`"ratio"`), "1,5"),
		token.Scalar(token.Keyed(`"tab"`), `"a\tb<c>"`),
		token.Header(token.Keyed(`"empty"`), reflect.TypeFor[[]int](), token.NoReference), openSeq(), endSeq(),
		end(),
	}
	want := lines(
		"{",
		`    "day": "Tuesday",`,
		`    "ratio": "1,5",`,
		`    "tab": "a\tb<c>",`,
		`    "empty": [`,
		"    ]",
		"}",
	)
	out := render(t, JSON{}, tokens)
	assert.Equal(t, want, out)
	assert.True(t, json.Valid([]byte(out)))
}

func TestXML_Cycle(t *testing.T) {
	want := lines(
		"<ROOT type='Course' ref='0'>",
		"    <Members type='[]*Student'>",
		"        <Element index='0' type='Student'>",
		`            <Name>"Stan"</Name>`,
		"            <Course ref='0' />",
		"        </Element>",
		"        <Element index='1' type='Student'>",
		`            <Name>"Richard"</Name>`,
		"            <Course ref='0' />",
		"        </Element>",
		"    </Members>",
		"</ROOT>",
	)
	assert.Equal(t, want, render(t, XML{}, courseTokens()))
}

func TestXML_DictionaryAndEscaping(t *testing.T) {
	tokens := []token.Token{
		token.Header(named("String()"), reflect.TypeFor[map[string]string](), token.NoReference), open(),
		token.Scalar(token.Keyed(`"a'b"`), `"x < y & z"`),
		end(),
	}
	want := lines(
		"<String__ type='map[string]string'>",
		`    <Entry key='a&apos;b'>"x &lt; y &amp; z"</Entry>`,
		"</String__>",
	)
	assert.Equal(t, want, render(t, XML{}, tokens))
}

func TestLiteral_Car(t *testing.T) {
	want := lines(
		"&Car{",
		"    Amplifiers: nil,",
		"    Wheel: &SteeringWheel{",
		"        Size: 3,",
		"        Grip: &FoamGrip{",
		`            Material: "Plastic",`,
		"        },",
		"    },",
		`    Brand: "Toyota",`,
		"}",
	)
	assert.Equal(t, want, render(t, Literal{}, carTokens()))
}

func TestLiteral_DictionaryAndSequence(t *testing.T) {
	tokens := []token.Token{
		token.Header(named("v"), reflect.TypeFor[[]map[int]int](), 0), openSeq(),
	}
	tokens = append(tokens, token.Header(token.Indexed("v", 0), reflect.TypeFor[map[int]int](), 1), open())
	tokens = append(tokens, token.Scalar(token.Keyed("1"), "2"), end(), endSeq())

	want := lines(
		"var v = []map[int]int{",
		"    map[int]int{",
		"        1: 2,",
		"    },",
		"}",
	)
	assert.Equal(t, want, render(t, Literal{}, tokens))
}

func TestLiteral_RejectsBackReferences(t *testing.T) {
	out, err := Literal{}.Render(courseTokens(), DefaultOptions())
	require.Error(t, err)
	assert.Empty(t, out)
	assert.True(t, perrors.HasCode(err, perrors.ErrCyclicLiteral))
	assert.Contains(t, err.Error(), "literal")
}

func TestRenderers_UnknownTokenKind(t *testing.T) {
	bad := []token.Token{{Kind: token.Kind(42)}}
	for _, name := range Names() {
		r, err := ByName(name)
		require.NoError(t, err)
		out, err := r.Render(bad, DefaultOptions())
		assert.Empty(t, out, name)
		assert.True(t, perrors.HasCode(err, perrors.ErrUnknownToken), name)
	}
}

func TestRenderers_DoNotMutateInput(t *testing.T) {
	tokens := carTokens()
	for _, name := range Names() {
		r, _ := ByName(name)
		_, err := r.Render(tokens, DefaultOptions())
		require.NoError(t, err)
	}
	assert.Equal(t, carTokens(), tokens)
}

func TestByName(t *testing.T) {
	assert.Equal(t, []string{"curly", "json", "literal", "xml"}, Names())

	r, err := ByName("json")
	require.NoError(t, err)
	assert.Equal(t, "json", r.Name())

	_, err = ByName("yaml")
	require.Error(t, err)
	assert.True(t, perrors.HasCode(err, perrors.ErrUnknownRenderer))
	assert.Contains(t, err.Error(), "yaml")
}

func TestTypeName(t *testing.T) {
	assert.Equal(t, "Car", typeName(reflect.TypeFor[**Car]()))
	assert.Equal(t, "[]*Student", typeName(studentsType))
	assert.Equal(t, "map[string]Car", typeName(reflect.TypeFor[map[string]Car]()))
	assert.Equal(t, "struct { X int }", typeName(reflect.TypeFor[struct{ X int }]()))
}
