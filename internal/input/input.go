// Package input decodes documents from disk into generic Go values for the
// CLI to print. Supported formats are JSON, JSONC, YAML and CBOR, each
// optionally compressed with zstd (.zst) or lz4 (.lz4).
package input

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Format names a document encoding.
type Format string

const (
	JSON  Format = "json"
	JSONC Format = "jsonc"
	YAML  Format = "yaml"
	CBOR  Format = "cbor"
)

// Stdin is the path that selects standard input.
const Stdin = "-"

var extensions = map[string]Format{
	".json":  JSON,
	".jsonc": JSONC,
	".yaml":  YAML,
	".yml":   YAML,
	".cbor":  CBOR,
}

// cborDecoder produces map[string]any for untyped maps so decoded CBOR
// documents look like their JSON and YAML counterparts.
var cborDecoder cbor.DecMode

func init() {
	var err error
	cborDecoder, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("input: CBOR decoder initialization failed: " + err.Error())
	}
}

// Formats lists the supported format names, sorted.
func Formats() []string {
	names := []string{string(JSON), string(JSONC), string(YAML), string(CBOR)}
	sort.Strings(names)
	return names
}

// ParseFormat validates a format name. The empty string is accepted and
// means "detect from the file extension".
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	switch f {
	case "", JSON, JSONC, YAML, CBOR:
		return f, nil
	}
	return "", fmt.Errorf("unknown input format %q (expected one of: %s)", name, strings.Join(Formats(), ", "))
}

// DetectFormat infers the format of path from its extension, ignoring a
// trailing compression suffix.
func DetectFormat(path string) (Format, error) {
	base := strings.ToLower(path)
	for _, suffix := range []string{".zst", ".lz4"} {
		base = strings.TrimSuffix(base, suffix)
	}
	if f, ok := extensions[filepath.Ext(base)]; ok {
		return f, nil
	}
	return "", fmt.Errorf("cannot detect input format of %s", path)
}

// ReadFile decodes the document at path. An empty format is detected from
// the extension; standard input defaults to JSON.
func ReadFile(path string, format Format) (any, error) {
	if format == "" {
		if path == Stdin {
			format = JSON
		} else {
			f, err := DetectFormat(path)
			if err != nil {
				return nil, err
			}
			format = f
		}
	}

	var r io.Reader = os.Stdin
	if path != Stdin {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open input: %w", err)
		}
		defer file.Close()
		r = file
	}

	r, closeFn, err := decompress(path, r)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	v, err := Decode(r, format)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return v, nil
}

// decompress wraps r according to the compression suffix of path.
func decompress(path string, r io.Reader) (io.Reader, func(), error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst":
		d, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open zstd stream: %w", err)
		}
		return d, d.Close, nil
	case ".lz4":
		return lz4.NewReader(r), func() {}, nil
	}
	return r, func() {}, nil
}

// Decode reads one document in the given format.
func Decode(r io.Reader, format Format) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	var v any
	switch format {
	case JSON:
		err = decodeJSON(data, &v)
	case JSONC:
		err = decodeJSON(jsonc.ToJSON(data), &v)
	case YAML:
		err = yaml.Unmarshal(data, &v)
	case CBOR:
		err = cborDecoder.Unmarshal(data, &v)
	default:
		_, err = ParseFormat(string(format))
		if err == nil {
			err = fmt.Errorf("no input format given")
		}
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// decodeJSON rejects trailing content after the first document.
func decodeJSON(data []byte, v *any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("unexpected content after JSON document")
	}
	return nil
}
