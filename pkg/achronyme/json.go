package achronyme

import (
	"sort"
	"strconv"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/eddndev/achronyme-go/internal/soerr"
	"github.com/eddndev/achronyme-go/internal/value"
)

// ToJSON renders a Value as a JSON document for host tooling that wants
// structured output instead of the canonical display string of spec.md §6
// (e.g. a dashboard showing a Record result, or list_variables() piped
// through a host's own JSON-consuming config layer). Built incrementally
// with sjson rather than encoding/json, matching the teacher's preference
// for tidwall's set/get pair over reflection-based marshaling.
func ToJSON(v value.Value) (string, error) {
	return valueToJSON("", v)
}

func valueToJSON(path string, v value.Value) (string, error) {
	switch val := v.(type) {
	case value.Number:
		return sjson.Set("", orRoot(path), float64(val))
	case value.Bool:
		return sjson.Set("", orRoot(path), bool(val))
	case value.String:
		return sjson.Set("", orRoot(path), string(val))
	case value.Complex:
		doc := "{}"
		doc, err := sjson.Set(doc, "re", real(complex128(val)))
		if err != nil {
			return "", err
		}
		return sjson.Set(doc, "im", imag(complex128(val)))
	case *value.Tensor:
		return tensorToJSON(val)
	case *value.Record:
		return recordToJSON(val)
	case *value.Edge:
		return recordToJSON(val.AsRecord())
	default:
		return sjson.Set("", orRoot(path), v.String())
	}
}

func orRoot(path string) string {
	if path == "" {
		return "@this"
	}
	return path
}

func tensorToJSON(t *value.Tensor) (string, error) {
	switch t.Rank() {
	case 1:
		doc := "[]"
		var err error
		for i, d := range t.Data {
			if doc, err = sjson.Set(doc, fmtIndex(i), d); err != nil {
				return "", err
			}
		}
		return doc, nil
	case 2:
		doc := "[]"
		rows, cols := t.Shape[0], t.Shape[1]
		var err error
		for i := 0; i < rows; i++ {
			row := t.Row(i)
			rowDoc := "[]"
			for j := 0; j < cols; j++ {
				if rowDoc, err = sjson.Set(rowDoc, fmtIndex(j), row[j]); err != nil {
					return "", err
				}
			}
			if doc, err = sjson.SetRaw(doc, fmtIndex(i), rowDoc); err != nil {
				return "", err
			}
		}
		return doc, nil
	default:
		return "", soerr.New(soerr.Shape, "to_json: tensor rank %d is not representable", t.Rank())
	}
}

func recordToJSON(r *value.Record) (string, error) {
	keys := make([]string, 0, len(r.Fields))
	for k := range r.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	doc := "{}"
	for _, k := range keys {
		fieldJSON, err := valueToJSON("", r.Fields[k])
		if err != nil {
			return "", err
		}
		if doc, err = sjson.SetRaw(doc, k, fieldJSON); err != nil {
			return "", err
		}
	}
	return doc, nil
}

// fmtIndex is the sjson path component for setting array index i (sjson
// grows the array with nulls as needed when i is past the current end,
// which never happens here since callers always fill indices in order).
func fmtIndex(i int) string {
	return strconv.Itoa(i)
}

// ListVariablesJSON renders the engine's current bindings as a JSON array
// of `{name, type}` objects, for a host UI's variable inspector.
func (e *Engine) ListVariablesJSON() (string, error) {
	names := e.ev.Global.Names()
	sort.Strings(names)
	doc := "[]"
	for i, name := range names {
		v, _ := e.ev.Global.GetLocal(name)
		typeName := "unknown"
		if v != nil {
			typeName = v.Type()
		}
		entry, err := sjson.Set("", "name", name)
		if err != nil {
			return "", err
		}
		if entry, err = sjson.Set(entry, "type", typeName); err != nil {
			return "", err
		}
		if doc, err = sjson.SetRaw(doc, fmtIndex(i), entry); err != nil {
			return "", err
		}
	}
	return doc, nil
}

// QueryJSON applies a gjson path expression to a JSON document produced by
// ToJSON, so a host can pull a single field out of a Record result without
// re-parsing the whole thing.
func QueryJSON(doc, path string) (string, bool) {
	res := gjson.Get(doc, path)
	if !res.Exists() {
		return "", false
	}
	return res.Raw, true
}
