package record

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestCloneIsIndependentOfOriginal(t *testing.T) {
	r := Record{"a": 1}
	clone := r.Clone()
	clone["a"] = 2
	if r["a"] != 1 {
		t.Fatalf("mutating the clone mutated the original: %v", r)
	}
}

func TestAsUint64AcceptsJSONNumberWithoutPrecisionLoss(t *testing.T) {
	dec := json.NewDecoder(strings.NewReader(`{"count": 9007199254740993}`))
	dec.UseNumber()
	var r Record
	if err := dec.Decode(&r); err != nil {
		t.Fatalf("decode: %v", err)
	}
	got, ok := Uint64Field(r, "count")
	if !ok {
		t.Fatal("expected count field to decode as uint64")
	}
	if got != 9007199254740993 {
		t.Fatalf("got %d, want 9007199254740993 (float64 would round this)", got)
	}
}

func TestAsUint64RejectsNegative(t *testing.T) {
	if _, ok := AsUint64(-1); ok {
		t.Fatal("expected negative int to be rejected")
	}
	if _, ok := AsUint64(float64(-1)); ok {
		t.Fatal("expected negative float64 to be rejected")
	}
}

func TestAsObjectAcceptsPlainMap(t *testing.T) {
	v := Value(map[string]interface{}{"x": 1})
	obj, ok := AsObject(v)
	if !ok || obj["x"] != 1 {
		t.Fatalf("expected AsObject to accept a plain map, got %v, %v", obj, ok)
	}
}
