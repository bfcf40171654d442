package operators

import (
	"testing"

	"mini-spark/internal/record"
)

func TestTokenizeSplitsOnNonWordRunes(t *testing.T) {
	got := Tokenize("Hello, World! Go-lang rocks.")
	want := []string{"hello", "world", "go", "lang", "rocks"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLookupFlatMapFnTokenizeEmitsOneRecordPerToken(t *testing.T) {
	fn, err := LookupFlatMapFn("tokenize")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	out := fn(record.Record{"text": "go go spark"})
	if len(out) != 3 {
		t.Fatalf("expected 3 records, got %d", len(out))
	}
	for _, r := range out {
		if _, ok := record.Uint64Field(r, "count"); !ok {
			t.Fatalf("record missing count field: %v", r)
		}
	}
}

func TestLookupMapFnUnknownNameFails(t *testing.T) {
	if _, err := LookupMapFn("does_not_exist"); err == nil {
		t.Fatal("expected an error for an unregistered fn_name")
	}
}

func TestLongWordsFilter(t *testing.T) {
	fn, err := LookupFilterFn("long_words")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if fn(record.Record{"token": "go"}) {
		t.Fatal("short token should not pass long_words")
	}
	if !fn(record.Record{"token": "distributed"}) {
		t.Fatal("long token should pass long_words")
	}
}
