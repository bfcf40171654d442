package ioformat

import (
	"os"
	"path/filepath"
	"testing"

	"mini-spark/internal/record"
)

func TestReadTextSkipsBlankLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.txt")
	if err := os.WriteFile(path, []byte("hello world\n\ngo spark\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	recs, err := ReadText(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 || recs[0]["text"] != "hello world" || recs[1]["text"] != "go spark" {
		t.Fatalf("unexpected records: %v", recs)
	}
}

func TestReadCSVZipsHeaderAndPadsMissingTrailingFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.csv")
	content := "id,nombre\nu1,Ana\nu2\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	recs, err := ReadCSV(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0]["id"] != "u1" || recs[0]["nombre"] != "Ana" {
		t.Fatalf("unexpected first record: %v", recs[0])
	}
	if recs[1]["id"] != "u2" || recs[1]["nombre"] != "" {
		t.Fatalf("expected missing trailing field to default to empty string, got %v", recs[1])
	}
}

func TestReadJSONLinesRejectsMalformedLine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.jsonl")
	if err := os.WriteFile(path, []byte("{\"a\":1}\nnot json\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadJSONLines(path); err == nil {
		t.Fatal("expected an error identifying the malformed line")
	}
}

func TestWriteJSONLinesRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "out.jsonl")
	recs := []record.Record{{"token": "a", "count": uint64(1)}}
	if err := WriteJSONLines(path, recs); err != nil {
		t.Fatal(err)
	}
	got, err := ReadJSONLines(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}
	if s, _ := record.StringField(got[0], "token"); s != "a" {
		t.Fatalf("unexpected token: %v", got[0])
	}
}

func TestWriteTwoColumnEmptyProducesZeroByteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.tsv")
	if err := WriteTwoColumn(path, nil); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() != 0 {
		t.Fatalf("expected zero-byte file, got %d bytes", info.Size())
	}
}
