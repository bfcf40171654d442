package operators

import (
	"testing"

	"mini-spark/internal/record"
)

func TestReduceByKeySumsAndSortsKeys(t *testing.T) {
	recs := []record.Record{
		{"token": "b", "count": uint64(2)},
		{"token": "a", "count": uint64(1)},
		{"token": "b", "count": uint64(5)},
		{"token": "c", "count": uint64(1)},
	}
	out := ReduceByKey(recs, "token", "count")
	if len(out) != 3 {
		t.Fatalf("expected 3 keys, got %d", len(out))
	}
	want := []struct {
		key string
		sum uint64
	}{{"a", 1}, {"b", 7}, {"c", 1}}
	for i, w := range want {
		if out[i]["token"] != w.key {
			t.Fatalf("out[%d].token = %v, want %q", i, out[i]["token"], w.key)
		}
		if out[i]["count"] != w.sum {
			t.Fatalf("out[%d].count = %v, want %d", i, out[i]["count"], w.sum)
		}
	}
}

func TestReduceByKeySkipsRecordsMissingFields(t *testing.T) {
	recs := []record.Record{
		{"token": "a", "count": uint64(1)},
		{"token": "a"},
		{"count": uint64(3)},
	}
	out := ReduceByKey(recs, "token", "count")
	if len(out) != 1 || out[0]["count"] != uint64(1) {
		t.Fatalf("expected only the well-formed record to count, got %v", out)
	}
}

func TestJoinByKeyInnerJoinWithRightPrefix(t *testing.T) {
	left := []record.Record{
		{"id": "u1", "nombre": "Ana"},
		{"id": "u2", "nombre": "Bob"},
	}
	right := []record.Record{
		{"id": "u1", "compras": "10"},
		{"id": "u3", "compras": "99"},
	}
	out := JoinByKey(left, right, "id")
	if len(out) != 1 {
		t.Fatalf("expected 1 joined record, got %d", len(out))
	}
	rec := out[0]
	if rec["id"] != "u1" || rec["nombre"] != "Ana" || rec["compras"] != "10" {
		t.Fatalf("unexpected joined record: %v", rec)
	}
}

func TestJoinByKeyCollisionGetsRightPrefix(t *testing.T) {
	left := []record.Record{{"id": "u1", "status": "left"}}
	right := []record.Record{{"id": "u1", "status": "right"}}
	out := JoinByKey(left, right, "id")
	if len(out) != 1 {
		t.Fatalf("expected 1 joined record, got %d", len(out))
	}
	rec := out[0]
	if rec["status"] != "left" {
		t.Fatalf("left field should win on collision, got %v", rec["status"])
	}
	if rec["right_status"] != "right" {
		t.Fatalf("right field should be re-keyed with right_ prefix, got %v", rec["right_status"])
	}
}

func TestJoinByKeySkipsRecordsMissingKeyField(t *testing.T) {
	left := []record.Record{{"nombre": "sin id"}}
	right := []record.Record{{"id": "u1", "compras": "1"}}
	out := JoinByKey(left, right, "id")
	if len(out) != 0 {
		t.Fatalf("expected no joined records, got %v", out)
	}
}

func TestMapFilterFlatMap(t *testing.T) {
	recs := []record.Record{{"n": 1}, {"n": 2}, {"n": 3}}

	mapped := Map(recs, func(r record.Record) record.Record {
		out := r.Clone()
		out["doubled"] = r["n"].(int) * 2
		return out
	})
	if mapped[1]["doubled"] != 4 {
		t.Fatalf("map did not apply fn, got %v", mapped[1])
	}

	filtered := Filter(recs, func(r record.Record) bool { return r["n"].(int) > 1 })
	if len(filtered) != 2 {
		t.Fatalf("expected 2 filtered records, got %d", len(filtered))
	}

	flat := FlatMap(recs, func(r record.Record) []record.Record {
		return []record.Record{r, r}
	})
	if len(flat) != 6 {
		t.Fatalf("expected 6 flat-mapped records, got %d", len(flat))
	}
}
