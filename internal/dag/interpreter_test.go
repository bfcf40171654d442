package dag

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mini-spark/internal/common"
)

func wordCountDAG() common.DAG {
	return common.DAG{
		Nodes: []common.DAGNode{
			{ID: "read", Op: "read_text", Partitions: 2},
			{ID: "tok", Op: "flat_map", FnName: "tokenize"},
			{ID: "low", Op: "map", FnName: "to_lower"},
			{ID: "long", Op: "filter", FnName: "long_words"},
			{ID: "count", Op: "reduce_by_key", Key: "token"},
		},
		Edges: [][2]string{
			{"read", "tok"}, {"tok", "low"}, {"low", "long"}, {"long", "count"},
		},
	}
}

func TestRunExecutesWordCountPipeline(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.txt")
	content := "Spark spark distributed go go go\nan it is\n"
	if err := os.WriteFile(input, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "out.tsv")
	err := Run(wordCountDAG(), RunOptions{
		InputPath:         input,
		TmpDir:            filepath.Join(dir, "tmp"),
		DefaultPartitions: 2,
		OutputPath:        out,
		StageID:           "stage-1",
		SpillThreshold:    100,
	})
	if err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)
	// "long_words" keeps tokens over 4 chars: spark, distributed; short
	// words like "go", "an", "it", "is" are filtered out.
	if !strings.Contains(got, "spark,2\n") {
		t.Fatalf("expected spark,2 in output, got %q", got)
	}
	if !strings.Contains(got, "distributed,1\n") {
		t.Fatalf("expected distributed,1 in output, got %q", got)
	}
	if strings.Contains(got, "go,") {
		t.Fatalf("short token 'go' should have been filtered out, got %q", got)
	}
}

func TestRunRejectsDAGWithoutReadNode(t *testing.T) {
	graph := common.DAG{Nodes: []common.DAGNode{{ID: "x", Op: "map", FnName: "to_lower"}}}
	err := Run(graph, RunOptions{InputPath: "/dev/null", OutputPath: "/tmp/x"})
	if err == nil {
		t.Fatal("expected an error for a dag without a read node")
	}
}

func TestRunUnknownFnNameFailsTheTask(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "in.txt")
	if err := os.WriteFile(input, []byte("hello\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	graph := common.DAG{
		Nodes: []common.DAGNode{
			{ID: "read", Op: "read_text"},
			{ID: "tok", Op: "flat_map", FnName: "does_not_exist"},
		},
		Edges: [][2]string{{"read", "tok"}},
	}
	err := Run(graph, RunOptions{InputPath: input, OutputPath: filepath.Join(dir, "out.jsonl"), DefaultPartitions: 1})
	if err == nil {
		t.Fatal("expected an error for an unregistered fn_name")
	}
}
