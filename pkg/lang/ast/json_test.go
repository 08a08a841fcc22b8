package ast_test

import (
	"encoding/json"
	"testing"

	"github.com/xeipuuv/gojsonschema"

	"github.com/Sumatoshi-tech/tracefang/pkg/lang/ast"
	"github.com/Sumatoshi-tech/tracefang/pkg/lang/spec"
)

func exportFixture() *ast.Node {
	// kprobe:foo / pid == 42 / { @m["k"] = 1; unroll (4) { x = x + 1; } }
	pred := ast.NewBinop(ast.NewVar("pid"), ast.OpEq, ast.NewInt(42))

	m := ast.NewMap("@m", ast.NewRec(ast.NewStr("k")))
	assign := ast.NewAssign(m, ast.NewInt(1))

	inc := ast.NewAssign(ast.NewVar("x"), ast.NewBinop(ast.NewVar("x"), ast.OpAdd, ast.NewInt(1)))
	loop := ast.NewUnroll(4, inc)
	assign.Next = loop

	probe := ast.NewProbe("kprobe:foo", pred, assign)

	return ast.NewScript(probe)
}

func TestMarshalJSON_ValidatesAgainstSchema(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(exportFixture())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	schemaRaw, err := spec.ASTSchemaFS.ReadFile(spec.SchemaPath)
	if err != nil {
		t.Fatalf("read schema: %v", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaRaw),
		gojsonschema.NewBytesLoader(raw),
	)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}

	for _, verr := range result.Errors() {
		t.Errorf("schema violation at %s: %s", verr.Field(), verr.Description())
	}
}

func TestMarshalJSON_ChildrenInWalkerOrder(t *testing.T) {
	t.Parallel()

	raw, err := json.Marshal(exportFixture())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var tree struct {
		Kind     string `json:"kind"`
		Children []struct {
			Kind     string `json:"kind"`
			Text     string `json:"text"`
			Children []struct {
				Kind string `json:"kind"`
				Op   string `json:"op"`
			} `json:"children"`
		} `json:"children"`
	}

	if err := json.Unmarshal(raw, &tree); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if tree.Kind != "script" || len(tree.Children) != 1 {
		t.Fatalf("unexpected root shape: %+v", tree)
	}

	probe := tree.Children[0]
	if probe.Kind != "probe" || probe.Text != "kprobe:foo" {
		t.Fatalf("unexpected probe: %+v", probe)
	}

	// Predicate first, then the statements in list order.
	wantKinds := []string{"binop", "assign", "unroll"}
	if len(probe.Children) != len(wantKinds) {
		t.Fatalf("probe has %d children, want %d", len(probe.Children), len(wantKinds))
	}

	for i, want := range wantKinds {
		if probe.Children[i].Kind != want {
			t.Errorf("child %d: got %s, want %s", i, probe.Children[i].Kind, want)
		}
	}

	if probe.Children[0].Op != "==" {
		t.Errorf("predicate op: got %q, want ==", probe.Children[0].Op)
	}
}

func TestMarshalJSON_AnnotationOmittedWhenZero(t *testing.T) {
	t.Parallel()

	n := ast.NewInt(7)

	raw, err := json.Marshal(n)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if _, ok := out["dyn"]; ok {
		t.Error("zero annotation must be omitted from the export")
	}

	n.Dyn.Type = ast.KindInt
	n.Dyn.Size = 8

	raw, err = json.Marshal(n)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	dyn, ok := out["dyn"].(map[string]any)
	if !ok {
		t.Fatal("resolved annotation must be exported")
	}

	if dyn["type"] != "int" || dyn["size"] != float64(8) || dyn["loc"] != "nowhere" {
		t.Errorf("unexpected annotation export: %v", dyn)
	}
}
