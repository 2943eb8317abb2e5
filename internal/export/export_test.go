package export

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"

	"chainlex/internal/config"
	"chainlex/internal/evaluator"
	"chainlex/internal/graph"
	"chainlex/internal/inference"
	"chainlex/internal/registry"
)

func builtinGraph(t *testing.T) *graph.Graph {
	t.Helper()
	reg, err := registry.LoadBuiltin()
	if err != nil {
		t.Fatalf("LoadBuiltin failed: %v", err)
	}
	eval := evaluator.New(reg, inference.CombineMin)
	g, err := graph.NewBuilder(reg, eval, config.DefaultGraphConfig()).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return g
}

func TestWriteJSON(t *testing.T) {
	g := builtinGraph(t)

	var buf bytes.Buffer
	if err := WriteJSON(&buf, g); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}

	var doc struct {
		Directed bool                 `json:"directed"`
		Nodes    []graph.Node         `json:"nodes"`
		Links    []graph.WeightedEdge `json:"links"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if !doc.Directed {
		t.Errorf("directed flag missing")
	}
	if len(doc.Nodes) != len(g.Nodes()) {
		t.Errorf("nodes = %d, want %d", len(doc.Nodes), len(g.Nodes()))
	}
	if len(doc.Links) != len(g.WeightedEdges()) {
		t.Errorf("links = %d, want %d", len(doc.Links), len(g.WeightedEdges()))
	}
}

func TestWriteJSONDeterministic(t *testing.T) {
	g := builtinGraph(t)

	var a, b bytes.Buffer
	if err := WriteJSON(&a, g); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	if err := WriteJSON(&b, g); err != nil {
		t.Fatalf("WriteJSON failed: %v", err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Errorf("identical graphs exported different bytes")
	}
}

func TestWriteGraphML(t *testing.T) {
	g := builtinGraph(t)

	var buf bytes.Buffer
	if err := WriteGraphML(&buf, g); err != nil {
		t.Fatalf("WriteGraphML failed: %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, xml.Header) {
		t.Errorf("missing XML header")
	}
	for _, want := range []string{
		`<graphml xmlns="http://graphml.graphdrawing.org/xmlns">`,
		`edgedefault="directed"`,
		`<node id="murder?">`,
		`key="weight"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("GraphML output missing %q", want)
		}
	}

	// Output must be well-formed XML.
	dec := xml.NewDecoder(bytes.NewReader(buf.Bytes()))
	for {
		_, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("GraphML not well-formed: %v", err)
		}
	}
}
