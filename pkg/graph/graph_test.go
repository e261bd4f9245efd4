package graph

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/flowter/pkg/core/flowchart"
	"github.com/matzehuels/flowter/pkg/core/render/flowchart/layout"
	"github.com/matzehuels/flowter/pkg/errors"
)

const yamlDoc = `
mode: horizontal
config:
  node_width: 160
nodes:
  start: {text: Start, symbol: ellipse}
  check: {text: 42, symbol: rhombus}
  done: {text: Done, width: 90}
edges:
  - {from: start, to: check}
  - {from: check, to: done, text: "yes", marker: both}
`

const jsonDoc = `{
  "nodes": {"a": {"text": "A"}, "b": {"text": "B", "font_size": 18}},
  "edges": [{"from": "a", "to": "b", "type": "cross"}]
}`

const tomlDoc = `
mode = "vertical"

[nodes.a]
text = "A"

[nodes.b]
text = "B"
bgcolor = "#ffeeee"

[[edges]]
from = "a"
to = "b"
color = "red"
`

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{".yml", FormatYAML, false},
		{"YAML", FormatYAML, false},
		{"toml", FormatTOML, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDetectFormat(t *testing.T) {
	if f, err := DetectFormat("charts/flow.yaml"); err != nil || f != FormatYAML {
		t.Errorf("DetectFormat(flow.yaml) = %q, %v", f, err)
	}
	if _, err := DetectFormat("Makefile"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("DetectFormat(Makefile) error = %v, want INVALID_FORMAT", err)
	}
}

func TestDecodeDocumentYAML(t *testing.T) {
	doc, err := DecodeDocument([]byte(yamlDoc), FormatYAML)
	if err != nil {
		t.Fatalf("DecodeDocument: %v", err)
	}
	fc, cfg, err := doc.Flowchart()
	if err != nil {
		t.Fatalf("Flowchart: %v", err)
	}

	if cfg.Mode != flowchart.ModeHorizontal {
		t.Errorf("mode = %q, want horizontal", cfg.Mode)
	}
	if cfg.NodeWidth != 160 {
		t.Errorf("node width = %v, want 160", cfg.NodeWidth)
	}
	if cfg.NodeHeight != flowchart.DefaultNodeHeight {
		t.Errorf("node height = %v, want default", cfg.NodeHeight)
	}
	if got := fc.Nodes["check"].Text; got != "42" {
		t.Errorf("numeric text = %q, want %q", got, "42")
	}
	if got := fc.Nodes["check"].Symbol; got != flowchart.SymbolRhombus {
		t.Errorf("symbol = %q, want rhombus", got)
	}
	if w := fc.Nodes["done"].Width; w == nil || *w != 90 {
		t.Errorf("done width = %v, want 90", w)
	}
	if len(fc.Edges) != 2 || fc.Edges[1].Marker != flowchart.MarkerBoth || fc.Edges[1].Text != "yes" {
		t.Errorf("edges = %+v", fc.Edges)
	}
}

func TestDecodeDocumentJSON(t *testing.T) {
	doc, err := DecodeDocument([]byte(jsonDoc), FormatJSON)
	if err != nil {
		t.Fatalf("DecodeDocument: %v", err)
	}
	fc, cfg, err := doc.Flowchart()
	if err != nil {
		t.Fatalf("Flowchart: %v", err)
	}
	if cfg.Mode != flowchart.ModeVertical {
		t.Errorf("mode = %q, want vertical", cfg.Mode)
	}
	if fs := fc.Nodes["b"].FontSize; fs == nil || *fs != 18 {
		t.Errorf("font size = %v, want 18", fs)
	}
	if fc.Edges[0].Type != flowchart.EdgeCross {
		t.Errorf("edge type = %q, want cross", fc.Edges[0].Type)
	}
}

func TestDecodeDocumentTOML(t *testing.T) {
	doc, err := DecodeDocument([]byte(tomlDoc), FormatTOML)
	if err != nil {
		t.Fatalf("DecodeDocument: %v", err)
	}
	fc, _, err := doc.Flowchart()
	if err != nil {
		t.Fatalf("Flowchart: %v", err)
	}
	if fc.Nodes["b"].BGColor != "#ffeeee" {
		t.Errorf("bgcolor = %q", fc.Nodes["b"].BGColor)
	}
	if fc.Edges[0].Color != "red" {
		t.Errorf("color = %q, want red", fc.Edges[0].Color)
	}
}

func TestDecodeDocumentErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
		code   errors.Code
	}{
		{"json syntax", `{"nodes":`, FormatJSON, errors.ErrCodeInvalidFormat},
		{"json unknown field", `{"nodez": {}}`, FormatJSON, errors.ErrCodeInvalidFormat},
		{"json missing target", `{"nodes": {"a": {}}, "edges": [{"from": "a"}]}`, FormatJSON, errors.ErrCodeInvalidInput},
		{"json bad symbol", `{"nodes": {"a": {"symbol": "hexagon"}}, "edges": []}`, FormatJSON, errors.ErrCodeInvalidInput},
		{"json zero width", `{"nodes": {"a": {"width": -1}}, "edges": []}`, FormatJSON, errors.ErrCodeInvalidInput},
		{"yaml bad marker", "nodes: {a: {}}\nedges:\n  - {from: a, to: a, marker: arrow}\n", FormatYAML, errors.ErrCodeInvalidInput},
		{"yaml bad mode", "mode: diagonal\nnodes: {}\nedges: []\n", FormatYAML, errors.ErrCodeInvalidInput},
		{"yaml syntax", "nodes: [", FormatYAML, errors.ErrCodeInvalidFormat},
		{"toml unknown key", "colour = \"red\"\n", FormatTOML, errors.ErrCodeInvalidFormat},
		{"toml bad type", "[[edges]]\nfrom = \"a\"\nto = \"b\"\ntype = \"curvy\"\n", FormatTOML, errors.ErrCodeInvalidInput},
		{"unknown format", "{}", Format("xml"), errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeDocument([]byte(tt.data), tt.format)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestDocumentFlowchartErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		code errors.Code
	}{
		{
			name: "unknown edge target",
			doc:  Document{Nodes: map[string]NodeSpec{"a": {}}, Edges: []EdgeSpec{{From: "a", To: "b"}}},
			code: errors.ErrCodeUnknownNode,
		},
		{
			name: "bad color",
			doc:  Document{Nodes: map[string]NodeSpec{"a": {BGColor: "url(x)"}}},
			code: errors.ErrCodeInvalidColor,
		},
		{
			name: "bad mode",
			doc:  Document{Mode: "sideways"},
			code: errors.ErrCodeInvalidMode,
		},
		{
			name: "nan coordinate",
			doc:  Document{Nodes: map[string]NodeSpec{"a": {X: flowchart.Float(math.NaN())}}},
			code: errors.ErrCodeInvalidInput,
		},
		{
			name: "infinite coordinate",
			doc:  Document{Nodes: map[string]NodeSpec{"a": {Y: flowchart.Float(math.Inf(-1))}}},
			code: errors.ErrCodeInvalidInput,
		},
		{
			name: "infinite edge font size",
			doc: Document{
				Nodes: map[string]NodeSpec{"a": {}, "b": {}},
				Edges: []EdgeSpec{{From: "a", To: "b", FontSize: flowchart.Float(math.Inf(1))}},
			},
			code: errors.ErrCodeInvalidInput,
		},
		{
			name: "nan spacing",
			doc:  Document{Config: flowchart.Config{RowSpacing: flowchart.Float(math.NaN())}},
			code: errors.ErrCodeInvalidInput,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := tt.doc.Flowchart()
			if !errors.Is(err, tt.code) {
				t.Errorf("Flowchart() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestWriteDocumentRoundTrip(t *testing.T) {
	fc := flowchart.Flowchart{
		Nodes: map[string]flowchart.Node{
			"a": {Text: "Start", Symbol: flowchart.SymbolEllipse},
			"b": {Text: "End", Width: flowchart.Float(200)},
		},
		Edges: []flowchart.Edge{{From: "a", To: "b", Text: "go", Marker: flowchart.MarkerBoth}},
	}
	cfg := flowchart.DefaultConfig()
	cfg.Mode = flowchart.ModeHorizontal

	for _, format := range Formats {
		t.Run(string(format), func(t *testing.T) {
			data, err := MarshalDocument(FromFlowchart(fc, cfg), format)
			if err != nil {
				t.Fatalf("MarshalDocument: %v", err)
			}
			doc, err := DecodeDocument(data, format)
			if err != nil {
				t.Fatalf("DecodeDocument: %v\n%s", err, data)
			}
			got, gotCfg, err := doc.Flowchart()
			if err != nil {
				t.Fatalf("Flowchart: %v", err)
			}
			if gotCfg.Mode != flowchart.ModeHorizontal {
				t.Errorf("mode = %q, want horizontal", gotCfg.Mode)
			}
			if got.Nodes["a"].Text != "Start" || got.Nodes["a"].Symbol != flowchart.SymbolEllipse {
				t.Errorf("node a = %+v", got.Nodes["a"])
			}
			if w := got.Nodes["b"].Width; w == nil || *w != 200 {
				t.Errorf("node b width = %v, want 200", w)
			}
			if len(got.Edges) != 1 || got.Edges[0].Text != "go" || got.Edges[0].Marker != flowchart.MarkerBoth {
				t.Errorf("edges = %+v", got.Edges)
			}
		})
	}
}

func TestReadDocumentFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chart.yml")
	if err := os.WriteFile(path, []byte(yamlDoc), 0644); err != nil {
		t.Fatal(err)
	}
	doc, err := ReadDocumentFile(path)
	if err != nil {
		t.Fatalf("ReadDocumentFile: %v", err)
	}
	if len(doc.Nodes) != 3 {
		t.Errorf("nodes = %d, want 3", len(doc.Nodes))
	}

	_, err = ReadDocumentFile(filepath.Join(dir, "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestReadDocument(t *testing.T) {
	doc, err := ReadDocument(strings.NewReader(jsonDoc), FormatJSON)
	if err != nil {
		t.Fatalf("ReadDocument: %v", err)
	}
	if len(doc.Edges) != 1 {
		t.Errorf("edges = %d, want 1", len(doc.Edges))
	}
}

func TestUnmarshalLayout(t *testing.T) {
	l := Layout{
		Mode:   "vertical",
		Width:  200,
		Height: 120,
		Nodes:  []Node{{ID: "a"}, {ID: "b", Row: 1}},
		Edges:  []Edge{{From: "a", To: "b", Shape: "bent-forward"}},
		Rows:   [][]string{{"a"}, {"b"}},
	}
	data, err := MarshalLayout(l)
	if err != nil {
		t.Fatalf("MarshalLayout: %v", err)
	}
	got, err := UnmarshalLayout(data)
	if err != nil {
		t.Fatalf("UnmarshalLayout: %v", err)
	}
	if got.NodeCount() != 2 || got.Edges[0].Shape != "bent-forward" || got.Rows[1][0] != "b" {
		t.Errorf("round trip = %+v", got)
	}

	bad := []string{
		`{"nodes": [{"id": "a"}], "edges": [{"from": "a", "to": "z"}]}`,
		`{"nodes": [{"text": "no id"}]}`,
		`not json`,
	}
	for _, in := range bad {
		if _, err := UnmarshalLayout([]byte(in)); err == nil {
			t.Errorf("UnmarshalLayout(%s) expected error", in)
		}
	}
}

func TestWriteLayoutFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.json")
	l := Layout{Mode: "horizontal", Nodes: []Node{{ID: "x"}}}
	if err := WriteLayoutFile(l, path); err != nil {
		t.Fatalf("WriteLayoutFile: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte(`"mode": "horizontal"`)) {
		t.Errorf("file content = %s", data)
	}
	got, err := ReadLayoutFile(path)
	if err != nil || got.Nodes[0].ID != "x" {
		t.Errorf("ReadLayoutFile = %+v, %v", got, err)
	}
}

func TestDecodeDocumentNonFiniteCoordinate(t *testing.T) {
	doc, err := DecodeDocument([]byte("nodes: {a: {text: A, x: .nan}}\nedges: []\n"), FormatYAML)
	if err != nil {
		t.Fatalf("DecodeDocument: %v", err)
	}
	if _, _, err := doc.Flowchart(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Flowchart() error = %v, want INVALID_INPUT", err)
	}
}

func TestZeroSpacingSurvivesLayout(t *testing.T) {
	const input = `{
  "config": {"row_spacing": 0, "width_margin": 0},
  "nodes": {"a": {"text": "A"}, "b": {"text": "B"}},
  "edges": [{"from": "a", "to": "b"}]
}`
	doc, err := DecodeDocument([]byte(input), FormatJSON)
	if err != nil {
		t.Fatalf("DecodeDocument: %v", err)
	}
	fc, cfg, err := doc.Flowchart()
	if err != nil {
		t.Fatalf("Flowchart: %v", err)
	}
	if rows, _ := cfg.Spacing(); rows != 0 {
		t.Errorf("row spacing = %v, want 0", rows)
	}
	if wm, hm := cfg.Margins(); wm != 0 || hm != flowchart.DefaultHeightMargin {
		t.Errorf("margins = %v, %v, want 0, %v", wm, hm, flowchart.DefaultHeightMargin)
	}

	l, err := layout.Build(fc, cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	a, _ := l.Node("a")
	b, _ := l.Node("b")
	if a.X != 0 || a.Y != flowchart.DefaultHeightMargin {
		t.Errorf("a = (%v, %v), want (0, %v)", a.X, a.Y, flowchart.DefaultHeightMargin)
	}
	if want := flowchart.DefaultHeightMargin + flowchart.DefaultNodeHeight; b.Y != want {
		t.Errorf("b.Y = %v, want %v", b.Y, want)
	}
}
