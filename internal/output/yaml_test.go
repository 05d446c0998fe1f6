package output

import (
	"bytes"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestNewYAMLFormatter(t *testing.T) {
	if f := NewYAMLFormatter(nil); f == nil || f.options == nil {
		t.Fatal("NewYAMLFormatter(nil) did not initialize options")
	}
}

func TestYAMLFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	data := Table{
		Headers: []string{"task", "chunks"},
		Rows:    [][]string{{"0", "[0, 5)"}},
	}
	if err := NewYAMLFormatter(nil).Format(&buf, data); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var got []map[string]string
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid YAML: %v\n%s", err, buf.String())
	}
	if len(got) != 1 || got[0]["chunks"] != "[0, 5)" {
		t.Errorf("got %v", got)
	}
}

func TestYAMLFormatter_FormatReports(t *testing.T) {
	var buf bytes.Buffer
	if err := NewYAMLFormatter(nil).FormatReports(&buf, sampleReports()); err != nil {
		t.Fatalf("FormatReports() error = %v", err)
	}

	var got []map[string]interface{}
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid YAML: %v\n%s", err, buf.String())
	}
	if len(got) != 1 {
		t.Fatalf("got %d reports, want 1", len(got))
	}
	if got[0]["kernel"] != "for-each-index" {
		t.Errorf("kernel = %v", got[0]["kernel"])
	}
	if got[0]["dispatches"] != 4 {
		t.Errorf("dispatches = %v, want 4", got[0]["dispatches"])
	}
}

func TestYAMLFormatter_Indentation(t *testing.T) {
	var buf bytes.Buffer
	data := map[string]interface{}{"outer": map[string]interface{}{"inner": 1}}
	if err := NewYAMLFormatter(nil).Format(&buf, data); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte("\n  inner: 1")) {
		t.Errorf("expected two-space indentation, got:\n%s", buf.String())
	}
}
