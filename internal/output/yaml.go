package output

import (
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLFormatter formats output as YAML
type YAMLFormatter struct {
	options *Options
}

// NewYAMLFormatter creates a new YAML formatter
func NewYAMLFormatter(opts *Options) *YAMLFormatter {
	if opts == nil {
		opts = &Options{}
	}
	return &YAMLFormatter{
		options: opts,
	}
}

// Format outputs a single data item as YAML
func (f *YAMLFormatter) Format(w io.Writer, data interface{}) error {
	if t, ok := data.(Table); ok {
		data = tableRecords(t)
	}
	return f.encode(w, data)
}

// FormatReports outputs kernel run reports as YAML
func (f *YAMLFormatter) FormatReports(w io.Writer, reports []Report) error {
	out := make([]map[string]interface{}, len(reports))
	for i, r := range reports {
		out[i] = reportRecord(r)
	}
	return f.encode(w, out)
}

func (f *YAMLFormatter) encode(w io.Writer, data interface{}) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer encoder.Close()

	return encoder.Encode(data)
}
