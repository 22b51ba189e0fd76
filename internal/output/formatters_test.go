package output

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/jbweber/zdir/internal/makevm"
)

func dryRunResults() makevm.Results {
	return makevm.Results{
		Directory: []string{
			"USER LINUX01 PW 2G 2G G",
			"COMMAND SET VCONFIG MODE LINUX",
			"COMMAND DEFINE CPU 00 TYPE IFL",
		},
	}
}

func failedResults() makevm.Results {
	return makevm.Results{
		OverallRC: 4,
		RC:        4,
		RS:        12,
		Response:  []string{"unrecognized operand: --disks"},
	}
}

func TestTableFormatter_FormatResults(t *testing.T) {
	tests := []struct {
		name      string
		results   makevm.Results
		noHeaders bool
		want      string
	}{
		{
			name:    "dry run",
			results: dryRunResults(),
			want: "OVERALLRC  RC  RS  ERRNO\n" +
				"0          0   0   0\n" +
				"Directory entry:\n" +
				"  USER LINUX01 PW 2G 2G G\n" +
				"  COMMAND SET VCONFIG MODE LINUX\n" +
				"  COMMAND DEFINE CPU 00 TYPE IFL\n",
		},
		{
			name:      "failure without headers",
			results:   failedResults(),
			noHeaders: true,
			want: "4  4  12  0\n" +
				"Response:\n" +
				"  unrecognized operand: --disks\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := &TableFormatter{NoHeaders: tt.noHeaders}
			got, err := f.FormatResults(tt.results)
			if err != nil {
				t.Fatalf("FormatResults() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FormatResults() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestJSONFormatter_FormatResults(t *testing.T) {
	f := &JSONFormatter{}
	out, err := f.FormatResults(failedResults())
	if err != nil {
		t.Fatalf("FormatResults() error = %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	if got["overallRC"] != float64(4) || got["rs"] != float64(12) {
		t.Errorf("unexpected codes in %s", out)
	}
	if _, ok := got["directory"]; ok {
		t.Error("empty directory should be omitted")
	}
}

func TestYAMLFormatter_FormatResults(t *testing.T) {
	f := &YAMLFormatter{}
	out, err := f.FormatResults(dryRunResults())
	if err != nil {
		t.Fatalf("FormatResults() error = %v", err)
	}

	var got makevm.Results
	if err := yaml.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("output is not valid YAML: %v\n%s", err, out)
	}
	if diff := cmp.Diff(dryRunResults(), got); diff != "" {
		t.Errorf("YAML output mismatch (-want +got):\n%s", diff)
	}
	if !strings.HasPrefix(out, "overallRC: 0\n") {
		t.Errorf("output does not start with overallRC:\n%s", out)
	}
}

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		format  Format
		wantErr bool
	}{
		{format: FormatTable},
		{format: FormatYAML},
		{format: FormatJSON},
		{format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			f, err := NewFormatter(Options{Format: tt.format})
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewFormatter() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && f == nil {
				t.Error("NewFormatter() returned nil formatter")
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{"table", "yaml", "json"} {
		if err := ValidateFormat(f); err != nil {
			t.Errorf("ValidateFormat(%q) = %v", f, err)
		}
	}
	if err := ValidateFormat("TABLE"); err == nil {
		t.Error("ValidateFormat(TABLE) = nil, want error")
	}
}
