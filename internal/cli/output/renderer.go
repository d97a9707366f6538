// Package output renders solver outcomes in the CLI's output formats.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"gopkg.in/yaml.v3"

	"github.com/mathflow-labs/mathflow/internal/solver"
)

// Mode selects the output format.
type Mode string

const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeTable    Mode = "table"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
	ModeYAML     Mode = "yaml"
)

// Modes lists the accepted output modes.
func Modes() []string {
	return []string{"auto", "text", "table", "markdown", "json", "yaml"}
}

// view is the serializable shape of an outcome, shared by the json and
// yaml renderers.
type view struct {
	Task       string   `json:"task" yaml:"task"`
	Kind       string   `json:"kind" yaml:"kind"`
	Normalized string   `json:"normalized" yaml:"normalized"`
	Variables  []string `json:"variables,omitempty" yaml:"variables,omitempty"`
	Solutions  []string `json:"solutions,omitempty" yaml:"solutions,omitempty"`
	Expression string   `json:"expression,omitempty" yaml:"expression,omitempty"`
	Steps      []string `json:"steps,omitempty" yaml:"steps,omitempty"`
}

func newView(o *solver.Outcome) view {
	v := view{
		Task:       string(o.Task),
		Kind:       o.Kind.String(),
		Normalized: o.Normalized,
		Variables:  o.Variables,
		Steps:      o.Steps,
	}
	if o.Result.IsSolutions() {
		for _, s := range o.Result.Solutions {
			v.Solutions = append(v.Solutions, s.String())
		}
	} else {
		v.Expression = o.Result.Expression.String()
	}
	return v
}

// Renderer writes outcomes and errors to the chosen writers.
type Renderer struct {
	out  io.Writer
	errW io.Writer
	mode Mode
}

// NewRenderer creates a renderer. Unknown modes fall back to auto.
func NewRenderer(out, errW io.Writer, mode Mode) *Renderer {
	switch mode {
	case ModeText, ModeTable, ModeMarkdown, ModeJSON, ModeYAML:
	default:
		mode = ModeAuto
	}
	return &Renderer{out: out, errW: errW, mode: mode}
}

// Outcome renders one solver outcome.
func (r *Renderer) Outcome(o *solver.Outcome) error {
	v := newView(o)
	switch r.mode {
	case ModeJSON:
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case ModeYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return err
		}
		_, err = r.out.Write(data)
		return err
	case ModeTable:
		return r.renderTable(v, false)
	case ModeMarkdown:
		return r.renderTable(v, true)
	default:
		return r.renderText(v)
	}
}

// Error writes an error message to the error stream.
func (r *Renderer) Error(err error) {
	_, _ = fmt.Fprintf(r.errW, "Error: %v\n", err)
}

func (r *Renderer) renderText(v view) error {
	if len(v.Solutions) > 0 {
		variable := "x"
		if len(v.Variables) > 0 {
			variable = v.Variables[0]
		}
		var parts []string
		for _, s := range v.Solutions {
			parts = append(parts, fmt.Sprintf("%s = %s", variable, s))
		}
		_, _ = fmt.Fprintln(r.out, strings.Join(parts, ", "))
	} else {
		_, _ = fmt.Fprintln(r.out, v.Expression)
	}
	for _, step := range v.Steps {
		_, _ = fmt.Fprintf(r.out, "  %s\n", step)
	}
	return nil
}

func (r *Renderer) renderTable(v view, markdown bool) error {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)

	if len(v.Solutions) > 0 {
		variable := ""
		if len(v.Variables) > 0 {
			variable = v.Variables[0]
		}
		t.AppendHeader(table.Row{"#", variable})
		for i, s := range v.Solutions {
			t.AppendRow(table.Row{i + 1, s})
		}
	} else {
		t.AppendHeader(table.Row{"task", "result"})
		t.AppendRow(table.Row{v.Task, v.Expression})
	}

	if markdown {
		t.RenderMarkdown()
	} else {
		t.Render()
	}
	for _, step := range v.Steps {
		_, _ = fmt.Fprintf(r.out, "%s\n", step)
	}
	return nil
}
