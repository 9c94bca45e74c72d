package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"connectorauth/internal/authctx"
	"connectorauth/internal/authform"
	"connectorauth/internal/form"
	"connectorauth/internal/headers"
	cellstr "connectorauth/pkg/strings"
)

// Row statuses of the headers table.
const (
	StatusOK         = "ok"
	StatusEmpty      = "empty"
	StatusMissingKey = "missing key"
	StatusInvalidKey = "invalid key"
	StatusDuplicate  = "duplicate"
)

// maskedPreview stands in for the value of a masked secret input.
const maskedPreview = "(masked)"

// Options configures a Renderer.
type Options struct {
	// NoColor disables ANSI styling, for files and pipes.
	NoColor bool
	// ShowHidden also lists fields of hidden groups.
	ShowHidden bool
	// MaxCellLen defaults to strings.DefaultCellMaxLen.
	MaxCellLen int
}

// Renderer writes tables describing one editor.
type Renderer struct {
	out     io.Writer
	editor  *authform.Editor
	options Options
}

// NewRenderer creates a renderer writing to out.
func NewRenderer(out io.Writer, editor *authform.Editor, options Options) *Renderer {
	if options.MaxCellLen <= 0 {
		options.MaxCellLen = cellstr.DefaultCellMaxLen
	}
	return &Renderer{out: out, editor: editor, options: options}
}

// All renders the summary, groups, fields and headers of ctx.
func (r *Renderer) All(ctx authctx.EntityContext) error {
	if !r.editor.IsMounted(ctx) {
		return fmt.Errorf("form instance %s is not mounted", r.editor.Resolver().Describe(ctx))
	}
	r.Summary(ctx)
	r.Groups(ctx)
	r.Fields(ctx)
	r.Headers(ctx)
	return nil
}

// Summary prints the context, scheme and grant of ctx.
func (r *Renderer) Summary(ctx authctx.EntityContext) {
	fmt.Fprintf(r.out, "%s %s\n", r.color(text.FgHiBlue, "Context:"), r.editor.Resolver().Describe(ctx))
	fmt.Fprintf(r.out, "%s %s\n", r.color(text.FgHiBlue, "Auth:   "), r.editor.AuthType(ctx))
	fmt.Fprintf(r.out, "%s %s\n", r.color(text.FgHiBlue, "Grant:  "), r.editor.GrantType(ctx))
}

// Groups prints the visibility of every field group of ctx.
func (r *Renderer) Groups(ctx authctx.EntityContext) {
	t := r.createTable()
	t.AppendHeader(table.Row{r.header("GROUP"), r.header("STATE")})
	for _, base := range groupOrder {
		group := r.editor.Group(ctx, base)
		if group == nil {
			continue
		}
		state := r.color(text.FgGreen, "visible")
		if group.Hidden() {
			state = r.color(text.FgHiBlack, "hidden")
		}
		t.AppendRow(table.Row{ctx.ID(base), state})
	}
	t.Render()
}

// Fields prints the inputs of ctx that are currently shown.
func (r *Renderer) Fields(ctx authctx.EntityContext) {
	t := r.createTable()
	t.AppendHeader(table.Row{r.header("FIELD"), r.header("TYPE"), r.header("VALUE"), r.header("FLAGS")})
	for _, base := range fieldOrder {
		field := r.editor.Field(ctx, base)
		if field == nil {
			continue
		}
		if !r.options.ShowHidden && !r.fieldVisible(ctx, base) {
			continue
		}
		t.AppendRow(table.Row{field.ID(), string(field.Type()), r.preview(field), cellstr.OrDash(flags(field))})
	}
	t.Render()
}

// Headers prints the header rows of ctx with their status and a total line.
func (r *Renderer) Headers(ctx authctx.EntityContext) {
	containerID := ctx.ID(authctx.HeadersContainer)
	rows := r.editor.HeaderRows(containerID)
	if len(rows) == 0 {
		fmt.Fprintf(r.out, "%s\n", r.color(text.FgYellow, "No headers configured"))
		return
	}

	report, _ := r.editor.EvaluateHeaders(containerID)
	statuses := RowStatuses(rows, report)

	t := r.createTable()
	t.AppendHeader(table.Row{r.header("#"), r.header("KEY"), r.header("VALUE"), r.header("STATUS")})
	for i, row := range rows {
		t.AppendRow(table.Row{
			i + 1,
			cellstr.OrDash(cellstr.TruncateCell(row.Key.Value(), r.options.MaxCellLen)),
			r.preview(row.Value),
			r.status(statuses[row.ID()]),
		})
	}
	t.Render()

	if report.TooMany {
		fmt.Fprintf(r.out, "%s\n", r.color(text.FgRed, report.LimitMessage()))
		return
	}
	fmt.Fprintf(r.out, "%s %s %s\n",
		r.color(text.FgHiBlue, "Total:"),
		r.color(text.FgHiWhite, fmt.Sprint(len(report.Headers))),
		r.color(text.FgHiBlue, "serialized headers"))
}

// RowStatuses classifies every row against the evaluation report. Rows of a
// report that exceeded the limit are all reported as ok apart from empty ones,
// because nothing else was evaluated.
func RowStatuses(rows []*headers.Row, report headers.Report) map[string]string {
	missing := toSet(report.MissingKey)
	invalid := toSet(report.InvalidKey)
	dup := toSet(report.Duplicates)

	out := make(map[string]string, len(rows))
	for _, row := range rows {
		switch {
		case row.Empty():
			out[row.ID()] = StatusEmpty
		case missing[row.ID()]:
			out[row.ID()] = StatusMissingKey
		case invalid[row.ID()]:
			out[row.ID()] = StatusInvalidKey
		case dup[trimmedKey(row)]:
			out[row.ID()] = StatusDuplicate
		default:
			out[row.ID()] = StatusOK
		}
	}
	return out
}

func (r *Renderer) createTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	if r.options.NoColor {
		t.SetStyle(table.StyleLight)
	} else {
		t.SetStyle(table.StyleRounded)
	}
	return t
}

func (r *Renderer) header(s string) string {
	return r.color(text.FgHiCyan, s)
}

func (r *Renderer) color(c text.Color, s string) string {
	if r.options.NoColor {
		return s
	}
	return c.Sprint(s)
}

func (r *Renderer) status(s string) string {
	switch s {
	case StatusOK:
		return r.color(text.FgGreen, s)
	case StatusDuplicate:
		return r.color(text.FgYellow, s)
	case StatusMissingKey, StatusInvalidKey:
		return r.color(text.FgRed, s)
	default:
		return r.color(text.FgHiBlack, s)
	}
}

// preview is the table cell of an input value. Masked inputs never show
// their content.
func (r *Renderer) preview(field *form.Input) string {
	if field.Type() == form.TypePassword {
		if field.Value() == "" {
			return "-"
		}
		if field.IsStoredSecret() {
			return maskedPreview + " stored"
		}
		return maskedPreview
	}
	return cellstr.OrDash(cellstr.TruncateCell(field.Value(), r.options.MaxCellLen))
}

func (r *Renderer) fieldVisible(ctx authctx.EntityContext, base string) bool {
	for _, g := range fieldGroups[base] {
		group := r.editor.Group(ctx, g)
		if group == nil || group.Hidden() {
			return false
		}
	}
	return true
}

func flags(field *form.Input) string {
	var out []string
	if field.Required() {
		out = append(out, "required")
	}
	if field.IsStoredSecret() {
		out = append(out, "stored")
	}
	if !field.Valid() {
		out = append(out, "invalid: "+field.ValidationMessage())
	}
	return strings.Join(out, ", ")
}

func trimmedKey(row *headers.Row) string {
	return strings.TrimSpace(row.Key.Value())
}

func toSet(items []string) map[string]bool {
	out := make(map[string]bool, len(items))
	for _, it := range items {
		out[it] = true
	}
	return out
}
