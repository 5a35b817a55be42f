package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"

	"github.com/kbukum/storefront/validation"
)

const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

type palette struct {
	Header string
	Border string
	Accent string
	Muted  string
	Danger string
}

var (
	lightPalette = palette{Header: "#1F2937", Border: "#9CA3AF", Accent: "#2563EB", Muted: "#6B7280", Danger: "#B91C1C"}
	darkPalette  = palette{Header: "#F9FAFB", Border: "#4B5563", Accent: "#60A5FA", Muted: "#9CA3AF", Danger: "#F87171"}
)

type styles struct {
	header lipgloss.Style
	border lipgloss.Style
	accent lipgloss.Style
	muted  lipgloss.Style
	danger lipgloss.Style
}

func (p palette) styles() styles {
	return styles{
		header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.Header)).Padding(0, 1),
		border: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Border)),
		accent: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Accent)).Bold(true),
		muted:  lipgloss.NewStyle().Foreground(lipgloss.Color(p.Muted)),
		danger: lipgloss.NewStyle().Foreground(lipgloss.Color(p.Danger)).Bold(true),
	}
}

// renderer writes command results. It implements store.Presenter so the
// table palette follows the theme store.
type renderer struct {
	w      io.Writer
	format string
	st     styles
}

func newRenderer(w io.Writer, format string) (*renderer, error) {
	formats := []string{formatTable, formatJSON, formatYAML}
	if err := validation.New().OneOf("output", format, formats).Validate(); err != nil {
		return nil, err
	}
	return &renderer{w: w, format: format, st: lightPalette.styles()}, nil
}

func (r *renderer) SetDark(dark bool) {
	if dark {
		r.st = darkPalette.styles()
		return
	}
	r.st = lightPalette.styles()
}

// structured reports whether output is json or yaml.
func (r *renderer) structured() bool {
	return r.format != formatTable
}

// value writes v as json or yaml. It is a no-op in table mode.
func (r *renderer) value(v any) error {
	switch r.format {
	case formatJSON:
		enc := json.NewEncoder(r.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(r.w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	}
	return nil
}

// show writes v in structured formats, or calls table otherwise.
func (r *renderer) show(v any, tableFn func()) error {
	if r.structured() {
		return r.value(v)
	}
	tableFn()
	return nil
}

func (r *renderer) table(headers []string, rows [][]string) {
	if len(rows) == 0 {
		fmt.Fprintln(r.w, r.st.muted.Render("(none)"))
		return
	}
	st := r.st
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(st.border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return st.header
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	fmt.Fprintln(r.w, t.Render())
}

func (r *renderer) line(format string, args ...any) {
	if r.structured() {
		return
	}
	fmt.Fprintf(r.w, format+"\n", args...)
}

func (r *renderer) success(msg string) {
	r.line("%s", r.st.accent.Render(msg))
}

func (r *renderer) note(msg string) {
	r.line("%s", r.st.muted.Render(msg))
}

func money(v float64) string {
	return "$" + strconv.FormatFloat(v, 'f', 2, 64)
}
