// Package view provides terminal output formatting for scribe commands.
package view

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Format represents an output format.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatPlain Format = "plain"
)

// Renderer renders command output in a specific format.
type Renderer struct {
	format Format
	writer io.Writer
}

// NewRenderer creates a renderer for the specified format.
func NewRenderer(format Format, noColor bool) *Renderer {
	if noColor {
		color.NoColor = true
	}
	return &Renderer{
		format: format,
		writer: os.Stdout,
	}
}

// SetWriter sets the output writer.
func (r *Renderer) SetWriter(w io.Writer) {
	r.writer = w
}

// RenderTable renders rows under headers. Table output pads columns to
// align; plain output is tab-separated without headers; JSON output is an
// array of objects keyed by lowercased header.
func (r *Renderer) RenderTable(headers []string, rows [][]string) {
	switch r.format {
	case FormatJSON:
		r.renderTableAsJSON(headers, rows)
	case FormatPlain:
		r.renderTableAsPlain(rows)
	default:
		r.renderTableAligned(headers, rows)
	}
}

func (r *Renderer) renderTableAligned(headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, val := range row {
			if i < len(widths) && len(val) > widths[i] {
				widths[i] = len(val)
			}
		}
	}

	writeRow := func(cells []string) {
		for i, val := range cells {
			if i > 0 {
				fmt.Fprint(r.writer, "  ")
			}
			if i < len(cells)-1 {
				fmt.Fprintf(r.writer, "%-*s", widths[i], val)
			} else {
				fmt.Fprint(r.writer, val)
			}
		}
		fmt.Fprintln(r.writer)
	}

	writeRow(headers)
	for _, row := range rows {
		writeRow(row)
	}
}

func (r *Renderer) renderTableAsJSON(headers []string, rows [][]string) {
	var result []map[string]string
	for _, row := range rows {
		item := make(map[string]string)
		for i, header := range headers {
			if i < len(row) {
				item[strings.ToLower(header)] = row[i]
			}
		}
		result = append(result, item)
	}

	data, _ := json.MarshalIndent(result, "", "  ")
	fmt.Fprintln(r.writer, string(data))
}

func (r *Renderer) renderTableAsPlain(rows [][]string) {
	for _, row := range rows {
		fmt.Fprintln(r.writer, strings.Join(row, "\t"))
	}
}

// RenderJSON renders an object as indented JSON.
func (r *Renderer) RenderJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(r.writer, string(data))
	return nil
}

// RenderText renders a plain text line.
func (r *Renderer) RenderText(text string) {
	fmt.Fprintln(r.writer, text)
}

// RenderKeyValue renders a key-value pair with a bold key.
func (r *Renderer) RenderKeyValue(key, value string) {
	if r.format == FormatJSON {
		fmt.Fprintf(r.writer, `{"%s": "%s"}`+"\n", key, value)
		return
	}
	bold := color.New(color.Bold)
	bold.Fprintf(r.writer, "%s: ", key)
	fmt.Fprintln(r.writer, value)
}

// Success prints a success message.
func (r *Renderer) Success(msg string) {
	green := color.New(color.FgGreen)
	green.Fprintln(r.writer, "✓ "+msg)
}

// Error prints an error message.
func (r *Renderer) Error(msg string) {
	red := color.New(color.FgRed)
	red.Fprintln(r.writer, "✗ "+msg)
}

// Diagnostic prints a compiler diagnostic. Messages carrying a
// file:line:col prefix get the location highlighted and the rest printed
// plainly, so errors stay grep-able with color disabled.
func (r *Renderer) Diagnostic(msg string) {
	loc, rest, ok := splitLocation(msg)
	if !ok {
		r.Error(msg)
		return
	}
	bold := color.New(color.Bold)
	red := color.New(color.FgRed)
	bold.Fprintf(r.writer, "%s: ", loc)
	red.Fprint(r.writer, "error: ")
	fmt.Fprintln(r.writer, rest)
}

// splitLocation splits "file:line:col: message" into its location and
// message parts.
func splitLocation(msg string) (loc, rest string, ok bool) {
	parts := strings.SplitN(msg, ": ", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	seg := strings.Split(parts[0], ":")
	if len(seg) < 3 {
		return "", "", false
	}
	for _, d := range seg[len(seg)-2:] {
		for _, c := range d {
			if c < '0' || c > '9' {
				return "", "", false
			}
		}
	}
	return parts[0], parts[1], true
}
