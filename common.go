package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"
)

var (
	_valueStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	_labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func eprintln(a ...interface{}) {
	fmt.Fprintln(os.Stderr, a...)
}

func fprintf(w io.Writer, format string, a ...interface{}) {
	fmt.Fprintf(w, format, a...)
}

func fprintln(w io.Writer, a ...interface{}) {
	fmt.Fprintln(w, a...)
}

func _isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// _Styler decorates text output, but only when it goes to a terminal.
type _Styler struct {
	enabled bool
}

func _newStyler(w io.Writer) _Styler {
	return _Styler{enabled: _isTerminal(w)}
}

func (s _Styler) value(v interface{}) string {
	text := fmt.Sprint(v)
	if s.enabled {
		return _valueStyle.Render(text)
	}
	return text
}

func (s _Styler) label(v interface{}) string {
	text := fmt.Sprint(v)
	if s.enabled {
		return _labelStyle.Render(text)
	}
	return text
}

// _encode writes v in one of the structured formats.
func _encode(w io.Writer, format string, v interface{}) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("unsupported format %q", format)
}
