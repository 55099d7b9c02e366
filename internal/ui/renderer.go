package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"

	"github.com/wahlandcase/attuned.issuekey/internal/hook"
	"github.com/wahlandcase/attuned.issuekey/internal/models"
)

// Renderer prints hook reports in the selected format
type Renderer struct {
	out    io.Writer
	format Format
	styles *lipgloss.Renderer
}

// NewRenderer creates a Renderer writing to out. color only affects FormatText.
func NewRenderer(out io.Writer, format Format, color bool) *Renderer {
	styles := lipgloss.NewRenderer(out)
	if !color {
		styles.SetColorProfile(termenv.Ascii)
	}
	return &Renderer{out: out, format: format, styles: styles}
}

type document struct {
	Hook    string            `json:"hook" yaml:"hook"`
	Outcome string            `json:"outcome" yaml:"outcome"`
	Reason  string            `json:"reason,omitempty" yaml:"reason,omitempty"`
	Details map[string]string `json:"details,omitempty" yaml:"details,omitempty"`
}

func newDocument(r hook.Report) document {
	return document{
		Hook:    r.Hook,
		Outcome: models.Name(r.Outcome),
		Reason:  models.Reason(r.Outcome),
		Details: r.Details,
	}
}

// Report implements hook.Reporter
func (r *Renderer) Report(report hook.Report) error {
	switch r.format {
	case FormatJSON:
		data, err := json.MarshalIndent(newDocument(report), "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		data = append(data, '\n')
		_, err = r.out.Write(data)
		return err

	case FormatYAML:
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)
		if err := enc.Encode(newDocument(report)); err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		return enc.Close()

	default:
		_, err := io.WriteString(r.out, r.renderText(report))
		return err
	}
}

func (r *Renderer) renderText(report hook.Report) string {
	color := OutcomeColor(report.Outcome)
	iconStyle := r.styles.NewStyle().Foreground(color).Bold(true)
	nameStyle := r.styles.NewStyle().Bold(true)
	detailStyle := r.styles.NewStyle().Foreground(ColorDarkGray)

	var b strings.Builder
	b.WriteString(iconStyle.Render(OutcomeIcon(report.Outcome)))
	b.WriteString(" ")
	b.WriteString(nameStyle.Render(report.Hook))
	if reason := models.Reason(report.Outcome); reason != "" {
		b.WriteString(": ")
		b.WriteString(r.styles.NewStyle().Foreground(color).Render(reason))
	}
	b.WriteString("\n")

	keys := make([]string, 0, len(report.Details))
	for k := range report.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(detailStyle.Render(fmt.Sprintf("    %s: %s", k, report.Details[k])))
		b.WriteString("\n")
	}
	return b.String()
}
