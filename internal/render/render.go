package render

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rickgao/metawin-stats/internal/report"
)

//go:embed report.tmpl
var templateFS embed.FS

// reportFile is the fixed output name; every run replaces the previous
// report.
const reportFile = "latest_report.html"

// Renderer writes reports under a single output directory.
type Renderer struct {
	outputDir string
	logger    *slog.Logger
}

// New creates a Renderer writing into outputDir.
func New(outputDir string, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{outputDir: outputDir, logger: logger}
}

// templateData is what the report template sees.
type templateData struct {
	*report.Report
	RunID       string
	GeneratedAt time.Time
}

// Render writes rep to the output directory and returns the file path.
func (r *Renderer) Render(rep *report.Report, runID string, generatedAt time.Time) (string, error) {
	tmpl, err := template.New("report.tmpl").Funcs(helperFuncs()).ParseFS(templateFS, "report.tmpl")
	if err != nil {
		return "", fmt.Errorf("parse report template: %w", err)
	}

	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}

	path := filepath.Join(r.outputDir, reportFile)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()

	data := templateData{Report: rep, RunID: runID, GeneratedAt: generatedAt}
	if err := tmpl.Execute(f, data); err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}

	r.logger.Info("report generated", "path", path)
	return path, nil
}

func helperFuncs() template.FuncMap {
	return template.FuncMap{
		"currency":   formatCurrency,
		"number":     formatNumber,
		"percent":    formatPercent,
		"multiplier": formatMultiplier,
		"monthYear":  formatMonthYear,
	}
}

// formatCurrency renders a USD amount in the en-US style, sign first.
func formatCurrency(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	whole := int64(v)
	cents := int64((v-float64(whole))*100 + 0.5)
	if cents == 100 {
		whole++
		cents = 0
	}
	return fmt.Sprintf("%s$%s.%02d", sign, groupDigits(whole), cents)
}

func formatNumber(n int) string {
	if n < 0 {
		return "-" + groupDigits(int64(-n))
	}
	return groupDigits(int64(n))
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v)
}

func formatMultiplier(v float64) string {
	return fmt.Sprintf("%.0fx", v)
}

// formatMonthYear turns a YYYY-MM key into "January 2006".
func formatMonthYear(month string) string {
	t, err := time.Parse("2006-01", month)
	if err != nil {
		return month
	}
	return t.Format("January 2006")
}

// groupDigits inserts thousands separators into a non-negative integer.
func groupDigits(n int64) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	return s + "," + strings.Join(parts, ",")
}
