// Package reports renders completed scans as PDF documents.
package reports

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/jung-kurt/gofpdf/v2"

	"github.com/trailsight/trailsight/src/evidence"
	"github.com/trailsight/trailsight/src/risk"
)

// ReportData is everything one rendered report needs.
type ReportData struct {
	ScanID      string
	Username    string
	GeneratedAt time.Time
	Bundle      *evidence.Bundle
	Verdict     risk.Verdict
}

// Generator writes PDF reports into a target directory.
type Generator struct {
	dir string
}

func NewGenerator(dir string) *Generator {
	return &Generator{dir: dir}
}

// Generate renders the report and returns the written file path.
func (g *Generator) Generate(data ReportData) (string, error) {
	if err := os.MkdirAll(g.dir, 0o755); err != nil {
		return "", fmt.Errorf("reports: mkdir %s: %w", g.dir, err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 20)
	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Arial", "B", 10)
		pdf.SetTextColor(100, 100, 100)
		g.cellFormat(pdf, 0, 8, "Trailsight Exposure Report", "", 1, "R", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		g.cellFormat(pdf, 0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	})
	pdf.AddPage()

	g.writeOverview(pdf, data)
	g.writeVerdict(pdf, data.Verdict)
	g.writePlatforms(pdf, data.Bundle)
	g.writeMedia(pdf, data.Bundle)
	g.writeRecommendations(pdf, data.Verdict)

	name := fmt.Sprintf("trailsight-%s.pdf", data.ScanID)
	path := filepath.Join(g.dir, name)
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("reports: write %s: %w", path, err)
	}
	return path, nil
}

func (g *Generator) writeOverview(pdf *gofpdf.Fpdf, data ReportData) {
	pdf.SetFont("Arial", "B", 18)
	g.cellFormat(pdf, 0, 12, "Digital Exposure Assessment", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	g.cellFormat(pdf, 0, 6, fmt.Sprintf("Scan ID: %s", data.ScanID), "", 1, "L", false, 0, "")
	if data.Username != "" {
		g.cellFormat(pdf, 0, 6, fmt.Sprintf("Username: %s", data.Username), "", 1, "L", false, 0, "")
	}
	g.cellFormat(pdf, 0, 6,
		fmt.Sprintf("Generated: %s", data.GeneratedAt.UTC().Format("2006-01-02 15:04 UTC")),
		"", 1, "L", false, 0, "")
	pdf.Ln(4)
}

func (g *Generator) writeVerdict(pdf *gofpdf.Fpdf, v risk.Verdict) {
	r, gc, b := levelColor(v.Level)
	pdf.SetFillColor(r, gc, b)
	pdf.SetFont("Arial", "B", 14)
	g.cellFormat(pdf, 0, 10, fmt.Sprintf("Risk Level: %s (score %d/100)", v.Level, v.Score),
		"1", 1, "C", true, 0, "")
	pdf.Ln(2)

	if len(v.RiskBreakdown) > 0 {
		pdf.SetFont("Arial", "B", 11)
		g.cellFormat(pdf, 0, 8, "Risk Composition", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		for _, cat := range sortedKeys(v.RiskBreakdown) {
			label := strings.ReplaceAll(cat, "_", " ")
			g.cellFormat(pdf, 0, 6, fmt.Sprintf("  %s: %d%%", label, v.RiskBreakdown[cat]),
				"", 1, "L", false, 0, "")
		}
		pdf.Ln(2)
	}

	pdf.SetFont("Arial", "B", 11)
	g.cellFormat(pdf, 0, 8, "Findings", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, reason := range v.Reasons {
		g.multiCell(pdf, 0, 5, "- "+reason, "", "L", false)
	}
	pdf.Ln(2)
}

func (g *Generator) writePlatforms(pdf *gofpdf.Fpdf, b *evidence.Bundle) {
	if b == nil || (len(b.PlatformsFound) == 0 && len(b.InconclusivePlatforms) == 0) {
		return
	}
	pdf.SetFont("Arial", "B", 11)
	g.cellFormat(pdf, 0, 8, "Platform Presence", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)

	names := make([]string, 0, len(b.PlatformsFound))
	for name := range b.PlatformsFound {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		rec := b.PlatformsFound[name]
		g.cellFormat(pdf, 0, 6,
			fmt.Sprintf("  %s  [%s, %s richness]", name, rec.Visibility, rec.Richness),
			"", 1, "L", false, 0, "")
		if rec.URL != "" {
			pdf.SetFont("Arial", "U", 9)
			pdf.SetTextColor(0, 0, 200)
			pdf.WriteLinkString(5, "      "+rec.URL, rec.URL)
			pdf.Ln(5)
			pdf.SetTextColor(0, 0, 0)
			pdf.SetFont("Arial", "", 10)
		}
	}
	if len(b.InconclusivePlatforms) > 0 {
		pdf.SetFont("Arial", "I", 9)
		g.multiCell(pdf, 0, 5,
			"Inconclusive: "+strings.Join(b.InconclusivePlatforms, ", "), "", "L", false)
		pdf.SetFont("Arial", "", 10)
	}
	pdf.Ln(2)
}

func (g *Generator) writeMedia(pdf *gofpdf.Fpdf, b *evidence.Bundle) {
	if b == nil {
		return
	}
	wroteHeading := false
	heading := func() {
		if wroteHeading {
			return
		}
		pdf.SetFont("Arial", "B", 11)
		g.cellFormat(pdf, 0, 8, "Media and Content Signals", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		wroteHeading = true
	}

	if len(b.ImageMetadata) > 0 {
		heading()
		g.cellFormat(pdf, 0, 6, "  Image metadata:", "", 1, "L", false, 0, "")
		for _, key := range sortedKeys(b.ImageMetadata) {
			g.multiCell(pdf, 0, 5, fmt.Sprintf("    %s: %s", key, b.ImageMetadata[key]), "", "L", false)
		}
	}
	for _, section := range []struct {
		label  string
		report *evidence.MediaReport
	}{
		{"Video", b.VideoRisk},
		{"Audio", b.AudioRisk},
	} {
		if section.report == nil {
			continue
		}
		heading()
		g.cellFormat(pdf, 0, 6,
			fmt.Sprintf("  %s risk contribution: %d", section.label, section.report.Risk),
			"", 1, "L", false, 0, "")
		for _, signal := range section.report.Signals {
			g.multiCell(pdf, 0, 5, "    - "+signal, "", "L", false)
		}
	}
	if b.TextRisk != nil && len(b.TextRisk.Findings) > 0 {
		heading()
		g.cellFormat(pdf, 0, 6,
			fmt.Sprintf("  Text risk contribution: %d", b.TextRisk.Risk), "", 1, "L", false, 0, "")
		for _, finding := range b.TextRisk.Findings {
			g.multiCell(pdf, 0, 5, "    - "+finding, "", "L", false)
		}
	}
	if b.GeoRisk != nil {
		heading()
		g.multiCell(pdf, 0, 5, "  "+b.GeoRisk.Evidence, "", "L", false)
	}
	if wroteHeading {
		pdf.Ln(2)
	}
}

func (g *Generator) writeRecommendations(pdf *gofpdf.Fpdf, v risk.Verdict) {
	if len(v.Explanations) == 0 {
		return
	}
	pdf.SetFont("Arial", "B", 11)
	g.cellFormat(pdf, 0, 8, "Recommendations", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	seen := map[string]bool{}
	for _, ex := range v.Explanations {
		if seen[ex.Mitigation] {
			continue
		}
		seen[ex.Mitigation] = true
		g.multiCell(pdf, 0, 5, "- "+ex.Mitigation, "", "L", false)
	}
}

func levelColor(level risk.Level) (int, int, int) {
	switch level {
	case risk.LevelHigh:
		return 255, 210, 210
	case risk.LevelMedium:
		return 255, 245, 200
	case risk.LevelLow:
		return 215, 245, 215
	default:
		return 235, 235, 235
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// sanitizeTextForPDF converts UTF-8 special characters to ASCII equivalents
// to avoid encoding issues in gofpdf
func sanitizeTextForPDF(text string) string {
	if text == "" {
		return text
	}

	var result strings.Builder
	result.Grow(len(text))

	for _, r := range text {
		switch r {
		case '\u2013':
			result.WriteString("-")
		case '\u2014':
			result.WriteString("--")
		case '\u2018', '\u2019':
			result.WriteString("'")
		case '\u201C', '\u201D':
			result.WriteString("\"")
		case '\u2026':
			result.WriteString("...")
		case '\u00A0':
			result.WriteString(" ")
		case '\u200B', '\u200C', '\u200D', '\uFEFF':
			continue
		default:
			if r < 128 || unicode.IsPrint(r) {
				result.WriteRune(r)
			} else if unicode.IsSpace(r) {
				result.WriteString(" ")
			} else {
				result.WriteString("?")
			}
		}
	}

	return result.String()
}

func (g *Generator) cellFormat(pdf *gofpdf.Fpdf, w, h float64, txt, borderStr string, ln int, alignStr string, fill bool, link int, linkStr string) {
	pdf.CellFormat(w, h, sanitizeTextForPDF(txt), borderStr, ln, alignStr, fill, link, linkStr)
}

func (g *Generator) multiCell(pdf *gofpdf.Fpdf, w, h float64, txt, borderStr, alignStr string, fill bool) {
	pdf.MultiCell(w, h, sanitizeTextForPDF(txt), borderStr, alignStr, fill)
}
