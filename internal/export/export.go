// Package export saves the dashboard document as Markdown or PDF.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MessageEmptyDocument is shown instead of exporting an empty dashboard.
const MessageEmptyDocument = "No dashboard content to download."

var (
	ErrEmptyDocument        = errors.New("export: empty document")
	ErrPDFDependencyMissing = errors.New("export: pdf dependency missing")
)

type Format string

const (
	FormatMarkdown Format = "md"
	FormatPDF      Format = "pdf"
)

func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "md", "markdown":
		return FormatMarkdown, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("export: unsupported format %q", raw)
	}
}

type Request struct {
	Markdown string
	UserName string
	Dir      string
	Format   Format
	Now      time.Time
}

type Result struct {
	Path     string
	Filename string
}

// Message is the confirmation shown to the user.
func (r Result) Message() string {
	return "Downloaded as " + r.Filename
}

// PDFPrinter turns an HTML page into PDF bytes.
type PDFPrinter interface {
	PrintPDF(html string) ([]byte, error)
}

type Exporter struct {
	pdf PDFPrinter
}

func New(pdf PDFPrinter) *Exporter {
	if pdf == nil {
		pdf = ChromePrinter{}
	}
	return &Exporter{pdf: pdf}
}

func (e *Exporter) Export(req Request) (Result, error) {
	if strings.TrimSpace(req.Markdown) == "" {
		return Result{}, ErrEmptyDocument
	}
	now := req.Now
	if now.IsZero() {
		now = time.Now()
	}
	filename := Filename(req.UserName, now, req.Format)

	var payload []byte
	switch req.Format {
	case FormatMarkdown:
		payload = []byte(req.Markdown)
	case FormatPDF:
		html, err := RenderHTML(req.Markdown, "Your Personalized Dashboard")
		if err != nil {
			return Result{}, err
		}
		payload, err = e.pdf.PrintPDF(html)
		if err != nil {
			return Result{}, err
		}
	default:
		return Result{}, fmt.Errorf("export: unsupported format %q", req.Format)
	}

	dir := req.Dir
	if strings.TrimSpace(dir) == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return Result{}, fmt.Errorf("write export: %w", err)
	}
	return Result{Path: path, Filename: filename}, nil
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// Filename builds dashboard_<user>_<timestamp>.<ext>.
func Filename(userName string, now time.Time, format Format) string {
	user := whitespaceRun.ReplaceAllString(strings.TrimSpace(userName), "_")
	user = cases.Lower(language.Und).String(user)
	if user == "" {
		user = "anonymous"
	}
	return fmt.Sprintf("dashboard_%s_%s.%s", user, timestamp(now), format)
}

// timestamp renders now like 2026-10-19T12-30-45.
func timestamp(now time.Time) string {
	iso := now.UTC().Format("2006-01-02T15:04:05.000Z07:00")
	iso = strings.NewReplacer(":", "-", ".", "-").Replace(iso)
	return iso[:19]
}

var mdRenderer = goldmark.New(goldmark.WithExtensions(extension.GFM))

// RenderHTML wraps the rendered document in a minimal printable page.
func RenderHTML(md string, title string) (string, error) {
	var body bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &body); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	var page strings.Builder
	page.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\">")
	fmt.Fprintf(&page, "<title>%s</title>", html.EscapeString(title))
	page.WriteString(`<style>body{font-family:Roboto,Helvetica,Arial,sans-serif;font-size:12pt;margin:2em;}h1,h2,h3{margin-top:1.2em;}</style>`)
	page.WriteString("</head><body>\n")
	fmt.Fprintf(&page, "<h1>%s</h1>\n", html.EscapeString(title))
	page.Write(body.Bytes())
	page.WriteString("</body></html>\n")
	return page.String(), nil
}
