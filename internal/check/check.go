// Package check resolves the internal links of a site configuration against
// the Markdown pages in a docs directory.
package check

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Bitlatte/sitenav/internal/model"
)

// Kind classifies a finding.
type Kind string

const (
	// Missing means no Markdown page backs an internal link.
	Missing Kind = "missing"
)

// TitleSource tells where a page title came from.
type TitleSource string

const (
	TitleFrontmatter TitleSource = "frontmatter"
	TitleHeading     TitleSource = "heading"
	TitleFilename    TitleSource = "filename"
)

// Entry is one resolved internal link.
type Entry struct {
	Ref         model.LinkRef
	File        string
	Title       string
	TitleSource TitleSource
}

// Finding is a problem with one link.
type Finding struct {
	Kind   Kind
	Ref    model.LinkRef
	Detail string
}

func (f Finding) String() string {
	return fmt.Sprintf("%s %q -> %s: %s (%s)", f.Ref.Path, f.Ref.Text, f.Ref.Link, f.Kind, f.Detail)
}

// Report lists resolved pages and findings in declaration order.
type Report struct {
	Entries  []Entry
	Findings []Finding
	External int
}

// OK reports whether every internal link resolved.
func (r *Report) OK() bool {
	return len(r.Findings) == 0
}

type pageMeta struct {
	Title string `yaml:"title" toml:"title" json:"title"`
}

// Run checks every internal link of s against docsDir.
func Run(s *model.Site, docsDir string) (*Report, error) {
	info, err := os.Stat(docsDir)
	if err != nil {
		return nil, fmt.Errorf("docs directory '%s' not found: %w", docsDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("docs directory '%s' is not a directory", docsDir)
	}

	md := goldmark.New()
	report := &Report{}
	titles := make(map[string]Entry)

	for _, ref := range s.Links() {
		if !model.IsInternal(ref.Link) {
			report.External++
			continue
		}
		candidates := Candidates(docsDir, ref.Link)
		file := ""
		for _, c := range candidates {
			if fi, err := os.Stat(c); err == nil && !fi.IsDir() {
				file = c
				break
			}
		}
		if file == "" {
			report.Findings = append(report.Findings, Finding{
				Kind:   Missing,
				Ref:    ref,
				Detail: "tried " + strings.Join(candidates, ", "),
			})
			continue
		}

		entry, ok := titles[file]
		if !ok {
			entry.File = file
			entry.Title, entry.TitleSource, err = pageTitle(md, file)
			if err != nil {
				return nil, err
			}
			titles[file] = entry
		}
		entry.Ref = ref
		report.Entries = append(report.Entries, entry)
	}
	return report, nil
}

// Candidates lists the files that may back link, most specific first.
func Candidates(docsDir, link string) []string {
	if i := strings.IndexAny(link, "?#"); i >= 0 {
		link = link[:i]
	}
	clean := path.Clean("/" + link)
	if strings.HasSuffix(link, "/") || clean == "/" {
		return []string{filepath.Join(docsDir, filepath.FromSlash(clean), "index.md")}
	}
	clean = strings.TrimSuffix(clean, ".html")
	clean = strings.TrimSuffix(clean, ".md")
	return []string{
		filepath.Join(docsDir, filepath.FromSlash(clean)+".md"),
		filepath.Join(docsDir, filepath.FromSlash(clean), "index.md"),
	}
}

func pageTitle(md goldmark.Markdown, file string) (string, TitleSource, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return "", "", fmt.Errorf("failed to read page '%s': %w", file, err)
	}

	var meta pageMeta
	body, err := frontmatter.Parse(bytes.NewReader(data), &meta)
	if err != nil {
		// unreadable front matter: treat the whole file as Markdown
		body = data
	} else if t := strings.TrimSpace(meta.Title); t != "" {
		return t, TitleFrontmatter, nil
	}

	if t := firstHeading(md, body); t != "" {
		return t, TitleHeading, nil
	}

	base := filepath.Base(file)
	if base == "index.md" {
		base = filepath.Base(filepath.Dir(file))
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.NewReplacer("-", " ", "_", " ").Replace(base)
	return cases.Title(language.English).String(base), TitleFilename, nil
}

func firstHeading(md goldmark.Markdown, source []byte) string {
	doc := md.Parser().Parse(text.NewReader(source))
	var title string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		title = strings.TrimSpace(inlineText(h, source))
		if title == "" {
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkStop, nil
	})
	return title
}

func inlineText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}
