// ABOUTME: Local HTML rendering for proposals and insights
// ABOUTME: Converts markdown section content via goldmark into a standalone document

package render

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"
	"strings"

	"github.com/yuin/goldmark"

	"github.com/novaintel/nova-cli/internal/api"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: Georgia, serif; max-width: 46rem; margin: 2rem auto; padding: 0 1rem; line-height: 1.5; }
h1 { border-bottom: 2px solid #333; padding-bottom: 0.3rem; }
h2 { margin-top: 2rem; }
.meta { color: #666; font-size: 0.9rem; }
blockquote { border-left: 3px solid #ccc; margin-left: 0; padding-left: 1rem; color: #444; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
{{if .Subtitle}}<p class="meta">{{.Subtitle}}</p>{{end}}
{{range .Sections}}
<h2>{{.Title}}</h2>
{{.Body}}
{{end}}
</body>
</html>
`))

type page struct {
	Title    string
	Subtitle string
	Sections []section
}

type section struct {
	Title string
	Body  template.HTML
}

// markdown converts markdown text to HTML.
func markdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// Proposal renders a proposal as a standalone HTML document. Sections are
// ordered by their Order field.
func Proposal(p *api.Proposal) ([]byte, error) {
	sections := make([]api.ProposalSection, len(p.Sections))
	copy(sections, p.Sections)
	sort.SliceStable(sections, func(i, j int) bool { return sections[i].Order < sections[j].Order })

	pg := page{Title: p.Title, Subtitle: p.TemplateType + " template"}
	for _, s := range sections {
		body, err := markdown(s.Content)
		if err != nil {
			return nil, fmt.Errorf("rendering section %q: %w", s.Title, err)
		}
		pg.Sections = append(pg.Sections, section{Title: s.Title, Body: body})
	}

	return execute(pg)
}

// Insights renders project insights as a standalone HTML document.
func Insights(ins *api.Insights) ([]byte, error) {
	pg := page{Title: "Insights"}
	if !ins.AnalysisTimestamp.IsZero() {
		pg.Subtitle = "analyzed " + ins.AnalysisTimestamp.Format("2006-01-02") + " by " + ins.AIModelUsed
	}

	summary, err := markdown(ins.Summary)
	if err != nil {
		return nil, err
	}
	pg.Sections = append(pg.Sections, section{Title: "Summary", Body: summary})

	if len(ins.Challenges) > 0 {
		var md strings.Builder
		for _, ch := range ins.Challenges {
			fmt.Fprintf(&md, "### %s\n\n%s\n\n**Impact:** %s\n\n**Category:** %s\n\n", ch.Title, ch.Description, ch.Impact, ch.Category)
		}
		body, err := markdown(md.String())
		if err != nil {
			return nil, err
		}
		pg.Sections = append(pg.Sections, section{Title: "Challenges", Body: body})
	}

	if len(ins.ValuePropositions) > 0 {
		body, err := markdown(bulleted(ins.ValuePropositions))
		if err != nil {
			return nil, err
		}
		pg.Sections = append(pg.Sections, section{Title: "Value Propositions", Body: body})
	}

	if len(ins.DiscoveryQuestions) > 0 {
		var md strings.Builder
		groups := make([]string, 0, len(ins.DiscoveryQuestions))
		for group := range ins.DiscoveryQuestions {
			groups = append(groups, group)
		}
		sort.Strings(groups)
		for _, group := range groups {
			fmt.Fprintf(&md, "### %s\n\n%s\n", group, bulleted(ins.DiscoveryQuestions[group]))
		}
		body, err := markdown(md.String())
		if err != nil {
			return nil, err
		}
		pg.Sections = append(pg.Sections, section{Title: "Discovery Questions", Body: body})
	}

	return execute(pg)
}

func bulleted(items []string) string {
	var md strings.Builder
	for _, item := range items {
		md.WriteString("- " + item + "\n")
	}
	return md.String()
}

func execute(pg page) ([]byte, error) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, pg); err != nil {
		return nil, fmt.Errorf("executing page template: %w", err)
	}
	return buf.Bytes(), nil
}
