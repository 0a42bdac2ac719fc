package report

import (
	"bytes"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

// htmlPolicy é a última barreira do HTML servido: só esquemas http(s)/mailto e tags de conteúdo
var htmlPolicy = bluemonday.UGCPolicy().AddTargetBlankToFullyQualifiedLinks(true)

// RenderHTML converte o relatório markdown em HTML para a página de resultado
func RenderHTML(md string) string {
	if md == "" {
		return ""
	}

	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	doc := p.Parse([]byte(md))

	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.HrefTargetBlank | html.SkipHTML | html.Safelink | html.NoopenerLinks,
	})
	return htmlPolicy.Sanitize(string(markdown.Render(doc, renderer)))
}

// PlainText remove a formatação markdown, usado no texto de compartilhamento e na CLI
func PlainText(md string) string {
	if md == "" {
		return ""
	}

	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := p.Parse([]byte(md))

	var buf bytes.Buffer
	extractText(doc, &buf)

	result := strings.TrimSpace(buf.String())
	for strings.Contains(result, "\n\n\n") {
		result = strings.ReplaceAll(result, "\n\n\n", "\n\n")
	}
	return result
}

func extractText(node ast.Node, buf *bytes.Buffer) {
	switch n := node.(type) {
	case *ast.Text:
		buf.Write(n.Literal)
		return
	case *ast.Code:
		buf.Write(n.Literal)
		return
	case *ast.CodeBlock:
		buf.Write(n.Literal)
		return
	case *ast.Hardbreak:
		buf.WriteString("\n")
		return
	case *ast.Softbreak:
		buf.WriteString(" ")
		return
	case *ast.HorizontalRule:
		buf.WriteString("\n")
		return
	case *ast.HTMLBlock, *ast.HTMLSpan:
		return
	}

	container := node.AsContainer()
	if container == nil {
		return
	}

	switch node.(type) {
	case *ast.ListItem:
		buf.WriteString("- ")
	}

	for i, child := range container.Children {
		if _, ok := node.(*ast.TableRow); ok && i > 0 {
			buf.WriteString(" | ")
		}
		extractText(child, buf)
	}

	switch node.(type) {
	case *ast.Paragraph, *ast.Heading:
		buf.WriteString("\n\n")
	case *ast.List, *ast.BlockQuote, *ast.Table:
		buf.WriteString("\n")
	case *ast.TableRow:
		buf.WriteString("\n")
	}
}
