package service

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"pdf-smart-tools/internal/analyzer"
	"pdf-smart-tools/internal/domain"

	"github.com/fumiama/go-docx"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/net/html"
)

// maxPageChars is the size of the pseudo-pages built for formats without
// real pagination.
const maxPageChars = 2600

// extractPlainText paginates a text file on paragraph boundaries.
func extractPlainText(b []byte) [][]string {
	s := string(bytes.ToValidUTF8(b, []byte{}))
	return pagesFromParagraphs(splitParagraphs(normalizeText(s)))
}

// extractMarkdown renders every block of a Markdown document as a paragraph.
// Markup is dropped; soft line breaks are kept as line breaks.
func extractMarkdown(b []byte) [][]string {
	src := bytes.ToValidUTF8(b, []byte{})
	doc := goldmark.New().Parser().Parse(text.NewReader(src))

	var paragraphs []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindHeading, ast.KindParagraph, ast.KindTextBlock:
			if t := strings.TrimSpace(inlineText(n, src)); t != "" {
				paragraphs = append(paragraphs, t)
			}
			return ast.WalkSkipChildren, nil
		case ast.KindCodeBlock, ast.KindFencedCodeBlock:
			if t := strings.TrimSpace(blockLines(n, src)); t != "" {
				paragraphs = append(paragraphs, t)
			}
			return ast.WalkSkipChildren, nil
		case ast.KindHTMLBlock:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return pagesFromParagraphs(paragraphs)
}

func inlineText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte('\n')
			}
		case *ast.String:
			buf.Write(t.Value)
		case *ast.AutoLink:
			buf.Write(t.Label(src))
		default:
			buf.WriteString(inlineText(c, src))
		}
	}
	return buf.String()
}

func blockLines(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(src))
	}
	return buf.String()
}

// extractHTML returns the visible text of an HTML page and its <title>.
func extractHTML(b []byte) ([][]string, domain.DocumentMetadata) {
	doc, err := html.Parse(bytes.NewReader(b))
	if err != nil || doc == nil {
		return pagesFromParagraphs(nil), domain.DocumentMetadata{}
	}

	meta := domain.DocumentMetadata{Title: htmlTitle(doc)}
	return pagesFromParagraphs(splitParagraphs(normalizeText(htmlNodeText(doc)))), meta
}

// extractDOCX reads paragraph text from a Word document.
func extractDOCX(b []byte) ([][]string, error) {
	doc, err := docx.Parse(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	var paragraphs []string
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		if t := docxParagraphText(para); t != "" {
			paragraphs = append(paragraphs, t)
		}
	}

	return pagesFromParagraphs(paragraphs), nil
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}

// splitParagraphs splits normalized text on blank lines. Line breaks inside
// a paragraph are kept.
func splitParagraphs(s string) []string {
	var paragraphs []string
	for _, para := range strings.Split(s, "\n\n") {
		if para = strings.TrimSpace(para); para != "" {
			paragraphs = append(paragraphs, para)
		}
	}
	return paragraphs
}

// pagesFromParagraphs groups paragraphs into pseudo-pages and splits each page
// into lines. It always returns at least one page.
func pagesFromParagraphs(paragraphs []string) [][]string {
	pageTexts := paginateParagraphs(paragraphs, maxPageChars)
	if len(pageTexts) == 0 {
		return [][]string{{}}
	}

	pages := make([][]string, 0, len(pageTexts))
	for _, pageText := range pageTexts {
		pages = append(pages, analyzer.SplitLines(pageText))
	}
	return pages
}

func paginateParagraphs(paragraphs []string, maxChars int) []string {
	var pages []string
	var sb strings.Builder

	flush := func() {
		page := strings.TrimSpace(sb.String())
		pages = append(pages, page)
		sb.Reset()
	}

	for _, para := range paragraphs {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		// If a single paragraph is longer than a page, still put it on its own page.
		if sb.Len() == 0 && len(para) > maxChars {
			pages = append(pages, para)
			continue
		}

		// If adding this paragraph would overflow, start a new page.
		if sb.Len() > 0 && sb.Len()+2+len(para) > maxChars {
			flush()
		}
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(para)
	}

	if sb.Len() > 0 {
		flush()
	}

	return pages
}

// --- EPUB extraction ---

// extractEPUB reads the spine of an EPUB in order. Every chapter starts on a
// new pseudo-page.
func extractEPUB(epubBytes []byte) ([][]string, domain.DocumentMetadata, error) {
	zr, err := zip.NewReader(bytes.NewReader(epubBytes), int64(len(epubBytes)))
	if err != nil {
		return nil, domain.DocumentMetadata{}, fmt.Errorf("failed to open epub: %w", err)
	}

	containerBytes, err := readZipFile(zr, "META-INF/container.xml")
	if err != nil {
		return nil, domain.DocumentMetadata{}, fmt.Errorf("invalid epub (missing container.xml): %w", err)
	}

	opfPath, err := findOPFPath(containerBytes)
	if err != nil || strings.TrimSpace(opfPath) == "" {
		return nil, domain.DocumentMetadata{}, fmt.Errorf("invalid epub (missing package path)")
	}

	opfBytes, err := readZipFile(zr, opfPath)
	if err != nil {
		return nil, domain.DocumentMetadata{}, fmt.Errorf("invalid epub (missing package file): %w", err)
	}

	title, author, orderedHrefs := parseOPF(opfBytes)
	meta := domain.DocumentMetadata{
		Title:  strings.TrimSpace(title),
		Author: strings.TrimSpace(author),
	}

	// Resolve spine hrefs relative to OPF directory.
	opfDir := path.Dir(opfPath)
	if opfDir == "." {
		opfDir = ""
	}

	var pages [][]string
	for _, href := range orderedHrefs {
		href = strings.TrimSpace(href)
		if href == "" {
			continue
		}
		unescaped, _ := url.PathUnescape(href)
		if unescaped != "" {
			href = unescaped
		}
		full := path.Clean(path.Join(opfDir, href))
		b, err := readZipFile(zr, full)
		if err != nil {
			// Best-effort: skip missing items.
			continue
		}
		paragraphs := splitParagraphs(normalizeText(htmlToText(b)))
		if len(paragraphs) == 0 {
			continue
		}
		pages = append(pages, pagesFromParagraphs(paragraphs)...)
	}

	if len(pages) == 0 {
		pages = [][]string{{}}
	}
	return pages, meta, nil
}

func readZipFile(zr *zip.Reader, name string) ([]byte, error) {
	// Try exact match first.
	for _, f := range zr.File {
		if f.Name == name {
			return readZipEntry(f)
		}
	}
	// Then case-insensitive match.
	lower := strings.ToLower(name)
	for _, f := range zr.File {
		if strings.ToLower(f.Name) == lower {
			return readZipEntry(f)
		}
	}
	return nil, fmt.Errorf("file not found: %s", name)
}

func readZipEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

func findOPFPath(containerXML []byte) (string, error) {
	// container.xml is usually:
	// <container ...><rootfiles><rootfile full-path="OEBPS/content.opf" .../></rootfiles></container>
	type rootfile struct {
		FullPath string `xml:"full-path,attr"`
	}
	type rootfiles struct {
		Rootfiles []rootfile `xml:"rootfile"`
	}
	type container struct {
		Rootfiles rootfiles `xml:"rootfiles"`
	}

	var c container
	if err := xml.Unmarshal(containerXML, &c); err != nil {
		return "", err
	}
	for _, rf := range c.Rootfiles.Rootfiles {
		if strings.TrimSpace(rf.FullPath) != "" {
			return strings.TrimSpace(rf.FullPath), nil
		}
	}
	return "", fmt.Errorf("rootfile not found")
}

func parseOPF(opf []byte) (title string, author string, spineHrefs []string) {
	// Namespace-agnostic matching using Name.Local.
	manifest := map[string]string{}
	spineIDs := make([]string, 0, 64)

	dec := xml.NewDecoder(bytes.NewReader(opf))
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch strings.ToLower(se.Name.Local) {
		case "title":
			if title == "" {
				title = strings.TrimSpace(readElementText(dec))
			}
		case "creator":
			if author == "" {
				author = strings.TrimSpace(readElementText(dec))
			}
		case "item":
			var id, href string
			for _, a := range se.Attr {
				switch strings.ToLower(a.Name.Local) {
				case "id":
					id = a.Value
				case "href":
					href = a.Value
				}
			}
			if id != "" && href != "" {
				manifest[id] = href
			}
		case "itemref":
			for _, a := range se.Attr {
				if strings.ToLower(a.Name.Local) == "idref" && a.Value != "" {
					spineIDs = append(spineIDs, a.Value)
					break
				}
			}
		}
	}

	spineHrefs = make([]string, 0, len(spineIDs))
	for _, id := range spineIDs {
		if href, ok := manifest[id]; ok {
			spineHrefs = append(spineHrefs, href)
		}
	}
	return title, author, spineHrefs
}

func readElementText(dec *xml.Decoder) string {
	var out strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.CharData:
			out.Write([]byte(t))
		case xml.EndElement:
			return out.String()
		}
	}
	return out.String()
}

// --- HTML ---

var htmlBlockTags = map[string]bool{
	"p": true, "div": true, "section": true, "article": true, "main": true,
	"header": true, "footer": true, "aside": true, "pre": true, "table": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"li": true, "ul": true, "ol": true, "blockquote": true, "tr": true,
	"dt": true, "dd": true,
}

var htmlSkipTags = map[string]bool{
	"script": true, "style": true, "head": true, "title": true, "nav": true,
	"noscript": true, "template": true,
}

func htmlToText(b []byte) string {
	doc, err := html.Parse(bytes.NewReader(b))
	if err != nil || doc == nil {
		return ""
	}
	return htmlNodeText(doc)
}

func htmlNodeText(doc *html.Node) string {
	var sb strings.Builder
	var last byte

	write := func(s string) {
		if s == "" {
			return
		}
		sb.WriteString(s)
		last = s[len(s)-1]
	}

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n == nil {
			return
		}
		if n.Type == html.ElementNode {
			tag := strings.ToLower(n.Data)
			if htmlSkipTags[tag] {
				return
			}
			if tag == "br" {
				write("\n")
			}
			if htmlBlockTags[tag] {
				write("\n\n")
			}
		}
		if n.Type == html.TextNode {
			t := strings.TrimSpace(n.Data)
			if t != "" {
				if sb.Len() > 0 && last != '\n' && last != ' ' {
					write(" ")
				}
				write(t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && htmlBlockTags[strings.ToLower(n.Data)] {
			write("\n\n")
		}
	}
	walk(doc)

	return sb.String()
}

func htmlTitle(doc *html.Node) string {
	var title string
	var find func(n *html.Node) bool
	find = func(n *html.Node) bool {
		if n.Type == html.ElementNode && strings.EqualFold(n.Data, "title") {
			var sb strings.Builder
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.TextNode {
					sb.WriteString(c.Data)
				}
			}
			title = strings.Join(strings.Fields(sb.String()), " ")
			return true
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if find(c) {
				return true
			}
		}
		return false
	}
	find(doc)
	return title
}

func normalizeText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	// Replace non-breaking spaces.
	s = strings.ReplaceAll(s, "\u00a0", " ")

	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := 0
	for _, line := range lines {
		t := strings.TrimSpace(line)
		if t == "" {
			blank++
			if blank <= 2 {
				out = append(out, "")
			}
			continue
		}
		blank = 0
		out = append(out, t)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
