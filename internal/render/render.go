// Package render writes the cross-linked HTML report of a collection.
//
// The document is emitted in one forward pass:
//
//	header
//	one "Encountered <dimension>" ranked list per dimension
//	one anchored block per dimension value, listing the errors that mention it
//	one anchored block per error, with its call stack
//
// Every link points at an anchor emitted exactly once: dimension anchors are "<Tag>_<id>",
// error anchors are "Error_<unique>".
package render

import (
	"fmt"
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/farcloser/grindlog/internal/index"
	"github.com/farcloser/grindlog/internal/rank"
	"github.com/farcloser/grindlog/internal/types"
)

// DefaultTitle is used when Options.Title is empty.
const DefaultTitle = "Valgrind_report"

// Options tunes the rendered document.
type Options struct {
	Title string
	Order rank.Order
}

// stackColumns are the linked columns of a call-stack table, in display order.
//
//nolint:gochecknoglobals // column layout, effectively const
var stackColumns = []index.Dimension{index.Object, index.Function, index.Directory, index.File}

type section struct {
	idx    *index.Index
	ranked []rank.Entry
}

type document struct {
	out      io.Writer
	err      error
	coll     *types.Collection
	byTag    map[string]*index.Index
	sections []section
}

// Render writes the report for coll to out. The first write error aborts the rest of the document and is returned.
func Render(out io.Writer, coll *types.Collection, opts Options) error {
	title := opts.Title
	if title == "" {
		title = DefaultTitle
	}

	doc := &document{
		out:   out,
		coll:  coll,
		byTag: map[string]*index.Index{},
	}

	doc.header(title)

	for _, dim := range index.Dimensions() {
		idx := index.Build(coll, dim)
		sec := section{idx: idx, ranked: rank.Table(idx.Counts(), opts.Order)}

		doc.byTag[dim.Tag] = idx
		doc.sections = append(doc.sections, sec)
		doc.overview(sec)
	}

	for _, sec := range doc.sections {
		doc.details(sec)
	}

	doc.println("<H2>Errors</H2>")

	for err := range coll.Errors() {
		doc.errorBlock(err)
	}

	doc.println("</body>")
	doc.println("</html>")

	return doc.err
}

func (doc *document) printf(format string, args ...any) {
	if doc.err != nil {
		return
	}

	_, doc.err = fmt.Fprintf(doc.out, format, args...)
}

func (doc *document) println(line string) {
	doc.printf("%s\n", line)
}

func (doc *document) header(title string) {
	title = html.EscapeString(title)

	doc.println("<!DOCTYPE html>")
	doc.println("<html>")
	doc.println("<head>")
	doc.println(`<meta http-equiv="Content-Type" content="text/html; charset=utf-8">`)
	doc.printf("<title>%s</title>\n", title)
	doc.println("</head>")
	doc.println("<body>")
	doc.printf("<H1>%s</H1>\n", title)
}

func (doc *document) overview(sec section) {
	doc.printf("<H2>Encountered %s</H2>\n", sec.idx.Dimension().Plural)
	doc.println("<ul>")

	for _, entry := range sec.ranked {
		doc.printf("<li>%s : %d</li>\n", valueLink(sec.idx, entry.Value), entry.Count)
	}

	doc.println("</ul>")
}

func (doc *document) details(sec section) {
	dim := sec.idx.Dimension()

	doc.printf("<H2>Errors per %s</H2>\n", dim.Singular)

	for _, entry := range sec.ranked {
		doc.printf("<hr id=\"%s\">\n", sec.idx.Anchor(entry.Value))

		if dim.FrameKeyed() {
			doc.printf("Errors whose call stack mention %s <b>%s</b>\n", dim.Singular, html.EscapeString(entry.Value))
		} else {
			doc.printf("Errors of %s <b>%s</b>\n", dim.Singular, html.EscapeString(entry.Value))
		}

		links := make([]string, 0, entry.Count)

		for err := range doc.coll.Errors() {
			if dim.Mentions(err, entry.Value) {
				links = append(links, errorLink(err))
			}
		}

		doc.println("<ul><li>")
		doc.println(strings.Join(links, ", "))
		doc.println("</li></ul>")
	}
}

func (doc *document) errorBlock(err *types.Error) {
	doc.printf("<hr id=\"%s\">\n", errorAnchor(err))
	doc.printf("Error <b>%d</b>\n", err.Unique())
	doc.println("<ul>")
	doc.printf("<li>Kind : <b>%s</b></li>\n", valueLink(doc.byTag[index.Kind.Tag], err.Kind()))

	if what := err.What(); what != "" {
		doc.printf("<li>What : <b>%s</b></li>\n", html.EscapeString(what))
	}

	if auxWhat := err.AuxWhat(); auxWhat != "" {
		doc.printf("<li>Aux What : <b>%s</b></li>\n", html.EscapeString(auxWhat))
	}

	if extra, ok := err.Extra(); ok {
		doc.printf("<li>What : <b>%s</b></li>\n", html.EscapeString(extra.Text))
		doc.println("<ul>")
		doc.printf("<li>Leaked bytes : <b>%d</b></li>\n", extra.LeakedBytes)
		doc.printf("<li>Leaked blocks : <b>%d</b></li>\n", extra.LeakedBlocks)
		doc.println("</ul>")
	}

	doc.printf("<li>Tid: <b>%d</b></li>\n", err.ThreadID())
	doc.println("<li>Call stack:</li>")
	doc.println("<table border=1>")
	doc.println("<tr>")

	for _, dim := range stackColumns {
		doc.printf("<th>%s</th>\n", dim.Tag)
	}

	doc.println("<th>Line</th>")
	doc.println("</tr>")

	for frame := range err.Frames() {
		doc.frameRow(frame)
	}

	doc.println("</table>")
	doc.println("</ul>")
}

func (doc *document) frameRow(frame types.Frame) {
	doc.println("<tr>")

	for _, dim := range stackColumns {
		value := dim.FrameValue(frame)
		if value == "" {
			doc.println("<td></td>")

			continue
		}

		doc.printf("<td>%s</td>\n", valueLink(doc.byTag[dim.Tag], value))
	}

	if frame.Line == 0 {
		doc.println("<td></td>")
	} else {
		doc.printf("<td>%d</td>\n", frame.Line)
	}

	doc.println("</tr>")
}

func valueLink(idx *index.Index, value string) string {
	return `<a href="#` + idx.Anchor(value) + `">` + html.EscapeString(value) + "</a>"
}

func errorAnchor(err *types.Error) string {
	return "Error_" + strconv.FormatUint(err.Unique(), 10)
}

func errorLink(err *types.Error) string {
	return `<a href="#` + errorAnchor(err) + `">` + strconv.FormatUint(err.Unique(), 10) + "</a>"
}
