package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
)

// Markdown renders the document as a markdown source with horizontal rules
// as page breaks. Used as the input for the HTML rendition.
func (d *Document) Markdown() string {
	var builder strings.Builder
	for i, page := range d.Pages {
		if i > 0 {
			builder.WriteString("\n---\n\n")
		}
		for _, line := range page {
			builder.WriteString(line)
			builder.WriteString("\n\n")
		}
	}
	return builder.String()
}

// HTML converts the document into a standalone HTML page via goldmark.
func (d *Document) HTML() ([]byte, error) {
	var body bytes.Buffer
	if err := goldmark.Convert([]byte(d.Markdown()), &body); err != nil {
		return nil, fmt.Errorf("render document html: %w", err)
	}

	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>")
	page.WriteString(d.Title)
	page.WriteString("</title>\n</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}
