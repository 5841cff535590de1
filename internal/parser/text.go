package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/docsight/internal/document"
)

// TextParser handles plain text files. Plain text has no pages, so each
// blank-line-delimited paragraph becomes a page-equivalent block.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var paragraphs []string
	var current strings.Builder

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			if current.Len() > 0 {
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			}
		} else {
			if current.Len() > 0 {
				current.WriteString("\n")
			}
			current.WriteString(line)
		}
	}
	if current.Len() > 0 {
		paragraphs = append(paragraphs, current.String())
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	doc := &document.Document{}
	for i, para := range paragraphs {
		doc.Pages = append(doc.Pages, document.Page{
			Number: i + 1,
			Text:   para,
		})
	}

	return doc, nil
}
