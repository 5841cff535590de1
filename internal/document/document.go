package document

// Document is the parsed, analysis-ready form of an uploaded file.
type Document struct {
	DeclaredTitle string         // Title from file metadata (empty if none)
	Pages         []Page         // Per-page plain text, 1-indexed
	Fragments     []TextFragment // Styled runs for typographic structure inference (PDF)
	Headings      []Heading      // Explicit headings for formats that declare them (md/html/docx)
}

// Page is one page (or page-equivalent section) of plain text.
type Page struct {
	Number int    // 1-based
	Text   string
}

// TextFragment is one styled run of text, the unit of heading inference.
type TextFragment struct {
	Text     string
	FontSize float64
	Bold     bool
	Page     int // 1-based
}

// Heading is an explicitly declared heading with its source level (1-6).
type Heading struct {
	Level int
	Text  string
	Page  int
}

// FullText joins all page text, used for whole-document analytics and hashing.
func (d *Document) FullText() string {
	var n int
	for _, p := range d.Pages {
		n += len(p.Text) + 1
	}
	buf := make([]byte, 0, n)
	for i, p := range d.Pages {
		if i > 0 {
			buf = append(buf, '\n')
		}
		buf = append(buf, p.Text...)
	}
	return string(buf)
}
