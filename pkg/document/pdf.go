package document

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/ledongthuc/pdf"

	"learngame/pkg/utils"
)

const (
	// MaxTextRunes caps the text kept from a document.
	MaxTextRunes = 10000
	// MinTextRunes is the shortest extracted text treated as readable.
	MinTextRunes = 10
)

var ErrNoText = errors.New("document has no readable text layer")

// Extractor turns a stored document into plain text.
type Extractor interface {
	ExtractText(path string) (string, error)
}

// ExtractText reads the pdf at path with the default limits.
func ExtractText(path string) (string, error) {
	return PDFExtractor{}.ExtractText(path)
}

// PDFExtractor reads the embedded text layer of a PDF. Scanned pages without
// a text layer contribute nothing.
type PDFExtractor struct {
	// MaxRunes overrides MaxTextRunes when positive.
	MaxRunes int
}

// ExtractText concatenates the text of every page, one page per line, and
// truncates the result. A document with less than MinTextRunes of text
// returns ErrNoText.
func (e PDFExtractor) ExtractText(path string) (text string, err error) {
	// the pdf reader panics on malformed object tables
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%w: reading %s: %v", ErrNoText, path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	limit := MaxTextRunes
	if e.MaxRunes > 0 {
		limit = e.MaxRunes
	}

	fonts := make(map[string]*pdf.Font)
	var b strings.Builder
	pages := r.NumPage()
	for i := 1; i <= pages; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := p.Font(name)
				fonts[name] = &font
			}
		}

		page, err := p.GetPlainText(fonts)
		if err != nil {
			log.Warn("skipping unreadable pdf page", "path", path, "page", i, "error", err)
			continue
		}
		if page = strings.TrimSpace(page); page != "" {
			b.WriteString(page)
			b.WriteString("\n")
		}
	}

	text = utils.Truncate(strings.TrimSpace(b.String()), limit)
	if len([]rune(text)) < MinTextRunes {
		return "", ErrNoText
	}
	log.Debug("extracted pdf text", "path", path, "pages", pages, "runes", len([]rune(text)))
	return text, nil
}
