package extract

import (
	"bytes"
	"io"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"atspro/internal/errors"
	"atspro/internal/types"
)

// extractPDF reads the document with relaxed validation, scrapes the
// text-showing operators of each page content stream, and records page
// count and image presence as structural hints.
func (x *Extractor) extractPDF(data []byte) (string, *types.StructuralHints, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		return "", nil, errors.NewDocumentError(
			errors.ErrCodeDocumentUnreadable,
			"unable to parse PDF; file might be scanned or corrupted",
			err,
		)
	}
	if err := api.ValidateContext(ctx); err != nil {
		return "", nil, errors.NewDocumentError(
			errors.ErrCodeDocumentUnreadable,
			"unable to validate PDF structure",
			err,
		)
	}

	hints := &types.StructuralHints{PageCount: ctx.PageCount}

	var text strings.Builder
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
		if err != nil {
			return "", nil, errors.NewDocumentError(
				errors.ErrCodeDocumentUnreadable,
				"unable to read PDF page content",
				err,
			).WithContext("page", pageNr)
		}
		if r == nil {
			continue
		}
		content, err := io.ReadAll(r)
		if err != nil {
			return "", nil, errors.NewDocumentError(
				errors.ErrCodeDocumentUnreadable,
				"unable to decode PDF page content",
				err,
			).WithContext("page", pageNr)
		}
		text.WriteString(contentStreamText(content))
		text.WriteByte('\n')

		if len(pdfcpu.ImageObjNrs(ctx, pageNr)) > 0 {
			hints.HasImages = true
		}
	}

	return text.String(), hints, nil
}

// contentStreamText scrapes literal strings out of a decoded PDF
// content stream, inserting line breaks at text-positioning operators.
// This handles simply-encoded fonts; CID-keyed text comes out garbled
// and typically trips the downstream empty-input check instead.
func contentStreamText(data []byte) string {
	var b strings.Builder
	for i := 0; i < len(data); {
		c := data[i]
		switch {
		case c == '(':
			s, next := literalString(data, i+1)
			b.WriteString(s)
			i = next
		case c == '%':
			// comment runs to end of line
			for i < len(data) && data[i] != '\n' {
				i++
			}
		case c == 'T' && i+1 < len(data) && (data[i+1] == 'd' || data[i+1] == 'D' || data[i+1] == '*'):
			b.WriteByte('\n')
			i += 2
		case c == 'E' && i+1 < len(data) && data[i+1] == 'T':
			b.WriteByte('\n')
			i += 2
		default:
			i++
		}
	}
	return b.String()
}

// literalString reads a PDF literal string starting just past the
// opening parenthesis and returns the decoded text plus the index past
// the closing parenthesis.
func literalString(data []byte, i int) (string, int) {
	var b strings.Builder
	depth := 1
	for i < len(data) {
		c := data[i]
		switch c {
		case '\\':
			if i+1 >= len(data) {
				return b.String(), i + 1
			}
			switch esc := data[i+1]; esc {
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			case '(', ')', '\\':
				b.WriteByte(esc)
			}
			i += 2
		case '(':
			depth++
			b.WriteByte(c)
			i++
		case ')':
			depth--
			if depth == 0 {
				return b.String(), i + 1
			}
			b.WriteByte(c)
			i++
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String(), i
}
