package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"strings"

	"atspro/internal/errors"
	"atspro/internal/types"
)

// extractDOCX unpacks the OOXML container and walks the main document
// part, emitting one line per paragraph. The archive layout itself
// yields the structural hints: header/footer parts and embedded media
// are separate zip entries, tables appear as w:tbl elements.
func (x *Extractor) extractDOCX(data []byte) (string, *types.StructuralHints, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", nil, errors.NewDocumentError(
			errors.ErrCodeDocumentUnreadable,
			"unable to open DOCX container",
			err,
		)
	}

	hints := &types.StructuralHints{}
	var docEntry *zip.File
	for _, f := range zr.File {
		switch {
		case f.Name == "word/document.xml":
			docEntry = f
		case strings.HasPrefix(f.Name, "word/header") || strings.HasPrefix(f.Name, "word/footer"):
			hints.HasHeaderFooter = true
		case strings.HasPrefix(f.Name, "word/media/"):
			hints.HasImages = true
		}
	}
	if docEntry == nil {
		return "", nil, errors.NewDocumentError(
			errors.ErrCodeDocumentUnreadable,
			"DOCX container has no document part",
			nil,
		)
	}

	rc, err := docEntry.Open()
	if err != nil {
		return "", nil, errors.NewDocumentError(
			errors.ErrCodeDocumentUnreadable,
			"unable to open DOCX document part",
			err,
		)
	}
	defer rc.Close()

	text, hasTables, err := docxText(rc)
	if err != nil {
		return "", nil, errors.NewDocumentError(
			errors.ErrCodeDocumentUnreadable,
			"unable to parse DOCX document XML",
			err,
		)
	}
	hints.HasTables = hasTables

	return text, hints, nil
}

// docxText streams the WordprocessingML tokens: w:t character runs are
// collected, w:p paragraph ends become newlines, w:tab becomes a tab.
func docxText(r io.Reader) (string, bool, error) {
	dec := xml.NewDecoder(r)
	var (
		b         strings.Builder
		inText    bool
		hasTables bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", false, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tbl":
				hasTables = true
			case "tab":
				b.WriteByte('\t')
			case "br":
				b.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return b.String(), hasTables, nil
}
