package extract

import (
	"archive/zip"
	"bytes"
	stderrors "errors"
	"strings"
	"testing"

	"atspro/internal/errors"
)

func TestExtractPlainText(t *testing.T) {
	x := New(nil)

	tests := []struct {
		name     string
		filename string
		data     string
		want     string
	}{
		{"txt file", "resume.txt", "Jane Doe\nEngineer", "Jane Doe\nEngineer"},
		{"markdown file", "resume.md", "# Jane Doe", "# Jane Doe"},
		{"surrounding whitespace trimmed", "resume.txt", "\n\n  text  \n", "text"},
		{"uppercase extension", "RESUME.TXT", "hello world", "hello world"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, hints, err := x.Extract(tt.filename, []byte(tt.data))
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			if text != tt.want {
				t.Errorf("text = %q, want %q", text, tt.want)
			}
			if hints != nil {
				t.Errorf("plain text should carry no hints, got %+v", hints)
			}
		})
	}
}

func TestExtractErrors(t *testing.T) {
	x := New(nil)

	tests := []struct {
		name     string
		filename string
		data     []byte
		wantCode string
	}{
		{"unsupported extension", "resume.exe", []byte("x"), errors.ErrCodeUnsupportedFormat},
		{"no extension", "resume", []byte("x"), errors.ErrCodeUnsupportedFormat},
		{"empty text file", "resume.txt", []byte("   \n\t "), errors.ErrCodeEmptyInput},
		{"garbage pdf", "resume.pdf", []byte("not a pdf at all"), errors.ErrCodeDocumentUnreadable},
		{"garbage docx", "resume.docx", []byte("not a zip"), errors.ErrCodeDocumentUnreadable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := x.Extract(tt.filename, tt.data)
			if err == nil {
				t.Fatal("expected error")
			}
			var appErr *errors.AppError
			if !stderrors.As(err, &appErr) {
				t.Fatalf("expected AppError, got %T: %v", err, err)
			}
			if appErr.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", appErr.Code, tt.wantCode)
			}
		})
	}
}

// buildDOCX assembles a minimal OOXML container for tests.
func buildDOCX(t *testing.T, documentXML string, extraParts ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatal(err)
	}
	for _, name := range extraParts {
		if _, err := zw.Create(name); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

const docxBody = `<?xml version="1.0"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p><w:r><w:t>Jane Doe</w:t></w:r></w:p>
    <w:p><w:r><w:t>Led the platform team</w:t></w:r></w:p>
  </w:body>
</w:document>`

func TestExtractDOCX(t *testing.T) {
	x := New(nil)

	t.Run("paragraph text", func(t *testing.T) {
		text, hints, err := x.Extract("resume.docx", buildDOCX(t, docxBody))
		if err != nil {
			t.Fatalf("Extract() error = %v", err)
		}
		lines := strings.Split(text, "\n")
		if lines[0] != "Jane Doe" || lines[1] != "Led the platform team" {
			t.Errorf("unexpected text: %q", text)
		}
		if hints == nil || hints.HasTables || hints.HasImages || hints.HasHeaderFooter {
			t.Errorf("unexpected hints: %+v", hints)
		}
	})

	t.Run("table hint", func(t *testing.T) {
		body := `<w:document xmlns:w="ns"><w:body><w:tbl/><w:p><w:r><w:t>cell text</w:t></w:r></w:p></w:body></w:document>`
		_, hints, err := x.Extract("resume.docx", buildDOCX(t, body))
		if err != nil {
			t.Fatalf("Extract() error = %v", err)
		}
		if !hints.HasTables {
			t.Error("expected table hint")
		}
	})

	t.Run("header and media hints", func(t *testing.T) {
		_, hints, err := x.Extract("resume.docx", buildDOCX(t, docxBody, "word/header1.xml", "word/media/image1.png"))
		if err != nil {
			t.Fatalf("Extract() error = %v", err)
		}
		if !hints.HasHeaderFooter {
			t.Error("expected header/footer hint")
		}
		if !hints.HasImages {
			t.Error("expected image hint")
		}
	})

	t.Run("missing document part", func(t *testing.T) {
		var buf bytes.Buffer
		zw := zip.NewWriter(&buf)
		if _, err := zw.Create("word/other.xml"); err != nil {
			t.Fatal(err)
		}
		if err := zw.Close(); err != nil {
			t.Fatal(err)
		}

		_, _, err := x.Extract("resume.docx", buf.Bytes())
		var appErr *errors.AppError
		if !stderrors.As(err, &appErr) || appErr.Code != errors.ErrCodeDocumentUnreadable {
			t.Errorf("expected DOCUMENT_UNREADABLE, got %v", err)
		}
	})

	t.Run("empty document", func(t *testing.T) {
		body := `<w:document xmlns:w="ns"><w:body></w:body></w:document>`
		_, _, err := x.Extract("resume.docx", buildDOCX(t, body))
		var appErr *errors.AppError
		if !stderrors.As(err, &appErr) || appErr.Code != errors.ErrCodeEmptyInput {
			t.Errorf("expected EMPTY_INPUT, got %v", err)
		}
	})
}

func TestContentStreamText(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "simple Tj",
			content: `BT /F1 12 Tf (Hello World) Tj ET`,
			want:    "Hello World\n",
		},
		{
			name:    "TJ array fragments",
			content: `BT [(Ja)(ne)] TJ ET`,
			want:    "Jane\n",
		},
		{
			name:    "positioning operators break lines",
			content: `BT (line one) Tj 0 -14 Td (line two) Tj ET`,
			want:    "line one\nline two\n",
		},
		{
			name:    "escaped parens",
			content: `BT (a \(b\) c) Tj ET`,
			want:    "a (b) c\n",
		},
		{
			name:    "comment skipped",
			content: "% (not text)\nBT (real) Tj ET",
			want:    "real\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := contentStreamText([]byte(tt.content)); got != tt.want {
				t.Errorf("contentStreamText(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}
