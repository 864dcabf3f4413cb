package extract

import (
	"errors"
	"testing"
)

func TestText_Plain(t *testing.T) {
	got, err := Text("text/plain", []byte("  hello resume  "))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got != "hello resume" {
		t.Fatalf("expected trimmed text, got %q", got)
	}
}

func TestText_PlainWithCharsetParameter(t *testing.T) {
	got, err := Text("text/plain; charset=utf-8", []byte("body"))
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if got != "body" {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestText_UnsupportedType(t *testing.T) {
	if _, err := Text("image/png", []byte{0x89}); err == nil {
		t.Fatal("expected unsupported type error")
	}
}

func TestText_EmptyBody(t *testing.T) {
	if _, err := Text("text/plain", []byte("   \n  ")); !errors.Is(err, ErrEmptyDocument) {
		t.Fatalf("expected ErrEmptyDocument, got %v", err)
	}
}

func TestText_CorruptPDF(t *testing.T) {
	if _, err := Text("application/pdf", []byte("not a pdf")); err == nil {
		t.Fatal("expected corrupt pdf to error")
	}
}
