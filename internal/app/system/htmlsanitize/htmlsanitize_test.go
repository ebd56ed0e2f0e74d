package htmlsanitize_test

import (
	"strings"
	"testing"

	"github.com/trailpost/trailpost/internal/app/system/htmlsanitize"
)

func TestSanitize_Empty(t *testing.T) {
	result := htmlsanitize.Sanitize("")
	if result != "" {
		t.Errorf("expected empty string, got %q", result)
	}
}

func TestSanitize_PlainText(t *testing.T) {
	result := htmlsanitize.Sanitize("Great spot by the river!")
	if result != "Great spot by the river!" {
		t.Errorf("expected plain text unchanged, got %q", result)
	}
}

func TestSanitize_SafeHTML(t *testing.T) {
	input := "<p><strong>Bold</strong> and <em>italic</em></p>"
	result := htmlsanitize.Sanitize(input)
	if result != input {
		t.Errorf("expected safe HTML preserved, got %q", result)
	}
}

func TestSanitize_RemovesScript(t *testing.T) {
	input := "<p>Hello</p><script>alert('xss')</script>"
	result := htmlsanitize.Sanitize(input)
	if result != "<p>Hello</p>" {
		t.Errorf("expected script removed, got %q", result)
	}
}

func TestSanitize_RemovesOnclick(t *testing.T) {
	input := `<button onclick="alert('xss')">Click</button>`
	result := htmlsanitize.Sanitize(input)
	if strings.Contains(result, "onclick") {
		t.Errorf("expected onclick attribute removed, got %q", result)
	}
}

func TestSanitize_RemovesJavascriptHref(t *testing.T) {
	input := `<a href="javascript:alert('xss')">Click</a>`
	result := htmlsanitize.Sanitize(input)
	if strings.Contains(result, "javascript:") {
		t.Errorf("expected javascript: href removed, got %q", result)
	}
}

func TestSanitize_AllowsSafeLinks(t *testing.T) {
	input := `<a href="https://example.com">Link</a>`
	result := htmlsanitize.Sanitize(input)
	// bluemonday adds rel="nofollow"; the href itself must survive
	if !strings.Contains(result, "https://example.com") {
		t.Errorf("expected safe link preserved, got %q", result)
	}
}

func TestSanitize_AllowsTextFormatting(t *testing.T) {
	input := "<u>underline</u> <s>strikethrough</s> <mark>mark</mark>"
	result := htmlsanitize.Sanitize(input)
	if result != input {
		t.Errorf("expected text formatting preserved, got %q", result)
	}
}
