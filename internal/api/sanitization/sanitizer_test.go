package sanitization

import (
	"testing"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Ann Smith", "Ann Smith"},
		{"  Ann   Smith ", "Ann Smith"},
		{"<script>alert(1)</script>", "alert(1)"},
		{"<b>Ann</b>", "Ann"},
		{"Ann\r\nBcc: evil@example.com", "Ann Bcc: evil@example.com"},
		{"O'Brien & Sons", "O'Brien & Sons"},
		{"Zoë \"Z\" Ñúñez", "Zoë \"Z\" Ñúñez"},
		{"a\x00b\x07c", "abc"},
		{"1 < 2 > 0", "1 < 2 > 0"},
		{"Ann <b\nSmith>", "Ann b Smith>"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := SanitizeName(tt.input); got != tt.want {
				t.Errorf("SanitizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeMessage(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Hello there", "Hello there"},
		{"keeps newlines", "line one\nline two\n\nline four", "line one\nline two\n\nline four"},
		{"normalizes crlf", "a\r\nb\rc", "a\nb\nc"},
		{"keeps quotes", `He said "hi" and it's fine`, `He said "hi" and it's fine`},
		{"keeps tabs", "col1\tcol2", "col1\tcol2"},
		{"strips script", "<script>alert(1)</script>done", "alert(1)done"},
		{"strips nested markup", "<a href=\"x\"><img src=x onerror=alert(1)></a>click", "click"},
		{"keeps empty brackets", "<<b>>bold", "<>bold"},
		{"keeps comparisons across lines", "Budget is < 500 dollars.\nPlease call me back.\nTimeline > 2 weeks.", "Budget is < 500 dollars.\nPlease call me back.\nTimeline > 2 weeks."},
		{"tag cannot span lines", "a <b\nc> d", "a b\nc> d"},
		{"unclosed tag loses bracket", "see <img src=x onerror=alert(1)", "see img src=x onerror=alert(1)"},
		{"keeps arrows", "a -> b <= c", "a -> b <= c"},
		{"drops control chars", "bell\x07 null\x00 esc\x1b", "bell null esc"},
		{"trims", "\n\n  hello  \n", "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeMessage(tt.input); got != tt.want {
				t.Errorf("SanitizeMessage(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeNeverLeavesMarkup(t *testing.T) {
	inputs := []string{
		"<script>alert(1)</script>",
		"<<script>script>alert(1)<</script>/script>",
		"<img src=x onerror=alert(1)",
		"</textarea><svg onload=alert(1)>",
		"<<<a href=x>>click",
		"<!-- hidden --><?php echo 1 ?>",
	}
	for _, in := range inputs {
		for _, out := range []string{SanitizeName(in), SanitizeMessage(in)} {
			if tagOpenRegex.MatchString(out) {
				t.Errorf("sanitized %q still contains markup: %q", in, out)
			}
		}
	}
}

func TestSanitizeEmail(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  Ann@Example.COM ", "Ann@example.com"},
		{"O'Neil@EXAMPLE.xn--P1AI", "O'Neil@example.xn--p1ai"},
		{"no-at-sign", "no-at-sign"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := SanitizeEmail(tt.input); got != tt.want {
				t.Errorf("SanitizeEmail(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
