package input

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"gokata/internal/diag"
)

func TestParseValues(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		src  string
		want []uint32
	}{
		{name: "commas", src: "4, 8, 12, 16", want: []uint32{4, 8, 12, 16}},
		{name: "whitespace", src: "4 8\n12\t16\n", want: []uint32{4, 8, 12, 16}},
		{name: "bases", src: "0x10, 0b101, 0o17, 1_000", want: []uint32{16, 5, 15, 1000}},
		{name: "negative", src: "-1, -2147483648", want: []uint32{0xFFFFFFFF, 0x80000000}},
		{name: "unsigned max", src: "4294967295", want: []uint32{0xFFFFFFFF}},
		{name: "comments", src: "// header\n1, 2 /* inline */ 3\n", want: []uint32{1, 2, 3}},
		{name: "empty", src: "", want: nil},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			got, err := ParseValues("values", tc.src, diag.NewReporter(&buf, "text"))
			if err != nil {
				t.Fatalf("ParseValues(%q) error: %v\n%s", tc.src, err, buf.String())
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("ParseValues(%q) mismatch (-want +got):\n%s", tc.src, diff)
			}
		})
	}
}

func TestParseValuesReportsPositions(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "identifier", src: "1, 2\n3, x", want: "values:2:4: error: unexpected \"x\""},
		{name: "float", src: "1.5", want: "values:1:1: error: unexpected \"1.5\""},
		{name: "too large", src: "4294967296", want: "above the 32-bit range"},
		{name: "too small", src: "-2147483649", want: "below the 32-bit range"},
		{name: "dangling sign", src: "1, -", want: "values:1:4: error: dangling minus sign"},
		{name: "illegal char", src: "1 @ 2", want: "values:1:3: error: illegal character"},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			reporter := diag.NewReporter(&buf, "text")
			if _, err := ParseValues("values", tc.src, reporter); err == nil {
				t.Fatalf("expected ParseValues(%q) to fail", tc.src)
			}
			if !strings.Contains(buf.String(), tc.want) {
				t.Fatalf("expected diagnostic containing %q, got %q", tc.want, buf.String())
			}
			if reporter.ErrorCount() != 1 {
				t.Fatalf("expected exactly one error, got %d:\n%s", reporter.ErrorCount(), buf.String())
			}
		})
	}
}

func TestParseValuesRequiresReporter(t *testing.T) {
	if _, err := ParseValues("values", "1", nil); err == nil {
		t.Fatalf("expected error without reporter")
	}
}
