package respond

import "testing"

func TestSelectFormat(t *testing.T) {
	tests := []struct {
		accept string
		want   format
	}{
		{"", formatJSON},
		{"*/*", formatJSON},
		{"application/*", formatJSON},
		{"text/plain", formatJSON},
		{"application/json", formatJSON},
		{"application/cbor", formatCBOR},
		{"application/problem+cbor", formatCBOR},
		{"application/json, application/cbor", formatJSON},
		{"application/cbor;q=0.9, application/json;q=0.5", formatCBOR},
		{"application/json;q=0, application/cbor", formatCBOR},
		{"application/cbor;q=0, */*", formatJSON},
		{"application/cbor;q=0", formatJSON},
		{"APPLICATION/CBOR", formatCBOR},
		{"application/cbor;q=abc, application/json;q=0.5", formatCBOR},
	}

	for _, tt := range tests {
		t.Run(tt.accept, func(t *testing.T) {
			if got := selectFormat(tt.accept); got != tt.want {
				t.Fatalf("selectFormat(%q) = %v, want %v", tt.accept, got, tt.want)
			}
		})
	}
}

func TestParseAcceptSkipsMalformed(t *testing.T) {
	ranges := parseAccept("noslash, , application/json;q=2, text/html;level=1;q=0.3")
	if len(ranges) != 2 {
		t.Fatalf("expected 2 ranges, got %+v", ranges)
	}
	if ranges[0].mediaType != "application/json" || ranges[0].q != 1 {
		t.Fatalf("expected out-of-range q to default to 1, got %+v", ranges[0])
	}
	if ranges[1].mediaType != "text/html" || ranges[1].q != 0.3 {
		t.Fatalf("unexpected second range: %+v", ranges[1])
	}
}
