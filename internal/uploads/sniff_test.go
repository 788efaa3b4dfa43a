package uploads

import (
	"testing"

	"releasedesk/internal/testsupport"
)

func TestSniff(t *testing.T) {
	cases := []struct {
		name    string
		kind    SlotKind
		data    []byte
		want    string
		wantErr bool
	}{
		{name: "png cover", kind: KindCover, data: testsupport.PNGHeader(10, 10), want: "png"},
		{name: "wav audio", kind: KindAudio, data: testsupport.WAVHeader(256), want: "wav"},
		{name: "pdf document", kind: KindDocument, data: testsupport.PDFBytes(), want: "pdf"},
		{name: "png document scan", kind: KindDocument, data: testsupport.PNGHeader(10, 10), want: "png"},
		{name: "wav cover rejected", kind: KindCover, data: testsupport.WAVHeader(256), wantErr: true},
		{name: "pdf audio rejected", kind: KindAudio, data: testsupport.PDFBytes(), wantErr: true},
		{name: "garbage rejected", kind: KindAudio, data: []byte("not a media file"), wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := sniff(tc.kind, tc.data)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected rejection, got subtype %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("sniff failed: %v", err)
			}
			if got != tc.want {
				t.Fatalf("subtype = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestCheckCoverDimensions(t *testing.T) {
	if err := checkCoverDimensions(testsupport.PNGHeader(3000, 3000), 3000); err != nil {
		t.Fatalf("expected 3000x3000 to pass: %v", err)
	}
	if err := checkCoverDimensions(testsupport.PNGHeader(3000, 2999), 3000); err == nil {
		t.Fatal("expected short edge to fail")
	}
	if err := checkCoverDimensions([]byte("junk"), 3000); err == nil {
		t.Fatal("expected undecodable data to fail")
	}
}
