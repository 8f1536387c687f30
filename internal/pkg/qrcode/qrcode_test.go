package qrcode

import (
	"bytes"
	"image/png"
	"strings"
	"testing"
)

func TestEncodePNG(t *testing.T) {
	data, err := EncodePNG(`{"branch_id":"b1","token":"abc","timestamp":"2024-01-15T09:00:00+07:00"}`, 256)
	if err != nil {
		t.Fatalf("EncodePNG returned error: %v", err)
	}

	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a decodable PNG: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != 256 || bounds.Dy() != 256 {
		t.Errorf("image size = %dx%d, want 256x256", bounds.Dx(), bounds.Dy())
	}
}

func TestDataURL(t *testing.T) {
	url, err := DataURL("payload", 0)
	if err != nil {
		t.Fatalf("DataURL returned error: %v", err)
	}
	if !strings.HasPrefix(url, "data:image/png;base64,") {
		t.Errorf("DataURL prefix = %q, want data:image/png;base64,", url[:30])
	}
}
