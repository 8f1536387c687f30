package qrcode

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

const defaultSize = 256

// EncodePNG renders the payload as a QR code PNG.
func EncodePNG(payload string, size int) ([]byte, error) {
	if size <= 0 {
		size = defaultSize
	}

	code, err := qr.Encode(payload, qr.M, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("encode qr payload: %w", err)
	}

	scaled, err := barcode.Scale(code, size, size)
	if err != nil {
		return nil, fmt.Errorf("scale qr code: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("encode qr png: %w", err)
	}

	return buf.Bytes(), nil
}

// DataURL renders the payload as a base64 PNG data URL, the format the
// frontends embed directly in an <img> tag.
func DataURL(payload string, size int) (string, error) {
	img, err := EncodePNG(payload, size)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(img), nil
}
