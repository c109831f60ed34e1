// Package credential builds the scannable admission credential handed to each
// registrant: a QR code whose text is derived from the registrant's identity.
package credential

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"strings"

	"github.com/makiuchi-d/gozxing"
	zxingqr "github.com/makiuchi-d/gozxing/qrcode"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	// Separator joins identity fields into the encoded payload.
	Separator = " | "

	// ModulePixels is the edge length of one QR module in the PNG. A whole
	// number of pixels per module keeps the grid exact for decoders.
	ModulePixels = 8

	dataURLPrefix = "data:image/png;base64,"
)

var ErrEmptyPayload = errors.New("credential payload is empty")

// Credential is an encoded payload and its PNG rendering.
type Credential struct {
	Payload string
	PNG     []byte
}

// DataURL renders the image the way browsers and mail clients embed it.
func (c Credential) DataURL() string {
	return dataURLPrefix + base64.StdEncoding.EncodeToString(c.PNG)
}

type Generator struct {
	modulePixels int
	level        qrcode.RecoveryLevel
}

func NewGenerator() *Generator {
	return &Generator{modulePixels: ModulePixels, level: qrcode.Medium}
}

// Payload joins the identity fields in order. It is exported so callers can
// match a scanned credential without re-encoding an image.
func Payload(fields ...string) string {
	return strings.Join(fields, Separator)
}

// Generate encodes the identity fields. The output depends only on its inputs.
func (g *Generator) Generate(fields ...string) (Credential, error) {
	payload := Payload(fields...)
	if strings.TrimSpace(strings.ReplaceAll(payload, Separator, "")) == "" {
		return Credential{}, ErrEmptyPayload
	}

	q, err := qrcode.New(payload, g.level)
	if err != nil {
		return Credential{}, fmt.Errorf("encode qr code: %w", err)
	}
	// A negative size asks go-qrcode for pixels per module.
	png, err := q.PNG(-g.modulePixels)
	if err != nil {
		return Credential{}, fmt.Errorf("render qr code: %w", err)
	}

	return Credential{Payload: payload, PNG: png}, nil
}

// Decode reads the text back out of a QR code image.
func Decode(img []byte) (string, error) {
	src, _, err := image.Decode(bytes.NewReader(img))
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	bmp, err := gozxing.NewBinaryBitmapFromImage(src)
	if err != nil {
		return "", fmt.Errorf("binarize image: %w", err)
	}

	hints := map[gozxing.DecodeHintType]interface{}{
		gozxing.DecodeHintType_PURE_BARCODE: true,
	}
	result, err := zxingqr.NewQRCodeReader().Decode(bmp, hints)
	if err != nil {
		return "", fmt.Errorf("read qr code: %w", err)
	}

	return result.GetText(), nil
}

// DecodeDataURL accepts the data URL form produced by Credential.DataURL.
func DecodeDataURL(dataURL string) (string, error) {
	encoded, ok := strings.CutPrefix(dataURL, dataURLPrefix)
	if !ok {
		return "", fmt.Errorf("unsupported data URL")
	}

	img, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decode base64: %w", err)
	}

	return Decode(img)
}
