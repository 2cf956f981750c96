// Package payqr renders UPI payment QR codes for listings that carry
// payment details.
package payqr

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	qrcode "github.com/skip2/go-qrcode"
)

type Generator struct {
	BaseDir string
}

func New(baseDir string) *Generator {
	return &Generator{BaseDir: baseDir}
}

// UPIURI builds the upi://pay deep link encoded into the QR.
func UPIURI(upiID, payeeName string) string {
	v := url.Values{}
	v.Set("pa", upiID)
	if payeeName != "" {
		v.Set("pn", payeeName)
	}
	v.Set("cu", "INR")
	return "upi://pay?" + v.Encode()
}

// Generate writes a QR PNG for the listing's UPI id and returns its public
// URL. Callers treat failures as non-fatal; a listing without a QR is
// still valid.
func (g *Generator) Generate(listingID, upiID, payeeName string) (string, error) {
	dir := filepath.Join(g.BaseDir, "uploads", "listing", "qr")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	name := listingID + ".png"
	path := filepath.Join(dir, name)
	if err := qrcode.WriteFile(UPIURI(upiID, payeeName), qrcode.Medium, 256, path); err != nil {
		return "", fmt.Errorf("write qr %s: %w", path, err)
	}
	return "/uploads/listing/qr/" + name, nil
}
