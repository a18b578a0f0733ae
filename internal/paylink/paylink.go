// Package paylink builds the payer-facing addresses for a request: the
// shareable page URL, the solana: payment URL and its QR code.
package paylink

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"

	"github.com/privacydash/privacydash/internal/common"
	"github.com/privacydash/privacydash/internal/model"
)

// PagePath returns the public payment page URL for a request. Any payer can
// open it without authentication; only public fields are served there.
func PagePath(baseURL string, id string) string {
	return strings.TrimRight(baseURL, "/") + "/pay/" + id
}

// PaymentURL builds a solana: payment URL carrying the public request
// metadata, so wallets can prefill and the reference can be tracked.
func PaymentURL(req model.PaymentRequest) string {
	q := url.Values{}
	if cmp, err := common.CompareSOLAmounts(req.Amount, "0"); err == nil && cmp > 0 {
		q.Set("amount", req.Amount)
	}
	q.Set("reference", req.Reference)
	if req.Label != "" {
		q.Set("label", req.Label)
	}
	return "solana:" + req.Creator + "?" + q.Encode()
}

// QRCodePNG renders content as a QR code PNG and returns it base64 encoded.
func QRCodePNG(content string) (string, error) {
	qr, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return "", fmt.Errorf("failed to create QR code: %w", err)
	}

	png, err := qr.PNG(256)
	if err != nil {
		return "", fmt.Errorf("failed to generate PNG: %w", err)
	}

	return base64.StdEncoding.EncodeToString(png), nil
}
