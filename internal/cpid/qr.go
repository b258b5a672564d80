package cpid

import (
	"github.com/skip2/go-qrcode"
)

// PNG renders a code as a QR image. The payload is the bare code: the
// client app verifies it against GET /api/cpid/{cpid}.
func PNG(code string) ([]byte, error) {
	return qrcode.Encode(code, qrcode.Medium, 256)
}
