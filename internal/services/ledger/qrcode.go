package ledger

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"
)

// CheckQRGenerator renders a QR code pointing at a table's check view
type CheckQRGenerator struct {
	BaseURL string
}

func (g CheckQRGenerator) Generate(tableID uuid.UUID) ([]byte, error) {
	qrData := fmt.Sprintf("%s/tables/%s/check", g.BaseURL, tableID)
	return qrcode.Encode(qrData, qrcode.Medium, 256)
}
