package types

import (
	"fmt"
	"strings"
)

// QRPayloadVersion prefixes every sticker payload so older stickers stay
// decodable if the format grows.
const QRPayloadVersion = "RM1"

// QRPayload is the content encoded on a windshield sticker. It lets a
// passer-by reach the owner without exposing the owner's identity beyond a
// handle.
type QRPayload struct {
	PlateNumber string
	OwnerHandle string
	Contact     string // preferred contact channel, e.g. "chat" or a phone
}

// Encode assembles the pipe-delimited payload. Pipes inside fields are
// dropped rather than escaped; none of the fields legitimately contain one.
func (q QRPayload) Encode() string {
	clean := func(s string) string { return strings.ReplaceAll(s, "|", "") }
	return fmt.Sprintf("%s|%s|%s|%s",
		QRPayloadVersion, clean(q.PlateNumber), clean(q.OwnerHandle), clean(q.Contact))
}

// DecodeQRPayload parses a scanned payload. Unknown versions fail rather
// than guess.
func DecodeQRPayload(s string) (QRPayload, error) {
	parts := strings.Split(s, "|")
	if len(parts) != 4 || parts[0] != QRPayloadVersion {
		return QRPayload{}, fmt.Errorf("unrecognized qr payload")
	}
	return QRPayload{
		PlateNumber: parts[1],
		OwnerHandle: parts[2],
		Contact:     parts[3],
	}, nil
}
