package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/road-mate/api-go/types"
)

func TestQRPayloadRoundTrip(t *testing.T) {
	in := types.QRPayload{PlateNumber: "AB123CD", OwnerHandle: "jane", Contact: "chat"}
	encoded := in.Encode()
	assert.Equal(t, "RM1|AB123CD|jane|chat", encoded)

	out, err := types.DecodeQRPayload(encoded)
	assert.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestQRPayloadStripsDelimiter(t *testing.T) {
	in := types.QRPayload{PlateNumber: "AB|123", OwnerHandle: "ja|ne", Contact: "chat"}
	out, err := types.DecodeQRPayload(in.Encode())
	assert.NoError(t, err)
	assert.Equal(t, "AB123", out.PlateNumber)
	assert.Equal(t, "jane", out.OwnerHandle)
}

func TestDecodeQRPayloadRejectsGarbage(t *testing.T) {
	_, err := types.DecodeQRPayload("not a payload")
	assert.Error(t, err)

	_, err = types.DecodeQRPayload("RM2|AB123CD|jane|chat")
	assert.Error(t, err)

	_, err = types.DecodeQRPayload("RM1|AB123CD|jane")
	assert.Error(t, err)
}
