package util

import (
	"encoding/binary"
	"fmt"
)

// IDSize is the exact wire size of a message payload: one
// little-endian unsigned 64-bit identifier, nothing else.
const IDSize = 8

// EncodeID serializes an identifier into its wire payload.
func EncodeID(id uint64) []byte {
	data := make([]byte, IDSize)
	binary.LittleEndian.PutUint64(data, id)
	return data
}

// DecodeID deserializes a wire payload back into an identifier.
func DecodeID(data []byte) (uint64, error) {
	if len(data) != IDSize {
		return 0, fmt.Errorf("invalid payload length: got %d bytes, want %d", len(data), IDSize)
	}
	return binary.LittleEndian.Uint64(data), nil
}
