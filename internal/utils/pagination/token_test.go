package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeToken(t *testing.T) {
	entryDate := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2026, 3, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeToken(entryDate, createdAt)
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedEntryDate, decodedCreatedAt, err := DecodeToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, entryDate, decodedEntryDate, "Entry date should match after decode")
	assert.Equal(t, createdAt, decodedCreatedAt, "Created at time should match after decode")

	// Zero time values
	zeroTime := time.Time{}
	zeroToken := EncodeToken(zeroTime, zeroTime)
	decodedZeroDate, decodedZeroTime, err := DecodeToken(zeroToken)
	assert.NoError(t, err, "Decoding zero time should not return an error")
	assert.Equal(t, zeroTime, decodedZeroDate)
	assert.Equal(t, zeroTime, decodedZeroTime)
}

func TestDecodeTokenError(t *testing.T) {
	// Invalid base64
	_, _, err := DecodeToken("this is not base64!")
	assert.Error(t, err, "Should return an error for invalid base64")
	assert.Contains(t, err.Error(), "base64 decode")

	// Valid base64 but missing separator
	noSeparator := base64.StdEncoding.EncodeToString([]byte("2026-03-15T00:00:00Z"))
	_, _, err = DecodeToken(noSeparator)
	assert.Error(t, err, "Should return an error when the separator is missing")

	// Valid base64 and separator but unparseable dates
	badDates := base64.StdEncoding.EncodeToString([]byte("not-a-date|also-not-a-date"))
	_, _, err = DecodeToken(badDates)
	assert.Error(t, err, "Should return an error for unparseable dates")
}

func TestEncodeDecodeDateBasedToken(t *testing.T) {
	createdAt := time.Date(2026, 7, 1, 9, 15, 0, 987654321, time.UTC)

	token := EncodeDateBasedToken(createdAt)
	assert.NotEmpty(t, token)

	decoded, err := DecodeDateBasedToken(token)
	assert.NoError(t, err)
	assert.Equal(t, createdAt, decoded)

	_, err = DecodeDateBasedToken("!!!")
	assert.Error(t, err, "Should return an error for invalid base64")
}
