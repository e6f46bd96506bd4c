package pix

import (
	"encoding/base64"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var codePattern = regexp.MustCompile(`^PIX-42-[0-9A-F]{8}$`)

func TestNewCode_Format(t *testing.T) {
	code := NewCode(42)
	assert.Regexp(t, codePattern, code)
}

func TestNewCode_Random(t *testing.T) {
	assert.NotEqual(t, NewCode(1), NewCode(1))
}

func TestExpiresAt(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 1, 10, 30, 0, 0, time.UTC), ExpiresAt(created))
}

func TestNewCharge(t *testing.T) {
	created := time.Now()
	charge, err := NewCharge(42, created)
	require.NoError(t, err)

	assert.Regexp(t, codePattern, charge.Code)
	assert.Equal(t, created.Add(30*time.Minute), charge.ExpiresAt)

	png, err := base64.StdEncoding.DecodeString(charge.QRCodePNG)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), png[:4])
}
