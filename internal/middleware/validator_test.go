package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateReportID(t *testing.T) {
	assert.NoError(t, ValidateReportID("7f9c24e8-3b2a-4d15-9c6f-1a2b3c4d5e6f"))
	assert.Error(t, ValidateReportID(""))
	assert.Error(t, ValidateReportID("not-a-uuid"))
	assert.Error(t, ValidateReportID("7f9c24e8-3b2a-4d15-9c6f-1a2b3c4d5e6f-extra"))
}

func TestValidateMediaType(t *testing.T) {
	assert.NoError(t, ValidateMediaType("image/png"))
	assert.NoError(t, ValidateMediaType("IMAGE/JPEG"))
	assert.Error(t, ValidateMediaType("application/pdf"))
	assert.Error(t, ValidateMediaType(""))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello", SanitizeString("  hello \x00"))
	assert.Equal(t, "a\nb", SanitizeString("a\nb\x07"))
}

func TestValidateMediaCount(t *testing.T) {
	assert.NoError(t, ValidateMediaCount(0))
	assert.NoError(t, ValidateMediaCount(6))
	assert.Error(t, ValidateMediaCount(7))
}
