package msisdn_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"cekkuota-bot/internal/msisdn"
)

func TestValid(t *testing.T) {
	valid := []string{
		"0812345678",     // 08 prefix, minimum length
		"081234567890",   // 08 prefix, common length
		"08999999999999", // 08 prefix, maximum length
		"6281234567890",
		"62812345678",
		"+6281234567890",
		"+62812345678",
		"0877123456789",
	}
	for _, s := range valid {
		assert.True(t, msisdn.Valid(s), "expected %q to be valid", s)
	}

	invalid := []string{
		"",
		"12345",
		"0712345678",      // second digit must be 1-9 after 08
		"0801234567",      // 080 not allowed
		"08123456",        // too short
		"081234567890123", // too long
		"62071234567890",  // 620 not allowed
		"+62071234567890",
		"628123456a90", // non-digit
		" 081234567890",
		"081234567890 ",
		"++6281234567890",
		"08" + strings.Repeat("1", 20),
	}
	for _, s := range invalid {
		assert.False(t, msisdn.Valid(s), "expected %q to be invalid", s)
	}
}

func TestValidPrefixesMutuallyExclusive(t *testing.T) {
	// A 628-prefixed number must not also pass as an 08 number and vice versa;
	// the pattern anchors make this structural, spot-check a few.
	assert.True(t, msisdn.Valid("6281234567890"))
	assert.False(t, msisdn.Valid("06281234567890"))
	assert.False(t, msisdn.Valid("62081234567890"))
}
