package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"john@example.com",
		"john.doe@example.com",
		"j+guide@mail.example.co.uk",
		"a@abc.io",
	}
	for _, email := range valid {
		assert.True(t, ValidateEmail(email), "expected valid: %q", email)
	}

	invalid := []string{
		"john@@example",
		"john@example", // no TLD
		"@example.com",
		"john@",
		"john",
		"",
		".john@example.com",
		"john.@example.com",
		"jo..hn@example.com",
		"john@-example.com",
		"john@example-.com",
		"john@ex",
		"john doe@example.com",
	}
	for _, email := range invalid {
		assert.False(t, ValidateEmail(email), "expected invalid: %q", email)
	}
}

func TestValidateEmailLocalLength(t *testing.T) {
	local64 := make([]byte, 64)
	for i := range local64 {
		local64[i] = 'a'
	}
	assert.True(t, ValidateEmail(string(local64)+"@example.com"))
	assert.False(t, ValidateEmail(string(local64)+"a@example.com"))
}

func TestFindEmailCandidate(t *testing.T) {
	assert.Equal(t, "john@example", FindEmailCandidate("send it to john@example please"))
	assert.Equal(t, "", FindEmailCandidate("no address here"))
	assert.NotEmpty(t, FindEmailCandidate("broken john@@example attempt"))
}

func TestFindEmail(t *testing.T) {
	assert.Equal(t, "john@example.com", FindEmail("reach me at john@example.com."))
	assert.Equal(t, "", FindEmail("reach me at john@example"))
}
