package validators

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "anna@example.com", NormalizeEmail("  Anna@Example.COM "))
}

func TestIsEmailFormatValid(t *testing.T) {
	valid := []string{"anna@example.com", "a.b+sales@dealer.pl"}
	invalid := []string{"", "anna", "anna@", "@example.com", "Anna <anna@example.com>", "anna@example.com "}

	for _, e := range valid {
		assert.True(t, IsEmailFormatValid(e), e)
	}
	for _, e := range invalid {
		assert.False(t, IsEmailFormatValid(e), e)
	}
}

func TestIsEmailDomainValid_RejectsMissingDomain(t *testing.T) {
	assert.False(t, IsEmailDomainValid(context.Background(), "anna"))
	assert.False(t, IsEmailDomainValid(context.Background(), "anna@"))
}
