package utils

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserContextRoundTrip(t *testing.T) {
	ctx := SetUserContext(context.Background(), 42, "cliente@agrocampo.co", "CLIENT")

	id, ok := GetUserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, "cliente@agrocampo.co", GetUserEmailFromContext(ctx))
	assert.Equal(t, "CLIENT", GetUserRoleFromContext(ctx))
}

func TestGetUserIDFromContext_Missing(t *testing.T) {
	_, ok := GetUserIDFromContext(context.Background())
	assert.False(t, ok)
}

func TestGenerateTrackingNumber(t *testing.T) {
	pattern := regexp.MustCompile(`^ENV-\d{8}-\d{6}-\d{3}-\d{4}$`)

	first := GenerateTrackingNumber()
	second := GenerateTrackingNumber()

	assert.Regexp(t, pattern, first)
	assert.Regexp(t, pattern, second)
	assert.NotEqual(t, first, second)
}
