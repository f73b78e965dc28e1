package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaffTokenRoundTrip(t *testing.T) {
	token, err := GenerateStaffToken("staff-1", "Nok", time.Hour)
	require.NoError(t, err)

	staffID, name, err := ExtractStaffFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "staff-1", staffID)
	assert.Equal(t, "Nok", name)
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := GenerateStaffToken("staff-1", "Nok", -time.Hour)
	require.NoError(t, err)

	_, _, err = ExtractStaffFromToken(token)
	assert.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	_, _, err := ExtractStaffFromToken("not.a.token")
	assert.Error(t, err)
}
