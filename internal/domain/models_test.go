package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONBScanBytes(t *testing.T) {
	var j JSONB
	require.NoError(t, j.Scan([]byte(`{"has_phone":true,"count":2}`)))
	assert.Equal(t, true, j["has_phone"])
	assert.Equal(t, float64(2), j["count"])
}

// Some drivers hand JSON columns back as string rather than []byte.
func TestJSONBScanString(t *testing.T) {
	var j JSONB
	require.NoError(t, j.Scan(`{"signup_method":"mini_website"}`))
	assert.Equal(t, "mini_website", j["signup_method"])
}

func TestJSONBScanNil(t *testing.T) {
	j := JSONB{"stale": true}
	require.NoError(t, j.Scan(nil))
	assert.Nil(t, j)
}

func TestJSONBScanRejectsUnsupportedType(t *testing.T) {
	var j JSONB
	err := j.Scan(42)
	require.Error(t, err, "A type mismatch must surface, not zero the field")
}
