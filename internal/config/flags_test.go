package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetAddress_SetValid(t *testing.T) {
	var a NetAddress
	require.NoError(t, a.Set("localhost:8080"))
	assert.Equal(t, "localhost", a.Host)
	assert.Equal(t, 8080, a.Port)
	assert.Equal(t, "localhost:8080", a.String())
}

func TestNetAddress_SetIP(t *testing.T) {
	var a NetAddress
	require.NoError(t, a.Set("127.0.0.1:9000"))
	assert.Equal(t, "127.0.0.1:9000", a.String())
}

func TestNetAddress_SetNoPort(t *testing.T) {
	var a NetAddress
	assert.Error(t, a.Set("localhost"))
}

func TestNetAddress_SetBadPort(t *testing.T) {
	var a NetAddress
	assert.Error(t, a.Set("localhost:zero"))
	assert.Error(t, a.Set("localhost:0"))
}

func TestNetAddress_SetBadHost(t *testing.T) {
	var a NetAddress
	assert.Error(t, a.Set("not-an-ip:8080"))
}

func TestNetAddress_EmptyString(t *testing.T) {
	var a NetAddress
	assert.Equal(t, "", a.String())
}
