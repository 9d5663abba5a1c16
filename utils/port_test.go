package utils

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckListenAddr(t *testing.T) {
	assert.NoError(t, CheckListenAddr("127.0.0.1:0"))

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()

	err = CheckListenAddr(listener.Addr().String())
	require.Error(t, err)
	assert.Contains(t, err.Error(), listener.Addr().String())
}
