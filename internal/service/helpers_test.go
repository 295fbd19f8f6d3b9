package service

import (
	"strings"
	"testing"

	"clover/internal/secrets"

	"github.com/stretchr/testify/require"
)

const (
	testUserID  = "7f1c2a8e-5d4b-4c3a-9e2f-1a2b3c4d5e6f"
	otherUserID = "0a9b8c7d-6e5f-4a3b-8c2d-1e0f9a8b7c6d"
)

func newTestSealer(t *testing.T) *secrets.Sealer {
	t.Helper()
	s, err := secrets.NewSealer(strings.Repeat("ab", 32))
	require.NoError(t, err)
	return s
}
