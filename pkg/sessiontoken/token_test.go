package sessiontoken

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignAndParse(t *testing.T) {
	codec, err := NewCodec("test-secret")
	require.NoError(t, err)

	token, err := codec.Sign("sid-1", time.Now().Add(time.Hour))
	require.NoError(t, err)

	sid, err := codec.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "sid-1", sid)
}

func TestParseRejectsTampering(t *testing.T) {
	codec, _ := NewCodec("test-secret")
	other, _ := NewCodec("other-secret")

	token, err := other.Sign("sid-1", time.Now().Add(time.Hour))
	require.NoError(t, err)

	_, err = codec.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = codec.Parse("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = codec.Parse("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseRejectsExpired(t *testing.T) {
	codec, _ := NewCodec("test-secret")

	token, err := codec.Sign("sid-1", time.Now().Add(-time.Minute))
	require.NoError(t, err)

	_, err = codec.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRandomSecret(t *testing.T) {
	a, err := NewCodec("")
	require.NoError(t, err)
	b, _ := NewCodec("")

	token, _ := a.Sign("sid", time.Now().Add(time.Hour))
	_, err = b.Parse(token)
	assert.Error(t, err)
}
