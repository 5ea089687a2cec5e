package terminal

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitForKey_Reader(t *testing.T) {
	var out bytes.Buffer
	err := WaitForKey(strings.NewReader("q"), &out, "Press any key")
	require.NoError(t, err)
	assert.Equal(t, "Press any key\n", out.String())
}

func TestWaitForKey_ConsumesOneByte(t *testing.T) {
	in := strings.NewReader("ab")
	require.NoError(t, WaitForKey(in, io.Discard, ""))
	assert.Equal(t, 1, in.Len())
}

func TestWaitForKey_EOF(t *testing.T) {
	err := WaitForKey(strings.NewReader(""), io.Discard, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
}

func TestWaitForKey_CtrlC(t *testing.T) {
	err := WaitForKey(strings.NewReader("\x03"), io.Discard, "")
	assert.ErrorIs(t, err, ErrInterrupted)
}

func TestWaitForKey_CtrlD(t *testing.T) {
	err := WaitForKey(strings.NewReader("\x04"), io.Discard, "")
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

type errReader struct{ err error }

func (r errReader) Read([]byte) (int, error) { return 0, r.err }

func TestWaitForKey_ReadError(t *testing.T) {
	boom := errors.New("boom")
	err := WaitForKey(errReader{err: boom}, io.Discard, "")
	assert.ErrorIs(t, err, boom)
}
