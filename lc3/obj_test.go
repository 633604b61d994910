package lc3

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestObjSerialization(t *testing.T) {
	t.Run("origin and data", func(t *testing.T) {
		obj := NewObj(MustValue("x4000"), []byte("AB"))
		want := []byte{
			0x40, 0x00, // origin
			0x00, 0x41, // 'A'
			0x00, 0x42, // 'B'
			0x00, 0x00, // terminator
		}
		require.Equal(t, want, obj.Bytes())
		require.Len(t, obj.Bytes(), 8, "size must be 2*(n+2)")
	})
	t.Run("empty data", func(t *testing.T) {
		obj := NewObj(MustValue("x3000"), nil)
		require.Equal(t, []byte{0x30, 0x00, 0x00, 0x00}, obj.Bytes())
	})
	t.Run("high bytes zero", func(t *testing.T) {
		obj := NewObj(MustValue("x0000"), []byte{0xFF})
		require.Equal(t, []byte{0x00, 0x00, 0x00, 0xFF, 0x00, 0x00}, obj.Bytes())
	})
}

func TestObjToFile(t *testing.T) {
	a := NewObj(MustValue("x4000"), []byte("hello"))
	defer a.Close()
	b := NewObj(MustValue("x4000"), []byte("hello"))
	defer b.Close()

	pathA, err := a.ToFile()
	require.NoError(t, err)
	pathB, err := b.ToFile()
	require.NoError(t, err)
	require.NotEqual(t, pathA, pathB, "each image gets its own unique artifact")

	again, err := a.ToFile()
	require.NoError(t, err)
	require.Equal(t, pathA, again, "repeated calls return the same path")

	data, err := os.ReadFile(pathA)
	require.NoError(t, err)
	require.Equal(t, a.Bytes(), data)
}

func TestObjClose(t *testing.T) {
	obj := NewObj(MustValue("x4000"), []byte("x"))
	path, err := obj.ToFile()
	require.NoError(t, err)
	require.NoError(t, obj.Close())
	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err), "artifact must be deleted on Close")

	require.NoError(t, obj.Close(), "Close is idempotent")
	require.NoError(t, NewObj(MustValue("x4000"), nil).Close(), "Close without ToFile is a no-op")
}
