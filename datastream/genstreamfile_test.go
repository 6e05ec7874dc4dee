package datastream

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hakuto4838/RankList.git/skiplist"
)

func TestStreamFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "uniform.bin")

	gen := NewUniformValueGenerator(0, 100, 42)
	values := gen.GenerateSequence(1000)

	id, err := WriteStreamFile(values, 25, path)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, id)

	sf, err := ReadStreamFile(path)
	require.NoError(t, err)
	assert.Equal(t, id, sf.ID)
	assert.Equal(t, 25, sf.Window)
	assert.Equal(t, values, sf.Values)
}

func TestStreamFileFromStream(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "zipf.bin")

	gen := NewZipfValueGenerator(100, 1.2, 2.7, 7)
	id, err := WriteStreamFileFromStream(gen, 500, 50, path)
	require.NoError(t, err)

	sf, err := ReadStreamFile(path)
	require.NoError(t, err)
	assert.Equal(t, id, sf.ID)
	assert.Len(t, sf.Values, 500)

	// 同參數同 seed 的生成器應重現相同序列
	want := NewZipfValueGenerator(100, 1.2, 2.7, 7).GenerateSequence(500)
	assert.Equal(t, want, sf.Values)
}

func TestStreamFileEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.bin")
	_, err := WriteStreamFile(nil, 10, path)
	require.NoError(t, err)

	sf, err := ReadStreamFile(path)
	require.NoError(t, err)
	assert.Empty(t, sf.Values)
}

func TestStreamFileToSequenceModel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seq.bin")
	values := []skiplist.V{2, 7, 1, 8}
	_, err := WriteStreamFile(values, 2, path)
	require.NoError(t, err)

	sf, err := ReadStreamFile(path)
	require.NoError(t, err)
	assert.Equal(t, values, sf.ToSequenceModel().NextN(4))
}

func TestWriteStreamFileInvalidArgs(t *testing.T) {
	dir := t.TempDir()
	_, err := WriteStreamFile([]skiplist.V{1}, 0, filepath.Join(dir, "w0.bin"))
	assert.Error(t, err)

	_, err = WriteStreamFileFromStream(nil, 10, 5, filepath.Join(dir, "nil.bin"))
	assert.Error(t, err)

	gen := NewUniformValueGenerator(0, 1, 1)
	_, err = WriteStreamFileFromStream(gen, -1, 5, filepath.Join(dir, "neg.bin"))
	assert.Error(t, err)
}

func TestReadStreamFileBadMagic(t *testing.T) {
	path := writeCorrupted(t, func(raw []byte) { raw[0] ^= 0xFF })
	_, err := ReadStreamFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad magic")
}

func TestReadStreamFileBadVersion(t *testing.T) {
	// Version 位於 magic 之後的 uint16
	path := writeCorrupted(t, func(raw []byte) { raw[8] = 0x7F })
	_, err := ReadStreamFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported version")
}

func TestReadStreamFileDigestMismatch(t *testing.T) {
	// Digest 位於 magic(8) + version(2) + reserved(2) + uuid(16) + window(4) + count(8) 之後
	path := writeCorrupted(t, func(raw []byte) { raw[40] ^= 0xFF })
	_, err := ReadStreamFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "digest mismatch")
}

func writeCorrupted(t *testing.T, mutate func([]byte)) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corrupt.bin")
	_, err := WriteStreamFile([]skiplist.V{1, 2, 3}, 3, path)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	mutate(raw)
	require.NoError(t, os.WriteFile(path, raw, 0o644))
	return path
}
