package datastream

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"github.com/Hakuto4838/RankList.git/skiplist"
)

// 檔案格式（LittleEndian）：
// [8]byte  Magic: "RWBENCH1"
// uint16   Version: 2
// uint16   Reserved: 0
// [16]byte FileID (UUID)
// uint32   Window
// uint64   Count
// uint64   Digest: 未壓縮 payload 的 XXH64
// 其餘為 zstd frame，解壓後為 Count 筆 float64
var (
	streamMagic   = [8]byte{'R', 'W', 'B', 'E', 'N', 'C', 'H', '1'}
	streamVersion = uint16(2)
)

const maxStreamCount = 1 << 32 // 讀取時的合理上限，避免損壞的 Count 造成巨量配置

type StreamFile struct {
	ID     uuid.UUID
	Window int
	Values []skiplist.V
}

// ToSequenceModel 將檔案內容包成可重播的序列模型
func (sf *StreamFile) ToSequenceModel() *SequenceModel {
	return NewSequenceModelFromValues(sf.Values)
}

// WriteStreamFile 將數值序列與視窗大小寫入 bin 檔，回傳檔案的識別 UUID
func WriteStreamFile(values []skiplist.V, window int, filename string) (uuid.UUID, error) {
	if window <= 0 {
		return uuid.Nil, fmt.Errorf("invalid window: %d", window)
	}

	file, err := os.Create(filename)
	if err != nil {
		return uuid.Nil, err
	}
	defer file.Close()

	payload := make([]byte, 8*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint64(payload[8*i:], math.Float64bits(v))
	}

	id := uuid.New()

	// Header
	if _, err := file.Write(streamMagic[:]); err != nil {
		return uuid.Nil, err
	}
	if err := binary.Write(file, binary.LittleEndian, streamVersion); err != nil {
		return uuid.Nil, err
	}
	if err := binary.Write(file, binary.LittleEndian, uint16(0)); err != nil { // reserved
		return uuid.Nil, err
	}
	if _, err := file.Write(id[:]); err != nil {
		return uuid.Nil, err
	}
	if err := binary.Write(file, binary.LittleEndian, uint32(window)); err != nil {
		return uuid.Nil, err
	}
	if err := binary.Write(file, binary.LittleEndian, uint64(len(values))); err != nil {
		return uuid.Nil, err
	}
	if err := binary.Write(file, binary.LittleEndian, xxhash.Sum64(payload)); err != nil {
		return uuid.Nil, err
	}

	// Payload（zstd 壓縮）
	zw, err := zstd.NewWriter(file)
	if err != nil {
		return uuid.Nil, err
	}
	if _, err := zw.Write(payload); err != nil {
		zw.Close()
		return uuid.Nil, err
	}
	if err := zw.Close(); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// WriteStreamFileFromStream 自 ValueStream 取 k 筆值寫入 bin 檔
func WriteStreamFileFromStream(gen ValueStream, k, window int, filename string) (uuid.UUID, error) {
	if gen == nil {
		return uuid.Nil, errors.New("nil ValueStream")
	}
	if k < 0 {
		return uuid.Nil, fmt.Errorf("invalid k: %d", k)
	}
	values := make([]skiplist.V, k)
	for i := 0; i < k; i++ {
		values[i] = gen.Next()
	}
	return WriteStreamFile(values, window, filename)
}

// ReadStreamFile 讀取並驗證 bin 檔（magic、version、XXH64 digest）
func ReadStreamFile(filename string) (*StreamFile, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var magic [8]byte
	if _, err := io.ReadFull(file, magic[:]); err != nil {
		return nil, fmt.Errorf("read magic: %w", err)
	}
	if magic != streamMagic {
		return nil, fmt.Errorf("bad magic: %q", magic[:])
	}

	var version, reserved uint16
	if err := binary.Read(file, binary.LittleEndian, &version); err != nil {
		return nil, fmt.Errorf("read version: %w", err)
	}
	if version != streamVersion {
		return nil, fmt.Errorf("unsupported version: %d", version)
	}
	if err := binary.Read(file, binary.LittleEndian, &reserved); err != nil {
		return nil, fmt.Errorf("read reserved: %w", err)
	}

	var id uuid.UUID
	if _, err := io.ReadFull(file, id[:]); err != nil {
		return nil, fmt.Errorf("read file id: %w", err)
	}

	var window uint32
	var count, digest uint64
	if err := binary.Read(file, binary.LittleEndian, &window); err != nil {
		return nil, fmt.Errorf("read window: %w", err)
	}
	if err := binary.Read(file, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("read count: %w", err)
	}
	if count > maxStreamCount {
		return nil, fmt.Errorf("unreasonable count: %d", count)
	}
	if err := binary.Read(file, binary.LittleEndian, &digest); err != nil {
		return nil, fmt.Errorf("read digest: %w", err)
	}

	zr, err := zstd.NewReader(file)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	payload := make([]byte, 8*count)
	if _, err := io.ReadFull(zr, payload); err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	if got := xxhash.Sum64(payload); got != digest {
		return nil, fmt.Errorf("digest mismatch: got %x, want %x", got, digest)
	}

	values := make([]skiplist.V, count)
	for i := range values {
		values[i] = math.Float64frombits(binary.LittleEndian.Uint64(payload[8*i:]))
	}

	return &StreamFile{
		ID:     id,
		Window: int(window),
		Values: values,
	}, nil
}
