// Package pool provides a pooled byte buffer used to assemble chunk payloads
// on the write path, adapted from the grounding library's internal/pool
// package. The read path does not use it: the reader allocates each chunk's
// payload and decompressed buffer afresh. Unlike
// the teacher's two-tier blob/blob-set pools, this format has only one unit
// of I/O (the chunk), so a single pool tier suffices.
package pool

import "sync"

// ChunkBufferDefaultSize is the initial capacity handed out by the chunk
// buffer pool. It comfortably holds one default-capacity (4096-record)
// chunk of packed 26-byte records without growing.
const ChunkBufferDefaultSize = 4096 * 26

// ChunkBufferMaxThreshold is the largest buffer the pool will retain for
// reuse; larger buffers are discarded after use to avoid memory bloat from
// one oversized chunk pinning a large allocation forever.
const ChunkBufferMaxThreshold = 16 * ChunkBufferDefaultSize

// ByteBuffer is a growable byte slice wrapper suitable for pooling.
type ByteBuffer struct {
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the given initial capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{B: make([]byte, 0, defaultSize)}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset empties the buffer while retaining its allocated memory.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// ExtendOrGrow extends the buffer's length by n bytes, growing the backing
// array first if there isn't enough spare capacity.
func (bb *ByteBuffer) ExtendOrGrow(n int) {
	curLen := len(bb.B)
	if cap(bb.B)-curLen >= n {
		bb.B = bb.B[:curLen+n]
		return
	}

	newBuf := make([]byte, curLen, curLen+n)
	copy(newBuf, bb.B)
	bb.B = newBuf[:curLen+n]
}

// Write appends data to the buffer, growing it as needed.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// ByteBufferPool pools ByteBuffers to minimize allocations on hot read/write paths.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a ByteBufferPool handing out buffers of defaultSize
// and discarding (rather than retaining) any buffer larger than maxThreshold.
func NewByteBufferPool(defaultSize, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any { return NewByteBuffer(defaultSize) },
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (p *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := p.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse, discarding it instead if its
// capacity exceeds the pool's max threshold.
func (p *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if p.maxThreshold > 0 && cap(bb.B) > p.maxThreshold {
		return
	}

	bb.Reset()
	p.pool.Put(bb)
}

var chunkBufferPool = NewByteBufferPool(ChunkBufferDefaultSize, ChunkBufferMaxThreshold)

// GetChunkBuffer retrieves a ByteBuffer from the default chunk buffer pool.
func GetChunkBuffer() *ByteBuffer {
	return chunkBufferPool.Get()
}

// PutChunkBuffer returns a ByteBuffer to the default chunk buffer pool.
func PutChunkBuffer(bb *ByteBuffer) {
	chunkBufferPool.Put(bb)
}
