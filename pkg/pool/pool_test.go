package pool

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newBufferPool() *Pool[*bytes.Buffer] {
	return New(
		func() *bytes.Buffer { return new(bytes.Buffer) },
		func(b *bytes.Buffer) { b.Reset() },
	)
}

func TestPool_ResetsOnPut(t *testing.T) {
	p := newBufferPool()

	buf := p.Get()
	buf.WriteString("room")
	p.Put(buf)

	again := p.Get()
	assert.Zero(t, again.Len())
	p.Put(again)
}

func TestPool_Stats(t *testing.T) {
	p := newBufferPool()

	a := p.Get()
	b := p.Get()
	stats := p.Stats()
	assert.Equal(t, int64(2), stats.Gets)
	assert.Equal(t, int64(2), stats.InUse)
	assert.GreaterOrEqual(t, stats.Allocated, int64(2))

	p.Put(a)
	p.Put(b)
	assert.Zero(t, p.Stats().InUse)
}

func TestPool_KeepDropsObjects(t *testing.T) {
	p := newBufferPool().WithKeep(func(b *bytes.Buffer) bool { return b.Cap() <= 16 })

	big := p.Get()
	big.Grow(1024)
	p.Put(big)

	small := p.Get()
	p.Put(small)

	assert.Equal(t, int64(1), p.Stats().Dropped)
}

func TestPool_Concurrent(t *testing.T) {
	p := newBufferPool()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				buf := p.Get()
				buf.WriteString("exhibit")
				p.Put(buf)
			}
		}()
	}
	wg.Wait()

	stats := p.Stats()
	assert.Equal(t, int64(800), stats.Gets)
	assert.Zero(t, stats.InUse)
}

func BenchmarkPool_GetPut(b *testing.B) {
	p := newBufferPool()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		buf := p.Get()
		buf.WriteString("wall")
		p.Put(buf)
	}
}
