// Package bytestream adapts the two chunk-producer shapes upload
// sources come in (a pull function handing out the next chunk, and a
// push channel of chunks) to io.Reader, so the storage layer depends
// on exactly one streaming contract.
package bytestream

import "io"

// ChunkFunc returns the next chunk of at most n bytes. An empty chunk
// with a nil error marks the end of the stream.
type ChunkFunc func(n int) ([]byte, error)

type chunkReader struct {
	next ChunkFunc
	buf  []byte
	done bool
}

// NewChunkReader wraps a pull-shaped producer.
func NewChunkReader(next ChunkFunc) io.Reader {
	return &chunkReader{next: next}
}

func (r *chunkReader) Read(p []byte) (int, error) {
	for len(r.buf) == 0 {
		if r.done {
			return 0, io.EOF
		}

		chunk, err := r.next(len(p))
		if err != nil {
			return 0, err
		}
		if len(chunk) == 0 {
			r.done = true
			return 0, io.EOF
		}
		r.buf = chunk
	}

	n := copy(p, r.buf)
	r.buf = r.buf[n:]
	return n, nil
}

type chanReader struct {
	ch  <-chan []byte
	buf []byte
}

// NewChanReader wraps a push-shaped producer. The stream ends when the
// channel is closed.
func NewChanReader(ch <-chan []byte) io.Reader {
	return &chanReader{ch: ch}
}

func (r *chanReader) Read(p []byte) (int, error) {
	for len(r.buf) == 0 {
		chunk, ok := <-r.ch
		if !ok {
			return 0, io.EOF
		}
		r.buf = chunk
	}

	n := copy(p, r.buf)
	r.buf = r.buf[n:]
	return n, nil
}
