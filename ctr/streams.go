package ctr

import (
	"errors"
	"io"
)

// NewWriter returns an io.Writer which encrypts (or decrypts) whatever is written to it with the stream and writes the
// result to w.
//
// To avoid modifying the written slices in-place, the writer copies the data before transforming it. If a Write call
// returns an error, the stream is out of sync with w and must be discarded.
func NewWriter(s *Stream, w io.Writer) io.Writer {
	return &cryptWriter{s: s, w: w, buf: nil}
}

// NewReader returns an io.Reader which encrypts (or decrypts) whatever is read from r with the stream. The transform
// is applied in-place to the caller's buffer.
func NewReader(s *Stream, r io.Reader) io.Reader {
	return &cryptReader{s: s, r: r}
}

type cryptWriter struct {
	s   *Stream
	w   io.Writer
	buf []byte
}

func (c *cryptWriter) Write(p []byte) (n int, err error) {
	c.buf = append(c.buf[:0], p...)
	c.s.XORKeyStream(c.buf, c.buf)
	for n < len(c.buf) {
		nn, err := c.w.Write(c.buf[n:])
		n += nn
		if err != nil && !errors.Is(err, io.ErrShortWrite) {
			return n, err
		}
	}
	return n, nil
}

type cryptReader struct {
	s *Stream
	r io.Reader
}

func (c *cryptReader) Read(p []byte) (n int, err error) {
	n, err = c.r.Read(p)
	c.s.XORKeyStream(p[:n], p[:n])
	return n, err
}
