package middleware

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/gin-gonic/gin"
)

// Bodies below this size are rarely worth the CPU spent compressing them.
const brotliMinSize = 1024

// Brotli compresses response bodies for clients that advertise br
// support. Streaming endpoints bypass compression entirely: SSE needs
// every write on the wire immediately, and a WebSocket upgrade fails
// if the handshake response is wrapped.
func Brotli() gin.HandlerFunc {
	return BrotliLevel(brotli.DefaultCompression, brotliMinSize)
}

// BrotliLevel returns the compression middleware with an explicit
// quality (0..11) and minimum body size.
func BrotliLevel(quality, minSize int) gin.HandlerFunc {
	if quality < brotli.BestSpeed || quality > brotli.BestCompression {
		quality = brotli.DefaultCompression
	}
	if minSize <= 0 {
		minSize = brotliMinSize
	}

	return func(c *gin.Context) {
		if isStreaming(c.Request) || !acceptsBrotli(c.Request) {
			c.Next()
			return
		}

		c.Header("Vary", "Accept-Encoding")

		enc := &brEncoder{
			ResponseWriter: c.Writer,
			br:             brotli.NewWriterLevel(c.Writer, quality),
			minSize:        minSize,
		}
		c.Writer = enc
		c.Next()

		if err := enc.close(); err != nil {
			_ = c.Error(err)
		}
	}
}

// brEncoder stages body bytes until minSize is reached, then commits
// to compression. Once committed every byte goes through the brotli
// writer; bodies that never reach the threshold are sent verbatim.
type brEncoder struct {
	gin.ResponseWriter
	br      *brotli.Writer
	pending bytes.Buffer
	minSize int
	active  bool
	plain   bool
}

func (w *brEncoder) Write(p []byte) (int, error) {
	if w.active {
		return w.br.Write(p)
	}
	if w.plain {
		return w.ResponseWriter.Write(p)
	}

	w.pending.Write(p)
	if w.pending.Len() < w.minSize {
		return len(p), nil
	}

	// Threshold crossed: headers must change before the first byte
	// reaches the underlying writer.
	w.Header().Set("Content-Encoding", "br")
	w.Header().Del("Content-Length")
	w.active = true

	if _, err := w.br.Write(w.pending.Bytes()); err != nil {
		return len(p), err
	}
	w.pending.Reset()
	return len(p), nil
}

func (w *brEncoder) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

// Flush supports handlers that stream chunked responses. A body still
// below the threshold is committed uncompressed, since later chunks
// could no longer change the Content-Encoding header.
func (w *brEncoder) Flush() {
	if w.active {
		_ = w.br.Flush()
	} else {
		w.plain = true
		if w.pending.Len() > 0 {
			_, _ = w.ResponseWriter.Write(w.pending.Bytes())
			w.pending.Reset()
		}
	}
	w.ResponseWriter.Flush()
}

func (w *brEncoder) close() error {
	if w.active {
		return w.br.Close()
	}
	if w.pending.Len() == 0 {
		return nil
	}
	_, err := w.ResponseWriter.Write(w.pending.Bytes())
	w.pending.Reset()
	return err
}

func isStreaming(r *http.Request) bool {
	if strings.EqualFold(r.Header.Get("Upgrade"), "websocket") {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "text/event-stream")
}

func acceptsBrotli(r *http.Request) bool {
	for _, enc := range strings.Split(r.Header.Get("Accept-Encoding"), ",") {
		enc = strings.TrimSpace(enc)
		if i := strings.IndexByte(enc, ';'); i >= 0 {
			enc = enc[:i]
		}
		if strings.EqualFold(enc, "br") {
			return true
		}
	}
	return false
}
