package ringbuffer

import (
	"bytes"
	"fmt"
	"io"
	"sync"
	"testing"

	"github.com/hashbrr/hashbrr/internal/sha1"
)

func TestRingBuffer_Read(t *testing.T) {
	t.Run("Read from empty buffer", func(t *testing.T) {
		rb := New(10)
		buf := make([]byte, 5)
		go func() {
			// Simulate a delayed write
			rb.Write([]byte("hello"))
		}()
		n, err := rb.Read(buf)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if n != 5 || string(buf) != "hello" {
			t.Errorf("Expected to read %q, got %q", "hello", string(buf))
		}
	})

	t.Run("Read from buffer with data", func(t *testing.T) {
		rb := New(10)
		rb.Write([]byte("hello"))
		buf := make([]byte, 5)
		n, err := rb.Read(buf)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if n != 5 || string(buf) != "hello" {
			t.Errorf("Expected to read 'hello', got '%s'", string(buf))
		}
	})

	t.Run("Read with buffer wrap-around", func(t *testing.T) {
		rb := New(10)
		rb.Write([]byte("abcdefghij")) // Fill the buffer
		rb.Read(make([]byte, 5))       // Read first 5 bytes
		rb.Write([]byte("12345"))      // Write more data, causing wrap-around

		expected := "fghij12345"
		buf := make([]byte, len(expected))
		n, err := rb.Read(buf)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		if n != len(expected) || string(buf) != expected {
			t.Errorf("Expected to read '%s', got '%s'", expected, string(buf))
		}
	})

	t.Run("Read after writer closed", func(t *testing.T) {
		rb := New(10)
		rb.Write([]byte("hello"))
		rb.CloseWriter()

		buf := make([]byte, 5)
		n, err := rb.Read(buf)
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if n != 5 || string(buf) != "hello" {
			t.Errorf("Expected to read 'hello', got '%s'", string(buf))
		}

		// Attempt to read again, should return EOF
		n, err = rb.Read(buf)
		if err != io.EOF {
			t.Errorf("Expected EOF, got %v", err)
		}
		if n != 0 {
			t.Errorf("Expected 0 bytes read, got %d", n)
		}
	})
}

func TestRingBuffer_Write(t *testing.T) {
	t.Run("Write to full buffer blocks until read", func(t *testing.T) {
		rb := New(5)
		if _, err := rb.Write([]byte("hello")); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}

		done := make(chan struct{})
		go func() {
			defer close(done)
			if _, err := rb.Write([]byte("world")); err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		}()

		buf := make([]byte, 5)
		if _, err := rb.Read(buf); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		<-done

		if _, err := rb.Read(buf); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if string(buf) != "world" {
			t.Errorf("Expected to read 'world', got '%s'", string(buf))
		}
	})

	t.Run("Write after close returns stored error", func(t *testing.T) {
		rb := New(5)
		rb.CloseWithError(io.EOF)
		if _, err := rb.Write([]byte("x")); err != io.EOF {
			t.Errorf("Expected EOF, got %v", err)
		}
	})

	t.Run("Len reports buffered bytes", func(t *testing.T) {
		rb := New(8)
		rb.Write([]byte("abc"))
		if rb.Len() != 3 {
			t.Errorf("Expected Len 3, got %d", rb.Len())
		}
		if rb.Size() != 8 {
			t.Errorf("Expected Size 8, got %d", rb.Size())
		}
		rb.Write([]byte("defgh"))
		if rb.Len() != 8 {
			t.Errorf("Expected Len 8 when full, got %d", rb.Len())
		}
	})
}

// TestRingBuffer_Pipeline runs the ring the way the stream hashing path
// does: a producer goroutine fills via ReadFrom while WriteTo drains
// into a hash engine. The ring is much smaller than the stream, forcing
// wrap-around and blocking on both sides.
func TestRingBuffer_Pipeline(t *testing.T) {
	input := bytes.Repeat([]byte("0123456789abcdef"), 4096)
	want := fmt.Sprintf("%x", sha1.Sum20(input))

	rb := New(1024)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, err := rb.ReadFrom(bytes.NewReader(input)); err != nil {
			t.Errorf("ReadFrom failed: %v", err)
		}
		rb.CloseWriter()
	}()

	h := sha1.New()
	n, err := rb.WriteTo(h)
	if err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	wg.Wait()

	if n != int64(len(input)) {
		t.Errorf("Expected %d bytes drained, got %d", len(input), n)
	}
	if got := fmt.Sprintf("%x", h.Sum(nil)); got != want {
		t.Errorf("Pipelined digest = %q, want %q", got, want)
	}
}

func TestRingBuffer_Reset(t *testing.T) {
	rb := New(10)
	rb.Write([]byte("hello"))
	rb.CloseWriter()
	rb.Reset()

	// Reusable after Reset
	if _, err := rb.Write([]byte("again")); err != nil {
		t.Fatalf("Unexpected error after Reset: %v", err)
	}
	buf := make([]byte, 5)
	if _, err := rb.Read(buf); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if string(buf) != "again" {
		t.Errorf("Expected to read 'again', got '%s'", string(buf))
	}
}
