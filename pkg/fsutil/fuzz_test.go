package fsutil_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/figmark/pkg/fsutil"
)

func FuzzWriteAtomicIfChanged(f *testing.F) {
	f.Add([]byte(""), []byte("x"))
	f.Add([]byte("<p>a</p>\n"), []byte("<p>a</p>\n"))
	f.Add([]byte("\x00\x01"), make([]byte, 1024))

	f.Fuzz(func(t *testing.T, first, second []byte) {
		ctx := context.Background()
		path := filepath.Join(t.TempDir(), "out.html")

		if err := fsutil.WriteAtomic(ctx, path, first, 0); err != nil {
			t.Fatalf("WriteAtomic failed: %v", err)
		}

		written, err := fsutil.WriteAtomicIfChanged(ctx, path, second, 0)
		if err != nil {
			t.Fatalf("WriteAtomicIfChanged failed: %v", err)
		}
		if written == bytes.Equal(first, second) {
			t.Errorf("written = %v for equal = %v", written, bytes.Equal(first, second))
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile failed: %v", err)
		}
		if !bytes.Equal(got, second) {
			t.Errorf("content = %q, want %q", got, second)
		}
	})
}
