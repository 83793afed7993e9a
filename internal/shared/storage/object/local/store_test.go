package local

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"resume-builder/internal/shared/util"
)

func TestPutAndOpen(t *testing.T) {
	store := New(t.TempDir())
	ctx := context.Background()

	obj, err := store.Put(ctx, "guest:abc", "Ada_Lovelace_Resume.docx", "application/octet-stream", bytes.NewReader([]byte("payload")))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if obj.Size != 7 || obj.ContentType != "application/octet-stream" {
		t.Fatalf("unexpected object %+v", obj)
	}
	if !strings.HasPrefix(obj.Key, util.OwnerKey("guest:abc")+"/") || !strings.HasSuffix(obj.Key, "_Ada_Lovelace_Resume.docx") {
		t.Fatalf("unexpected key %s", obj.Key)
	}

	rc, err := store.Open(ctx, obj.Key)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()
	got, _ := io.ReadAll(rc)
	if string(got) != "payload" {
		t.Fatalf("unexpected content %q", got)
	}
}

func TestOpenRejectsTraversal(t *testing.T) {
	store := New(t.TempDir())
	if _, err := store.Open(context.Background(), "../../etc/passwd"); err == nil {
		t.Fatalf("expected traversal to be rejected")
	}
	if _, err := store.Put(context.Background(), "guest:a", "../x", "text/plain", strings.NewReader("x")); err == nil {
		t.Fatalf("expected invalid file name")
	}
}
