package fonts

import (
	"encoding/base64"
	"testing"
)

func TestSource(t *testing.T) {
	a, err := Source()
	if err != nil {
		t.Fatalf("Source() error = %v", err)
	}
	b, _ := Source()
	if a != b {
		t.Error("Source() should return the shared instance")
	}
}

func TestFace(t *testing.T) {
	face, err := Face(24)
	if err != nil {
		t.Fatalf("Face() error = %v", err)
	}
	if face.Size() != 24 {
		t.Errorf("Size() = %v, want 24", face.Size())
	}
	if face.Advance("(2, 2)") <= 0 {
		t.Error("Advance() should be positive")
	}
}

func TestRegularTTFBase64(t *testing.T) {
	got, err := base64.StdEncoding.DecodeString(RegularTTFBase64())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != len(RegularTTF()) {
		t.Errorf("decoded %d bytes, want %d", len(got), len(RegularTTF()))
	}
}
