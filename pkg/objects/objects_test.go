package objects

import (
	"strings"
	"testing"
)

func TestNewDigest_Deterministic(t *testing.T) {
	data := []byte("the same bytes")

	d1 := NewDigest(data)
	d2 := NewDigest(data)

	if d1 != d2 {
		t.Errorf("digests of identical bytes differ: %s vs %s", d1, d2)
	}
	if err := d1.Validate(); err != nil {
		t.Errorf("computed digest is invalid: %v", err)
	}
}

func TestNewDigest_DifferentContent(t *testing.T) {
	d1 := NewDigest([]byte("one"))
	d2 := NewDigest([]byte("two"))

	if d1 == d2 {
		t.Error("digests of different bytes must differ")
	}
}

func TestParseDigest(t *testing.T) {
	valid := strings.Repeat("ab", 32)

	d, err := ParseDigest(valid)
	if err != nil {
		t.Fatalf("ParseDigest(%q) failed: %v", valid, err)
	}
	if d.String() != valid {
		t.Errorf("parsed digest mismatch: %s", d)
	}

	tests := []struct {
		name  string
		input string
	}{
		{"too_short", "abcdef"},
		{"too_long", valid + "ab"},
		{"non_hex", strings.Repeat("zz", 32)},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseDigest(tt.input); err == nil {
				t.Errorf("ParseDigest(%q) should fail", tt.input)
			}
		})
	}
}

func TestDigest_Fanout(t *testing.T) {
	d := NewDigest([]byte("fanout"))

	prefix, rest := d.Fanout()
	if len(prefix) != FanoutLength {
		t.Errorf("prefix length: got %d, want %d", len(prefix), FanoutLength)
	}
	if prefix+rest != d.String() {
		t.Errorf("fanout does not reassemble: %s + %s != %s", prefix, rest, d)
	}
}

func TestDigest_Short(t *testing.T) {
	d := NewDigest([]byte("short"))

	short := d.Short()
	if len(short) != ShortDigestLength {
		t.Errorf("short digest length: got %d, want %d", len(short), ShortDigestLength)
	}
	if !short.Matches(d) {
		t.Error("short digest should match its full digest")
	}
}

func TestParseObjectKind(t *testing.T) {
	for _, kind := range AllKinds() {
		parsed, err := ParseObjectKind(kind.String())
		if err != nil {
			t.Errorf("ParseObjectKind(%q) failed: %v", kind, err)
		}
		if parsed != kind {
			t.Errorf("kind mismatch: got %s, want %s", parsed, kind)
		}
	}

	if _, err := ParseObjectKind("widget"); err == nil {
		t.Error("ParseObjectKind should reject unknown kinds")
	}
}

func TestObjectKind_RefPrefix(t *testing.T) {
	if got := IssueKind.RefPrefix(); got != "issues/" {
		t.Errorf("RefPrefix: got %q, want %q", got, "issues/")
	}
	if got := RemoteKind.RefPrefix(); got != "remotes/" {
		t.Errorf("RefPrefix: got %q, want %q", got, "remotes/")
	}
}

func TestCompressDecompress_RoundTrip(t *testing.T) {
	original := ObjectContent(strings.Repeat("compressible content ", 100))

	compressed, err := original.Compress()
	if err != nil {
		t.Fatalf("Compress failed: %v", err)
	}
	if compressed.Size() >= original.Size() {
		t.Errorf("repetitive content should shrink: %d -> %d", original.Size(), compressed.Size())
	}

	decompressed, err := compressed.Decompress()
	if err != nil {
		t.Fatalf("Decompress failed: %v", err)
	}
	if string(decompressed) != string(original) {
		t.Error("round trip does not reproduce original content")
	}
}

func TestDecompress_CorruptedStream(t *testing.T) {
	if _, err := CompressedData("not a deflate stream").Decompress(); err == nil {
		t.Error("Decompress should fail on damaged data")
	}
}

func TestSerializedObject_HeaderRoundTrip(t *testing.T) {
	content := ObjectContent(`{"id":"abc","title":"Fix login"}`)
	so := NewSerializedObject(IssueKind, content)

	kind, size, _, err := so.ParseHeader()
	if err != nil {
		t.Fatalf("ParseHeader failed: %v", err)
	}
	if kind != IssueKind {
		t.Errorf("kind: got %s, want %s", kind, IssueKind)
	}
	if size != content.Size() {
		t.Errorf("size: got %d, want %d", size, content.Size())
	}

	extracted, err := so.Content()
	if err != nil {
		t.Fatalf("Content failed: %v", err)
	}
	if string(extracted) != string(content) {
		t.Error("extracted content mismatch")
	}
}

func TestSerializedObject_KindAffectsDigest(t *testing.T) {
	content := ObjectContent(`{"id":"abc"}`)

	d1 := ComputeDigest(IssueKind, content)
	d2 := ComputeDigest(ProjectKind, content)

	if d1 == d2 {
		t.Error("same content under different kinds must produce different digests")
	}
}

func TestSerializedObject_InvalidHeaders(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"missing_null", "issue 12 no null here"},
		{"missing_space", "issue\x00content"},
		{"unknown_kind", "widget 7\x00content"},
		{"bad_size", "issue xx\x00content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, _, err := SerializedObject(tt.data).ParseHeader(); err == nil {
				t.Errorf("ParseHeader(%q) should fail", tt.data)
			}
		})
	}
}
