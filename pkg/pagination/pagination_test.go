package pagination

import (
	"encoding/base64"
	"testing"
)

func TestNormalizeLimit(t *testing.T) {
	cases := map[int]int{0: DefaultLimit, -5: DefaultLimit, 10: 10, MaxLimit + 1: MaxLimit}
	for in, want := range cases {
		if got := NormalizeLimit(in); got != want {
			t.Fatalf("NormalizeLimit(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestCursorRoundTrip(t *testing.T) {
	encoded := EncodeCursor(Cursor{AfterID: 42})
	cursor, err := ParseCursor(encoded)
	if err != nil {
		t.Fatalf("parse cursor: %v", err)
	}
	if cursor == nil || cursor.AfterID != 42 {
		t.Fatalf("unexpected cursor %+v", cursor)
	}
}

func TestParseCursorEmptyAndInvalid(t *testing.T) {
	if cursor, err := ParseCursor("  "); err != nil || cursor != nil {
		t.Fatalf("expected nil cursor for empty input, got %+v (%v)", cursor, err)
	}
	for _, bad := range []string{
		"%%%",
		base64.RawURLEncoding.EncodeToString([]byte("before:3")),
		base64.RawURLEncoding.EncodeToString([]byte("after:abc")),
		base64.RawURLEncoding.EncodeToString([]byte("after:0")),
	} {
		if _, err := ParseCursor(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
