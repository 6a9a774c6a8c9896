package metadata

import "testing"

func TestExtractRejectsNonImages(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"garbage", []byte("not an image at all")},
		{"truncated jpeg header", []byte{0xFF, 0xD8, 0xFF}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Extract(tt.data); err == nil {
				t.Error("Extract() expected error for non-EXIF input")
			}
		})
	}
}
