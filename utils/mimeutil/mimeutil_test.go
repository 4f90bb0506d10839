package mimeutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromExtension(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     string
	}{
		{name: "png", filename: "photo.png", want: "image/png"},
		{name: "jpg lowercase", filename: "photo.jpg", want: "image/jpeg"},
		{name: "jpg uppercase", filename: "photo.JPG", want: "image/jpeg"},
		{name: "jpeg", filename: "photo.jpeg", want: "image/jpeg"},
		{name: "gif", filename: "anim.gif", want: "image/gif"},
		{name: "webp", filename: "pic.webp", want: "image/webp"},
		{name: "unknown extension", filename: "blob.xyz", want: FallbackType},
		{name: "no extension", filename: "README", want: FallbackType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromExtension(tt.filename))
		})
	}
}
