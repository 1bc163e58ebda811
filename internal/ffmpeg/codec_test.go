package ffmpeg

import (
	"reflect"
	"testing"
)

func TestCodecArgs(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		quality int
		want    []string
	}{
		{
			name:    "mp3 with quality substitution",
			format:  "mp3",
			quality: 2,
			want:    []string{"-c:a", "libmp3lame", "-q:a", "2"},
		},
		{
			name:    "ogg with quality substitution",
			format:  ".ogg",
			quality: 8,
			want:    []string{"-c:a", "libvorbis", "-q:a", "8"},
		},
		{
			name:    "negative quality falls back to default",
			format:  "ogg",
			quality: -1,
			want:    []string{"-c:a", "libvorbis", "-q:a", "5"},
		},
		{
			name:    "opus ignores quality",
			format:  "opus",
			quality: 9,
			want:    []string{"-c:a", "libopus", "-b:a", "128k"},
		},
		{
			name:    "flac has no quality knob",
			format:  "FLAC",
			quality: 3,
			want:    []string{"-c:a", "flac"},
		},
		{
			name:    "wav is pcm",
			format:  "wav",
			quality: 5,
			want:    []string{"-c:a", "pcm_s16le"},
		},
		{
			name:    "unknown format falls back to stream copy",
			format:  "mka",
			quality: 5,
			want:    []string{"-c:a", "copy"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CodecArgs(tt.format, tt.quality)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CodecArgs(%q, %d) = %v, want %v", tt.format, tt.quality, got, tt.want)
			}
		})
	}
}

func TestCodecArgsDoesNotMutateMap(t *testing.T) {
	// Two calls with different qualities must not see each other's values.
	first := CodecArgs("mp3", 1)
	second := CodecArgs("mp3", 9)

	if first[3] != "1" {
		t.Errorf("first call quality = %s, want 1", first[3])
	}
	if second[3] != "9" {
		t.Errorf("second call quality = %s, want 9", second[3])
	}
}

func TestSupportsQuality(t *testing.T) {
	tests := []struct {
		format string
		want   bool
	}{
		{"mp3", true},
		{"ogg", true},
		{"opus", false},
		{"flac", false},
		{"m4a", false},
		{"unknown", false},
	}

	for _, tt := range tests {
		if got := SupportsQuality(tt.format); got != tt.want {
			t.Errorf("SupportsQuality(%q) = %v, want %v", tt.format, got, tt.want)
		}
	}
}
