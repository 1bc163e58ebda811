package ffmpeg

import "testing"

func TestNormalizeFormat(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"mp3", ".mp3"},
		{".mp3", ".mp3"},
		{"MP3", ".mp3"},
		{" .Flac ", ".flac"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeFormat(tt.in); got != tt.want {
			t.Errorf("NormalizeFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLikelyAudioFile(t *testing.T) {
	tests := []struct {
		name string
		ext  string
		want bool
	}{
		{"known audio extension", ".mp3", true},
		{"known audio extension uppercase", ".FLAC", true},
		{"known non-audio extension", ".txt", false},
		{"image extension", ".png", false},
		{"archive extension", ".zip", false},
		{"unknown extension is left to ffmpeg", ".weird", true},
		{"no extension", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LikelyAudioFile(tt.ext); got != tt.want {
				t.Errorf("LikelyAudioFile(%q) = %v, want %v", tt.ext, got, tt.want)
			}
		})
	}
}

func TestIsCommonFormat(t *testing.T) {
	if !IsCommonFormat("ogg") {
		t.Error("IsCommonFormat(ogg) should be true")
	}
	if !IsCommonFormat(".opus") {
		t.Error("IsCommonFormat(.opus) should be true")
	}
	if IsCommonFormat(".txt") {
		t.Error("IsCommonFormat(.txt) should be false")
	}
}
