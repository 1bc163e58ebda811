// Package ffmpeg provides utilities for locating and invoking the FFmpeg CLI.
package ffmpeg

import "strings"

// CommonFormats lists the audio container/codec extensions FFmpeg builds
// commonly support. Actual support depends on the local FFmpeg installation.
var CommonFormats = []string{
	// Lossy formats
	".mp3", ".aac", ".ogg", ".opus", ".m4a", ".wma", ".vorbis",
	// Lossless formats
	".flac", ".wav", ".aiff", ".alac", ".ape", ".wv",
	// Other formats
	".ac3", ".amr", ".au", ".mid", ".mka", ".ra", ".shn",
}

// nonAudioExtensions are extensions that are definitely not audio. Anything
// else with an unknown extension is handed to FFmpeg, which decides whether
// it can decode it.
var nonAudioExtensions = map[string]bool{
	".txt":  true,
	".jpg":  true,
	".png":  true,
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".exe":  true,
	".zip":  true,
}

var commonFormatSet = func() map[string]bool {
	set := make(map[string]bool, len(CommonFormats))
	for _, ext := range CommonFormats {
		set[ext] = true
	}
	return set
}()

// NormalizeFormat converts a user-supplied format name into a lowercase
// dotted extension: "MP3" -> ".mp3", ".Flac" -> ".flac".
// Returns an empty string for empty input.
func NormalizeFormat(format string) string {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		return ""
	}
	if !strings.HasPrefix(format, ".") {
		format = "." + format
	}
	return format
}

// IsCommonFormat reports whether ext (dotted, lowercase) is in the list of
// commonly supported audio formats.
func IsCommonFormat(ext string) bool {
	return commonFormatSet[NormalizeFormat(ext)]
}

// LikelyAudioFile reports whether a file with the given extension is worth
// handing to FFmpeg. Known audio extensions pass, known non-audio extensions
// are rejected, and unknown extensions pass so FFmpeg can make the call.
// Files without an extension are rejected.
func LikelyAudioFile(ext string) bool {
	ext = strings.ToLower(ext)
	if ext == "" {
		return false
	}
	if commonFormatSet[ext] {
		return true
	}
	return !nonAudioExtensions[ext]
}
