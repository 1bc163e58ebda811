package ffmpeg

import "strconv"

// DefaultQuality is the VBR quality used when the caller does not specify one.
// The scale is 0-10; the meaning of each step is codec-specific.
const DefaultQuality = 5

// codecArgs maps a dotted output extension to the FFmpeg encoder arguments
// that produce it. Formats with a "-q:a" pair accept a quality substitution.
var codecArgs = map[string][]string{
	".mp3":  {"-c:a", "libmp3lame", "-q:a", "4"},
	".ogg":  {"-c:a", "libvorbis", "-q:a", "5"},
	".opus": {"-c:a", "libopus", "-b:a", "128k"},
	".m4a":  {"-c:a", "aac", "-b:a", "192k"},
	".flac": {"-c:a", "flac"},
	".wav":  {"-c:a", "pcm_s16le"},
	".aac":  {"-c:a", "aac", "-b:a", "192k"},
	".wma":  {"-c:a", "wmav2", "-b:a", "192k"},
	".alac": {"-c:a", "alac"},
}

// CodecArgs returns the encoder arguments for the given output format,
// with the quality value substituted where the codec supports VBR quality.
// Unknown formats fall back to stream copy and let FFmpeg pick defaults
// for the container.
func CodecArgs(format string, quality int) []string {
	args, ok := codecArgs[NormalizeFormat(format)]
	if !ok {
		return []string{"-c:a", "copy"}
	}

	// Copy before mutating: the map values are shared.
	out := make([]string, len(args))
	copy(out, args)

	if quality < 0 {
		quality = DefaultQuality
	}
	for i := 0; i < len(out)-1; i++ {
		if out[i] == "-q:a" {
			out[i+1] = strconv.Itoa(quality)
			break
		}
	}
	return out
}

// SupportsQuality reports whether the encoder for format accepts the
// 0-10 VBR quality scale.
func SupportsQuality(format string) bool {
	args, ok := codecArgs[NormalizeFormat(format)]
	if !ok {
		return false
	}
	for _, a := range args {
		if a == "-q:a" {
			return true
		}
	}
	return false
}
