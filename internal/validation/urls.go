package validation

import (
	"errors"
	"regexp"
	"strings"

	"github.com/onchainreach/creator-hub/internal/models"
)

// ErrInvalidURL is returned when a content URL does not have the shape its
// platform requires
var ErrInvalidURL = errors.New("invalid content url")

type postPattern struct {
	re      *regexp.Regexp
	message string
}

// postPatterns maps platforms with a known post URL shape to their pattern.
// The last capture group is the platform post id.
var postPatterns = map[string]postPattern{
	models.PlatformTwitter: {
		re:      regexp.MustCompile(`(?i)(?:twitter\.com|x\.com)/(\w+)/status/(\d+)`),
		message: "URL must be a valid Twitter/X tweet URL (e.g., https://twitter.com/username/status/123456789)",
	},
	models.PlatformFarcaster: {
		re:      regexp.MustCompile(`(?i)warpcast\.com/(~/cast|[\w.-]+)/(0x[0-9a-f]+)`),
		message: "URL must be a valid Warpcast cast URL (e.g., https://warpcast.com/username/0x1a2b3c4d)",
	},
	models.PlatformLens: {
		re:      regexp.MustCompile(`(?i)hey\.xyz/posts/([\w-]+)`),
		message: "URL must be a valid Lens post URL (e.g., https://hey.xyz/posts/0x01-0x02)",
	},
}

// ParsePostURL extracts the platform post id from rawURL. known is false
// when the platform has no recognised URL shape.
func ParsePostURL(platform, rawURL string) (postID string, ok bool, known bool) {
	pattern, known := postPatterns[strings.ToLower(platform)]
	if !known {
		return "", false, false
	}

	match := pattern.re.FindStringSubmatch(strings.TrimSpace(rawURL))
	if match == nil {
		return "", false, true
	}
	return match[len(match)-1], true, true
}

// ParseTweetURL extracts the tweet id from a twitter.com or x.com status URL
func ParseTweetURL(rawURL string) (string, bool) {
	id, ok, _ := ParsePostURL(models.PlatformTwitter, rawURL)
	return id, ok
}

func formatError(platform string) string {
	if pattern, ok := postPatterns[platform]; ok {
		return pattern.message
	}
	return "URL is not a valid post URL"
}
