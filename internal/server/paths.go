package server

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"photo-hunt/internal/db"
)

const defaultPhotoExtension = "jpg"

// photoExtension takes the extension from the uploaded filename and falls
// back to jpg when there is none usable.
func photoExtension(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	idx := strings.LastIndex(base, ".")
	if idx < 0 || idx == len(base)-1 {
		return defaultPhotoExtension
	}
	ext := strings.ToLower(base[idx+1:])
	if len(ext) > 8 {
		return defaultPhotoExtension
	}
	for _, r := range ext {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return defaultPhotoExtension
		}
	}
	return ext
}

// servablePhotoKey rejects keys that could escape the bucket. Only whole
// "." or ".." segments count; names like "Wait..." are fine.
func servablePhotoKey(key string) bool {
	if key == "" || key == db.PhotoPending {
		return false
	}
	for _, segment := range strings.Split(key, "/") {
		if segment == "" || segment == "." || segment == ".." {
			return false
		}
	}
	return true
}

// photoPath is the blob key for a claim photo:
// <gameCode>/<teamName>/<keywordId>/<claimId>.<ext>
func photoPath(gameCode, teamName string, keywordID, claimID uint, filename string) string {
	return fmt.Sprintf("%s/%s/%d/%d.%s", gameCode, teamName, keywordID, claimID, photoExtension(filename))
}

func (s *Server) photoURL(key string) string {
	if key == "" || key == db.PhotoPending {
		return ""
	}
	segments := strings.Split(key, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	escaped := strings.Join(segments, "/")
	if s.cfg.PhotoBaseURL != "" {
		return s.cfg.PhotoBaseURL + "/" + escaped
	}
	return "/photos/" + escaped
}

func (s *Server) publicGameURL(code string) string {
	return s.cfg.PublicBaseURL + "/g/" + url.PathEscape(code)
}
