package server

import (
	"encoding/base64"
	"errors"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var (
	errNoPhoto       = errors.New("photo is required")
	errPhotoTooBig   = errors.New("photo is too large")
	errPhotoNotImage = errors.New("photo must be an image")
)

// decodePhotoData accepts a data URL or bare base64 string.
func decodePhotoData(data string) ([]byte, error) {
	data = strings.TrimSpace(data)
	if data == "" {
		return nil, errNoPhoto
	}
	parts := strings.SplitN(data, ",", 2)
	if len(parts) == 2 {
		data = parts[1]
	}
	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, err
	}
	return decoded, nil
}

// checkPhoto enforces the size limit and sniffs the content type. The
// detected type is returned, the client-supplied one is never trusted.
func checkPhoto(data []byte, maxBytes int) (string, error) {
	if len(data) == 0 {
		return "", errNoPhoto
	}
	if maxBytes > 0 && len(data) > maxBytes {
		return "", errPhotoTooBig
	}
	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", errPhotoNotImage
	}
	return mtype.String(), nil
}
