// Package loader implements the asynchronous asset loading service.
//
// This file contains image decoding. Assets whose key carries a known image
// extension are decoded after the bundle read; everything else is cached as
// raw bytes.
package loader

import (
	"bytes"
	"image"
	"path"
	"strings"

	// Register the supported image formats with image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

// imageExts maps lowercase key extensions to formats decoded at load time.
var imageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

// isImageKey reports whether key should be decoded as an image. The check is
// by extension only; a mismatched payload surfaces as a DecodeError.
func isImageKey(key string) bool {
	return imageExts[strings.ToLower(path.Ext(key))]
}

// decodeImage decodes data as one of the registered image formats.
func decodeImage(key string, data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &DecodeError{Key: key, Err: err}
	}
	return img, nil
}
