package files

import (
	"bytes"
	"image"
	"image/jpeg"
	_ "image/png" // register PNG decoding for recompression
)

// jpegQuality is the fixed quality factor applied when recompressing image
// uploads. The transform trades fidelity for storage size and is not
// reversible.
const jpegQuality = 70

// recompress re-encodes image content as JPEG at the fixed quality factor.
// Non-image content types pass through untouched. The stored name keeps the
// original extension even when the bytes become JPEG, matching the upload
// pipeline's observable behavior.
func recompress(data []byte, contentType string) ([]byte, error) {
	switch contentType {
	case "image/jpeg", "image/jpg", "image/png":
	default:
		return data, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
