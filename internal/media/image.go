package media

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/disintegration/imaging"
)

var allowedTypes = map[string]imaging.Format{
	"image/jpeg": imaging.JPEG,
	"image/png":  imaging.PNG,
	"image/gif":  imaging.GIF,
	"image/webp": -1,
}

// prepareImage sniffs the content type and, when maxWidth is set, shrinks
// JPEG and PNG images wider than maxWidth. GIF and WebP pass through as-is.
func prepareImage(data []byte, maxWidth int) ([]byte, string, error) {
	if len(data) == 0 {
		return nil, "", fmt.Errorf("%w: empty file", ErrInvalidImage)
	}

	contentType := http.DetectContentType(data)
	format, ok := allowedTypes[contentType]
	if !ok {
		return nil, "", fmt.Errorf("%w: %s", ErrInvalidImage, contentType)
	}

	if maxWidth <= 0 || (format != imaging.JPEG && format != imaging.PNG) {
		return data, contentType, nil
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if img.Bounds().Dx() <= maxWidth {
		return data, contentType, nil
	}

	resized := imaging.Resize(img, maxWidth, 0, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	return buf.Bytes(), contentType, nil
}
