package opendata

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoDocument indicates the compressed container held no usable bulletin
// document.
var ErrNoDocument = errors.New("no bulletin document in archive")

// ExtractDocument locates and decompresses the one markup document of
// interest inside a compressed bulletin container, preferring an entry whose
// name ends in the bulletin document extension.
func ExtractDocument(data []byte) (string, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoDocument, err)
	}

	var chosen *zip.File
	for _, f := range reader.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(f.Name), ".kml") {
			chosen = f
			break
		}
		if chosen == nil {
			chosen = f
		}
	}
	if chosen == nil {
		return "", ErrNoDocument
	}

	rc, err := chosen.Open()
	if err != nil {
		return "", fmt.Errorf("%w: open %s: %v", ErrNoDocument, chosen.Name, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return "", fmt.Errorf("%w: read %s: %v", ErrNoDocument, chosen.Name, err)
	}
	return string(content), nil
}
