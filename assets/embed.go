package assets

import (
	"bytes"
	"embed"
	"fmt"
	"image"
	_ "image/png"
	"path/filepath"
	"strings"
)

//go:embed *.png *.wav
var assetsFS embed.FS

// LoadFile loads an embedded asset by assets-relative path.
func LoadFile(path string) ([]byte, error) {
	clean := cleanAssetPath(path)
	if clean == "" {
		return nil, fmt.Errorf("assets: empty path")
	}
	return assetsFS.ReadFile(clean)
}

// LoadImage decodes an embedded image asset.
func LoadImage(path string) (image.Image, error) {
	b, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("assets: decode %q: %w", path, err)
	}
	return img, nil
}

// LoadAudio loads an embedded audio asset by assets-relative path.
func LoadAudio(path string) ([]byte, error) {
	if !IsWAV(path) {
		return nil, fmt.Errorf("assets: %q is not a wav file", path)
	}
	return LoadFile(path)
}

func IsWAV(path string) bool {
	return strings.HasSuffix(strings.ToLower(cleanAssetPath(path)), ".wav")
}

func cleanAssetPath(path string) string {
	if path == "" {
		return ""
	}
	if filepath.IsAbs(path) {
		s := filepath.ToSlash(path)
		if idx := strings.LastIndex(s, "/assets/"); idx >= 0 {
			return s[idx+len("/assets/"):]
		}
		return filepath.Base(path)
	}
	s := filepath.ToSlash(path)
	if strings.HasPrefix(s, "assets/") {
		return strings.TrimPrefix(s, "assets/")
	}
	return s
}
