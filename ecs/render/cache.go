package render

import (
	"errors"
	"fmt"
)

var ErrTextureNotFound = errors.New("render: texture not found")

// Decoder turns an asset path into a texture.
type Decoder interface {
	Decode(path string) (*Texture, error)
}

// DecoderFunc adapts a function to Decoder.
type DecoderFunc func(path string) (*Texture, error)

func (f DecoderFunc) Decode(path string) (*Texture, error) {
	return f(path)
}

// Releaser is implemented by decoders whose handles need explicit disposal.
type Releaser interface {
	Release(t *Texture)
}

// TextureCache loads textures once per path. It is owned by a single game
// session and must be closed when the session ends.
type TextureCache struct {
	decoder  Decoder
	textures map[string]*Texture
}

func NewTextureCache(decoder Decoder) *TextureCache {
	return &TextureCache{
		decoder:  decoder,
		textures: make(map[string]*Texture),
	}
}

// Load returns the cached texture for path, decoding it on first use.
func (c *TextureCache) Load(path string) (*Texture, error) {
	if path == "" {
		return nil, fmt.Errorf("render: load: empty texture path")
	}
	if t, ok := c.textures[path]; ok {
		return t, nil
	}
	if c.decoder == nil {
		return nil, fmt.Errorf("render: load %q: no decoder: %w", path, ErrTextureNotFound)
	}
	t, err := c.decoder.Decode(path)
	if err != nil {
		return nil, fmt.Errorf("render: load %q: %w", path, err)
	}
	if t == nil {
		return nil, fmt.Errorf("render: load %q: %w", path, ErrTextureNotFound)
	}
	if t.Path == "" {
		t.Path = path
	}
	c.textures[path] = t
	return t, nil
}

// Get returns a previously loaded texture.
func (c *TextureCache) Get(path string) (*Texture, bool) {
	t, ok := c.textures[path]
	return t, ok
}

// Unload drops path from the cache and releases its handle.
func (c *TextureCache) Unload(path string) bool {
	t, ok := c.textures[path]
	if !ok {
		return false
	}
	delete(c.textures, path)
	if r, ok := c.decoder.(Releaser); ok {
		r.Release(t)
	}
	return true
}

// Close unloads every texture.
func (c *TextureCache) Close() {
	for path := range c.textures {
		c.Unload(path)
	}
}

func (c *TextureCache) Len() int {
	return len(c.textures)
}
