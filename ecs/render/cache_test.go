package render

import (
	"errors"
	"testing"
)

type fakeDecoder struct {
	decoded  map[string]int
	released []string
	fail     map[string]error
}

func newFakeDecoder() *fakeDecoder {
	return &fakeDecoder{decoded: make(map[string]int), fail: make(map[string]error)}
}

func (d *fakeDecoder) Decode(path string) (*Texture, error) {
	if err, ok := d.fail[path]; ok {
		return nil, err
	}
	d.decoded[path]++
	return &Texture{Width: 8, Height: 8, Handle: path}, nil
}

func (d *fakeDecoder) Release(t *Texture) {
	d.released = append(d.released, t.Path)
}

func TestTextureCacheLoadIsCached(t *testing.T) {
	dec := newFakeDecoder()
	c := NewTextureCache(dec)

	a, err := c.Load("snake.png")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	b, err := c.Load("snake.png")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if a != b {
		t.Fatalf("expected the same handle for repeated loads")
	}
	if dec.decoded["snake.png"] != 1 {
		t.Fatalf("decoded %d times, want 1", dec.decoded["snake.png"])
	}
	if a.Path != "snake.png" {
		t.Fatalf("cache should stamp the path, got %q", a.Path)
	}
	if got, ok := c.Get("snake.png"); !ok || got != a {
		t.Fatalf("Get returned %v, %v", got, ok)
	}
}

func TestTextureCacheUnloadAndClose(t *testing.T) {
	dec := newFakeDecoder()
	c := NewTextureCache(dec)
	for _, p := range []string{"a.png", "b.png", "c.png"} {
		if _, err := c.Load(p); err != nil {
			t.Fatal(err)
		}
	}

	if !c.Unload("b.png") {
		t.Fatalf("Unload of a loaded path should succeed")
	}
	if c.Unload("b.png") {
		t.Fatalf("second Unload should report false")
	}
	if _, ok := c.Get("b.png"); ok {
		t.Fatalf("unloaded texture still cached")
	}
	if len(dec.released) != 1 || dec.released[0] != "b.png" {
		t.Fatalf("released %v, want [b.png]", dec.released)
	}

	c.Close()
	if c.Len() != 0 {
		t.Fatalf("Close left %d textures", c.Len())
	}
	if len(dec.released) != 3 {
		t.Fatalf("Close should release every texture, released %v", dec.released)
	}

	if _, err := c.Load("b.png"); err != nil {
		t.Fatal(err)
	}
	if dec.decoded["b.png"] != 2 {
		t.Fatalf("reload after Unload should decode again")
	}
}

func TestTextureCacheErrors(t *testing.T) {
	boom := errors.New("boom")
	dec := newFakeDecoder()
	dec.fail["bad.png"] = boom

	tests := []struct {
		name  string
		cache *TextureCache
		path  string
		is    error
	}{
		{name: "empty path", cache: NewTextureCache(dec), path: ""},
		{name: "decoder error", cache: NewTextureCache(dec), path: "bad.png", is: boom},
		{name: "no decoder", cache: NewTextureCache(nil), path: "x.png", is: ErrTextureNotFound},
		{
			name: "nil texture",
			cache: NewTextureCache(DecoderFunc(func(string) (*Texture, error) {
				return nil, nil
			})),
			path: "x.png",
			is:   ErrTextureNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.cache.Load(tt.path)
			if err == nil {
				t.Fatalf("expected an error")
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Fatalf("got %v, want %v", err, tt.is)
			}
			if tt.cache.Len() != 0 {
				t.Fatalf("failed loads must not be cached")
			}
		})
	}
}

func TestRecorderClearResetsFrame(t *testing.T) {
	r := &Recorder{}
	r.Draw(DrawCommand{Dest: Rect{W: 1, H: 1}})
	r.Clear(nil)
	r.Draw(DrawCommand{Dest: Rect{W: 2, H: 2}})
	r.Present()

	if len(r.Commands) != 1 || r.Commands[0].Dest.W != 2 {
		t.Fatalf("Clear should start a new frame, got %v", r.Commands)
	}
	if len(r.Clears) != 1 || r.Presented != 1 {
		t.Fatalf("clears=%d presented=%d", len(r.Clears), r.Presented)
	}
}
