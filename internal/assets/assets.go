// Package assets loads the sprite masks drawn for each entity kind.
//
// A sprite file starts with a header line "W H" giving the entity size in
// logical pixels, followed by rows of '#' (set) and '.' (clear). The mask is
// stretched over the W x H rectangle when drawn.
package assets

import (
	"bufio"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/tomz197/aliens/internal/object"
	"github.com/tomz197/aliens/internal/physics"
)

//go:embed data/*.txt
var embedded embed.FS

var (
	// ErrMissingSprite is returned when a required sprite file is absent.
	ErrMissingSprite = errors.New("missing sprite")
	// ErrMalformedSprite is returned when a sprite file cannot be parsed.
	ErrMalformedSprite = errors.New("malformed sprite")
)

// Sprite is one animation frame.
type Sprite struct {
	Size physics.Size
	Mask [][]bool // Mask[row][col]
}

// Flip returns a mirrored copy of the sprite.
func (s Sprite) Flip(horizontal, vertical bool) Sprite {
	rows := len(s.Mask)
	out := make([][]bool, rows)
	for y := range s.Mask {
		src := s.Mask[y]
		if vertical {
			src = s.Mask[rows-1-y]
		}
		row := make([]bool, len(src))
		for x := range src {
			if horizontal {
				row[x] = src[len(src)-1-x]
			} else {
				row[x] = src[x]
			}
		}
		out[y] = row
	}
	return Sprite{Size: s.Size, Mask: out}
}

// frameSource describes how the frames of a kind are built from files.
type frameSource struct {
	files []string
	// mirror derives one extra frame from the first file.
	mirror func(Sprite) Sprite
}

var sources = map[object.Kind]frameSource{
	object.KindPlayer: {
		files:  []string{"player.txt"},
		mirror: func(s Sprite) Sprite { return s.Flip(true, false) },
	},
	object.KindAlien: {
		files: []string{"alien1.txt", "alien2.txt", "alien3.txt"},
	},
	object.KindShot: {files: []string{"shot.txt"}},
	object.KindBomb: {files: []string{"bomb.txt"}},
	object.KindExplosion: {
		files:  []string{"explosion.txt"},
		mirror: func(s Sprite) Sprite { return s.Flip(true, true) },
	},
	object.KindFirework: {files: []string{"firework.txt"}},
}

// Catalog holds the frames of every entity kind.
type Catalog struct {
	frames map[object.Kind][]Sprite
}

// Open loads sprites from dir, or the built-in set when dir is empty.
func Open(dir string) (*Catalog, error) {
	if dir == "" {
		return Default()
	}
	return Load(os.DirFS(dir))
}

// Default loads the built-in sprite set.
func Default() (*Catalog, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, err
	}
	return Load(sub)
}

// Load reads every sprite file from fsys. All sprites are required.
func Load(fsys fs.FS) (*Catalog, error) {
	c := &Catalog{frames: make(map[object.Kind][]Sprite)}
	for _, kind := range object.Kinds() {
		src := sources[kind]
		var frames []Sprite
		for _, name := range src.files {
			s, err := loadSprite(fsys, name)
			if err != nil {
				return nil, fmt.Errorf("%s sprite: %w", kind, err)
			}
			if len(frames) > 0 && s.Size != frames[0].Size {
				return nil, fmt.Errorf("%s sprite %s: size %dx%d differs from %dx%d: %w",
					kind, name, s.Size.W, s.Size.H, frames[0].Size.W, frames[0].Size.H, ErrMalformedSprite)
			}
			frames = append(frames, s)
		}
		if src.mirror != nil {
			frames = append(frames, src.mirror(frames[0]))
		}
		c.frames[kind] = frames
	}
	return c, nil
}

func loadSprite(fsys fs.FS, name string) (Sprite, error) {
	f, err := fsys.Open(name)
	if errors.Is(err, fs.ErrNotExist) {
		return Sprite{}, fmt.Errorf("%s: %w", name, ErrMissingSprite)
	}
	if err != nil {
		return Sprite{}, err
	}
	defer f.Close()

	s, err := parseSprite(bufio.NewScanner(f))
	if err != nil {
		return Sprite{}, fmt.Errorf("%s: %w", name, err)
	}
	return s, nil
}

func parseSprite(sc *bufio.Scanner) (Sprite, error) {
	var s Sprite
	line := 0
	for sc.Scan() {
		text := strings.TrimRight(sc.Text(), "\r")
		line++
		if line == 1 {
			size, err := parseHeader(text)
			if err != nil {
				return Sprite{}, err
			}
			s.Size = size
			continue
		}
		if text == "" {
			continue
		}
		if len(s.Mask) > 0 && len(text) != len(s.Mask[0]) {
			return Sprite{}, fmt.Errorf("line %d: width %d, want %d: %w", line, len(text), len(s.Mask[0]), ErrMalformedSprite)
		}
		row := make([]bool, len(text))
		for i, ch := range text {
			switch ch {
			case '#':
				row[i] = true
			case '.':
			default:
				return Sprite{}, fmt.Errorf("line %d: unexpected %q: %w", line, ch, ErrMalformedSprite)
			}
		}
		s.Mask = append(s.Mask, row)
	}
	if err := sc.Err(); err != nil {
		return Sprite{}, err
	}
	if line == 0 {
		return Sprite{}, fmt.Errorf("empty file: %w", ErrMalformedSprite)
	}
	if len(s.Mask) == 0 {
		return Sprite{}, fmt.Errorf("no mask rows: %w", ErrMalformedSprite)
	}
	return s, nil
}

func parseHeader(text string) (physics.Size, error) {
	fields := strings.Fields(text)
	if len(fields) != 2 {
		return physics.Size{}, fmt.Errorf("header %q: want \"W H\": %w", text, ErrMalformedSprite)
	}
	w, errW := strconv.Atoi(fields[0])
	h, errH := strconv.Atoi(fields[1])
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return physics.Size{}, fmt.Errorf("header %q: bad size: %w", text, ErrMalformedSprite)
	}
	return physics.Size{W: w, H: h}, nil
}

// Frames returns every frame of kind k.
func (c *Catalog) Frames(k object.Kind) []Sprite {
	return c.frames[k]
}

// Sprite returns frame i of kind k, wrapping i into range. The second result
// is false when the kind has no frames.
func (c *Catalog) Sprite(k object.Kind, i int) (Sprite, bool) {
	frames := c.Frames(k)
	if len(frames) == 0 {
		return Sprite{}, false
	}
	if i < 0 {
		i = 0
	}
	return frames[i%len(frames)], true
}

// Sizes returns the entity sizes given by the sprite headers.
func (c *Catalog) Sizes() object.Sizes {
	size := func(k object.Kind) physics.Size {
		if s, ok := c.Sprite(k, 0); ok {
			return s.Size
		}
		return object.DefaultSizes().Of(k)
	}
	return object.Sizes{
		Player:    size(object.KindPlayer),
		Alien:     size(object.KindAlien),
		Shot:      size(object.KindShot),
		Bomb:      size(object.KindBomb),
		Explosion: size(object.KindExplosion),
		Firework:  size(object.KindFirework),
	}
}
