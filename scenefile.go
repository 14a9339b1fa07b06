package motion

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Block kinds accepted in a scene file.
const (
	BlockGroup  = "group"
	BlockText   = "text"
	BlockBorder = "border"
)

// SceneFile is the YAML layout of a demo page:
//
//	viewport: {width: 800, height: 600}
//	page: {width: 800, height: 2400}
//	blocks:
//	  - kind: group
//	    name: features
//	    bounds: {x: 40, y: 700, width: 720, height: 200}
//	    children: 3
//	    props: {preset: slide, viewportBehavior: once, staggerDelay: 0.1}
//	  - kind: text
//	    name: headline
//	    bounds: {x: 40, y: 80, width: 720, height: 60}
//	    props: {text: "Hello world", per: word}
//	  - kind: border
//	    name: cta
//	    bounds: {x: 300, y: 1200, width: 200, height: 60}
//	    props: {duration: 3000, radii: 12, pauseOnHover: true}
type SceneFile struct {
	Viewport Rect         `yaml:"viewport"`
	Page     Rect         `yaml:"page"`
	Presets  string       `yaml:"presets"`
	Blocks   []SceneBlock `yaml:"blocks"`
}

// SceneBlock is one mounted block of a scene.
type SceneBlock struct {
	Kind     string         `yaml:"kind"`
	Name     string         `yaml:"name"`
	Bounds   Rect           `yaml:"bounds"`
	Children int            `yaml:"children"`
	Props    map[string]any `yaml:"props"`
}

// LoadScene parses a YAML scene.
func LoadScene(data []byte) (*SceneFile, error) {
	var f SceneFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	if !(f.Viewport.Width > 0) || !(f.Viewport.Height > 0) {
		return nil, fmt.Errorf("parse scene: %w", &ConfigError{Field: "viewport", Value: f.Viewport, Err: ErrInvalidConfig})
	}
	for i, b := range f.Blocks {
		switch b.Kind {
		case BlockGroup, BlockText, BlockBorder:
		default:
			return nil, fmt.Errorf("parse scene: block %d: %w", i, &ConfigError{Field: "kind", Value: b.Kind, Err: ErrInvalidConfig})
		}
		if b.Name == "" {
			return nil, fmt.Errorf("parse scene: block %d: %w", i, &ConfigError{Field: "name", Err: ErrInvalidConfig})
		}
	}
	return &f, nil
}

// LoadSceneFile reads path and calls LoadScene.
func LoadSceneFile(path string) (*SceneFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scene: %w", err)
	}
	return LoadScene(data)
}

// Mount builds every block of f under the stage root. Group children are
// stacked horizontally inside the block bounds.
func (s *Stage) Mount(f *SceneFile) error {
	if f.Page.Width > 0 && f.Page.Height > 0 {
		s.camera.SetBounds(f.Page)
	}
	for _, b := range f.Blocks {
		if err := s.mountBlock(b); err != nil {
			return fmt.Errorf("mount %s %q: %w", b.Kind, b.Name, err)
		}
	}
	return nil
}

func (s *Stage) mountBlock(b SceneBlock) error {
	props := make(map[string]any, len(b.Props)+1)
	for k, v := range b.Props {
		props[k] = v
	}
	if _, ok := props["name"]; !ok {
		props["name"] = b.Name
	}

	el := NewElement(b.Name, b.Bounds)
	switch b.Kind {
	case BlockGroup:
		cfg, err := DecodeGroupProps(props)
		if err != nil {
			return err
		}
		for _, r := range LayoutRow(b.Bounds.Width, b.Bounds.Height, b.Children, 16) {
			el.AddChild(NewElement(fmt.Sprintf("%s/%d", b.Name, el.NumChildren()), r))
		}
		s.root.AddChild(el)
		if _, err := s.NewGroup(el, cfg); err != nil {
			el.Dispose()
			return err
		}
	case BlockText:
		cfg, err := DecodeTextProps(props)
		if err != nil {
			return err
		}
		s.root.AddChild(el)
		if _, err := s.NewText(el, cfg); err != nil {
			el.Dispose()
			return err
		}
	case BlockBorder:
		cfg, err := DecodeBorderProps(props)
		if err != nil {
			return err
		}
		s.root.AddChild(el)
		if _, err := s.NewBorder(el, cfg); err != nil {
			el.Dispose()
			return err
		}
	}
	return nil
}

// LayoutRow splits a width x height box into n equal cells separated by gap,
// in local coordinates.
func LayoutRow(width, height float64, n int, gap float64) []Rect {
	if n <= 0 {
		return nil
	}
	w := (width - gap*float64(n-1)) / float64(n)
	if w < 0 {
		w = 0
	}
	out := make([]Rect, n)
	for i := range out {
		out[i] = Rect{X: float64(i) * (w + gap), Width: w, Height: height}
	}
	return out
}
