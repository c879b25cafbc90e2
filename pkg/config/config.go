// Package config loads scene files.
//
// A scene file describes a render in TOML or YAML; the format follows the
// file extension (.toml, .yaml, .yml):
//
//	[scene]
//	vertices = "1,1;3,1;2,3"
//	scale = "2"
//
//	[render]
//	width = 1280
//	height = 720
//	formats = ["png", "gif"]
//
//	[style]
//	fill = "#83C167"
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//
// Command-line flags that were set explicitly take precedence over the file;
// see [File.Apply].
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/lintrans/pkg/cache"
	"github.com/matzehuels/lintrans/pkg/errors"
	"github.com/matzehuels/lintrans/pkg/pipeline"
	"github.com/matzehuels/lintrans/pkg/scene"
)

// Supported file formats.
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
)

// File is a decoded scene file.
type File struct {
	Scene  Scene            `toml:"scene" yaml:"scene"`
	Render Render           `toml:"render" yaml:"render"`
	Style  scene.PaletteHex `toml:"style" yaml:"style"`
	Cache  cache.Config     `toml:"cache" yaml:"cache"`
}

// Scene holds the geometry inputs in their command-line syntax.
type Scene struct {
	Vertices string `toml:"vertices" yaml:"vertices"`
	Scale    string `toml:"scale" yaml:"scale"`
}

// Render holds output settings. Zero values keep the defaults.
type Render struct {
	Width     int      `toml:"width" yaml:"width"`
	Height    int      `toml:"height" yaml:"height"`
	FPS       int      `toml:"fps" yaml:"fps"`
	Time      *float64 `toml:"time" yaml:"time"`
	Formats   []string `toml:"formats" yaml:"formats"`
	EmbedFont bool     `toml:"embed_font" yaml:"embed_font"`
}

// FormatFor returns the file format implied by path's extension.
func FormatFor(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidConfig, "unsupported config file %q (want .toml, .yaml or .yml)", path)
	}
}

// Load reads and decodes the scene file at path.
func Load(path string) (*File, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	return Parse(data, format)
}

// Parse decodes data in the given format. Unknown keys are rejected so
// typos do not pass silently.
func Parse(data []byte, format string) (*File, error) {
	var f File
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), &f)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown key %q", undecoded[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && err != io.EOF {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode yaml")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unsupported config format %q", format)
	}
	return &f, nil
}

// Flag names consulted by Apply.
const (
	FlagVertices = "vertices"
	FlagScale    = "scale"
	FlagWidth    = "width"
	FlagHeight   = "height"
	FlagFPS      = "fps"
	FlagTime     = "at"
	FlagFormats  = "format"
	FlagEmbed    = "embed-font"
	FlagBackend  = "cache-backend"
	FlagCacheDir = "cache-dir"
)

// Apply copies the file's settings into opts. changed reports whether a
// flag was set on the command line; such fields keep their flag value. A
// nil changed treats every flag as unset.
func (f *File) Apply(opts *pipeline.Options, changed func(flag string) bool) error {
	if changed == nil {
		changed = func(string) bool { return false }
	}

	if f.Scene.Vertices != "" && !changed(FlagVertices) {
		v, err := pipeline.ParseVertices(f.Scene.Vertices)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "scene.vertices")
		}
		opts.Vertices = v
	}
	if f.Scene.Scale != "" && !changed(FlagScale) {
		m, err := pipeline.ParseMatrix(f.Scene.Scale)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "scene.scale")
		}
		opts.Matrix = m
	}

	r := f.Render
	if r.Width != 0 && !changed(FlagWidth) {
		opts.Width = r.Width
	}
	if r.Height != 0 && !changed(FlagHeight) {
		opts.Height = r.Height
	}
	if r.FPS != 0 && !changed(FlagFPS) {
		opts.FPS = r.FPS
	}
	if r.Time != nil && !changed(FlagTime) {
		t := *r.Time
		opts.Time = &t
	}
	if len(r.Formats) > 0 && !changed(FlagFormats) {
		formats, err := pipeline.ParseFormats(strings.Join(r.Formats, ","))
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidConfig, err, "render.formats")
		}
		opts.Formats = formats
	}
	if r.EmbedFont && !changed(FlagEmbed) {
		opts.EmbedFont = true
	}

	opts.Palette = mergePalette(opts.Palette, f.Style)
	return nil
}

// ApplyCache copies the [cache] section into cfg, keeping fields whose
// flags were set explicitly.
func (f *File) ApplyCache(cfg *cache.Config, changed func(flag string) bool) {
	if changed == nil {
		changed = func(string) bool { return false }
	}
	if f.Cache.Backend != "" && !changed(FlagBackend) {
		cfg.Backend = f.Cache.Backend
	}
	if f.Cache.Dir != "" && !changed(FlagCacheDir) {
		cfg.Dir = f.Cache.Dir
	}
	if f.Cache.RedisAddr != "" {
		cfg.RedisAddr = f.Cache.RedisAddr
	}
	if f.Cache.MongoURI != "" {
		cfg.MongoURI = f.Cache.MongoURI
	}
}

// mergePalette fills the empty fields of base from file.
func mergePalette(base, file scene.PaletteHex) scene.PaletteHex {
	pick := func(a, b string) string {
		if a != "" {
			return a
		}
		return b
	}
	return scene.PaletteHex{
		Background: pick(base.Background, file.Background),
		Axes:       pick(base.Axes, file.Axes),
		Shape:      pick(base.Shape, file.Shape),
		Dot:        pick(base.Dot, file.Dot),
		Fill:       pick(base.Fill, file.Fill),
		Text:       pick(base.Text, file.Text),
	}
}
