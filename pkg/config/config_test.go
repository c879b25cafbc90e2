package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/lintrans/pkg/cache"
	"github.com/matzehuels/lintrans/pkg/errors"
	"github.com/matzehuels/lintrans/pkg/geom"
	"github.com/matzehuels/lintrans/pkg/pipeline"
	"github.com/matzehuels/lintrans/pkg/scene"
)

const tomlScene = `
[scene]
vertices = "0,0;4,0;0,3"
scale = "2,-1"

[render]
width = 640
height = 360
fps = 24
time = 12.5
formats = ["svg", "GIF"]

[style]
fill = "#FF8800"

[cache]
backend = "redis"
redis_addr = "cache:6379"
`

const yamlScene = `
scene:
  vertices: "0,0;4,0;0,3"
  scale: "2,-1"
render:
  width: 640
  height: 360
  fps: 24
  time: 12.5
  formats: [svg, GIF]
style:
  fill: "#FF8800"
cache:
  backend: redis
  redis_addr: "cache:6379"
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name, file, content string
	}{
		{"toml", "scene.toml", tomlScene},
		{"yaml", "scene.yaml", yamlScene},
		{"yml", "scene.yml", yamlScene},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Load(writeFile(t, tt.file, tt.content))
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if f.Scene.Vertices != "0,0;4,0;0,3" || f.Scene.Scale != "2,-1" {
				t.Errorf("scene = %+v", f.Scene)
			}
			if f.Render.Width != 640 || f.Render.FPS != 24 || f.Render.Time == nil || *f.Render.Time != 12.5 {
				t.Errorf("render = %+v", f.Render)
			}
			if f.Style.Fill != "#FF8800" {
				t.Errorf("style = %+v", f.Style)
			}
			if f.Cache.Backend != cache.BackendRedis || f.Cache.RedisAddr != "cache:6379" {
				t.Errorf("cache = %+v", f.Cache)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
		code errors.Code
	}{
		{"missing", func(t *testing.T) string { return filepath.Join(t.TempDir(), "nope.toml") }, errors.ErrCodeFileNotFound},
		{"extension", func(t *testing.T) string { return writeFile(t, "scene.json", "{}") }, errors.ErrCodeInvalidConfig},
		{"syntax", func(t *testing.T) string { return writeFile(t, "scene.toml", "[scene\n") }, errors.ErrCodeInvalidConfig},
		{"unknown toml key", func(t *testing.T) string { return writeFile(t, "scene.toml", "[scene]\nverts = \"1,1\"\n") }, errors.ErrCodeInvalidConfig},
		{"unknown yaml key", func(t *testing.T) string { return writeFile(t, "scene.yaml", "render:\n  colour: red\n") }, errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path(t))
			if got := errors.GetCode(err); got != tt.code {
				t.Errorf("code = %v, want %v (%v)", got, tt.code, err)
			}
		})
	}
}

func TestParseEmpty(t *testing.T) {
	for _, format := range []string{FormatTOML, FormatYAML} {
		f, err := Parse(nil, format)
		if err != nil {
			t.Errorf("Parse(empty, %s): %v", format, err)
			continue
		}
		opts := pipeline.Options{}
		if err := f.Apply(&opts, nil); err != nil {
			t.Errorf("Apply(empty, %s): %v", format, err)
		}
		if opts.Vertices != nil || opts.Width != 0 {
			t.Errorf("empty file changed options: %+v", opts)
		}
	}
}

func TestApply(t *testing.T) {
	f, err := Parse([]byte(tomlScene), FormatTOML)
	if err != nil {
		t.Fatal(err)
	}

	opts := pipeline.Options{Palette: scene.PaletteHex{Background: "#101010"}}
	if err := f.Apply(&opts, nil); err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if len(opts.Vertices) != 3 || opts.Vertices[1] != geom.Pt(4, 0) {
		t.Errorf("Vertices = %v", opts.Vertices)
	}
	if opts.Matrix == nil || *opts.Matrix != geom.Scale(2, -1) {
		t.Errorf("Matrix = %v", opts.Matrix)
	}
	if opts.Width != 640 || opts.Height != 360 || opts.FPS != 24 {
		t.Errorf("size = %dx%d@%d", opts.Width, opts.Height, opts.FPS)
	}
	if opts.StillTime() != 12.5 {
		t.Errorf("StillTime = %v", opts.StillTime())
	}
	if len(opts.Formats) != 2 || opts.Formats[1] != "gif" {
		t.Errorf("Formats = %v", opts.Formats)
	}
	if opts.Palette.Fill != "#FF8800" || opts.Palette.Background != "#101010" {
		t.Errorf("Palette = %+v", opts.Palette)
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("applied options should validate: %v", err)
	}
}

func TestApplyFlagsWin(t *testing.T) {
	f, err := Parse([]byte(yamlScene), FormatYAML)
	if err != nil {
		t.Fatal(err)
	}

	opts := pipeline.Options{Width: 1920, Formats: []string{"png"}}
	changed := func(flag string) bool { return flag == FlagWidth || flag == FlagFormats }
	if err := f.Apply(&opts, changed); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if opts.Width != 1920 {
		t.Errorf("Width = %d, flag should win", opts.Width)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != "png" {
		t.Errorf("Formats = %v, flag should win", opts.Formats)
	}
	if opts.Height != 360 {
		t.Errorf("Height = %d, file should apply", opts.Height)
	}

	cfg := cache.Config{Backend: cache.BackendNone}
	f.ApplyCache(&cfg, func(flag string) bool { return flag == FlagBackend })
	if cfg.Backend != cache.BackendNone || cfg.RedisAddr != "cache:6379" {
		t.Errorf("cache config = %+v", cfg)
	}
}

func TestApplyInvalid(t *testing.T) {
	tests := []struct {
		name string
		file File
	}{
		{"vertices", File{Scene: Scene{Vertices: "1;2"}}},
		{"scale", File{Scene: Scene{Scale: "two"}}},
		{"formats", File{Render: Render{Formats: []string{"bmp"}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.file.Apply(&pipeline.Options{}, nil)
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("err = %v, want INVALID_CONFIG", err)
			}
		})
	}
}
