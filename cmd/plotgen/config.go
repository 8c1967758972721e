package main

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // register decoders for noise images
	_ "image/png"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/gogpu/plotgen"
	"github.com/gogpu/plotgen/algorithm"
	"github.com/gogpu/plotgen/noise"
)

const (
	configFileName = "plotgen"
	configFileType = "yaml"
	envPrefix      = "PLOTGEN"

	defaultWidth  = 800
	defaultHeight = 800
	defaultMargin = 40
	imageCache    = 16
)

// layerSettings is a noise layer as written in the config file.
type layerSettings struct {
	noise.Layer `mapstructure:",squash"`
	Effects     []noise.EffectSpec `mapstructure:"effects"`
}

// settings is the decoded configuration of one invocation.
type settings struct {
	Width    float64 `mapstructure:"width"`
	Height   float64 `mapstructure:"height"`
	Margin   float64 `mapstructure:"margin"`
	Truncate bool    `mapstructure:"truncate"`
	Seed     uint64  `mapstructure:"seed"`
	Workers  int     `mapstructure:"workers"`
	Noise    struct {
		Source string            `mapstructure:"source"`
		Seed   int64             `mapstructure:"seed"`
		Layers []layerSettings   `mapstructure:"layers"`
		Images map[string]string `mapstructure:"images"` // id -> file path
	} `mapstructure:"noise"`
}

// flagKeys maps flag names to config keys.
var flagKeys = map[string]string{
	"width":    "width",
	"height":   "height",
	"margin":   "margin",
	"truncate": "truncate",
	"seed":     "seed",
	"workers":  "workers",
	"noise":    "noise.source",
}

// loadSettings reads the config file, environment and flags. A missing
// default config file is not an error; a missing explicit one is.
func loadSettings(configFile string, flags *pflag.FlagSet) (settings, error) {
	v := viper.New()
	v.SetDefault("width", defaultWidth)
	v.SetDefault("height", defaultHeight)
	v.SetDefault("margin", defaultMargin)
	v.SetDefault("noise.source", "simplex")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileType)
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return settings{}, userErrorf("read config: %w", err)
		}
	}

	for name, key := range flagKeys {
		if f := flags.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return settings{}, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	var s settings
	if err := v.Unmarshal(&s); err != nil {
		return settings{}, userErrorf("decode config: %w", err)
	}
	return s, nil
}

// bounds returns the canvas described by the settings.
func (s settings) bounds() plotgen.Bounds {
	b := plotgen.NewBounds(s.Width, s.Height, s.Margin)
	b.Truncate = s.Truncate
	return b
}

// field builds the noise field, loading any referenced images.
func (s settings) field() (*noise.Field, error) {
	src, err := noise.NewSource(s.Noise.Source, s.Noise.Seed)
	if err != nil {
		return nil, userErrorf("noise source: %w", err)
	}
	layers := make([]noise.Layer, 0, len(s.Noise.Layers))
	for i, ls := range s.Noise.Layers {
		effects, err := noise.ParseEffects(ls.Effects)
		if err != nil {
			return nil, userErrorf("noise layer %d: %w", i, err)
		}
		l := ls.Layer
		l.Effects = effects
		// viper lowercases map keys, so image ids match case-insensitively.
		l.Image = strings.ToLower(l.Image)
		layers = append(layers, l)
	}
	opts := []noise.FieldOption{
		noise.WithLayers(layers...),
		noise.WithExtent(s.Width, s.Height),
	}
	images := noise.NewImageSet(imageCache)
	for id, path := range s.Noise.Images {
		img, err := loadImage(path)
		if err != nil {
			return nil, err
		}
		images.Add(strings.ToLower(id), img)
	}
	for i, l := range layers {
		if l.Type == noise.TypeImage && !l.Disabled && !images.Has(l.Image) {
			plotgen.Logger().Warn("noise: layer names an unregistered image; it samples as 0",
				"layer", i, "image", l.Image)
		}
	}
	if len(s.Noise.Images) > 0 {
		opts = append(opts, noise.WithImages(images))
	}
	return noise.NewField(src, opts...), nil
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, userErrorf("open image: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, userErrorf("decode image %s: %w", path, err)
	}
	return img, nil
}

// loadParams reads an algorithm params file (yaml, json or toml by
// extension). An empty path yields nil params.
func loadParams(path string) (algorithm.Params, error) {
	if path == "" {
		return nil, nil
	}
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, userErrorf("read params: %w", err)
	}
	return algorithm.Params(v.AllSettings()), nil
}
