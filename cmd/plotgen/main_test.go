package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/plotgen"
)

// run executes the command tree with args and returns stdout, stderr and
// the error.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func decodeDocument(t *testing.T, data []byte) document {
	t.Helper()
	var doc document
	require.NoError(t, json.Unmarshal(data, &doc))
	return doc
}

func TestList(t *testing.T) {
	out, _, err := run(t, "list")
	require.NoError(t, err)
	for _, id := range []string{"lissajous", "flowfield", "topo", "circle-packing", "petals"} {
		assert.Contains(t, out, id)
	}
}

func TestFormula(t *testing.T) {
	out, _, err := run(t, "formula", "lissajous")
	require.NoError(t, err)
	assert.Contains(t, out, "sin(3t + 0)")

	params := writeFile(t, "params.yaml", "freqX: 5\nphase: 1.5\n")
	out, _, err = run(t, "formula", "lissajous", "--params", params)
	require.NoError(t, err)
	assert.Contains(t, out, "sin(5t + 1.5)")
}

func TestGenerate(t *testing.T) {
	out, _, err := run(t, "generate", "lissajous", "--seed", "3", "--width", "400", "--height", "300", "--margin", "20")
	require.NoError(t, err)

	doc := decodeDocument(t, []byte(out))
	assert.Equal(t, "lissajous", doc.Algorithm)
	assert.Equal(t, uint64(3), doc.Seed)
	assert.NotEmpty(t, doc.RunID)
	assert.Equal(t, boundsJSON{Width: 400, Height: 300, Margin: 20}, doc.Bounds)
	require.NotEmpty(t, doc.Paths)
	for _, pt := range doc.Paths[0].Points {
		assert.GreaterOrEqual(t, pt[0], 0.0)
		assert.LessOrEqual(t, pt[0], 400.0)
		assert.GreaterOrEqual(t, pt[1], 0.0)
		assert.LessOrEqual(t, pt[1], 300.0)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	a, _, err := run(t, "generate", "flowfield", "--seed", "11")
	require.NoError(t, err)
	b, _, err := run(t, "generate", "flowfield", "--seed", "11")
	require.NoError(t, err)
	assert.Equal(t, decodeDocument(t, []byte(a)).Paths, decodeDocument(t, []byte(b)).Paths)
}

func TestGenerateOutFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	out, _, err := run(t, "generate", "phyllotaxis", "--out", path)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "phyllotaxis", decodeDocument(t, data).Algorithm)
}

func TestGenerateUnknownAlgorithm(t *testing.T) {
	_, _, err := run(t, "generate", "nope")
	require.Error(t, err)
	assert.Equal(t, exitUser, exitCode(err))
}

func TestGenerateUnknownNoise(t *testing.T) {
	_, _, err := run(t, "generate", "rings", "--noise", "worley")
	require.Error(t, err)
	assert.Equal(t, exitUser, exitCode(err))
}

func TestConfigFile(t *testing.T) {
	config := writeFile(t, "plotgen.yaml", `
width: 300
height: 200
margin: 10
truncate: true
noise:
  source: perlin
  seed: 4
  layers:
    - type: fbm
      zoom: 80
      effects:
        - kind: invert
`)
	out, _, err := run(t, "generate", "rings", "--config", config)
	require.NoError(t, err)
	doc := decodeDocument(t, []byte(out))
	assert.Equal(t, boundsJSON{Width: 300, Height: 200, Margin: 10, Truncate: true}, doc.Bounds)

	// Flags take precedence over the file.
	out, _, err = run(t, "generate", "rings", "--config", config, "--width", "500")
	require.NoError(t, err)
	assert.Equal(t, 500.0, decodeDocument(t, []byte(out)).Bounds.Width)
}

func TestConfigEnv(t *testing.T) {
	t.Setenv("PLOTGEN_HEIGHT", "250")
	out, _, err := run(t, "generate", "lissajous")
	require.NoError(t, err)
	assert.Equal(t, 250.0, decodeDocument(t, []byte(out)).Bounds.Height)
}

func TestConfigErrors(t *testing.T) {
	_, _, err := run(t, "generate", "lissajous", "--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, exitUser, exitCode(err))

	bad := writeFile(t, "bad.yaml", "noise:\n  layers:\n    - effects:\n        - kind: sparkle\n")
	_, _, err = run(t, "generate", "lissajous", "--config", bad)
	require.Error(t, err)
	assert.Equal(t, exitUser, exitCode(err))
}

func TestBatch(t *testing.T) {
	out, _, err := run(t, "batch", "lissajous", "--seeds", "5, 1,9", "--workers", "2")
	require.NoError(t, err)

	var docs []document
	require.NoError(t, json.Unmarshal([]byte(out), &docs))
	require.Len(t, docs, 3)
	for i, seed := range []uint64{5, 1, 9} {
		assert.Equal(t, seed, docs[i].Seed)
		assert.NotEmpty(t, docs[i].Paths)
	}
	assert.NotEqual(t, docs[0].RunID, docs[1].RunID)
}

func TestBatchErrors(t *testing.T) {
	_, _, err := run(t, "batch", "lissajous")
	assert.Equal(t, exitUser, exitCode(err))

	_, _, err = run(t, "batch", "nope", "--seeds", "1")
	assert.Equal(t, exitUser, exitCode(err))
}

func TestVerboseLogging(t *testing.T) {
	_, errOut, err := run(t, "-v", "generate", "lissajous")
	require.NoError(t, err)
	assert.Contains(t, errOut, "run_id=")
	assert.Contains(t, errOut, "algorithm: generated")
}

func TestParseSeeds(t *testing.T) {
	tests := []struct {
		in      string
		want    []uint64
		wantErr bool
	}{
		{"1", []uint64{1}, false},
		{"1,2,3", []uint64{1, 2, 3}, false},
		{" 7 , ,8", []uint64{7, 8}, false},
		{"", nil, true},
		{"1,x", nil, true},
		{"-1", nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseSeeds(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, exitUser, exitCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitOK, exitCode(nil))
	assert.Equal(t, exitUser, exitCode(userErrorf("bad")))
	assert.Equal(t, exitSystem, exitCode(errors.New("disk full")))
}

func TestWriteErrors(t *testing.T) {
	a := &app{out: &bytes.Buffer{}}
	err := a.write(filepath.Join(t.TempDir(), "missing", "out.json"), document{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create output")

	if _, statErr := os.Stat("/dev/full"); statErr == nil {
		err = a.write("/dev/full", document{Paths: make([]pathJSON, 1000)})
		require.Error(t, err)
	}

	path := filepath.Join(t.TempDir(), "ok.json")
	require.NoError(t, a.write(path, document{Algorithm: "rings"}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "rings", decodeDocument(t, data).Algorithm)
}

func writePNG(t *testing.T, c color.Color) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := range 8 {
		for x := range 8 {
			img.Set(x, y, c)
		}
	}
	path := filepath.Join(t.TempDir(), "img.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func TestImageIDsIgnoreCase(t *testing.T) {
	img := writePNG(t, color.White)
	for _, id := range []string{"portrait", "Portrait", "PORTRAIT"} {
		t.Run(id, func(t *testing.T) {
			config := writeFile(t, "plotgen.yaml", "noise:\n  images:\n    Portrait: "+img+
				"\n  layers:\n    - type: image\n      image: "+id+"\n")
			s, err := loadSettings(config, pflag.NewFlagSet("test", pflag.ContinueOnError))
			require.NoError(t, err)
			field, err := s.field()
			require.NoError(t, err)
			assert.InDelta(t, 1, field.Sample(100, 100), 1e-3)
		})
	}
}

func TestUnregisteredImageWarns(t *testing.T) {
	orig := plotgen.Logger()
	t.Cleanup(func() { plotgen.SetLogger(orig) })
	var buf bytes.Buffer
	plotgen.SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))

	config := writeFile(t, "plotgen.yaml", "noise:\n  layers:\n    - type: image\n      image: Missing\n")
	s, err := loadSettings(config, pflag.NewFlagSet("test", pflag.ContinueOnError))
	require.NoError(t, err)
	field, err := s.field()
	require.NoError(t, err)
	assert.Zero(t, field.Sample(10, 10))
	assert.Contains(t, buf.String(), "unregistered image")
	assert.Contains(t, buf.String(), "image=missing")
}
