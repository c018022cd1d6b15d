package render_test

import (
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/wavecollapse/render"
	"github.com/katalvlaran/wavecollapse/rng"
	"github.com/katalvlaran/wavecollapse/wfc"
)

var (
	black = []byte{0, 0, 0, 255}
	white = []byte{255, 255, 255, 255}
)

// checkerData is a 2×2 periodic checkerboard as RGBA bytes.
func checkerData() []byte {
	var data []byte
	for _, px := range [][]byte{black, white, white, black} {
		data = append(data, px...)
	}

	return data
}

func pixel(buf []byte, w, x, y int) []byte {
	i := (y*w + x) * 4
	return buf[i : i+4]
}

// TestRender_SingleColor: every pixel equals the only color, solved or not.
func TestRender_SingleColor(t *testing.T) {
	cfg := wfc.Config{N: 2, Width: 3, Height: 3, PeriodicInput: true, PeriodicOutput: true, Symmetry: 1}
	m, err := wfc.NewOverlapping([]byte{9, 8, 7, 255}, 1, 1, cfg)
	require.NoError(t, err)

	pre, err := render.Render(m, nil)
	require.NoError(t, err)
	require.Equal(t, wfc.Success, m.Generate(rng.New(1)))
	post, err := render.Render(m, nil)
	require.NoError(t, err)

	for i := 0; i < 9; i++ {
		assert.Equal(t, []byte{9, 8, 7, 255}, pre[i*4:i*4+4])
		assert.Equal(t, []byte{9, 8, 7, 255}, post[i*4:i*4+4])
	}
}

// TestRender_Checkerboard: a solved torus alternates strictly.
func TestRender_Checkerboard(t *testing.T) {
	for seed := uint32(0); seed < 4; seed++ {
		m, err := wfc.NewOverlapping(checkerData(), 2, 2, wfc.DefaultConfig(6, 6))
		require.NoError(t, err)
		require.Equal(t, wfc.Success, m.Generate(rng.New(seed)))
		buf, err := render.Render(m, nil)
		require.NoError(t, err)

		for y := 0; y < 6; y++ {
			for x := 0; x < 6; x++ {
				p := pixel(buf, 6, x, y)
				require.Contains(t, [][]byte{black, white}, p)
				if x+1 < 6 {
					require.NotEqual(t, p, pixel(buf, 6, x+1, y), "(%d,%d) right", x, y)
				}
				if y+1 < 6 {
					require.NotEqual(t, p, pixel(buf, 6, x, y+1), "(%d,%d) down", x, y)
				}
			}
		}
	}
}

// TestRender_Deterministic: same seed, same pixels.
func TestRender_Deterministic(t *testing.T) {
	// Three-color stripes with a notch give a non-trivial pattern set.
	r := []byte{200, 10, 10, 255}
	g := []byte{10, 200, 10, 255}
	b := []byte{10, 10, 200, 255}
	rows := [][][]byte{
		{r, r, g, b},
		{g, g, b, r},
		{b, b, r, g},
		{r, g, g, b},
	}
	var data []byte
	for _, row := range rows {
		for _, px := range row {
			data = append(data, px...)
		}
	}

	run := func(seed uint32) ([]byte, wfc.Result) {
		m, err := wfc.NewOverlapping(data, 4, 4, wfc.DefaultConfig(10, 10))
		require.NoError(t, err)
		m.Generate(rng.New(rng.MixSeed(seed, rng.TagSolve)))
		buf, err := render.Render(m, nil)
		require.NoError(t, err)
		return buf, m.Result()
	}
	for seed := uint32(0); seed < 4; seed++ {
		a, ra := run(seed)
		b, rb := run(seed)
		require.Equal(t, ra, rb)
		if diff := cmp.Diff(a, b); diff != "" {
			t.Fatalf("seed %d pixels differ (-a +b):\n%s", seed, diff)
		}
	}
}

// TestRender_Preview: an untouched checkerboard averages to mid gray;
// 127.5 rounds to the even 128.
func TestRender_Preview(t *testing.T) {
	m, err := wfc.NewOverlapping(checkerData(), 2, 2, wfc.DefaultConfig(4, 4))
	require.NoError(t, err)
	dst := make([]byte, 4*4*4)
	out, err := render.Render(m, dst)
	require.NoError(t, err)
	require.Equal(t, &dst[0], &out[0], "caller buffer is reused")
	for i := 0; i < 16; i++ {
		assert.Equal(t, []byte{128, 128, 128, 255}, out[i*4:i*4+4])
	}
}

// TestRender_Contradiction: a contradicted preview still renders.
func TestRender_Contradiction(t *testing.T) {
	m, err := wfc.NewOverlapping(checkerData(), 2, 2, wfc.DefaultConfig(3, 3))
	require.NoError(t, err)
	require.Equal(t, wfc.Contradiction, m.Generate(rng.New(0)))
	buf, err := render.Render(m, nil)
	require.NoError(t, err)
	assert.Len(t, buf, 3*3*4)
}

// TestRender_BufferSize rejects mis-sized destinations.
func TestRender_BufferSize(t *testing.T) {
	m, err := wfc.NewOverlapping(checkerData(), 2, 2, wfc.DefaultConfig(4, 4))
	require.NoError(t, err)
	_, err = render.Render(m, make([]byte, 3))
	assert.ErrorIs(t, err, render.ErrBufferSize)
}

// TestRender_NonPeriodicEdges: trailing rows and columns come from the
// last anchored patterns.
func TestRender_NonPeriodicEdges(t *testing.T) {
	cfg := wfc.Config{N: 2, Width: 5, Height: 5, PeriodicInput: true, Symmetry: 8}
	m, err := wfc.NewOverlapping(checkerData(), 2, 2, cfg)
	require.NoError(t, err)
	require.Equal(t, wfc.Success, m.Generate(rng.New(3)))
	buf, err := render.Render(m, nil)
	require.NoError(t, err)
	for y := 0; y < 5; y++ {
		for x := 0; x < 4; x++ {
			require.NotEqual(t, pixel(buf, 5, x, y), pixel(buf, 5, x+1, y))
		}
	}
}

// TestToImageUpscale checks the image bridge and nearest-neighbor blocks.
func TestToImageUpscale(t *testing.T) {
	buf := append(append(append(append([]byte{}, black...), white...), white...), black...)
	img := render.ToImage(buf, 2, 2)
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, img.NRGBAAt(1, 0))

	big := render.Upscale(img, 4, 4, true)
	require.Equal(t, 4, big.Bounds().Dx())
	assert.Equal(t, color.NRGBA{A: 255}, big.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{A: 255}, big.NRGBAAt(1, 1))
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 255}, big.NRGBAAt(2, 1))
	assert.Equal(t, color.NRGBA{A: 255}, big.NRGBAAt(3, 3))

	smooth := render.Upscale(img, 8, 8, false)
	assert.Equal(t, 8, smooth.Bounds().Dy())
}
