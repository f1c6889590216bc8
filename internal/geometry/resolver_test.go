package geometry

import (
	"testing"

	"github.com/Osmanoor/visper/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveStaticInBounds(t *testing.T) {
	seg := &entity.SegmentDescriptor{
		ClipID: "c1",
		Crop:   &entity.CropBox{X: 10, Y: 20, W: 96, H: 96},
	}

	r, err := Resolve(seg, 640, 480)
	require.NoError(t, err)

	assert.True(t, r.Static())
	assert.Equal(t, 96, r.W)
	assert.Equal(t, 96, r.H)
	assert.Empty(t, r.Warnings)

	x, y := r.At(0)
	assert.Equal(t, 10, x)
	assert.Equal(t, 20, y)
}

func TestResolveClampsPartiallyOutsideBox(t *testing.T) {
	seg := &entity.SegmentDescriptor{
		ClipID: "c1",
		Crop:   &entity.CropBox{X: 600, Y: 450, W: 100, H: 100},
	}

	r, err := Resolve(seg, 640, 480)
	require.NoError(t, err)

	assert.Equal(t, 40, r.W)
	assert.Equal(t, 30, r.H)
	x, y := r.At(0)
	assert.Equal(t, 600, x)
	assert.Equal(t, 450, y)
	require.NotEmpty(t, r.Warnings, "clamping must be recorded")
}

func TestResolveEntirelyOutsideBoxFails(t *testing.T) {
	seg := &entity.SegmentDescriptor{
		ClipID: "c1",
		Crop:   &entity.CropBox{X: 700, Y: 500, W: 100, H: 100},
	}

	_, err := Resolve(seg, 640, 480)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrZeroArea)
}

func TestResolveNegativeOriginClamped(t *testing.T) {
	seg := &entity.SegmentDescriptor{
		ClipID: "c1",
		Crop:   &entity.CropBox{X: -20, Y: -10, W: 100, H: 100},
	}

	r, err := Resolve(seg, 640, 480)
	require.NoError(t, err)

	assert.Equal(t, 80, r.W)
	assert.Equal(t, 90, r.H)
	x, y := r.At(0)
	assert.Equal(t, 0, x)
	assert.Equal(t, 0, y)
	assert.NotEmpty(t, r.Warnings)
}

func TestResolveNearestPrecedingSample(t *testing.T) {
	seg := &entity.SegmentDescriptor{
		ClipID: "c1",
		CropFrames: []entity.CropSample{
			{Frame: 0, CropBox: entity.CropBox{X: 0, Y: 0, W: 96, H: 96}},
			{Frame: 10, CropBox: entity.CropBox{X: 50, Y: 5, W: 96, H: 96}},
			{Frame: 20, CropBox: entity.CropBox{X: 100, Y: 10, W: 96, H: 96}},
		},
	}

	r, err := Resolve(seg, 640, 480)
	require.NoError(t, err)
	require.Len(t, r.Samples, 3)
	assert.False(t, r.Static())

	cases := []struct {
		frame int
		x, y  int
	}{
		{0, 0, 0},
		{5, 0, 0},   // between samples: hold preceding
		{10, 50, 5}, // exact sample
		{15, 50, 5},
		{20, 100, 10},
		{999, 100, 10}, // past the last sample: hold last
	}
	for _, tc := range cases {
		x, y := r.At(tc.frame)
		assert.Equal(t, tc.x, x, "frame %d", tc.frame)
		assert.Equal(t, tc.y, y, "frame %d", tc.frame)
	}
}

func TestResolveNormalizesVaryingSampleSizes(t *testing.T) {
	seg := &entity.SegmentDescriptor{
		ClipID: "c1",
		CropFrames: []entity.CropSample{
			{Frame: 0, CropBox: entity.CropBox{X: 0, Y: 0, W: 80, H: 90}},
			{Frame: 10, CropBox: entity.CropBox{X: 600, Y: 400, W: 100, H: 100}},
		},
	}

	r, err := Resolve(seg, 640, 480)
	require.NoError(t, err)

	// second sample clamps to 40x80, first stays 80x90: max is 80x90
	assert.Equal(t, 80, r.W)
	assert.Equal(t, 90, r.H)

	// second sample's origin is shifted so the 80x90 window stays inside
	x, y := r.At(10)
	assert.LessOrEqual(t, x+r.W, 640)
	assert.LessOrEqual(t, y+r.H, 480)
	assert.NotEmpty(t, r.Warnings)
}

func TestResolveUnsortedSamples(t *testing.T) {
	seg := &entity.SegmentDescriptor{
		ClipID: "c1",
		CropFrames: []entity.CropSample{
			{Frame: 10, CropBox: entity.CropBox{X: 50, Y: 0, W: 96, H: 96}},
			{Frame: 0, CropBox: entity.CropBox{X: 0, Y: 0, W: 96, H: 96}},
		},
	}

	r, err := Resolve(seg, 640, 480)
	require.NoError(t, err)

	x, _ := r.At(0)
	assert.Equal(t, 0, x)
	x, _ = r.At(10)
	assert.Equal(t, 50, x)
}
