package obj

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/meshview/pkg/geometry"
)

const tetra = `# tetrahedron
v 0 0 0
v 1 0 0
v 0 1 0
v 0 0 1
f 1 2 3
f 1 3 4
`

func TestDecodeTetra(t *testing.T) {
	positions, triangles, err := Decode(strings.NewReader(tetra))
	require.NoError(t, err)

	assert.Len(t, positions, 4)
	assert.Len(t, triangles, 2)
	assert.Equal(t, [][3]int{{0, 1, 2}, {0, 2, 3}}, triangles)
	assert.Equal(t, geometry.NewVector3(0, 0, 1), positions[3])
}

func TestDecodeIgnoresOtherLines(t *testing.T) {
	input := `mtllib cube.mtl
o thing
v 1.5 -2 3e2
vn 0 0 1
vt 0.5 0.5
g group
usemtl red
s off

# comment with f 1 2 3
f 1/1/1 1/2/1 1//1
`
	positions, triangles, err := Decode(strings.NewReader(input))
	require.NoError(t, err)

	require.Len(t, positions, 1)
	assert.Equal(t, geometry.NewVector3(1.5, -2, 300), positions[0])
	assert.Equal(t, [][3]int{{0, 0, 0}}, triangles)
}

func TestDecodeAnyFPrefixIsFace(t *testing.T) {
	input := "v 0 0 0\nv 1 0 0\nv 0 1 0\nfo 1 2 3\nf\t3 2 1\n"
	_, triangles, err := Decode(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, [][3]int{{0, 1, 2}, {2, 1, 0}}, triangles)

	_, _, err = Decode(strings.NewReader("foo\n"))
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 1, perr.Line)
}

func TestDecodeFaceUsesOnlyFirstThreeTokens(t *testing.T) {
	input := "v 0 0 0\nv 1 0 0\nv 0 1 0\nv 1 1 0\nf 1 2 3 4\n"
	_, triangles, err := Decode(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, [][3]int{{0, 1, 2}}, triangles)
}

func TestDecodeDoesNotCheckRanges(t *testing.T) {
	_, triangles, err := Decode(strings.NewReader("v 0 0 0\nf 1 2 9\n"))
	require.NoError(t, err)
	assert.Equal(t, [][3]int{{0, 1, 8}}, triangles)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
	}{
		{"face with two indices", "v 0 0 0\nf 1 2\n", 2},
		{"bare face", "f\n", 1},
		{"bad face index", "f 1 x 3\n", 1},
		{"bad face index with slash", "f 1/2 a/3 3\n", 1},
		{"bad coordinate", "v 0 nope 0\n", 1},
		{"short vertex", "v 1 2\n", 1},
		{"error after valid lines", "v 0 0 0\nv 1 0 0\nv 1 0 0.0.0\n", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			positions, triangles, err := Decode(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Nil(t, positions)
			assert.Nil(t, triangles)

			var perr *ParseError
			require.True(t, errors.As(err, &perr), "expected *ParseError, got %T", err)
			assert.Equal(t, tt.line, perr.Line)
		})
	}
}

func TestParseErrorUnwrapsStrconv(t *testing.T) {
	_, _, err := Decode(strings.NewReader("v 1 2 zz\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, strconv.ErrSyntax))
}

func TestLoadSetsPathOnParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.obj")
	require.NoError(t, os.WriteFile(path, []byte("v 0 0 0\nf 1 2\n"), 0644))

	_, _, err := Load(path)
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, path, perr.Path)
	assert.Contains(t, err.Error(), path+":2")
}

func TestLoadMissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "missing.obj"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestEncodeFormat(t *testing.T) {
	var buf bytes.Buffer
	positions := []geometry.Vector3{{X: 0, Y: 0.5, Z: -1}, {X: 2, Y: 1e-7, Z: 3}}
	require.NoError(t, Encode(&buf, positions, [][3]int{{0, 1, 0}}))

	assert.Equal(t, "v 0 0.5 -1\nv 2 1e-07 3\nf 1 2 1\n", buf.String())
}

func TestRoundTrip(t *testing.T) {
	positions := []geometry.Vector3{
		{X: 0.1, Y: 0.2, Z: 0.30000000000000004},
		{X: math.Pi, Y: -math.E, Z: 1e-300},
		{X: 123456789.123, Y: -0, Z: 5},
		{X: 0.1, Y: 0.2, Z: 0.30000000000000004}, // duplicate, must not be welded
	}
	triangles := [][3]int{{0, 1, 2}, {2, 1, 3}, {3, 3, 0}}

	path := filepath.Join(t.TempDir(), "roundtrip.obj")
	require.NoError(t, Save(path, positions, triangles))

	gotPositions, gotTriangles, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, triangles, gotTriangles)
	require.Len(t, gotPositions, len(positions))
	for i := range positions {
		assert.InDelta(t, positions[i].X, gotPositions[i].X, 1e-12)
		assert.InDelta(t, positions[i].Y, gotPositions[i].Y, 1e-12)
		assert.InDelta(t, positions[i].Z, gotPositions[i].Z, 1e-12)
	}
}

func TestSaveToMissingDirectory(t *testing.T) {
	err := Save(filepath.Join(t.TempDir(), "nope", "out.obj"), nil, nil)
	require.Error(t, err)
}
