// Package obj reads and writes the vertex/face subset of the Wavefront OBJ
// text format.
package obj

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/meshview/pkg/geometry"
)

// Load reads an OBJ file and returns its vertex positions and triangles.
// Face indices are converted to 0-based but not range checked.
func Load(filename string) ([]geometry.Vector3, [][3]int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	positions, triangles, err := Decode(file)
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) {
			perr.Path = filename
		}
		return nil, nil, err
	}
	return positions, triangles, nil
}

// Decode parses OBJ text line by line.
//
// "v x y z" lines add one vertex. Any line starting with "f" adds one
// triangle using the leading integer of each a/b/c token after the first
// field, so "fo 1 2 3" is a face too. Everything else is skipped.
func Decode(reader io.Reader) ([]geometry.Vector3, [][3]int, error) {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var positions []geometry.Vector3
	var triangles [][3]int

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		switch {
		case strings.HasPrefix(line, "v "):
			v, err := parseVertex(strings.Fields(line)[1:])
			if err != nil {
				err.Line = lineNo
				return nil, nil, err
			}
			positions = append(positions, v)

		case strings.HasPrefix(line, "f"):
			f, err := parseFace(strings.Fields(line)[1:])
			if err != nil {
				err.Line = lineNo
				return nil, nil, err
			}
			triangles = append(triangles, f)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("error reading OBJ: %w", err)
	}

	return positions, triangles, nil
}

func parseVertex(tokens []string) (geometry.Vector3, *ParseError) {
	if len(tokens) < 3 {
		return geometry.Vector3{}, &ParseError{Msg: fmt.Sprintf("vertex needs 3 coordinates, got %d", len(tokens))}
	}

	var xyz [3]float64
	for i := 0; i < 3; i++ {
		value, err := strconv.ParseFloat(tokens[i], 64)
		if err != nil {
			return geometry.Vector3{}, &ParseError{Msg: fmt.Sprintf("invalid coordinate %q", tokens[i]), Err: err}
		}
		xyz[i] = value
	}
	return geometry.NewVector3(xyz[0], xyz[1], xyz[2]), nil
}

func parseFace(tokens []string) ([3]int, *ParseError) {
	var face [3]int
	if len(tokens) < 3 {
		return face, &ParseError{Msg: fmt.Sprintf("face needs 3 indices, got %d", len(tokens))}
	}

	for i := 0; i < 3; i++ {
		head, _, _ := strings.Cut(tokens[i], "/")
		index, err := strconv.Atoi(head)
		if err != nil {
			return face, &ParseError{Msg: fmt.Sprintf("invalid face index %q", tokens[i]), Err: err}
		}
		face[i] = index - 1
	}
	return face, nil
}
