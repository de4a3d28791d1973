// Package pb encodes maze grids in the protobuf wire format without generated types.
//
// Grid message layout:
//
//	1: width   (varint)
//	2: height  (varint)
//	3: start   (bytes: x varint, y varint)
//	4: end     (bytes: x varint, y varint)
//	5: kinds   (bytes: one byte per cell, row-major)
//	6: heights (bytes: packed varints, row-major)
package pb

import (
	"errors"
	"fmt"

	"github.com/beka-birhanu/circuit-maze/maze"
	"github.com/beka-birhanu/circuit-maze/service/i"
	"google.golang.org/protobuf/encoding/protowire"
)

const (
	widthField   protowire.Number = 1
	heightField  protowire.Number = 2
	startField   protowire.Number = 3
	endField     protowire.Number = 4
	kindsField   protowire.Number = 5
	heightsField protowire.Number = 6
)

// ErrMalformed is returned for payloads that are not a valid grid message.
var ErrMalformed = errors.New("malformed grid payload")

var _ i.GridEncoder = &Protobuf{}

// Protobuf implements i.GridEncoder.
type Protobuf struct{}

// MarshalGrid implements i.GridEncoder.
func (p *Protobuf) MarshalGrid(g *maze.Grid) ([]byte, error) {
	if g == nil {
		return nil, errors.New("nil grid")
	}

	cells := g.Cells()
	kinds := make([]byte, len(cells))
	var heights []byte
	for idx, c := range cells {
		kinds[idx] = byte(c.Kind)
		heights = protowire.AppendVarint(heights, uint64(c.Height))
	}

	var b []byte
	b = protowire.AppendTag(b, widthField, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(g.Width()))
	b = protowire.AppendTag(b, heightField, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(g.Height()))
	b = protowire.AppendTag(b, startField, protowire.BytesType)
	b = protowire.AppendBytes(b, marshalPosition(g.Start()))
	b = protowire.AppendTag(b, endField, protowire.BytesType)
	b = protowire.AppendBytes(b, marshalPosition(g.End()))
	b = protowire.AppendTag(b, kindsField, protowire.BytesType)
	b = protowire.AppendBytes(b, kinds)
	b = protowire.AppendTag(b, heightsField, protowire.BytesType)
	b = protowire.AppendBytes(b, heights)
	return b, nil
}

// UnmarshalGrid implements i.GridEncoder. The decoded grid is re-validated by maze.Restore.
func (p *Protobuf) UnmarshalGrid(b []byte) (*maze.Grid, error) {
	var (
		width, height int
		start, end    maze.Position
		kinds         []byte
		heights       []int
	)

	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, protowire.ParseError(n))
		}
		b = b[n:]

		switch {
		case (num == widthField || num == heightField) && typ == protowire.VarintType:
			v, n := protowire.ConsumeVarint(b)
			if n < 0 {
				return nil, fmt.Errorf("%w: %v", ErrMalformed, protowire.ParseError(n))
			}
			if v > maze.MaxDimension {
				return nil, fmt.Errorf("%w: dimension %d", ErrMalformed, v)
			}
			if num == widthField {
				width = int(v)
			} else {
				height = int(v)
			}
			b = b[n:]
		case num >= startField && num <= heightsField && typ == protowire.BytesType:
			v, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return nil, fmt.Errorf("%w: %v", ErrMalformed, protowire.ParseError(n))
			}
			var err error
			switch num {
			case startField:
				start, err = unmarshalPosition(v)
			case endField:
				end, err = unmarshalPosition(v)
			case kindsField:
				kinds = append([]byte(nil), v...)
			case heightsField:
				heights, err = unmarshalPacked(v)
			}
			if err != nil {
				return nil, err
			}
			b = b[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, fmt.Errorf("%w: %v", ErrMalformed, protowire.ParseError(n))
			}
			b = b[n:]
		}
	}

	if len(heights) != len(kinds) {
		return nil, fmt.Errorf("%w: %d kinds but %d heights", ErrMalformed, len(kinds), len(heights))
	}

	cells := make([]maze.Cell, len(kinds))
	for idx, k := range kinds {
		kind := maze.Kind(k)
		if kind != maze.Wall && kind != maze.Path {
			return nil, fmt.Errorf("%w: cell %d has kind %d", ErrMalformed, idx, k)
		}
		cells[idx] = maze.Cell{Kind: kind, Height: heights[idx]}
	}

	return maze.Restore(width, height, cells, start, end)
}

func marshalPosition(pos maze.Position) []byte {
	var b []byte
	b = protowire.AppendVarint(b, uint64(pos.X))
	b = protowire.AppendVarint(b, uint64(pos.Y))
	return b
}

func unmarshalPosition(b []byte) (maze.Position, error) {
	values, err := unmarshalPacked(b)
	if err != nil {
		return maze.Position{}, err
	}
	if len(values) != 2 {
		return maze.Position{}, fmt.Errorf("%w: position has %d coordinates", ErrMalformed, len(values))
	}
	return maze.Position{X: values[0], Y: values[1]}, nil
}

func unmarshalPacked(b []byte) ([]int, error) {
	var values []int
	for len(b) > 0 {
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, protowire.ParseError(n))
		}
		if v > maze.MaxDimension {
			return nil, fmt.Errorf("%w: value %d out of range", ErrMalformed, v)
		}
		values = append(values, int(v))
		b = b[n:]
	}
	return values, nil
}
