// Package field provides parsers and spatial queries for Final Fantasy VII
// field map sections.
package field

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"os"

	"github.com/whodaresx/ff7-ultima/pkg/geom"
)

// Gateway format errors.
var (
	ErrTruncatedGateways = errors.New("truncated gateway data")
)

// Gateway table layout inside the trigger section: a fixed table of 12
// slots of 24 bytes each starting at byte 56. Only the exit line and the
// destination field id are decoded here; the rest of a slot is script
// data this package has no use for.
const (
	gatewayTableOffset = 56
	gatewaySlotSize    = 24
	gatewaySlotCount   = 12

	// gatewayMinSize is the smallest buffer that can hold the header
	// region plus the full slot table (56 + 12*24).
	gatewayMinSize = 344
)

// gatewaySlot mirrors one on-disk 24-byte gateway slot.
type gatewaySlot struct {
	V1      [3]int16 // exit line start: x, y, z
	V2      [3]int16 // exit line end: x, y, z
	_       [3]int16 // destination position, unused here
	FieldID uint16   // destination field, 0 = unused slot
	_       [2]int16
}

// Gateway is a portal segment transitioning the player to another field.
// Gateways are purely spatial markers; they do not reference walkmesh
// triangle indices.
type Gateway struct {
	V1, V2  Vertex
	FieldID uint16
}

// Midpoint2D returns the horizontal-plane midpoint of the exit line.
func (g *Gateway) Midpoint2D() geom.Vec2 {
	return g.V1.Vec2().Add(g.V2.Vec2()).Scale(0.5)
}

// ParseGateways parses the gateway table from a raw trigger section.
//
// A buffer shorter than the fixed table region decodes to no gateways
// with no error. Slots with field id 0 are unused and skipped; so are
// slots whose both endpoints sit at horizontal origin (placeholder
// segments; z plays no part in that check). Kept gateways appear in slot
// order with no gaps.
func ParseGateways(data []byte) ([]Gateway, error) {
	if len(data) < gatewayMinSize {
		return nil, nil
	}

	r := bytes.NewReader(data[gatewayTableOffset:])

	var gateways []Gateway
	for i := 0; i < gatewaySlotCount; i++ {
		var slot gatewaySlot
		if err := binary.Read(r, binary.LittleEndian, &slot); err != nil {
			return nil, fmt.Errorf("%w: slot %d", ErrTruncatedGateways, i)
		}

		if slot.FieldID == 0 {
			continue
		}
		if slot.V1[0] == 0 && slot.V1[1] == 0 && slot.V2[0] == 0 && slot.V2[1] == 0 {
			continue
		}

		gateways = append(gateways, Gateway{
			V1:      Vertex{X: slot.V1[0], Y: slot.V1[1], Z: slot.V1[2]},
			V2:      Vertex{X: slot.V2[0], Y: slot.V2[1], Z: slot.V2[2]},
			FieldID: slot.FieldID,
		})
	}

	return gateways, nil
}

// ParseGatewaysFile parses a trigger section from disk.
func ParseGatewaysFile(path string) ([]Gateway, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading trigger file: %w", err)
	}
	return ParseGateways(data)
}
