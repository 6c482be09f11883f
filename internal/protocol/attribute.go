package protocol

import (
	"fmt"
	"strings"
)

// Attribute identifies which LED zone a report targets. The set is closed:
// supporting a new zone means adding an enumerant here, not a new type.
type Attribute byte

const (
	// AttributeWheel is the scroll wheel LED.
	AttributeWheel Attribute = 0x01
	// AttributeLogo is the logo LED.
	AttributeLogo Attribute = 0x04
)

// Attribute endpoint names exposed to the external binding layer.
const (
	EndpointWheelColor = "wheel_color"
	EndpointLogoColor  = "logo_color"
)

// String returns the endpoint name for the attribute.
func (a Attribute) String() string {
	switch a {
	case AttributeWheel:
		return EndpointWheelColor
	case AttributeLogo:
		return EndpointLogoColor
	default:
		return fmt.Sprintf("attribute(0x%02x)", byte(a))
	}
}

// ParseAttribute maps an endpoint name back to its Attribute.
func ParseAttribute(name string) (Attribute, error) {
	switch name {
	case EndpointWheelColor, "wheel":
		return AttributeWheel, nil
	case EndpointLogoColor, "logo":
		return AttributeLogo, nil
	default:
		return 0, fmt.Errorf("unknown attribute %q", name)
	}
}

// Color is an RGB triple. Each component uses the full 8-bit range; there is
// no alpha channel and no validation beyond the component width.
type Color struct {
	R, G, B uint8
}

// ParseColor parses a hex color string ("rrggbb" or "#rrggbb").
func ParseColor(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return Color{}, fmt.Errorf("invalid color %q: want 6 hex digits", s)
	}
	var c Color
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return c, nil
}

// Bytes returns the color as the 3-byte R,G,B payload accepted by the
// write endpoints.
func (c Color) Bytes() []byte {
	return []byte{c.R, c.G, c.B}
}

// String returns the color in "#rrggbb" form.
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
