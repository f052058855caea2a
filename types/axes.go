package types

import (
	"fmt"
	"strings"
)

type Axis uint8

const (
	X Axis = iota
	Y
	Z
)

func (a Axis) String() string {
	return [...]string{"x", "y", "z"}[a]
}

var AxisNameMap = map[string]Axis{
	"x": X,
	"y": Y,
	"z": Z,
}

func ParseAxis(name string) (a Axis, err error) {
	var ok bool
	if a, ok = AxisNameMap[strings.ToLower(strings.TrimSpace(name))]; !ok {
		err = fmt.Errorf("unknown axis %q, must be one of x, y, z", name)
	}
	return
}

/*
Face names one of the six outer faces of the domain. The ordering is the one used
for every per-face list in the model, the PML thickness included:

	-x, +x, -y, +y, -z, +z
*/
type Face uint8

const (
	XMinus Face = iota
	XPlus
	YMinus
	YPlus
	ZMinus
	ZPlus
)

const NumFaces = 6

func (f Face) String() string {
	return [...]string{"-x", "+x", "-y", "+y", "-z", "+z"}[f]
}

// Axis returns the axis normal to the face
func (f Face) Axis() Axis { return Axis(f / 2) }

// Upper is true for the face at the maximum coordinate of its axis
func (f Face) Upper() bool { return f%2 == 1 }

var FaceNameMap = map[string]Face{
	"-x":   XMinus,
	"x0":   XMinus,
	"xmin": XMinus,
	"+x":   XPlus,
	"xmax": XPlus,
	"-y":   YMinus,
	"y0":   YMinus,
	"ymin": YMinus,
	"+y":   YPlus,
	"ymax": YPlus,
	"-z":   ZMinus,
	"z0":   ZMinus,
	"zmin": ZMinus,
	"+z":   ZPlus,
	"zmax": ZPlus,
}

func ParseFace(name string) (f Face, err error) {
	var ok bool
	if f, ok = FaceNameMap[strings.ToLower(strings.TrimSpace(name))]; !ok {
		err = fmt.Errorf("unknown face %q", name)
	}
	return
}
