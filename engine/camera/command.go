package camera

import "github.com/go-gl/mathgl/mgl32"

// Command is the only vocabulary controllers use to move the shared camera rig.
//
// Rotate.X is added to the rotation group's yaw and Rotate.Y to its pitch.
// Pan is a screen-space offset in units of scene extent. Positive Zoom moves cameras closer.
type Command struct {
	Rotate mgl32.Vec2
	Pan    mgl32.Vec2
	Zoom   float32
}

// IsZero reports whether the command would change nothing.
func (c Command) IsZero() bool {
	return c == Command{}
}

// Add merges two commands by summing every component.
func (c Command) Add(o Command) Command {
	return Command{
		Rotate: c.Rotate.Add(o.Rotate),
		Pan:    c.Pan.Add(o.Pan),
		Zoom:   c.Zoom + o.Zoom,
	}
}
