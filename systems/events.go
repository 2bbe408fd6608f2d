package systems

import "github.com/yohamta/donburi/features/events"

// EventKind says which fields of an InputEvent are set.
type EventKind uint8

const (
	EventKey           EventKind = iota // Key, Down, Time
	EventChar                           // Char
	EventMouse                          // X, Y: cursor or primary touch, pixels
	EventMouseDelta                     // X, Y: relative motion of a captured mouse
	EventMouse2                         // X, Y: second touch point
	EventJoystick                       // Axis, Value
	EventGyroscope                      // Axis, Value
	EventAccelerometer                  // Axis, Value
)

// InputEvent is one raw input occurrence. Every kind goes through a single
// queue, drained at the start of each frame in arrival order, so a touch
// position is in place before the press that follows it. Times are in the
// same millisecond clock as FrameData.FrameTime.
type InputEvent struct {
	Kind EventKind

	Key  int
	Down bool
	Time int
	Char rune

	X, Y int

	Axis  int
	Value int
}

var InputEvents = events.NewEventType[InputEvent]()

// ApplyEvent applies a pointer or axis event to in. Key and char events
// are routed by the caller, which owns focus and bindings.
func ApplyEvent(in *Input, e InputEvent) error {
	switch e.Kind {
	case EventMouse:
		MouseEvent(in, e.X, e.Y)
	case EventMouseDelta:
		MouseDeltaEvent(in, e.X, e.Y)
	case EventMouse2:
		Mouse2Event(in, e.X, e.Y)
	case EventJoystick:
		return JoystickEvent(in, e.Axis, e.Value)
	case EventGyroscope:
		return GyroscopeEvent(in, e.Axis, e.Value)
	case EventAccelerometer:
		return AccelerometerEvent(in, e.Axis, e.Value)
	}
	return nil
}
