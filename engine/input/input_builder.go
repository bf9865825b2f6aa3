package input

// TrackerOption is a functional option for configuring a Tracker.
type TrackerOption func(*tracker)

// WithViewport sets the initial viewport dimensions used to normalize
// pointer coordinates. Non-positive dimensions are ignored.
//
// Parameters:
//   - width: viewport width in pixels
//   - height: viewport height in pixels
//
// Returns:
//   - TrackerOption: functional option to set the viewport
func WithViewport(width, height int) TrackerOption {
	return func(t *tracker) {
		if width <= 0 || height <= 0 {
			return
		}
		t.width = width
		t.height = height
	}
}

// WithBinding maps an action to a key code, replacing the default binding.
//
// Parameters:
//   - action: the camera control to bind
//   - keyCode: the virtual key code (GLFW values, see the common package)
//
// Returns:
//   - TrackerOption: functional option to set the binding
func WithBinding(action Action, keyCode uint32) TrackerOption {
	return func(t *tracker) {
		t.bindings[action] = keyCode
	}
}
