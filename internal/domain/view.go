package domain

// Invocation is a slash command as received from the chat platform.
type Invocation struct {
	Command   string
	Args      []string
	InvokerID UserID
}

// Callback is a pressed control as received from the chat platform.
type Callback struct {
	Token     string
	InvokerID UserID
}

type ControlStyle string

const (
	ControlPrimary   ControlStyle = "primary"
	ControlSecondary ControlStyle = "secondary"
	ControlDanger    ControlStyle = "danger"
)

type Control struct {
	Label    string
	Token    string
	Style    ControlStyle
	Disabled bool
}

// View is a platform independent render instruction.
type View struct {
	Title       string
	Description string
	Lines       []string
	Footer      string
	Controls    []Control
	// Final is set once the view can no longer change: its session closed or timed out.
	Final bool
}

// Disabled returns a copy of v with every control disabled.
func (v View) Disabled() View {
	controls := make([]Control, len(v.Controls))
	for i, control := range v.Controls {
		control.Disabled = true
		controls[i] = control
	}
	v.Controls = controls
	v.Final = true
	return v
}

// Notice builds a control-less view carrying a single message.
func Notice(title, message string) View {
	return View{Title: title, Description: message}
}
