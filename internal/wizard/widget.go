package wizard

// EventKind identifies what happened on a widget.
type EventKind int

const (
	// EventAccept is a submitted text value.
	EventAccept EventKind = iota + 1
	// EventChange is an edited text value (one per keystroke).
	EventChange
	// EventSelect is a chosen item.
	EventSelect
	// EventBack is the navigation control.
	EventBack
	// EventHide is a dismissal without an answer.
	EventHide
)

// Event is delivered by a widget on its Events channel.
type Event struct {
	Kind  EventKind
	Value string
	Item  Item
}

// Item is one entry of a choice prompt.
type Item struct {
	Label       string `yaml:"label"`
	Description string `yaml:"description,omitempty"`
	Detail      string `yaml:"detail,omitempty"`
}

// Header is the part every prompt shows above its input.
type Header struct {
	Title      string
	Step       int
	TotalSteps int
	// Back is true when the prompt must offer the navigation control.
	Back bool
}

// InputBoxOptions configures a text prompt.
type InputBoxOptions struct {
	Header
	Value    string
	Prompt   string
	Password bool
}

// QuickPickOptions configures a choice prompt.
type QuickPickOptions struct {
	Header
	Placeholder string
	Items       []Item
	Active      *Item
}

// Widget is a prompt the sequencer can show, observe and release.
// Events must be created with the widget so nothing emitted after Show is lost.
type Widget interface {
	Show() error
	Events() <-chan Event
	SetEnabled(enabled bool)
	SetBusy(busy bool)
	Dispose()
}

// InputBox is an editable text field.
type InputBox interface {
	Widget
	SetValidationMessage(msg string)
}

// QuickPick is a selectable list.
type QuickPick interface {
	Widget
}

// UI creates widgets. Implementations live outside this package
// (terminal widgets in internal/prompt, scripted fakes in wizardtest).
type UI interface {
	NewInputBox(opts InputBoxOptions) InputBox
	NewQuickPick(opts QuickPickOptions) QuickPick
}
