// File: internal/gallery/collaborators.go
package gallery

type Kind int

const (
	Success Kind = iota
	Error
)

func (k Kind) String() string {
	if k == Error {
		return "error"
	}
	return "success"
}

// Notifier shows a transient message. Calls never block and never fail
type Notifier interface {
	Notify(kind Kind, message string)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(kind Kind, message string)

func (f NotifierFunc) Notify(kind Kind, message string) {
	f(kind, message)
}

// Clipboard receives copied URLs. Errors are ignored by callers
type Clipboard interface {
	WriteText(text string) error
}

// Opener hands a URL to whatever displays it (usually the system browser)
type Opener interface {
	Open(url string) error
}
