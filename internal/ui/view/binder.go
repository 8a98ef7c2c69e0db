package view

// EventKind names a kind of user event.
type EventKind string

// Event kinds.
const (
	Click  EventKind = "click"
	Submit EventKind = "submit"
)

// Event is a user action on a control inside a container.
type Event struct {
	Kind   EventKind
	Target Target
}

// Match selects the controls a delegate reacts to.
type Match func(Control) bool

// Handler produces a result for a matched control. In the screens R is a tea.Cmd.
type Handler[R any] func(Control) R

// ByClass matches controls carrying class.
func ByClass(class string) Match {
	return func(c Control) bool { return c.HasClass(class) }
}

// ByName matches controls with the given name.
func ByName(name string) Match {
	return func(c Control) bool { return c.Name == name }
}

type bindKey struct {
	container string
	kind      EventKind
}

type delegate[R any] struct {
	match   Match
	handler Handler[R]
}

// Binder holds delegated handlers keyed by container id and event kind.
// A binding, once made, lasts for the life of the Binder; re-rendering the
// container or rebuilding it under the same id keeps it.
type Binder[R any] struct {
	delegates map[bindKey]delegate[R]
}

// NewBinder creates an empty binder.
func NewBinder[R any]() *Binder[R] {
	return &Binder[R]{delegates: make(map[bindKey]delegate[R])}
}

// BindOnce attaches handler to c for events of kind whose target matches.
// It returns false, and changes nothing, if c already has a delegate for kind.
func (b *Binder[R]) BindOnce(c *Container, kind EventKind, match Match, handler Handler[R]) bool {
	key := bindKey{container: c.ID, kind: kind}
	if _, ok := b.delegates[key]; ok {
		return false
	}
	b.delegates[key] = delegate[R]{match: match, handler: handler}
	return true
}

// Bound reports whether c has a delegate for kind.
func (b *Binder[R]) Bound(c *Container, kind EventKind) bool {
	_, ok := b.delegates[bindKey{container: c.ID, kind: kind}]
	return ok
}

// Dispatch routes ev to the delegate of c. The handler runs only if the
// target exists, is enabled and matches; handled reports whether it ran.
func (b *Binder[R]) Dispatch(c *Container, ev Event) (result R, handled bool) {
	d, ok := b.delegates[bindKey{container: c.ID, kind: ev.Kind}]
	if !ok {
		return result, false
	}
	ctrl, ok := c.Control(ev.Target)
	if !ok || ctrl.Disabled || !d.match(ctrl) {
		return result, false
	}
	return d.handler(ctrl), true
}
