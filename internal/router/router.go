// Package router keeps the stack of screens shown by the TUI. Only the top
// screen receives messages; the ones below keep their state until revealed.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/quizify/internal/screen"
)

// PushMsg opens Screen on top of the current one.
type PushMsg struct {
	Screen screen.Screen
}

// PopMsg closes the top screen. A non-nil Result is delivered to the screen
// underneath once it is active again.
type PopMsg struct {
	Result tea.Msg
}

// Push returns a command that opens s.
func Push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return PushMsg{Screen: s} }
}

// Pop returns a command that closes the top screen and hands result, if
// any, to the screen below.
func Pop(result tea.Msg) tea.Cmd {
	return func() tea.Msg { return PopMsg{Result: result} }
}

// Router is a screen stack. The root screen is never popped.
type Router struct {
	stack []screen.Screen
}

// New returns a Router with root at the bottom. root must not be nil.
func New(root screen.Screen) *Router {
	return &Router{stack: []screen.Screen{root}}
}

func (r *Router) Init() tea.Cmd {
	return r.stack[0].Init()
}

// Active returns the top screen.
func (r *Router) Active() screen.Screen {
	return r.stack[len(r.stack)-1]
}

func (r *Router) Depth() int {
	return len(r.stack)
}

// Update applies navigation messages and forwards everything else to the
// top screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushMsg:
		r.stack = append(r.stack, msg.Screen)
		return msg.Screen.Init()
	case PopMsg:
		if len(r.stack) == 1 {
			return nil
		}
		r.stack[len(r.stack)-1] = nil
		r.stack = r.stack[:len(r.stack)-1]
		if msg.Result == nil {
			return nil
		}
		return r.forward(msg.Result)
	}
	return r.forward(msg)
}

func (r *Router) forward(msg tea.Msg) tea.Cmd {
	top := len(r.stack) - 1
	next, cmd := r.stack[top].Update(msg)
	r.stack[top] = next
	return cmd
}

// View renders the top screen.
func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
