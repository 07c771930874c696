// Package router keeps the stack of screens the app navigates through.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examprep/internal/screen"
)

// PushScreenMsg opens Screen above the current one.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg returns to the previous screen. The root screen is never
// popped.
type PopScreenMsg struct{}

// Router owns the screen stack. The last element is the one the user sees.
type Router struct {
	screens []screen.Screen
}

func New(root screen.Screen) *Router {
	return &Router{screens: []screen.Screen{root}}
}

// Push opens s and returns its Init command.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.screens = append(r.screens, s)
	return s.Init()
}

// Pop drops the top screen unless it is the root.
func (r *Router) Pop() {
	if n := len(r.screens); n > 1 {
		r.screens[n-1] = nil
		r.screens = r.screens[:n-1]
	}
}

func (r *Router) Active() screen.Screen {
	return r.screens[len(r.screens)-1]
}

func (r *Router) Depth() int {
	return len(r.screens)
}

// Update applies navigation messages itself and hands everything else to
// the active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		r.Pop()
		return nil
	}
	next, cmd := r.Active().Update(msg)
	r.screens[len(r.screens)-1] = next
	return cmd
}

func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
