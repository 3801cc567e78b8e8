package app

import (
	"sort"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Command describes an executable action, optionally bound to a key and/or screen.
type Command struct {
	ID      string
	Title   string
	Binding key.Binding
	Screen  *ScreenType // nil → global
	Enabled func(*App) bool
	Run     func(*App) tea.Cmd
}

// CommandRegistry stores commands and resolves them by key and screen.
type CommandRegistry struct {
	byID  map[string]*Command
	order []*Command
}

func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{
		byID: make(map[string]*Command),
	}
}

func (r *CommandRegistry) Register(cmd *Command) {
	if cmd == nil || cmd.ID == "" {
		return
	}
	if _, exists := r.byID[cmd.ID]; !exists {
		r.order = append(r.order, cmd)
	} else {
		for i, c := range r.order {
			if c.ID == cmd.ID {
				r.order[i] = cmd
			}
		}
	}
	r.byID[cmd.ID] = cmd
}

// Resolve returns the command bound to msg on screen. Screen-specific commands
// win over global ones.
func (r *CommandRegistry) Resolve(msg tea.KeyMsg, screen ScreenType) *Command {
	var global *Command
	for _, c := range r.order {
		if !c.Binding.Enabled() || !key.Matches(msg, c.Binding) {
			continue
		}
		if c.Screen == nil {
			if global == nil {
				global = c
			}
			continue
		}
		if *c.Screen == screen {
			return c
		}
	}
	return global
}

// Get returns command by id.
func (r *CommandRegistry) Get(id string) *Command {
	if r == nil {
		return nil
	}
	return r.byID[id]
}

// All returns commands sorted by title.
func (r *CommandRegistry) All() []*Command {
	list := make([]*Command, 0, len(r.byID))
	for _, cmd := range r.byID {
		list = append(list, cmd)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].Title < list[j].Title
	})
	return list
}

// Run executes command by id if enabled.
func (r *CommandRegistry) Run(id string, app *App) tea.Cmd {
	cmd := r.Get(id)
	if cmd == nil || cmd.Run == nil {
		return nil
	}
	if cmd.Enabled != nil && !cmd.Enabled(app) {
		return nil
	}
	return cmd.Run(app)
}
