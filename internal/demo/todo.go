// Package demo is a small todo application built on live nodes. The weave
// command renders and serves it.
package demo

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/vango-dev/weave/el"
	"github.com/vango-dev/weave/pkg/bind"
	"github.com/vango-dev/weave/pkg/dom"
)

// Todo is one entry of the list.
type Todo struct {
	ID    int
	Title string
	Done  bool
}

// Filter selects which todos are listed.
type Filter string

const (
	FilterAll    Filter = "all"
	FilterActive Filter = "active"
	FilterDone   Filter = "done"
)

// Stylesheet is the inline CSS of the demo page.
const Stylesheet = `body{font-family:sans-serif;max-width:32rem;margin:2rem auto}
.todo.done .title{text-decoration:line-through;color:#999}
.filter.selected{font-weight:bold}
.bar{height:4px;background:#4a4}
.empty{color:#777}`

// App holds the todo state and the nodes bound to it. Its methods must be
// called on the root's goroutine.
type App struct {
	root   *bind.Root
	logger *slog.Logger

	todos   []*Todo
	nextID  int
	draft   string
	filter  Filter
	mounted bool

	// Body is the top-level node of the application.
	Body *dom.Node
	// Input is the new-todo text field; Form submits it.
	Input *dom.Node
	Form  *dom.Node
}

// New builds the application with one todo per title.
func New(b *el.Builder, root *bind.Root, logger *slog.Logger, titles ...string) *App {
	if logger == nil {
		logger = slog.Default()
	}
	a := &App{root: root, logger: logger, filter: FilterAll}
	for _, title := range titles {
		a.add(title)
	}
	a.Body = a.build(b)
	return a
}

func (a *App) build(b *el.Builder) *dom.Node {
	a.Input = b.Input(
		el.Type("text"),
		el.Class("new-todo"),
		el.Placeholder("What needs to be done?"),
		el.Value(bind.Func(func() string { return a.draft }), bind.Set(func(v string) { a.draft = v })),
	)
	a.Form = b.Form(
		el.OnSubmit(func() { a.Add(a.draft) }),
		a.Input,
		b.Button(
			el.Type("submit"),
			el.BindFn("disabled", func() bool { return strings.TrimSpace(a.draft) == "" }),
			"Add",
		),
	)

	list := b.Ul(
		el.Class("todo-list"),
		el.ListBy(b, a.Visible, func(t *Todo) int { return t.ID }, func(t *Todo) any { return a.item(b, t) }),
	)
	footer := b.Footer(
		el.Class("footer"),
		b.Span(el.Class("count"), func() string { return itemsLeft(a.Remaining()) }),
		a.filterButton(b, FilterAll, "All"),
		a.filterButton(b, FilterActive, "Active"),
		a.filterButton(b, FilterDone, "Completed"),
		b.Button(
			el.Class("clear"),
			el.BindFn("hidden", func() bool { return a.Remaining() == len(a.todos) }),
			el.OnClick(a.ClearDone),
			"Clear completed",
		),
	)

	return b.Section(
		el.Class("todoapp"),
		el.OnAttach(func(n *dom.Node) error {
			a.mounted = true
			a.logger.Debug("todo app attached", "node", n.ID())
			return nil
		}),
		el.OnDetach(func(*dom.Node) error {
			a.mounted = false
			return nil
		}),
		b.H1(el.BindFn("data-left", a.Remaining), "todos"),
		a.Form,
		b.Progress(
			el.Prop("max", "100"),
			el.Bind("value", bind.Func(a.PercentDone)),
		),
		b.Div(el.Class("bar"), el.StyleFn("width", bind.Func(func() string {
			return strconv.Itoa(a.PercentDone()) + "%"
		}))),
		b.If(func() bool { return len(a.todos) == 0 },
			b.P(el.Class("empty"), "Nothing to do."),
			b.Group(list, footer),
		),
	)
}

func (a *App) item(b *el.Builder, t *Todo) any {
	return b.Li(
		el.ClassFn(bind.Static("todo"), bind.Func(func() string {
			if t.Done {
				return "done"
			}
			return ""
		})),
		el.Data("id", strconv.Itoa(t.ID)),
		b.Input(
			el.Type("checkbox"),
			el.Checked(bind.Func(func() bool { return t.Done }), bind.Set(func(v bool) { t.Done = v })),
		),
		b.Span(el.Class("title"), func() string { return t.Title }),
		b.Button(el.Class("remove"), el.AriaLabel("Remove"), el.OnClick(func() { a.Remove(t.ID) }), "×"),
	)
}

func (a *App) filterButton(b *el.Builder, f Filter, label string) *dom.Node {
	return b.Button(
		el.ClassFn(bind.Static("filter"), bind.Func(func() string {
			if a.filter == f {
				return "selected"
			}
			return ""
		})),
		el.Data("filter", string(f)),
		el.OnClick(func() { a.SetFilter(f) }),
		label,
	)
}

func itemsLeft(n int) string {
	if n == 1 {
		return "1 item left"
	}
	return fmt.Sprintf("%d items left", n)
}

func (a *App) add(title string) bool {
	title = strings.TrimSpace(title)
	if title == "" {
		return false
	}
	a.nextID++
	a.todos = append(a.todos, &Todo{ID: a.nextID, Title: title})
	return true
}

// Add appends a todo and clears the draft. Blank titles are ignored.
func (a *App) Add(title string) {
	if a.add(title) {
		a.draft = ""
		a.root.Schedule()
	}
}

// Toggle flips the done state of todo id.
func (a *App) Toggle(id int) {
	for _, t := range a.todos {
		if t.ID == id {
			t.Done = !t.Done
			a.root.Schedule()
			return
		}
	}
}

// Remove deletes todo id.
func (a *App) Remove(id int) {
	for i, t := range a.todos {
		if t.ID == id {
			a.todos = append(a.todos[:i:i], a.todos[i+1:]...)
			a.root.Schedule()
			return
		}
	}
}

// ClearDone deletes every completed todo.
func (a *App) ClearDone() {
	kept := a.todos[:0:0]
	for _, t := range a.todos {
		if !t.Done {
			kept = append(kept, t)
		}
	}
	a.todos = kept
	a.root.Schedule()
}

// SetFilter changes which todos are listed.
func (a *App) SetFilter(f Filter) {
	a.filter = f
	a.root.Schedule()
}

// Visible returns the todos passing the current filter.
func (a *App) Visible() []*Todo {
	out := make([]*Todo, 0, len(a.todos))
	for _, t := range a.todos {
		switch {
		case a.filter == FilterActive && t.Done:
		case a.filter == FilterDone && !t.Done:
		default:
			out = append(out, t)
		}
	}
	return out
}

// Todos returns a copy of every todo.
func (a *App) Todos() []Todo {
	out := make([]Todo, len(a.todos))
	for i, t := range a.todos {
		out[i] = *t
	}
	return out
}

// Remaining counts the todos not done.
func (a *App) Remaining() int {
	n := 0
	for _, t := range a.todos {
		if !t.Done {
			n++
		}
	}
	return n
}

// PercentDone is the share of completed todos, 0 to 100.
func (a *App) PercentDone() int {
	if len(a.todos) == 0 {
		return 0
	}
	return (len(a.todos) - a.Remaining()) * 100 / len(a.todos)
}

// Mounted reports whether Body is connected to a document.
func (a *App) Mounted() bool { return a.mounted }
