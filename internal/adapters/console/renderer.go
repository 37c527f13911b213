// Package console renders the multiplexed output stream to the terminal.
package console

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/muesli/termenv"
	"go.trai.ch/conductor/internal/core/domain"
	"go.trai.ch/conductor/internal/core/ports"
	"go.trai.ch/conductor/internal/ui/output"
	"go.trai.ch/conductor/internal/ui/style"
)

// Renderer implements ports.Renderer with one line per message, each prefixed
// by the colored name of its source.
type Renderer struct {
	mu  sync.Mutex
	out *termenv.Output
}

var _ ports.Renderer = (*Renderer)(nil)

// NewRenderer creates a Renderer writing to w. A nil writer selects stdout.
func NewRenderer(w io.Writer) *Renderer {
	if w == nil {
		w = os.Stdout
	}
	return &Renderer{out: output.New(w)}
}

// ComponentOutput prints "[name] line" with the name in the component's color.
func (r *Renderer) ComponentOutput(component domain.Component, line string) {
	r.println(r.tagged(component.Name, r.componentColor(component.Color), line))
}

// TaskOutput prints "[task] line" with the task name in magenta.
func (r *Renderer) TaskOutput(task domain.Task, line string) {
	r.println(r.tagged(task.Name, r.out.Color(string(style.ANSIMagenta)), line))
}

// SystemMessage prints "-=[ msg ]=-" with a white message.
func (r *Renderer) SystemMessage(msg string) {
	r.println(r.banner(msg, r.out.Color(string(style.ANSIWhite))))
}

// SystemError prints "-=[ msg ]=-" with a red message.
func (r *Renderer) SystemError(msg string) {
	r.println(r.banner(msg, r.out.Color(string(style.ANSIRed))))
}

func (r *Renderer) tagged(name string, color termenv.Color, line string) string {
	white := r.out.Color(string(style.ANSIWhite))
	return fmt.Sprintf("%s%s%s %s",
		r.out.String("[").Foreground(white).Bold(),
		r.out.String(name).Foreground(color).Bold(),
		r.out.String("]").Foreground(white).Bold(),
		line,
	)
}

func (r *Renderer) banner(msg string, color termenv.Color) string {
	red := r.out.Color(string(style.ANSIRed))
	return fmt.Sprintf("%s %s %s",
		r.out.String("-=[").Foreground(red).Bold(),
		r.out.String(msg).Foreground(color).Bold(),
		r.out.String("]=-").Foreground(red).Bold(),
	)
}

func (r *Renderer) componentColor(c domain.Color) termenv.Color {
	var ansi string
	switch c {
	case domain.ColorBlue:
		ansi = string(style.ANSIBlue)
	case domain.ColorGreen:
		ansi = string(style.ANSIGreen)
	case domain.ColorPurple:
		ansi = string(style.ANSIMagenta)
	case domain.ColorWhite:
		ansi = string(style.ANSIWhite)
	case domain.ColorRed:
		ansi = string(style.ANSIRed)
	case domain.ColorCyan:
		ansi = string(style.ANSICyan)
	default:
		ansi = string(style.ANSIYellow)
	}
	return r.out.Color(ansi)
}

func (r *Renderer) println(s string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, _ = r.out.WriteString(s + "\n")
}
