// ABOUTME: Narrow capability interfaces over the host environment.
// ABOUTME: Terminal implementations here; tests substitute in-memory fakes.
package host

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
)

// Notifier surfaces user-visible outcomes: the toast/alert analog.
// Advise is the non-blocking "saved locally, will sync later" channel;
// Alert is for terminal errors that need the user's attention.
type Notifier interface {
	Success(format string, args ...any)
	Advise(format string, args ...any)
	Alert(format string, args ...any)
}

// Chime plays the short descending done-cue when a countdown hits zero.
// Playback is best-effort; failures are silently ignored.
type Chime interface {
	Play()
}

// Haptics mirrors the host's haptic feedback channel.
type Haptics interface {
	Impact()
	Success()
	Error()
}

// Terminal is the CLI implementation of the host capabilities.
type Terminal struct{}

func (Terminal) Success(format string, args ...any) {
	color.Green("✓ "+format, args...)
}

func (Terminal) Advise(format string, args ...any) {
	color.Yellow("⚠ "+format, args...)
}

func (Terminal) Alert(format string, args ...any) {
	color.Red("✗ "+format, args...)
}

// Play rings the terminal bell twice, the closest analog to the original
// two-tone 880→440 Hz cue. Errors are ignored on purpose.
func (Terminal) Play() {
	_, _ = fmt.Fprint(os.Stdout, "\a")
	time.Sleep(250 * time.Millisecond)
	_, _ = fmt.Fprint(os.Stdout, "\a")
}

// NoopHaptics is the Haptics used off-host: a terminal has no haptic
// channel.
type NoopHaptics struct{}

func (NoopHaptics) Impact()  {}
func (NoopHaptics) Success() {}
func (NoopHaptics) Error()   {}

// NoopChime is the silent Chime used in tests and non-interactive runs.
type NoopChime struct{}

func (NoopChime) Play() {}

// Recorder captures notifications for assertions.
type Recorder struct {
	Successes  []string
	Advisories []string
	Alerts     []string
}

func (r *Recorder) Success(format string, args ...any) {
	r.Successes = append(r.Successes, fmt.Sprintf(format, args...))
}

func (r *Recorder) Advise(format string, args ...any) {
	r.Advisories = append(r.Advisories, fmt.Sprintf(format, args...))
}

func (r *Recorder) Alert(format string, args ...any) {
	r.Alerts = append(r.Alerts, fmt.Sprintf(format, args...))
}
