// Package console runs the interactive command loop.
package console

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/chzyer/readline"
	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/barplayer/internal/app/notification"
	"github.com/osa030/barplayer/internal/app/playback"
	"github.com/osa030/barplayer/internal/app/progress"
	"github.com/osa030/barplayer/internal/domain/playlist"
	"github.com/osa030/barplayer/internal/domain/track"
	"github.com/osa030/barplayer/internal/infra/audio"
)

// Player is the playback surface driven by commands.
// Implemented by *playback.Controller.
type Player interface {
	Play() error
	Pause() error
	Add(t track.Track) error
	Clear() error
	Tracks() []track.Track
	CurrentTrack() (track.Track, int, bool)
	State() playback.State
}

// TrackLoader builds a track from a file path.
// Implemented by *metadata.Reader.
type TrackLoader interface {
	Load(path string) (track.Track, error)
}

// LineReader reads one command line. Implemented by *readline.Instance.
// Close must unblock a pending Readline.
type LineReader interface {
	Readline() (string, error)
	Close() error
}

var _ Player = (*playback.Controller)(nil)

// Loop reads commands and applies them to the player.
type Loop struct {
	reader LineReader
	player Player
	loader TrackLoader
	out    io.Writer

	closeOnce sync.Once
	closeErr  error

	errStyle  lipgloss.Style
	infoStyle lipgloss.Style
	curStyle  lipgloss.Style
}

// New creates a command loop writing diagnostics to out.
func New(reader LineReader, player Player, loader TrackLoader, out io.Writer) *Loop {
	return &Loop{
		reader:    reader,
		player:    player,
		loader:    loader,
		out:       out,
		errStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		infoStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		curStyle:  lipgloss.NewStyle().Bold(true),
	}
}

// Run reads and executes commands until stop, end of input, an interrupt
// or ctx cancellation.
func (l *Loop) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			// Unblocks Readline
			_ = l.Close()
		case <-done:
		}
	}()

	for {
		if ctx.Err() != nil {
			return nil
		}

		line, err := l.reader.Readline()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, readline.ErrInterrupt) {
				return nil
			}
			return errors.Wrap(err, "failed to read command")
		}

		if quit := l.Execute(line); quit {
			return nil
		}
	}
}

// Close closes the reader. Only the first call reaches it.
func (l *Loop) Close() error {
	l.closeOnce.Do(func() {
		l.closeErr = l.reader.Close()
	})
	return l.closeErr
}

// Execute runs one command line and reports whether the loop should end.
func (l *Loop) Execute(line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	cmd := strings.Fields(line)[0]
	arg := strings.TrimSpace(line[len(cmd):])
	zlog.Debug().Msgf("console: command: %s %s", cmd, arg)

	switch cmd {
	case "add":
		if arg == "" {
			l.printErr("usage: add <path>")
			return false
		}
		l.Add(arg)
	case "play":
		l.report(l.player.Play())
	case "pause":
		l.report(l.player.Pause())
	case "clear":
		l.report(l.player.Clear())
	case "list":
		l.list()
	case "help":
		l.help()
	case "stop":
		return true
	default:
		l.printErr(fmt.Sprintf("Undefined command: %s", cmd))
	}
	return false
}

// Add loads path and appends it to the playlist. Failures are printed.
func (l *Loop) Add(path string) bool {
	t, err := l.loader.Load(path)
	if err == nil {
		err = l.player.Add(t)
	}
	if err != nil {
		zlog.Debug().Msgf("console: add failed: %+v", err)
		l.printErr(fmt.Sprintf("cannot add %s: %s", path, reason(err)))
		return false
	}

	l.printInfo(fmt.Sprintf("added %s - %s [%s]", t.Title, t.Artist, progress.FormatTime(t.Seconds())))
	return true
}

// Send prints playlist milestones. It implements notification.Stream.
func (l *Loop) Send(n notification.Notification) error {
	if n.Event.Type == playback.EventPlaylistFinished {
		l.printInfo("playlist finished")
	}
	return nil
}

func (l *Loop) list() {
	tracks := l.player.Tracks()
	if len(tracks) == 0 {
		l.printErr(playback.ErrEmptyPlaylist.Error())
		return
	}

	_, current, playing := l.player.CurrentTrack()
	for i, t := range tracks {
		entry := fmt.Sprintf("%d. %s - %s [%s]", i+1, t.Title, t.Artist, progress.FormatTime(t.Seconds()))
		if playing && i == current {
			fmt.Fprintln(l.out, l.curStyle.Render("* "+entry))
			continue
		}
		fmt.Fprintln(l.out, "  "+entry)
	}
	total := playlist.New(tracks...).TotalDuration()
	l.printInfo(fmt.Sprintf("%d tracks, %s, %s", len(tracks), progress.FormatTime(uint64(total/time.Second)), l.player.State()))
}

func (l *Loop) help() {
	for _, c := range Commands {
		fmt.Fprintf(l.out, "  %-12s %s\n", c.Usage, c.Help)
	}
}

// report prints err, if any.
func (l *Loop) report(err error) {
	if err == nil {
		return
	}
	l.printErr(reason(err))
}

func (l *Loop) printErr(msg string) {
	fmt.Fprintln(l.out, l.errStyle.Render(msg))
}

func (l *Loop) printInfo(msg string) {
	fmt.Fprintln(l.out, l.infoStyle.Render(msg))
}

// reason returns the user-facing text for err.
func reason(err error) string {
	kinds := []error{
		playback.ErrEmptyPlaylist,
		playback.ErrTrackAlreadyPlaying,
		playback.ErrTrackAlreadyPaused,
		playback.ErrClosed,
		audio.ErrFileNotFound,
		audio.ErrUnsupportedFormat,
		audio.ErrDecodeFailure,
	}
	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}
	return err.Error()
}
