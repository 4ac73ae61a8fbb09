package console

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
)

// Command describes one console command.
type Command struct {
	Name  string
	Usage string
	Help  string
}

// Commands lists the console commands in help order.
var Commands = []Command{
	{Name: "add", Usage: "add <path>", Help: "Append an audio file to the playlist"},
	{Name: "play", Usage: "play", Help: "Resume playback, or start the next track"},
	{Name: "pause", Usage: "pause", Help: "Pause playback"},
	{Name: "clear", Usage: "clear", Help: "Erase the progress bar"},
	{Name: "list", Usage: "list", Help: "Show the playlist"},
	{Name: "help", Usage: "help", Help: "Show this help"},
	{Name: "stop", Usage: "stop", Help: "Quit"},
}

// Completer completes command names and, after add, directories and the
// files accept reports as playable.
func Completer(accept func(path string) bool) *readline.PrefixCompleter {
	items := make([]readline.PrefixCompleterInterface, 0, len(Commands))
	for _, c := range Commands {
		if c.Name == "add" {
			items = append(items, readline.PcItem(c.Name,
				readline.PcItemDynamic(func(line string) []string {
					return listFiles(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "add")), accept)
				}),
			))
			continue
		}
		items = append(items, readline.PcItem(c.Name))
	}
	return readline.NewPrefixCompleter(items...)
}

// listFiles returns the directories and accepted files whose path starts with prefix.
func listFiles(prefix string, accept func(path string) bool) []string {
	dir := filepath.Dir(prefix)
	if prefix == "" {
		dir = "."
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var names []string
	for _, e := range entries {
		name := filepath.Join(dir, e.Name())
		if e.IsDir() {
			name += string(filepath.Separator)
		} else if accept != nil && !accept(name) {
			continue
		}
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	return names
}
