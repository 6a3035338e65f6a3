// SPDX-License-Identifier: Apache-2.0

// Package help holds the descriptions of the CLI commands.
//
// Descriptions live in commands.toml, one table per command name, so that
// they can be reviewed and translated without touching the command code.
package help

import (
	_ "embed"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/joomcode/errorx"
)

//go:embed commands.toml
var commandsToml string

// Command is the help text of a single command.
type Command struct {
	Short   string `toml:"short"`
	Long    string `toml:"long"`
	Example string `toml:"example"`
}

var (
	loadOnce sync.Once
	commands map[string]Command
	loadErr  error
)

// Parse decodes command descriptions from a TOML document.
func Parse(doc string) (map[string]Command, error) {
	parsed := map[string]Command{}
	md, err := toml.Decode(doc, &parsed)
	if err != nil {
		return nil, errorx.IllegalFormat.Wrap(err, "failed to parse command descriptions")
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return nil, errorx.IllegalFormat.New("unknown keys in command descriptions: %s", strings.Join(keys, ", "))
	}

	for name, c := range parsed {
		c.Long = strings.TrimSpace(c.Long)
		c.Example = strings.TrimRight(c.Example, "\n")
		parsed[name] = c
	}

	return parsed, nil
}

// Lookup returns the help text of the named command.
// An unknown name yields an empty Command.
func Lookup(name string) Command {
	loadOnce.Do(func() {
		commands, loadErr = Parse(commandsToml)
	})

	if loadErr != nil {
		return Command{}
	}

	return commands[name]
}
