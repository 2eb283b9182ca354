package main

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
)

const (
	defaultBaseURL = "http://localhost:8080"
	defaultDBWait  = 30
)

// Command is one devtool subcommand
type Command interface {
	Name() string
	Description() string
	Run(args []string) error
}

// Registry maps subcommand names to commands
type Registry struct {
	commands map[string]Command
}

func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

func (r *Registry) Register(cmd Command) {
	r.commands[cmd.Name()] = cmd
}

func (r *Registry) Get(name string) (Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// List returns the commands sorted by name
func (r *Registry) List() []Command {
	cmds := make([]Command, 0, len(r.commands))
	for _, cmd := range r.commands {
		cmds = append(cmds, cmd)
	}
	sort.Slice(cmds, func(i, j int) bool { return cmds[i].Name() < cmds[j].Name() })
	return cmds
}

func (r *Registry) PrintHelp() {
	fmt.Println("Usage: devtool <command> [args...]")
	fmt.Println("\nCommands:")

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, cmd := range r.List() {
		fmt.Fprintf(tw, "  %s\t%s\n", cmd.Name(), cmd.Description())
	}
	tw.Flush()
}
