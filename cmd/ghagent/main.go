// Command ghagent is a terminal chat client for an HTTP chat agent.
package main

import "github.com/diogo/ghagent/internal/commands"

func main() {
	commands.Execute()
}
