package main

import "github.com/sudo-give-me-coffee/Boop-GTK/cmd"

func main() {
	cmd.Execute()
}
