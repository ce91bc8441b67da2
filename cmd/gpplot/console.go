package main

import (
	"bufio"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/mgalka/gnuplot-go/pkg/gnuplot"
	"github.com/pterm/pterm"
	"golang.org/x/term"
)

// forwardCommands passes further commands to gnuplot: typed into a console
// when stdin is a terminal, line by line when it is a pipe.
func forwardCommands(session *gnuplot.Session) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			if err := session.Command(scanner.Text()); err != nil {
				return err
			}
		}
		return scanner.Err()
	}

	repl, err := readline.New("gnuplot> ")
	if err != nil {
		return err
	}
	defer repl.Close()

	pterm.Info.Println("Quit with <ctrl>D or 'quit'")
	for {
		line, err := repl.Readline()
		if err != nil { // io.EOF or interrupt
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}
		if err := session.Command(line); err != nil {
			pterm.Error.Println(err)
			return err
		}
	}
	pterm.Info.Println("Good bye!")
	return nil
}
