// Command corvid is a UCI chess engine.
package main

import (
	"bufio"
	"errors"
	"log"
	"os"
)

var errQuit = errors.New("quit")

func main() {
	log.SetOutput(os.Stdout)
	log.SetPrefix("info string ")
	log.SetFlags(0)

	bio := bufio.NewReader(os.Stdin)
	uci := NewUCI()
	for {
		line, _, err := bio.ReadLine()
		if err != nil {
			break
		}
		if err := uci.Execute(string(line)); err != nil {
			if errors.Is(err, errQuit) {
				break
			}
			log.Println("error:", err)
		}
	}
}
