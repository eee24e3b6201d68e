package main

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/corvid-chess/corvid/engine"
)

const engineName = "corvid"

// uciLogger formats search progress as UCI "info" lines, grounded on the
// teacher's zurichess/uci.go uciLogger (buffered, flushed once per
// PrintPV), trimmed of multipv (spec.md's Non-goals exclude multi-PV).
type uciLogger struct {
	start time.Time
	buf   bytes.Buffer
}

func (ul *uciLogger) BeginSearch() {
	ul.start = time.Now()
	ul.buf.Reset()
}

func (ul *uciLogger) EndSearch() { ul.flush() }

func (ul *uciLogger) PrintPV(stats engine.Stats, score int32, pv []engine.Move) {
	fmt.Fprintf(&ul.buf, "info depth %d ", stats.Depth)
	fmt.Fprintf(&ul.buf, "score cp %d ", score)

	elapsed := time.Since(ul.start)
	if elapsed < time.Millisecond {
		elapsed = time.Millisecond
	}
	nps := stats.Nodes * uint64(time.Second) / uint64(elapsed)
	fmt.Fprintf(&ul.buf, "nodes %d time %d nps %d ", stats.Nodes, elapsed.Milliseconds(), nps)

	fmt.Fprintf(&ul.buf, "pv")
	for _, m := range pv {
		fmt.Fprintf(&ul.buf, " %v", m.UCI())
	}
	fmt.Fprintln(&ul.buf)
	ul.flush()
}

func (ul *uciLogger) flush() {
	os.Stdout.Write(ul.buf.Bytes())
	ul.buf.Reset()
}

// UCI drives an Engine through the UCI protocol. Grounded on the
// teacher's zurichess/uci.go Execute-dispatch/idle-channel pattern,
// trimmed to the hook set spec.md names: new game/set position/go/stop/
// quit, plus the supplemented ucinewgame, Hash and Clear Hash options and
// wtime/btime/winc/binc/movestogo time management. MultiPV, Ponder,
// Handicap Level, searchmoves and UCI_AnalyseMode are dropped with their
// options (spec.md's Non-goals exclude multi-PV and pondering).
type UCI struct {
	Engine *engine.Engine
	tc     *engine.TimeControl

	// buffered with capacity 1: full while a search is running.
	idle chan struct{}
}

func NewUCI() *UCI {
	return &UCI{
		Engine: engine.NewEngine(nil, &uciLogger{}, engine.Options{}),
		idle:   make(chan struct{}, 1),
	}
}

var reCmd = regexp.MustCompile(`^[[:word:]]+\b`)

func (u *UCI) Execute(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	cmd := reCmd.FindString(line)
	if cmd == "" {
		return fmt.Errorf("invalid command line")
	}

	switch cmd {
	case "isready":
		return u.isready()
	case "quit":
		return errQuit
	case "stop":
		return u.stop()
	case "uci":
		return u.uci()
	}

	// The remaining commands expect the engine to be idle.
	u.idle <- struct{}{}
	<-u.idle

	switch cmd {
	case "ucinewgame":
		return u.ucinewgame()
	case "position":
		return u.position(line)
	case "go":
		return u.go_(line)
	case "setoption":
		return u.setoption(line)
	default:
		return fmt.Errorf("unhandled command %s", cmd)
	}
}

func (u *UCI) uci() error {
	fmt.Printf("id name %s\n", engineName)
	fmt.Printf("option name Hash type spin default %d min 1 max 65536\n", engine.DefaultHashTableSizeMB)
	fmt.Println("uciok")
	return nil
}

func (u *UCI) isready() error {
	fmt.Println("readyok")
	return nil
}

func (u *UCI) ucinewgame() error {
	u.Engine.ClearHash()
	return nil
}

func (u *UCI) position(line string) error {
	args := strings.Fields(line)[1:]
	if len(args) == 0 {
		return fmt.Errorf("expected argument for 'position'")
	}

	var pos *engine.Position
	var err error
	i := 0
	switch args[0] {
	case "startpos":
		pos, err = engine.ParseFEN("startpos")
		i = 1
	case "fen":
		for i = 1; i < len(args) && args[i] != "moves"; i++ {
		}
		pos, err = engine.ParseFEN(strings.Join(args[1:i], " "))
	default:
		err = fmt.Errorf("unknown position command: %s", args[0])
	}
	if err != nil {
		return err
	}
	u.Engine.SetPosition(pos)

	if i < len(args) {
		if args[i] != "moves" {
			return fmt.Errorf("expected 'moves', got %q", args[i])
		}
		for _, s := range args[i+1:] {
			m, err := engine.MoveFromUCI(u.Engine.Position, s)
			if err != nil {
				return err
			}
			u.Engine.Position.DoMove(m)
		}
	}
	return nil
}

func (u *UCI) go_(line string) error {
	tc := engine.NewTimeControl(u.Engine.Position)
	args := strings.Fields(line)[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "wtime":
			i++
			ms, _ := strconv.Atoi(args[i])
			tc.WTime = time.Duration(ms) * time.Millisecond
		case "btime":
			i++
			ms, _ := strconv.Atoi(args[i])
			tc.BTime = time.Duration(ms) * time.Millisecond
		case "winc":
			i++
			ms, _ := strconv.Atoi(args[i])
			tc.WInc = time.Duration(ms) * time.Millisecond
		case "binc":
			i++
			ms, _ := strconv.Atoi(args[i])
			tc.BInc = time.Duration(ms) * time.Millisecond
		case "movestogo":
			i++
			n, _ := strconv.Atoi(args[i])
			tc.MovesToGo = n
		case "movetime":
			i++
			ms, _ := strconv.Atoi(args[i])
			tc.WTime, tc.BTime = time.Duration(ms)*time.Millisecond, time.Duration(ms)*time.Millisecond
			tc.WInc, tc.BInc = 0, 0
			tc.MovesToGo = 1
		case "depth":
			i++
			d, _ := strconv.Atoi(args[i])
			tc.Depth = d
		case "infinite":
			tc.Depth = 64
		default:
			return fmt.Errorf("invalid go command %s", args[i])
		}
	}

	u.tc = tc
	u.idle <- struct{}{}
	go u.play()
	return nil
}

func (u *UCI) play() {
	move, _ := u.Engine.Play(u.tc)
	if move.IsNull() {
		fmt.Println("bestmove (none)")
	} else {
		fmt.Printf("bestmove %v\n", move.UCI())
	}
	<-u.idle
}

func (u *UCI) stop() error {
	if u.tc != nil {
		u.tc.Stop()
	}
	u.idle <- struct{}{}
	<-u.idle
	return nil
}

var reSetOption = regexp.MustCompile(`^setoption\s+name\s+(.+?)(\s+value\s+(.*))?$`)

func (u *UCI) setoption(line string) error {
	m := reSetOption.FindStringSubmatch(line)
	if m == nil {
		return fmt.Errorf("invalid setoption command: %s", line)
	}
	name, value := m[1], m[3]
	switch name {
	case "Hash":
		mb, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid Hash value %q", value)
		}
		u.Engine.SetHashSizeMB(mb)
	case "Clear Hash":
		u.Engine.ClearHash()
	default:
		return fmt.Errorf("unknown option %q", name)
	}
	return nil
}
