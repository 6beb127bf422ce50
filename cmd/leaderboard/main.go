// Command leaderboard prints the local racer leaderboard and can clear it.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/Korport/RacingGame/internal/leaderboard"
	"github.com/Korport/RacingGame/internal/storage"
)

const timeLayout = "2006-01-02 15:04"

var (
	colorTitle = color.New(color.FgYellow, color.Bold)
	colorRank  = color.New(color.FgHiBlack)
	colorScore = color.New(color.FgGreen)
	colorName  = color.New(color.FgCyan)
	colorTime  = color.New(color.FgWhite)
)

func main() {
	clearAll := flag.Bool("clear", false, "remove every leaderboard entry (asks first)")
	yes := flag.Bool("y", false, "with -clear, do not ask for confirmation")
	dataDir := flag.String("data", "", "directory holding the scores (default: per-user config dir)")
	top := flag.Int("n", leaderboard.TopN, "number of entries to show")
	flag.Parse()

	dir := *dataDir
	if dir == "" {
		d, err := storage.DefaultDir()
		if err != nil {
			color.Red("leaderboard: %v", err)
			os.Exit(1)
		}
		dir = d
	}
	kv, err := storage.NewFileKV(dir)
	if err != nil {
		color.Red("leaderboard: %v", err)
		os.Exit(1)
	}
	board := leaderboard.New(kv, leaderboard.WithErrorHook(func(err error) {
		color.Red("leaderboard: %v", err)
	}))

	if *clearAll {
		if !*yes && !confirm(os.Stdin, os.Stdout) {
			color.Yellow("Leaderboard kept.")
			return
		}
		board.Clear()
		color.Green("Leaderboard cleared.")
		return
	}

	printBoard(os.Stdout, board.Top(*top))
}

// confirm asks a y/N question on in and reports a yes.
func confirm(in io.Reader, out io.Writer) bool {
	fmt.Fprint(out, "Clear all leaderboard entries? [y/N]: ")
	line, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}

func printBoard(out io.Writer, entries []leaderboard.Entry) {
	colorTitle.Fprintln(out, "*** Leaderboard ***")
	if len(entries) == 0 {
		fmt.Fprintln(out, "No scores yet")
		return
	}
	for i, e := range entries {
		name := e.Name
		if name == "" {
			name = "-"
		}
		colorRank.Fprintf(out, "#%-3d", i+1)
		colorScore.Fprintf(out, "%8d  ", e.Score)
		colorName.Fprintf(out, "%-*s  ", leaderboard.MaxNameLen, name)
		colorTime.Fprintln(out, e.Time().Local().Format(timeLayout))
	}
}
