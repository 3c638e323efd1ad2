package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ChristopherRabotin/sky"
	"github.com/ChristopherRabotin/sky/sgp4"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var satCmd = &cobra.Command{
	Use:   "sat",
	Short: "Look angles and visibility of the satellites of a TLE file",
	Args:  cobra.NoArgs,
	RunE:  runSat,
}

func init() {
	satCmd.Flags().String("tle", "", "file of two or three line element sets")
	satCmd.MarkFlagRequired("tle")
}

// readTLEs reads element sets, each optionally preceded by a name line. Blank lines
// are skipped.
func readTLEs(r io.Reader) ([]*sgp4.Satellite, error) {
	var (
		sats  []*sgp4.Satellite
		lines []string
	)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r\n ")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
		if !strings.HasPrefix(line, "2 ") {
			continue
		}
		name := ""
		switch len(lines) {
		case 2:
		case 3:
			name = strings.TrimPrefix(lines[0], "0 ")
		default:
			return nil, errors.Wrapf(sgp4.ErrFormat, "element set %d: %d lines", len(sats)+1, len(lines))
		}
		sat, err := sgp4.Parse(name, lines[len(lines)-2], lines[len(lines)-1])
		if err != nil {
			return nil, errors.Wrapf(err, "element set %d", len(sats)+1)
		}
		sats = append(sats, sat)
		lines = lines[:0]
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(lines) != 0 {
		return nil, errors.Wrap(sgp4.ErrFormat, "truncated element set at the end")
	}
	return sats, nil
}

func loadTLEs(path string) ([]*sgp4.Satellite, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sats, err := readTLEs(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return sats, nil
}

func runSat(cmd *cobra.Command, args []string) error {
	t, err := instant()
	if err != nil {
		return err
	}
	path, _ := cmd.Flags().GetString("tle")
	sats, err := loadTLEs(path)
	if err != nil {
		return err
	}
	obs := observer()
	jd := sky.JD(t)
	out := cmd.OutOrStdout()
	for _, sat := range sats {
		p, err := sat.PositionAt(jd, obs)
		if err != nil {
			level.Warn(sky.Logger()).Log("sat", sat.Name(), "err", err)
			fmt.Fprintln(out, render(sat.Name(), []row{{"Error", errorStyle.Render(err.Error())}}))
			continue
		}
		fmt.Fprintln(out, render(sat.Name(), satRows(p)))
	}
	fmt.Fprintln(out, siteLine(site(), t))
	return nil
}
