package vsop

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParseVSOP87 reads a spherical VSOP87 file (versions B and D) as distributed by the
// Bureau des Longitudes. Each block starts with a header line giving the variable
// (1 longitude, 2 latitude, 3 radius) in column 42, the power of time in column 60
// and the number of terms in columns 61 to 67; each term line holds A, B and C in
// columns 80-97, 98-111 and 112-131.
func ParseVSOP87(r io.Reader) (*Table, error) {
	tbl := &Table{}
	scanner := bufio.NewScanner(r)
	var (
		dst     *[]Term
		pending int
		n       int
	)
	for scanner.Scan() {
		n++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if pending == 0 {
			if len(line) < 67 || !strings.Contains(line, "VSOP87") {
				return nil, errors.Errorf("line %d: expected a block header", n)
			}
			if tbl.Name == "" {
				tbl.Name = strings.TrimSpace(line[22:29])
			}
			it := int(line[59] - '0')
			if it < 0 || it > 5 {
				return nil, errors.Errorf("line %d: power of time %c out of range", n, line[59])
			}
			count, err := strconv.Atoi(strings.TrimSpace(line[60:67]))
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", n)
			}
			switch line[41] {
			case '1':
				dst = &tbl.Lon[it]
			case '2':
				dst = &tbl.Lat[it]
			case '3':
				dst = &tbl.Rad[it]
			default:
				return nil, errors.Errorf("line %d: variable %c is not spherical", n, line[41])
			}
			pending = count
			*dst = make([]Term, 0, count)
			continue
		}
		if len(line) < 131 {
			return nil, errors.Errorf("line %d: term line too short", n)
		}
		var t Term
		var err error
		for i, col := range [][2]int{{79, 97}, {97, 111}, {111, 131}} {
			v := []*float64{&t.A, &t.B, &t.C}[i]
			if *v, err = strconv.ParseFloat(strings.TrimSpace(line[col[0]:col[1]]), 64); err != nil {
				return nil, errors.Wrapf(err, "line %d", n)
			}
		}
		*dst = append(*dst, t)
		pending--
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if pending != 0 {
		return nil, errors.Errorf("unexpected end of file, %d terms missing", pending)
	}
	if tbl.Empty() {
		return nil, errors.Wrap(ErrNoData, "no longitude series")
	}
	return tbl, nil
}
