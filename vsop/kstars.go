package vsop

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ReadKStars reads one coefficient file: one term per line, as three whitespace
// separated numbers A B C. Lines with another number of fields are skipped.
func ReadKStars(r io.Reader) ([]Term, error) {
	var terms []Term
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) != 3 {
			continue
		}
		var t Term
		var err error
		for i, dst := range []*float64{&t.A, &t.B, &t.C} {
			if *dst, err = strconv.ParseFloat(fields[i], 64); err != nil {
				return nil, errors.Wrapf(err, "line %d", line)
			}
		}
		terms = append(terms, t)
	}
	return terms, scanner.Err()
}

// LoadKStars reads the table of a body from the files <name>.L0.vsop to <name>.R5.vsop
// of dir, name being lower cased. Missing files leave their group empty; when no
// longitude file exists at all the error wraps ErrNoData.
func LoadKStars(dir, name string) (*Table, error) {
	return LoadKStarsFS(os.DirFS(dir), name)
}

// LoadKStarsFS is LoadKStars on any file system.
func LoadKStarsFS(fsys fs.FS, name string) (*Table, error) {
	nl := strings.ToLower(name)
	tbl := &Table{Name: name}
	for _, coord := range []struct {
		letter string
		series *Series
	}{{"L", &tbl.Lon}, {"B", &tbl.Lat}, {"R", &tbl.Rad}} {
		for i := range coord.series {
			fname := fmt.Sprintf("%s.%s%d.vsop", nl, coord.letter, i)
			f, err := fsys.Open(fname)
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					continue
				}
				return nil, errors.Wrapf(err, "opening %s", fname)
			}
			terms, err := ReadKStars(f)
			f.Close()
			if err != nil {
				return nil, errors.Wrapf(err, "reading %s", fname)
			}
			coord.series[i] = terms
		}
	}
	if tbl.Empty() {
		return nil, errors.Wrapf(ErrNoData, "no longitude series for %s", name)
	}
	return tbl, nil
}
