package store

import (
	"encoding/csv"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/tyler180/floorball-appearances/internal/innebandy"
)

var (
	rosterHeader      = []string{"player_id", "name", "position", "href"}
	appearancesHeader = []string{"player", "division", "team", "matches", "goals", "assists", "points", "penalty"}
	linksHeader       = []string{"text", "href"}
)

// rosterAliases maps accepted roster CSV headers to the canonical column.
var rosterAliases = map[string]string{
	"player_id": "player_id",
	"nr":        "player_id",
	"name":      "name",
	"namn":      "name",
	"position":  "position",
	"href":      "href",
}

// ReadRoster reads a roster CSV. Unknown columns land in Extra.
func ReadRoster(r io.Reader) ([]innebandy.RawRosterRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "read roster header")
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff")))
	}

	var out []innebandy.RawRosterRow
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return out, errors.Wrapf(err, "read roster line %d", line)
		}
		row := innebandy.RawRosterRow{Extra: map[string]string{}}
		for i, h := range header {
			v := safeGet(rec, i)
			switch rosterAliases[h] {
			case "player_id":
				if row.PlayerID == "" {
					row.PlayerID = v
				}
			case "name":
				if row.Name == "" {
					row.Name = v
				}
			case "position":
				row.Position = v
			case "href":
				row.Href = v
			default:
				row.Extra[h] = v
			}
		}
		out = append(out, row)
	}
	return out, nil
}

// WriteRoster writes roster rows with the canonical columns followed by the
// union of Extra keys in sorted order.
func WriteRoster(w io.Writer, rows []innebandy.RawRosterRow) error {
	extraSet := map[string]struct{}{}
	for _, r := range rows {
		for k := range r.Extra {
			if _, canonical := rosterAliases[k]; !canonical {
				extraSet[k] = struct{}{}
			}
		}
	}
	extras := make([]string, 0, len(extraSet))
	for k := range extraSet {
		extras = append(extras, k)
	}
	sort.Strings(extras)

	cw := csv.NewWriter(w)
	if err := cw.Write(append(append([]string{}, rosterHeader...), extras...)); err != nil {
		return errors.Wrap(err, "write roster header")
	}
	for _, r := range rows {
		rec := []string{r.PlayerID, r.Name, r.Position, r.Href}
		for _, k := range extras {
			rec = append(rec, r.Extra[k])
		}
		if err := cw.Write(rec); err != nil {
			return errors.Wrap(err, "write roster row")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flush roster")
}

// WriteAppearances writes the flat appearance table.
func WriteAppearances(w io.Writer, recs []innebandy.AppearanceRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(appearancesHeader); err != nil {
		return errors.Wrap(err, "write appearances header")
	}
	for _, r := range recs {
		if err := cw.Write([]string{
			r.Player, r.Division, r.Team, strconv.Itoa(r.Matches),
			r.Goals, r.Assists, r.Points, r.Penalty,
		}); err != nil {
			return errors.Wrap(err, "write appearance row")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flush appearances")
}

// ReadAppearances reads a table written by WriteAppearances. Match counts
// are coerced the same way as at extraction.
func ReadAppearances(r io.Reader) ([]innebandy.AppearanceRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "read appearances header")
	}
	col := func(name string) int {
		for i, h := range header {
			if strings.EqualFold(strings.TrimSpace(h), name) {
				return i
			}
		}
		return -1
	}
	ci := make([]int, len(appearancesHeader))
	for i, name := range appearancesHeader {
		ci[i] = col(name)
	}

	var out []innebandy.AppearanceRecord
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return out, errors.Wrap(err, "read appearances")
		}
		out = append(out, innebandy.AppearanceRecord{
			Player:   safeGet(rec, ci[0]),
			Division: safeGet(rec, ci[1]),
			Team:     safeGet(rec, ci[2]),
			Matches:  innebandy.CoerceMatches(safeGet(rec, ci[3])),
			Goals:    safeGet(rec, ci[4]),
			Assists:  safeGet(rec, ci[5]),
			Points:   safeGet(rec, ci[6]),
			Penalty:  safeGet(rec, ci[7]),
		})
	}
	return out, nil
}

// WriteLinks writes schedule anchors.
func WriteLinks(w io.Writer, links []innebandy.Link) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(linksHeader); err != nil {
		return errors.Wrap(err, "write links header")
	}
	for _, l := range links {
		if err := cw.Write([]string{l.Text, l.Href}); err != nil {
			return errors.Wrap(err, "write link row")
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flush links")
}

// ReadAppearancesFile opens path and reads it with ReadAppearances.
func ReadAppearancesFile(path string) ([]innebandy.AppearanceRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()
	return ReadAppearances(f)
}

// ReadRosterFile opens path and reads it with ReadRoster.
func ReadRosterFile(path string) ([]innebandy.RawRosterRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadRoster(f)
}

// WriteFile creates path and hands it to write. The file is closed on every
// path and a close error is reported when write succeeded.
func WriteFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "close %s", path)
		}
	}()
	return write(f)
}

func safeGet(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}
