package scanner

import (
	"io/fs"
	"os"

	"github.com/djherbis/times"
)

// statRecord builds the record for a walked entry. Symlinks are followed, so
// a link to a directory is reported as a directory.
func statRecord(path string, d fs.DirEntry) (FileRecord, error) {
	rec := FileRecord{Path: path}
	if d.IsDir() {
		rec.IsDir = true
		return rec, nil
	}
	if d.Type()&fs.ModeSymlink != 0 {
		info, err := os.Stat(path)
		if err != nil {
			return FileRecord{}, err
		}
		if info.IsDir() {
			rec.IsDir = true
			return rec, nil
		}
	}
	ts, err := times.Stat(path)
	if err != nil {
		return FileRecord{}, err
	}
	if ts.HasBirthTime() {
		rec.Created = ts.BirthTime()
		rec.HasCreated = true
	}
	return rec, nil
}
