// Package detection identifies game releases from the files in a game
// directory.  Each release is described by a table entry listing the
// files it ships with, the MD5 of their leading bytes and their sizes.
package detection

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
)

// HashPrefix is the number of leading bytes of a file hashed for matching.
const HashPrefix = 5000

type Language string

const (
	LangUnknown    Language = ""
	LangEnglish    Language = "en"
	LangGerman     Language = "de"
	LangPortuguese Language = "pt"
)

type Platform string

const PlatformDOS Platform = "dos"

type Flags uint32

const FlagNone Flags = 0

// GUI options a release disables in the launcher.
const (
	GUINoSubtitles = "nosubtitles"
	GUINoSpeech    = "nospeech"
)

type GameType int

const (
	GameTypeNone GameType = iota
	GameTypeCrousti
)

func (g GameType) String() string {
	switch g {
	case GameTypeCrousti:
		return "crousti"
	}
	return fmt.Sprintf("GameType(%d)", int(g))
}

type Features uint32

const (
	FeaturesNone  Features = 0
	FeaturesAdLib Features = 1 << 0
)

// FileEntry is one file a release must contain.  Size -1 matches any size.
type FileEntry struct {
	Name string
	MD5  string
	Size int64
}

type Entry struct {
	GameID     string
	Extra      string
	Files      []FileEntry
	Language   Language
	Platform   Platform
	Flags      Flags
	GUIOptions []string
	GameType   GameType
	Features   Features
	// Note is free text shown to users, such as the translator's credit.
	Note string
}

func (e Entry) String() string {
	return fmt.Sprintf("%s (%s, %s, %s)", e.GameID, e.Extra, e.Language, e.Platform)
}

// Option configures Detect.
type Option func(*detector)

type detector struct {
	log *log.Logger
}

func WithLogger(l *log.Logger) Option {
	return func(d *detector) {
		d.log = l
	}
}

// Detect returns every entry of table whose files are all present in fsys
// with matching hash and size.  Missing files are not an error; the entry
// just does not match.
func Detect(fsys fs.FS, table []Entry, opts ...Option) ([]Entry, error) {
	d := &detector{log: log.NewWithOptions(os.Stderr, log.Options{Prefix: "detect"})}
	for _, opt := range opts {
		opt(d)
	}

	// several entries usually share a file, hash it once
	sums := map[string]fileSum{}
	var matches []Entry
	for _, entry := range table {
		ok, err := d.matches(fsys, entry, sums)
		if err != nil {
			return nil, err
		}
		if ok {
			d.log.Debug("matched", "game", entry.GameID, "lang", entry.Language)
			matches = append(matches, entry)
		}
	}
	return matches, nil
}

type fileSum struct {
	md5     string
	size    int64
	missing bool
}

func (d *detector) matches(fsys fs.FS, entry Entry, sums map[string]fileSum) (bool, error) {
	for _, want := range entry.Files {
		sum, ok := sums[want.Name]
		if !ok {
			var err error
			sum, err = hashFile(fsys, want.Name)
			if err != nil {
				return false, err
			}
			sums[want.Name] = sum
		}
		if sum.missing {
			return false, nil
		}
		if sum.md5 != want.MD5 || (want.Size >= 0 && sum.size != want.Size) {
			d.log.Debug("mismatch", "game", entry.GameID, "file", want.Name, "md5", sum.md5, "size", sum.size)
			return false, nil
		}
	}
	return true, nil
}

func hashFile(fsys fs.FS, name string) (fileSum, error) {
	f, err := fsys.Open(name)
	if errors.Is(err, fs.ErrNotExist) {
		return fileSum{missing: true}, nil
	}
	if err != nil {
		return fileSum{}, fmt.Errorf("detect %s: %w", name, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fileSum{}, fmt.Errorf("detect %s: %w", name, err)
	}
	if info.IsDir() {
		return fileSum{missing: true}, nil
	}
	h := md5.New()
	if _, err := io.CopyN(h, f, HashPrefix); err != nil && !errors.Is(err, io.EOF) {
		return fileSum{}, fmt.Errorf("detect %s: %w", name, err)
	}
	return fileSum{md5: hex.EncodeToString(h.Sum(nil)), size: info.Size()}, nil
}
