package config

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
	"gopkg.in/ini.v1"
)

type OverrideKind int

const (
	OverrideTTF OverrideKind = iota
	OverrideJP
)

func (k OverrideKind) String() string {
	if k == OverrideJP {
		return "jp"
	}
	return "ttf"
}

// FontOverride is one configured replacement for a game font slot.
//
//	N=ttf:file,pointsize[,rgb[,border[,sjis]]]
//	N=jp:jpfont[,rgb]
//
// rgb is hex, with or without a 0x or # prefix.  It defaults to white.
type FontOverride struct {
	Slot int
	Kind OverrideKind

	File       string
	PointSize  int
	RGB        uint32
	BorderSize int
	SJIS       bool

	JPFont int
}

func (o FontOverride) String() string {
	if o.Kind == OverrideJP {
		return fmt.Sprintf("%d=jp:%d,0x%06X", o.Slot, o.JPFont, o.RGB)
	}
	return fmt.Sprintf("%d=ttf:%s,%d,0x%06X,%d,%t", o.Slot, o.File, o.PointSize, o.RGB, o.BorderSize, o.SJIS)
}

const defaultOverrideRGB = 0xFFFFFF

func parseRGB(s string) (uint32, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X"), "#")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("bad colour %q: %w", s, err)
	}
	if v > 0xFFFFFF {
		return 0, fmt.Errorf("bad colour %q: out of range", s)
	}
	return uint32(v), nil
}

// ParseFontOverride parses the value of an override entry for slot.
func ParseFontOverride(slot int, value string) (FontOverride, error) {
	o := FontOverride{Slot: slot, RGB: defaultOverrideRGB}
	if slot < 0 {
		return o, fmt.Errorf("font override %d: negative slot", slot)
	}
	kind, rest, ok := strings.Cut(strings.TrimSpace(value), ":")
	if !ok {
		return o, fmt.Errorf("font override %d: missing kind in %q", slot, value)
	}
	fields := strings.Split(rest, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	var err error
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "ttf":
		o.Kind = OverrideTTF
		if len(fields) < 2 || len(fields) > 5 {
			return o, fmt.Errorf("font override %d: ttf wants file,pointsize[,rgb[,border[,sjis]]], got %q", slot, rest)
		}
		o.File = fields[0]
		if o.File == "" {
			return o, fmt.Errorf("font override %d: empty file name", slot)
		}
		if o.PointSize, err = strconv.Atoi(fields[1]); err != nil || o.PointSize <= 0 {
			return o, fmt.Errorf("font override %d: bad point size %q", slot, fields[1])
		}
		if len(fields) > 2 {
			if o.RGB, err = parseRGB(fields[2]); err != nil {
				return o, fmt.Errorf("font override %d: %w", slot, err)
			}
		}
		if len(fields) > 3 {
			if o.BorderSize, err = strconv.Atoi(fields[3]); err != nil || o.BorderSize < 0 {
				return o, fmt.Errorf("font override %d: bad border size %q", slot, fields[3])
			}
		}
		if len(fields) > 4 {
			if o.SJIS, err = strconv.ParseBool(fields[4]); err != nil {
				return o, fmt.Errorf("font override %d: bad sjis flag %q", slot, fields[4])
			}
		}
	case "jp":
		o.Kind = OverrideJP
		if len(fields) < 1 || len(fields) > 2 {
			return o, fmt.Errorf("font override %d: jp wants jpfont[,rgb], got %q", slot, rest)
		}
		if o.JPFont, err = strconv.Atoi(fields[0]); err != nil || o.JPFont < 0 {
			return o, fmt.Errorf("font override %d: bad jp font %q", slot, fields[0])
		}
		if len(fields) > 1 {
			if o.RGB, err = parseRGB(fields[1]); err != nil {
				return o, fmt.Errorf("font override %d: %w", slot, err)
			}
		}
	default:
		return o, fmt.Errorf("font override %d: unknown kind %q", slot, kind)
	}
	return o, nil
}

// LoadFontOverrides reads the font override section for game from INI
// data.  The section "<game>/fontoverride" is used when present, otherwise
// "fontoverride".  A missing section yields no overrides.
func LoadFontOverrides(data []byte, game string) ([]FontOverride, error) {
	f, err := ini.LoadSources(ini.LoadOptions{
		InsensitiveSections:     true,
		SkipUnrecognizableLines: true,
		IgnoreInlineComment:     true,
	}, data)
	if err != nil {
		return nil, fmt.Errorf("font overrides: %w", err)
	}

	var sec *ini.Section
	for _, name := range []string{game + "/fontoverride", "fontoverride"} {
		if game == "" && name != "fontoverride" {
			continue
		}
		if s, err := f.GetSection(name); err == nil {
			sec = s
			break
		}
	}
	if sec == nil {
		return nil, nil
	}

	var out []FontOverride
	for _, key := range sec.Keys() {
		slot, err := strconv.Atoi(strings.TrimSpace(key.Name()))
		if err != nil {
			return nil, fmt.Errorf("font overrides: bad slot %q", key.Name())
		}
		o, err := ParseFontOverride(slot, key.Value())
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	slices.SortFunc(out, func(a, b FontOverride) int {
		return a.Slot - b.Slot
	})
	return out, nil
}
