// SPDX-License-Identifier: MIT
// Copyright (c) 2026 Stalker Tools
// Source: github.com/stalker-tools/xrdb

package xrdb

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Version identifies one historical DB/XDB on-disk layout. Values are
// disjoint bits so that "exactly one version selected" stays a cheap
// power-of-two check.
type Version uint32

// Supported archive layout versions.
const (
	// V1114 is the oldest layout (".xrp" archives, builds around 1114).
	V1114 Version = 1 << iota
	// V2215 is the ".xp?" layout used by builds around 2215.
	V2215
	// V2945 adds a per-entry CRC to the record format.
	V2945
	// V2947RU is the release layout with the RU-scrambled header.
	V2947RU
	// V2947WW is the release layout with the WW-scrambled header.
	V2947WW
	// VXDB is the ".xdb?" layout of the later titles.
	VXDB
)

// IsValid reports whether exactly one version bit is set.
func (v Version) IsValid() bool {
	return v != 0 && v&(v-1) == 0
}

// String returns the canonical version name.
func (v Version) String() string {
	switch v {
	case V1114:
		return "1114"
	case V2215:
		return "2215"
	case V2945:
		return "2945"
	case V2947RU:
		return "2947ru"
	case V2947WW:
		return "2947ww"
	case VXDB:
		return "xdb"
	default:
		return fmt.Sprintf("invalid(0x%x)", uint32(v))
	}
}

// VersionByName resolves a version from its canonical name. An empty
// name yields zero (meaning "infer from file name").
func VersionByName(name string) (Version, error) {
	switch strings.ToLower(name) {
	case "":
		return 0, nil
	case "11xx", "1114":
		return V1114, nil
	case "2215":
		return V2215, nil
	case "2945":
		return V2945, nil
	case "2947ru":
		return V2947RU, nil
	case "2947ww":
		return V2947WW, nil
	case "xdb":
		return VXDB, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownVersion, name)
	}
}

// VersionFromFileName infers the archive version from a file-name
// extension: ".xdb?" with an alphanumeric last character is VXDB,
// ".xrp" is V1114, ".xp?" with an alphanumeric last character is V2215.
// Anything else fails with ErrUnknownVersion.
func VersionFromFileName(name string) (Version, error) {
	ext := filepath.Ext(name)
	switch {
	case len(ext) == 5 && strings.HasPrefix(ext, ".xdb") && isAlphanumeric(ext[4]):
		return VXDB, nil
	case ext == ".xrp":
		return V1114, nil
	case len(ext) == 4 && strings.HasPrefix(ext, ".xp") && isAlphanumeric(ext[3]):
		return V2215, nil
	}

	return 0, fmt.Errorf("%w: cannot infer from %q", ErrUnknownVersion, name)
}

// resolveVersion applies the explicit version when given, inferring from
// the file name otherwise, and validates the exactly-one-bit invariant.
func resolveVersion(name string, explicit Version) (Version, error) {
	version := explicit
	if version == 0 && name != "" {
		inferred, err := VersionFromFileName(name)
		if err != nil {
			return 0, err
		}

		version = inferred
	}

	if !version.IsValid() {
		return 0, fmt.Errorf("%w: 0x%x", ErrUnknownVersion, uint32(version))
	}

	return version, nil
}

// isAlphanumeric reports whether b is an ASCII letter or digit.
func isAlphanumeric(b byte) bool {
	switch {
	case b >= '0' && b <= '9':
		return true
	case b >= 'a' && b <= 'z':
		return true
	case b >= 'A' && b <= 'Z':
		return true
	}

	return false
}
