package xrdb

import (
	"errors"
	"testing"
)

func TestVersion_IsValid(t *testing.T) {
	for _, v := range []Version{V1114, V2215, V2945, V2947RU, V2947WW, VXDB} {
		if !v.IsValid() {
			t.Errorf("%s.IsValid() = false", v)
		}
	}

	for _, v := range []Version{0, V1114 | V2215, V2945 | VXDB, 0xff} {
		if v.IsValid() {
			t.Errorf("Version(0x%x).IsValid() = true", uint32(v))
		}
	}
}

func TestVersionFromFileName(t *testing.T) {
	tests := []struct {
		name string
		want Version
	}{
		{"game.xdba", VXDB},
		{"levels.xdb0", VXDB},
		{"save.xrp", V1114},
		{"data.xp3", V2215},
		{"gamedata.xpz", V2215},
	}

	for _, tc := range tests {
		got, err := VersionFromFileName(tc.name)
		if err != nil {
			t.Errorf("VersionFromFileName(%q): %v", tc.name, err)
			continue
		}
		if got != tc.want {
			t.Errorf("VersionFromFileName(%q) = %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestVersionFromFileName_Unknown(t *testing.T) {
	for _, name := range []string{"data.unknown", "gamedata.db0", "noext", "a.xdb", "b.xp", "c.xdb_", "d.xdbXY"} {
		if _, err := VersionFromFileName(name); !errors.Is(err, ErrUnknownVersion) {
			t.Errorf("VersionFromFileName(%q) err = %v, want ErrUnknownVersion", name, err)
		}
	}
}

func TestVersionByName(t *testing.T) {
	tests := []struct {
		name string
		want Version
	}{
		{"", 0},
		{"11xx", V1114},
		{"2215", V2215},
		{"2945", V2945},
		{"2947ru", V2947RU},
		{"2947WW", V2947WW},
		{"xdb", VXDB},
	}

	for _, tc := range tests {
		got, err := VersionByName(tc.name)
		if err != nil || got != tc.want {
			t.Errorf("VersionByName(%q) = %s, %v; want %s", tc.name, got, err, tc.want)
		}
	}

	if _, err := VersionByName("2948"); !errors.Is(err, ErrUnknownVersion) {
		t.Errorf("VersionByName(2948) err = %v, want ErrUnknownVersion", err)
	}
}

func TestResolveVersion(t *testing.T) {
	// Explicit version wins over the file name.
	got, err := resolveVersion("gamedata.xrp", V2947RU)
	if err != nil || got != V2947RU {
		t.Fatalf("explicit resolve = %s, %v", got, err)
	}

	// Zero version falls back to inference.
	got, err = resolveVersion("gamedata.xrp", 0)
	if err != nil || got != V1114 {
		t.Fatalf("inferred resolve = %s, %v", got, err)
	}

	// Multiple bits are rejected even when explicit.
	if _, err = resolveVersion("gamedata.xrp", V1114|V2215); !errors.Is(err, ErrUnknownVersion) {
		t.Fatalf("ambiguous resolve err = %v, want ErrUnknownVersion", err)
	}

	if _, err = resolveVersion("gamedata.bin", 0); !errors.Is(err, ErrUnknownVersion) {
		t.Fatalf("uninferable resolve err = %v, want ErrUnknownVersion", err)
	}
}

func TestVersion_String(t *testing.T) {
	tests := map[Version]string{
		V1114:   "1114",
		V2215:   "2215",
		V2945:   "2945",
		V2947RU: "2947ru",
		V2947WW: "2947ww",
		VXDB:    "xdb",
	}

	for v, want := range tests {
		if got := v.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", v, got, want)
		}
	}
}
