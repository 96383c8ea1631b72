package settings

import (
	"fmt"
	"sort"
	"strings"
)

type Target string

const (
	X86_64  Target = "x86_64"
	I686    Target = "i686"
	AArch64 Target = "aarch64"
	AVR     Target = "avr"
)

// DataModel holds the ABI dependent widths, in bits, of the C scalar types.
type DataModel struct {
	CharSigned bool

	Char       int
	Short      int
	Int        int
	Long       int
	Float      int
	Double     int
	LongDouble int
}

var dataModels = map[Target]DataModel{
	X86_64: {
		CharSigned: true,
		Char:       8, Short: 16, Int: 32, Long: 64,
		Float: 32, Double: 64, LongDouble: 128,
	},
	I686: {
		CharSigned: true,
		Char:       8, Short: 16, Int: 32, Long: 32,
		Float: 32, Double: 64, LongDouble: 96,
	},
	AArch64: {
		CharSigned: false,
		Char:       8, Short: 16, Int: 32, Long: 64,
		Float: 32, Double: 64, LongDouble: 128,
	},
	AVR: {
		CharSigned: true,
		Char:       8, Short: 16, Int: 16, Long: 32,
		Float: 32, Double: 32, LongDouble: 32,
	},
}

func (t Target) DataModel() DataModel {
	dm, ok := dataModels[t]
	if !ok {
		panic("unknown target: " + string(t))
	}
	return dm
}

func Targets() []Target {
	targets := make([]Target, 0, len(dataModels))
	for t := range dataModels {
		targets = append(targets, t)
	}
	sort.Slice(targets, func(i, j int) bool { return targets[i] < targets[j] })
	return targets
}

func ParseTarget(name string) (Target, error) {
	t := Target(strings.ToLower(strings.TrimSpace(name)))
	if _, ok := dataModels[t]; !ok {
		return "", fmt.Errorf("unknown target %q (known: %v)", name, Targets())
	}
	return t, nil
}

// Settings is the read-only configuration threaded through lowering.
type Settings struct {
	Target Target
}

func DefaultSettings() Settings {
	return Settings{Target: X86_64}
}
