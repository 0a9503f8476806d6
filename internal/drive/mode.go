package drive

import (
	"fmt"
	"strings"
)

type Mode int

const (
	Manual Mode = iota
	Sinusoidal
)

func (m Mode) String() string {
	switch m {
	case Manual:
		return "manual"
	case Sinusoidal:
		return "sinusoidal"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "manual", "":
		return Manual, nil
	case "sinusoidal", "sine", "lissajous":
		return Sinusoidal, nil
	}
	return Manual, fmt.Errorf("unknown drive mode: %q (want manual or sinusoidal)", s)
}
