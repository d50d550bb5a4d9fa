package allocation

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidMode = errors.New("invalid allocation mode")

// Mode selects the policy used to split a total budget over days.
type Mode string

const (
	ModeEqual        Mode = "equal"
	ModeProportional Mode = "proportional"
	ModeExternal     Mode = "external"
)

// ParseMode parses a mode case insensitively. The empty string selects
// ModeEqual and "ai" is accepted as an alias for ModeExternal.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(ModeEqual):
		return ModeEqual, nil
	case string(ModeProportional):
		return ModeProportional, nil
	case string(ModeExternal), "ai":
		return ModeExternal, nil
	}

	return "", fmt.Errorf("%w '%s', must be one of [%s %s %s]", ErrInvalidMode, s, ModeEqual, ModeProportional, ModeExternal)
}

// UnmarshalParam parses query string and form parameters for gin bindings.
func (m *Mode) UnmarshalParam(p string) error {
	parsed, err := ParseMode(p)
	if err != nil {
		return err
	}

	*m = parsed
	return nil
}

// UnmarshalText implements encoding.TextUnmarshaler for JSON bodies.
func (m *Mode) UnmarshalText(text []byte) error {
	return m.UnmarshalParam(string(text))
}
