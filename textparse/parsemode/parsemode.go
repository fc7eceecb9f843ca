package parsemode

import (
	"strings"

	"github.com/cockroachdb/errors"
)

type Mode string

const (
	// Combined accepts both markdown and HTML.
	Combined Mode = "combined"
	Markdown Mode = "markdown"
	HTML     Mode = "html"
	Disabled Mode = "disabled"
)

var ErrUnknownMode = errors.New("unknown parse mode")

func (m Mode) ToString() string {
	return string(m)
}

func FromString(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "combined", "both", "":
		return Combined, nil
	case "markdown", "md":
		return Markdown, nil
	case "html":
		return HTML, nil
	case "disabled", "none":
		return Disabled, nil
	}
	return "", errors.Wrapf(ErrUnknownMode, "%q", s)
}

type state int

const (
	unset state = iota
	explicit
	none
)

// Option is how a piece of text asks to be parsed. The zero value is Unset.
type Option struct {
	state state
	mode  Mode
}

// Unset defers to the host default at serialization time.
func Unset() Option {
	return Option{}
}

func Explicit(m Mode) Option {
	return Option{state: explicit, mode: m}
}

// None sends the text as-is.
func None() Option {
	return Option{state: none}
}

func (o Option) IsUnset() bool {
	return o.state == unset
}

func (o Option) Resolve(def Mode) Mode {
	switch o.state {
	case explicit:
		return o.mode
	case none:
		return Disabled
	}
	if def == "" {
		return Combined
	}
	return def
}

func (o Option) String() string {
	switch o.state {
	case explicit:
		return string(o.mode)
	case none:
		return "none"
	}
	return "unset"
}
