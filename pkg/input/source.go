package input

import (
	"fmt"
	"strings"
)

// Source selects where field values are read from.
type Source string

const (
	Post   Source = "post"
	Get    Source = "get"
	Cookie Source = "cookie"
	Server Source = "server"
	Env    Source = "env"
	Route  Source = "route"
)

// Sources lists every supported source.
func Sources() []Source {
	return []Source{Post, Get, Cookie, Server, Env, Route}
}

// Valid reports whether s is a known source.
func (s Source) Valid() bool {
	switch s {
	case Post, Get, Cookie, Server, Env, Route:
		return true
	}
	return false
}

// ParseSource maps a case-insensitive name onto a Source.
func ParseSource(name string) (Source, error) {
	s := Source(strings.ToLower(strings.TrimSpace(name)))
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownSource, name)
	}
	return s, nil
}
