package validator

import (
	"net/url"
	"regexp"
	"strings"
	"sync"

	playground "github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	alphanumericRegex = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	alphaRegex        = regexp.MustCompile(`^[a-zA-Z]+$`)
)

var (
	emailOnce     sync.Once
	emailValidate *playground.Validate
)

func isEmail(value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}
	emailOnce.Do(func() {
		emailValidate = playground.New()
	})
	return emailValidate.Var(value, "email") == nil
}

func isURL(value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}
	u, err := url.ParseRequestURI(value)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

func isUUID(value string) bool {
	// Reject non-canonical forms before parsing; uuid.Parse also accepts
	// braces and urn prefixes.
	if len(value) != 36 {
		return false
	}
	if value[8] != '-' || value[13] != '-' || value[18] != '-' || value[23] != '-' {
		return false
	}
	_, err := uuid.Parse(value)
	return err == nil
}
