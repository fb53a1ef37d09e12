package domain

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/text/secure/precis"
)

const MaxAddressPartLen = 1023

var ErrInvalidAddress = errors.New("invalid address")

// localpart characters that are never allowed, on top of the PRECIS profile.
const forbiddenLocal = "\"&'/:<>@"

// BareAddress identifies a room: local@domain.
type BareAddress struct {
	local  string
	domain string
}

// FullAddress identifies a member inside a room: local@domain/nickname.
type FullAddress struct {
	bare     BareAddress
	resource string
}

func NewBare(local, domain string) (BareAddress, error) {
	l, err := normalizeLocal(local)
	if err != nil {
		return BareAddress{}, err
	}
	d, err := normalizeDomain(domain)
	if err != nil {
		return BareAddress{}, err
	}
	return BareAddress{local: l, domain: d}, nil
}

func NewFull(bare BareAddress, nickname string) (FullAddress, error) {
	if bare.IsZero() {
		return FullAddress{}, fmt.Errorf("%w: empty room address", ErrInvalidAddress)
	}
	r, err := normalizeResource(nickname)
	if err != nil {
		return FullAddress{}, err
	}
	return FullAddress{bare: bare, resource: r}, nil
}

// ParseBare accepts "local@domain". A resource part is rejected.
func ParseBare(s string) (BareAddress, error) {
	if strings.Contains(s, "/") {
		return BareAddress{}, fmt.Errorf("%w: unexpected resource in %q", ErrInvalidAddress, s)
	}
	local, domain, ok := strings.Cut(s, "@")
	if !ok {
		return BareAddress{}, fmt.Errorf("%w: missing localpart in %q", ErrInvalidAddress, s)
	}
	return NewBare(local, domain)
}

// ParseFull accepts "local@domain/resource". The resource may contain '/'.
func ParseFull(s string) (FullAddress, error) {
	head, resource, ok := strings.Cut(s, "/")
	if !ok {
		return FullAddress{}, fmt.Errorf("%w: missing resource in %q", ErrInvalidAddress, s)
	}
	bare, err := ParseBare(head)
	if err != nil {
		return FullAddress{}, err
	}
	return NewFull(bare, resource)
}

func (a BareAddress) Local() string  { return a.local }
func (a BareAddress) Domain() string { return a.domain }
func (a BareAddress) IsZero() bool   { return a.local == "" && a.domain == "" }

func (a BareAddress) String() string {
	if a.IsZero() {
		return ""
	}
	return a.local + "@" + a.domain
}

func (a BareAddress) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *BareAddress) UnmarshalText(b []byte) error {
	parsed, err := ParseBare(string(b))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

func (a FullAddress) Bare() BareAddress { return a.bare }
func (a FullAddress) Resource() string  { return a.resource }

func (a FullAddress) String() string {
	if a.bare.IsZero() {
		return ""
	}
	return a.bare.String() + "/" + a.resource
}

func (a FullAddress) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *FullAddress) UnmarshalText(b []byte) error {
	parsed, err := ParseFull(string(b))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

func normalizeLocal(s string) (string, error) {
	if s == "" {
		return "", fmt.Errorf("%w: empty localpart", ErrInvalidAddress)
	}
	if strings.ContainsAny(s, forbiddenLocal) {
		return "", fmt.Errorf("%w: forbidden character in localpart %q", ErrInvalidAddress, s)
	}
	out, err := precis.UsernameCaseMapped.String(s)
	if err != nil {
		return "", fmt.Errorf("%w: localpart %q: %v", ErrInvalidAddress, s, err)
	}
	// width mapping can turn e.g. U+FF20 into '@'
	if strings.ContainsAny(out, forbiddenLocal) {
		return "", fmt.Errorf("%w: forbidden character in localpart %q", ErrInvalidAddress, s)
	}
	if len(out) > MaxAddressPartLen {
		return "", fmt.Errorf("%w: localpart too long", ErrInvalidAddress)
	}
	return out, nil
}

func normalizeDomain(s string) (string, error) {
	if s == "" {
		return "", fmt.Errorf("%w: empty domainpart", ErrInvalidAddress)
	}
	s = strings.TrimSuffix(s, ".")
	ascii, err := idna.Lookup.ToASCII(s)
	if err != nil {
		return "", fmt.Errorf("%w: domainpart %q: %v", ErrInvalidAddress, s, err)
	}
	out, err := idna.Lookup.ToUnicode(ascii)
	if err != nil {
		return "", fmt.Errorf("%w: domainpart %q: %v", ErrInvalidAddress, s, err)
	}
	if out == "" || len(out) > MaxAddressPartLen {
		return "", fmt.Errorf("%w: domainpart length", ErrInvalidAddress)
	}
	return strings.ToLower(out), nil
}

// NormalizeNickname maps a nickname to the form stored in member addresses.
func NormalizeNickname(nickname string) (string, error) {
	return normalizeResource(nickname)
}

func normalizeResource(s string) (string, error) {
	if s == "" {
		return "", fmt.Errorf("%w: empty resourcepart", ErrInvalidAddress)
	}
	out, err := precis.OpaqueString.String(s)
	if err != nil {
		return "", fmt.Errorf("%w: resourcepart %q: %v", ErrInvalidAddress, s, err)
	}
	if len(out) > MaxAddressPartLen {
		return "", fmt.Errorf("%w: resourcepart too long", ErrInvalidAddress)
	}
	return out, nil
}
