package domain

import (
	"crypto/rand"
	"io"
	"math/big"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	DefaultAliasLength = 7
	MinAliasLength     = 3
	MaxAliasLength     = 64

	// Alphabet is the set generated aliases are drawn from.
	Alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
)

// ReservedAliases collide with fixed path segments of the HTTP API.
var ReservedAliases = []string{"urls", "shorten"}

var aliasRegex = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// OptionalAlias is a caller-supplied alias that may be absent.
// The zero value is absent.
type OptionalAlias struct {
	value string
	set   bool
}

// WithAlias returns a present alias.
func WithAlias(alias string) OptionalAlias {
	return OptionalAlias{value: alias, set: true}
}

// NoAlias returns an absent alias.
func NoAlias() OptionalAlias {
	return OptionalAlias{}
}

// Get returns the alias and whether it is present.
func (a OptionalAlias) Get() (string, bool) {
	return a.value, a.set
}

// IsPresent reports whether an alias was supplied.
func (a OptionalAlias) IsPresent() bool {
	return a.set
}

// AliasPolicy decides whether aliases are acceptable and produces random candidates.
// It performs no I/O and is safe for concurrent use.
type AliasPolicy struct {
	length   int
	alphabet string
	reserved map[string]struct{}
	random   io.Reader
	rules    []validation.Rule
}

// PolicyOption configures an AliasPolicy.
type PolicyOption func(*AliasPolicy)

// WithRandomSource replaces crypto/rand.Reader as the source of randomness.
func WithRandomSource(r io.Reader) PolicyOption {
	return func(p *AliasPolicy) {
		p.random = r
	}
}

// NewAliasPolicy creates a policy generating aliases of the given length.
// A non-positive length selects DefaultAliasLength; other lengths are clamped
// to [MinAliasLength, MaxAliasLength] so generated aliases always pass ValidateFormat.
func NewAliasPolicy(length int, opts ...PolicyOption) *AliasPolicy {
	switch {
	case length <= 0:
		length = DefaultAliasLength
	case length < MinAliasLength:
		length = MinAliasLength
	case length > MaxAliasLength:
		length = MaxAliasLength
	}

	reserved := make(map[string]struct{}, len(ReservedAliases))
	for _, word := range ReservedAliases {
		reserved[word] = struct{}{}
	}

	p := &AliasPolicy{
		length:   length,
		alphabet: Alphabet,
		reserved: reserved,
		random:   rand.Reader,
		rules: []validation.Rule{
			validation.Required.ErrorObject(validation.NewError(string(TooShort), "alias is empty")),
			validation.RuneLength(MinAliasLength, 0).ErrorObject(validation.NewError(string(TooShort), "alias is too short")),
			validation.RuneLength(0, MaxAliasLength).ErrorObject(validation.NewError(string(TooLong), "alias is too long")),
			validation.Match(aliasRegex).ErrorObject(validation.NewError(string(InvalidCharacters), "alias has invalid characters")),
		},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Length returns the length of generated candidates.
func (p *AliasPolicy) Length() int {
	return p.length
}

// ValidateFormat checks presence, length and charset, reporting the first violated rule.
func (p *AliasPolicy) ValidateFormat(alias OptionalAlias) error {
	value, ok := alias.Get()
	if !ok {
		return InvalidFormat("", NullAlias)
	}

	if err := validation.Validate(value, p.rules...); err != nil {
		reason := InvalidCharacters
		if verr, ok := err.(validation.Error); ok {
			reason = FormatReason(verr.Code())
		}
		return InvalidFormat(value, reason)
	}
	return nil
}

// IsReserved reports whether alias matches a reserved word, ignoring case.
func (p *AliasPolicy) IsReserved(alias string) bool {
	_, ok := p.reserved[strings.ToLower(alias)]
	return ok
}

// GenerateCandidate draws a random alias. Uniqueness is not guaranteed.
func (p *AliasPolicy) GenerateCandidate() (string, error) {
	max := big.NewInt(int64(len(p.alphabet)))

	var b strings.Builder
	b.Grow(p.length)
	for i := 0; i < p.length; i++ {
		idx, err := rand.Int(p.random, max)
		if err != nil {
			return "", err
		}
		b.WriteByte(p.alphabet[idx.Int64()])
	}
	return b.String(), nil
}
