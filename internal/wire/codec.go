package wire

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedMessage marks a frame whose leading field is not an integer
// signifier. Callers drop the frame and keep prior state.
var ErrMalformedMessage = errors.New("malformed message")

// ErrMalformedAccountEntry marks a single unparseable account-list entry.
// The rest of the list is still applied.
var ErrMalformedAccountEntry = errors.New("malformed account entry")

// Encode joins a signifier and its fields into the wire form
// `signifier,field1,field2,...`. Field values must not contain ',' or ':';
// the protocol has no escaping.
func Encode(signifier int, fields ...string) string {
	if len(fields) == 0 {
		return strconv.Itoa(signifier)
	}
	parts := make([]string, 0, len(fields)+1)
	parts = append(parts, strconv.Itoa(signifier))
	parts = append(parts, fields...)
	return strings.Join(parts, ",")
}

// Decode splits a raw frame into its signifier and field list.
func Decode(raw string) (int, []string, error) {
	head, rest, hasFields := strings.Cut(raw, ",")
	signifier, err := strconv.Atoi(strings.TrimSpace(head))
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %q", ErrMalformedMessage, truncate(raw, 64))
	}
	if !hasFields {
		return signifier, nil, nil
	}
	return signifier, strings.Split(rest, ","), nil
}

// AccountEntry is one username:password pair from an account-list payload.
type AccountEntry struct {
	Username string
	Password string
}

// DecodeAccountEntries parses the fields of an AccountList payload.
// Entries without exactly one ':' are skipped and returned as errors so the
// caller can log them; parsing of the remaining entries continues.
func DecodeAccountEntries(fields []string) ([]AccountEntry, []error) {
	entries := make([]AccountEntry, 0, len(fields))
	var errs []error
	for _, f := range fields {
		user, pass, ok := strings.Cut(f, ":")
		if !ok || strings.Contains(pass, ":") {
			errs = append(errs, fmt.Errorf("%w: %q", ErrMalformedAccountEntry, truncate(f, 64)))
			continue
		}
		entries = append(entries, AccountEntry{Username: user, Password: pass})
	}
	return entries, errs
}

// EncodeAccountEntry renders one username:password pair.
func EncodeAccountEntry(e AccountEntry) string {
	return e.Username + ":" + e.Password
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
