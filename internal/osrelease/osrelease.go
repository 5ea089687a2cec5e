// Package osrelease parses os-release(5) files.
package osrelease

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/conn-castle/allsky-automount/internal/messages"
)

// DefaultPath is the canonical os-release location.
const DefaultPath = "/etc/os-release"

// Parse reads os-release content into a key-value map.
// content is the raw file content; returns parsed key/value pairs or an error.
func Parse(content string) (map[string]string, error) {
	fields := make(map[string]string)
	if content == "" {
		return fields, nil
	}

	scanner := bufio.NewScanner(strings.NewReader(content))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		key, value, ok, err := parseLine(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf(messages.OSReleaseLineErrorFmt, lineNo, err)
		}
		if !ok {
			continue
		}
		fields[key] = value
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf(messages.OSReleaseReadFailedFmt, err)
	}

	return fields, nil
}

// Distribution returns the distribution name in the form lsb_release -is reports it.
// The first word of NAME wins; ID is used, capitalised, when NAME is absent.
func Distribution(fields map[string]string) string {
	if name := strings.Fields(fields["NAME"]); len(name) > 0 {
		return name[0]
	}
	id := strings.TrimSpace(fields["ID"])
	if id == "" {
		return ""
	}
	return strings.ToUpper(id[:1]) + id[1:]
}

// Release returns VERSION_ID, the value lsb_release -rs reports.
func Release(fields map[string]string) string {
	return strings.TrimSpace(fields["VERSION_ID"])
}

// parseLine splits one os-release line. ok is false for blank and comment lines.
func parseLine(line string) (key, value string, ok bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" || line[0] == '#' {
		return "", "", false, nil
	}
	key, raw, found := strings.Cut(line, "=")
	if !found || !validKey(key) {
		return "", "", false, errors.New(messages.OSReleaseExpectedKeyValue)
	}
	value, err = unquote(raw)
	if err != nil {
		return "", "", false, err
	}
	return key, value, true, nil
}

// validKey reports whether key is a shell variable name.
func validKey(key string) bool {
	if key == "" {
		return false
	}
	for i, r := range key {
		switch {
		case r == '_', r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// unquote strips one level of quoting from a value. A quoted value must span
// the whole right-hand side; inside double quotes \\ \" \$ and \` are escapes.
func unquote(raw string) (string, error) {
	if raw == "" || (raw[0] != '"' && raw[0] != '\'') {
		return raw, nil
	}
	quote := raw[0]
	var b strings.Builder
	b.Grow(len(raw))
	for i := 1; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c == quote:
			if i != len(raw)-1 {
				return "", errors.New(messages.OSReleaseInvalidQuotedSuffix)
			}
			return b.String(), nil
		case c == '\\' && quote == '"' && i+1 < len(raw) && strings.IndexByte("\\\"$`", raw[i+1]) >= 0:
			i++
			b.WriteByte(raw[i])
		default:
			b.WriteByte(c)
		}
	}
	return "", errors.New(messages.OSReleaseUnterminatedQuotedValue)
}
