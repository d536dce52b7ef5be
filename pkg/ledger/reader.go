package ledger

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	headerRe  = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}) (\S+)\s+(.*)$`)
	postingRe = regexp.MustCompile(`^  (\S+)\s+(-?[0-9]+(?:\.[0-9]+)?) (\S+)$`)
)

// Read parses text produced by Write back into entries. It understands only
// the subset of beancount that Write emits, which is enough to verify that
// a batch survives a round trip intact.
func Read(r io.Reader) ([]Entry, error) {
	var entries []Entry
	var current *Entry

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()

		if strings.TrimSpace(line) == "" {
			if current != nil {
				entries = append(entries, *current)
				current = nil
			}
			continue
		}

		if m := postingRe.FindStringSubmatch(line); m != nil {
			if current == nil {
				return nil, fmt.Errorf("line %d: posting outside a transaction", lineNo)
			}
			amount, err := decimal.NewFromString(m[2])
			if err != nil {
				return nil, fmt.Errorf("line %d: bad amount %q: %w", lineNo, m[2], err)
			}
			current.Postings = append(current.Postings, Posting{
				Account:  m[1],
				Amount:   amount,
				Currency: m[3],
			})
			continue
		}

		m := headerRe.FindStringSubmatch(line)
		if m == nil {
			return nil, fmt.Errorf("line %d: unrecognized line %q", lineNo, line)
		}
		if current != nil {
			entries = append(entries, *current)
		}

		date, err := time.Parse("2006-01-02", m[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: bad date %q: %w", lineNo, m[1], err)
		}

		payee, narration, err := splitStrings(m[3])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}

		current = &Entry{Date: date, Flag: m[2], Payee: payee, Narration: narration}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ledger text: %w", err)
	}
	if current != nil {
		entries = append(entries, *current)
	}

	return entries, nil
}

// splitStrings parses the one or two quoted strings after the flag. With
// two, the first is the payee.
func splitStrings(s string) (payee, narration string, err error) {
	first, rest, err := readQuoted(s)
	if err != nil {
		return "", "", err
	}
	rest = strings.TrimSpace(rest)
	if rest == "" {
		return "", first, nil
	}
	second, rest, err := readQuoted(rest)
	if err != nil {
		return "", "", err
	}
	if strings.TrimSpace(rest) != "" {
		return "", "", fmt.Errorf("trailing content after narration: %q", rest)
	}
	return first, second, nil
}

func readQuoted(s string) (value, rest string, err error) {
	if len(s) == 0 || s[0] != '"' {
		return "", "", fmt.Errorf("expected quoted string at %q", s)
	}
	var b strings.Builder
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
			if i >= len(s) {
				return "", "", fmt.Errorf("dangling escape in %q", s)
			}
			b.WriteByte(s[i])
		case '"':
			return b.String(), s[i+1:], nil
		default:
			b.WriteByte(s[i])
		}
	}
	return "", "", fmt.Errorf("unterminated quoted string in %q", s)
}
