package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/insider/internal/common"
	"golang.org/x/term"
)

// readPassword and isTerminal are test seams for golang.org/x/term.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	return readLine(reader)
}

func readLine(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetCode prompts for the emailed one-time code. On a terminal the code is
// read without echo; otherwise (pipes, scripts) it is read as a plain line
// from reader.
func GetCode(reader *bufio.Reader, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, "Enter the 6-digit code (empty to change email): "); err != nil {
		return "", err
	}

	fd := int(os.Stdin.Fd())
	if !isTerminal(fd) {
		return readLine(reader)
	}

	code, err := readPassword(fd)
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(code)
	return strings.TrimSpace(string(code)), nil
}

// GetOptionalInt reads a line and parses it as an integer. An empty line
// yields nil.
func GetOptionalInt(reader *bufio.Reader, prompt string, w io.Writer) (*int, error) {
	s, err := GetSimpleText(reader, prompt, w)
	if err != nil || s == "" {
		return nil, err
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("%q is not a number", s)
	}
	return &n, nil
}

// GetSelection prints numbered options and reads a comma separated list of
// their numbers, e.g. "1, 3". The selected indexes are returned in input
// order without duplicates.
func GetSelection(reader *bufio.Reader, prompt string, options []string, w io.Writer) ([]int, error) {
	for i, o := range options {
		fmt.Fprintf(w, "  %2d. %s\n", i+1, o)
	}
	s, err := GetSimpleText(reader, prompt+" (comma separated numbers, empty for none)", w)
	if err != nil {
		return nil, err
	}

	picked := make([]int, 0)
	seen := make(map[int]bool)
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		n, err := strconv.Atoi(f)
		if err != nil || n < 1 || n > len(options) {
			return nil, fmt.Errorf("invalid choice %q", f)
		}
		if !seen[n-1] {
			seen[n-1] = true
			picked = append(picked, n-1)
		}
	}
	return picked, nil
}
