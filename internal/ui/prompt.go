package ui

import (
	"bufio"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"strings"

	"github.com/solhawk/sol-vanity-miner/internal/config"
)

// Prompter asks the three search questions interactively when no pattern
// was supplied on the command line.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// NewPrompter creates a prompter reading answers from in.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Fill asks for search mode, pattern and worker count and writes the
// answers into cfg. It keeps asking until the pattern is valid base58.
func (p *Prompter) Fill(cfg *config.Config) error {
	prefixMode, err := p.askMode()
	if err != nil {
		return err
	}

	pattern, err := p.askPattern()
	if err != nil {
		return err
	}
	if prefixMode {
		cfg.Prefix = pattern
	} else {
		cfg.Suffix = pattern
	}

	workers, err := p.askWorkers()
	if err != nil {
		return err
	}
	cfg.Workers = workers
	return nil
}

// askMode selects prefix or suffix search; prefix is the default.
func (p *Prompter) askMode() (bool, error) {
	fmt.Fprintln(p.out, "Select search mode:")
	fmt.Fprintln(p.out, "  [1] Match the start of the address (prefix)")
	fmt.Fprintln(p.out, "  [2] Match the end of the address (suffix)")
	fmt.Fprint(p.out, "> ")

	choice, err := p.readLine()
	if err != nil {
		return false, err
	}
	return choice != "2", nil
}

// askPattern reads a pattern and re-prompts until it is valid.
func (p *Prompter) askPattern() (string, error) {
	for {
		fmt.Fprint(p.out, "Enter the pattern (base58 letters and digits): ")
		pattern, err := p.readLine()
		if err != nil {
			return "", err
		}
		if pattern == "" {
			fmt.Fprintln(p.out, "Pattern must not be empty")
			continue
		}
		if err := config.ValidatePattern(pattern); err != nil {
			fmt.Fprintf(p.out, "Invalid pattern: %v\n", err)
			continue
		}
		return pattern, nil
	}
}

// askWorkers reads a worker count in [1, NumCPU]; empty input takes all
// cores.
func (p *Prompter) askWorkers() (int, error) {
	max := runtime.NumCPU()
	for {
		fmt.Fprintf(p.out, "Number of workers (1-%d, default %d): ", max, max)
		answer, err := p.readLine()
		if err != nil {
			return 0, err
		}
		if answer == "" {
			return max, nil
		}
		n, err := strconv.Atoi(answer)
		if err != nil || n < 1 || n > max {
			fmt.Fprintf(p.out, "Enter a number between 1 and %d\n", max)
			continue
		}
		return n, nil
	}
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
