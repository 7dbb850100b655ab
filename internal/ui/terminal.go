package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

type terminalUI struct {
	reader *bufio.Reader
	out    io.Writer
	errOut io.Writer
}

func NewTerminal() Interface {
	return NewTerminalIO(os.Stdin, os.Stdout, os.Stderr)
}

// NewTerminalIO permet de rediriger les flux (tests).
func NewTerminalIO(in io.Reader, out, errOut io.Writer) Interface {
	return &terminalUI{reader: bufio.NewReader(in), out: out, errOut: errOut}
}

func (t *terminalUI) PrintInfo(ctx context.Context, s string) {
	fmt.Fprintln(t.out, s)
}

func (t *terminalUI) PrintError(ctx context.Context, s string) {
	fmt.Fprintln(t.errOut, s)
}

func (t *terminalUI) PrintReport(ctx context.Context, body []byte) {
	t.out.Write(body)
	if len(body) > 0 && body[len(body)-1] != '\n' {
		fmt.Fprintln(t.out)
	}
}

// readLine lit une ligne sans bloquer l'annulation de ctx.
func (t *terminalUI) readLine(ctx context.Context) (string, error) {
	type result struct {
		line string
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		line, err := t.reader.ReadString('\n')
		ch <- result{line, err}
	}()
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-ch:
		if r.err != nil && r.line == "" {
			return "", r.err
		}
		return strings.TrimSpace(r.line), nil
	}
}

func (t *terminalUI) Confirm(ctx context.Context, question string, def bool) (bool, error) {
	hint := "[o/N]"
	if def {
		hint = "[O/n]"
	}
	for {
		fmt.Fprintf(t.out, "%s %s : ", question, hint)
		resp, err := t.readLine(ctx)
		if err == io.EOF {
			return def, nil
		}
		if err != nil {
			return false, err
		}
		switch strings.ToLower(resp) {
		case "":
			return def, nil
		case "o", "oui", "y", "yes":
			return true, nil
		case "n", "non", "no":
			return false, nil
		}
		fmt.Fprintln(t.out, "❌ Réponse invalide. Essayez à nouveau.")
	}
}

func (t *terminalUI) WaitForExit(ctx context.Context) error {
	fmt.Fprintln(t.out, "\n\nAppuyez sur Entrée ou Ctrl+C pour quitter.")
	_, err := t.readLine(ctx)
	if err == io.EOF {
		return nil
	}
	return err
}
