// Package shell drives a storefront session from line-oriented text commands.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Lixing-Zhang/kart-challenge/storefront/internal/storefront"
)

const helpText = `Commands:
  show              product listing and cart
  add <id>          add one unit of a product
  inc <id>          increase quantity by one
  dec <id>          decrease quantity by one
  qty <id> <delta>  change quantity by delta
  rm <id>           remove a product from the cart
  help              this text
  quit              leave the store
`

// Shell reads commands and applies them to a session
type Shell struct {
	session *storefront.Session
	out     io.Writer
	prompt  string
}

// New creates a shell writing to out
func New(session *storefront.Session, out io.Writer) *Shell {
	return &Shell{
		session: session,
		out:     out,
		prompt:  "> ",
	}
}

// Run processes commands from in until quit, EOF or ctx is done
func (sh *Shell) Run(ctx context.Context, in io.Reader) error {
	if err := sh.session.Render(sh.out); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(sh.out, sh.prompt)
		if !scanner.Scan() {
			fmt.Fprintln(sh.out)
			return scanner.Err()
		}

		quit, err := sh.Exec(scanner.Text())
		if err != nil {
			fmt.Fprintf(sh.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

var errUsage = errors.New("usage")

// Exec runs one command line. quit is true once the user asks to leave.
func (sh *Shell) Exec(line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "quit", "exit", "q":
		return true, nil
	case "help", "?":
		_, err = io.WriteString(sh.out, helpText)
	case "show", "ls", "list", "cart":
		err = sh.session.Render(sh.out)
	case "add":
		if len(args) != 1 {
			return false, fmt.Errorf("%w: add <id>", errUsage)
		}
		if err = sh.session.AddByID(args[0]); err == nil {
			sh.printItem(args[0])
		}
	case "inc", "dec":
		if len(args) != 1 {
			return false, fmt.Errorf("%w: %s <id>", errUsage, cmd)
		}
		delta := 1
		if cmd == "dec" {
			delta = -1
		}
		err = sh.adjust(args[0], delta)
	case "qty":
		if len(args) != 2 {
			return false, fmt.Errorf("%w: qty <id> <delta>", errUsage)
		}
		delta, convErr := strconv.Atoi(args[1])
		if convErr != nil {
			return false, fmt.Errorf("invalid delta %q", args[1])
		}
		err = sh.adjust(args[0], delta)
	case "rm", "remove":
		if len(args) != 1 {
			return false, fmt.Errorf("%w: rm <id>", errUsage)
		}
		if _, ok := sh.session.Cart().Item(args[0]); !ok {
			return false, fmt.Errorf("%s is not in the cart", args[0])
		}
		sh.session.Remove(args[0])
		fmt.Fprintf(sh.out, "removed %s\n", args[0])
		sh.printSubtotal()
	default:
		return false, fmt.Errorf("unknown command %q, try help", cmd)
	}
	return false, err
}

func (sh *Shell) adjust(id string, delta int) error {
	if _, ok := sh.session.Cart().Item(id); !ok {
		return fmt.Errorf("%s is not in the cart", id)
	}
	sh.session.AdjustQuantity(id, delta)
	sh.printItem(id)
	return nil
}

func (sh *Shell) printItem(id string) {
	if item, ok := sh.session.Cart().Item(id); ok {
		fmt.Fprintf(sh.out, "%s x %d\n", item.Name, item.Quantity)
	} else {
		fmt.Fprintf(sh.out, "removed %s\n", id)
	}
	sh.printSubtotal()
}

func (sh *Shell) printSubtotal() {
	fmt.Fprintf(sh.out, "Subtotal: $%s\n", sh.session.Subtotal().StringFixed(2))
}
