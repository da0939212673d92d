// Command passwd prints a password hash for seeding accounts by hand, or a
// fresh random signing secret with -secret.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/dmitrijs2005/accountkeeper/internal/common"
	"github.com/dmitrijs2005/accountkeeper/internal/server/passwords"
	"golang.org/x/term"
)

const secretBytes = 32

// readPassword is swapped out in tests so nothing touches the terminal.
var readPassword = term.ReadPassword

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		log.Fatalf("%v", err)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("passwd", flag.ContinueOnError)
	fs.SetOutput(stderr)

	algorithm := fs.String("hasher", passwords.AlgorithmBcrypt, "password hasher (bcrypt|argon2id)")
	cost := fs.Int("cost", passwords.DefaultBcryptCost, "bcrypt cost")
	secret := fs.Bool("secret", false, "print a random hex secret instead of a hash")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *secret {
		s, err := common.MakeRandHexString(secretBytes)
		if err != nil {
			return fmt.Errorf("generate secret: %w", err)
		}
		_, err = fmt.Fprintln(stdout, s)
		return err
	}

	hasher, err := passwords.New(*algorithm, *cost)
	if err != nil {
		return err
	}

	fmt.Fprint(stderr, "Enter password: ")
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(stderr)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	defer common.WipeByteArray(pw)

	plain := strings.TrimSpace(string(pw))
	if plain == "" {
		return errors.New("empty password")
	}

	hash, err := hasher.Hash(plain)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, hash)
	return err
}
