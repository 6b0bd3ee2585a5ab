// Command hash-generator prints bcrypt hashes for the given passwords, for
// seeding accounts (an admin, for example) directly in the database.
//
//	hash-generator -cost 12 s3cret other
//	echo s3cret | hash-generator
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Msdoshack/2do/internal/service/auth"
)

func main() {
	cost := flag.Int("cost", 10, "bcrypt cost")
	flag.Parse()

	passwords := flag.Args()
	if len(passwords) == 0 {
		var err error
		passwords, err = readPasswords(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read passwords: %v\n", err)
			os.Exit(1)
		}
	}

	if err := hashAll(os.Stdout, auth.NewBcryptHasher(*cost), passwords); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

// readPasswords returns the non-blank lines of r.
func readPasswords(r io.Reader) ([]string, error) {
	var out []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			out = append(out, line)
		}
	}
	return out, scanner.Err()
}

// hashAll writes one hash per line, in input order.
func hashAll(w io.Writer, hasher auth.PasswordHasher, passwords []string) error {
	for _, password := range passwords {
		hash, err := hasher.Hash(password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		if _, err := fmt.Fprintln(w, hash); err != nil {
			return err
		}
	}
	return nil
}
