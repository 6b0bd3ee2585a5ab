package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// CodeLength is the number of digits in a confirmation code.
const CodeLength = 6

// CodeGenerator produces confirmation codes for sign-up and email change.
type CodeGenerator interface {
	Generate() (string, error)
}

// CodeGeneratorFunc adapts a function to CodeGenerator.
type CodeGeneratorFunc func() (string, error)

// Generate implements CodeGenerator.
func (f CodeGeneratorFunc) Generate() (string, error) { return f() }

// RandomCodeGenerator draws codes from crypto/rand.
type RandomCodeGenerator struct{}

var codeSpace = big.NewInt(1_000_000)

// Generate returns a zero-padded 6-digit numeric code.
func (RandomCodeGenerator) Generate() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}
	return fmt.Sprintf("%0*d", CodeLength, n.Int64()), nil
}
