package cli

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// getPassword prints a prompt to w and reads a password from the terminal
// without echo.
func getPassword(w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, "Enter password: "); err != nil {
		return "", err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

// passwordFrom returns the --password flag value, prompting when it is
// empty.
func passwordFrom(flagValue string, w io.Writer) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	return getPassword(w)
}
