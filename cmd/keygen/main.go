// Command keygen prints a base64 AES-256 key for the vault server and can
// mint development bearer tokens.
//
//	keygen                     random key
//	keygen -passphrase -salt s key derived from a passphrase read from the terminal
//	keygen -token alice -secret k -ttl 1h
package main

import (
	"encoding/base64"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/secretsvault/internal/common"
	"github.com/dmitrijs2005/secretsvault/internal/cryptox"
	"github.com/dmitrijs2005/secretsvault/internal/server/auth"
	"golang.org/x/term"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "keygen:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("keygen", flag.ContinueOnError)
	usePassphrase := fs.Bool("passphrase", false, "derive the key from a passphrase typed on the terminal")
	salt := fs.String("salt", "", "salt for passphrase derivation")
	user := fs.String("token", "", "issue a bearer token for this user id instead of a key")
	secretKey := fs.String("secret", "", "HMAC secret used to sign the token")
	ttl := fs.Duration("ttl", time.Hour, "token lifetime")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *user != "" {
		if *secretKey == "" {
			return fmt.Errorf("-secret is required with -token")
		}
		token, err := auth.GenerateToken(*user, []byte(*secretKey), *ttl)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, token)
		return nil
	}

	var key []byte
	if *usePassphrase {
		if *salt == "" {
			return fmt.Errorf("-salt is required with -passphrase")
		}
		fmt.Fprint(os.Stderr, "Passphrase: ")
		pass, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return fmt.Errorf("read passphrase: %w", err)
		}
		defer common.WipeByteArray(pass)
		key = cryptox.DeriveKey(pass, []byte(*salt))
	} else {
		key = common.GenerateRandByteArray(cryptox.KeySize)
	}
	defer common.WipeByteArray(key)

	fmt.Fprintln(out, base64.StdEncoding.EncodeToString(key))
	return nil
}
