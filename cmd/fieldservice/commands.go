package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/99designs/keyring"
	"github.com/rs/zerolog"

	"github.com/nhle/fieldservice/internal/credential"
	"github.com/nhle/fieldservice/internal/model"
)

// openCredentials is a variable so tests can swap in an in-memory keyring.
var openCredentials = credential.Open

// lookupAPIKey returns the configured API key or "" when recommendations
// should stay disabled.
func lookupAPIKey(log zerolog.Logger) string {
	creds, err := openCredentials()
	if err != nil {
		log.Warn().Err(err).Msg("keyring unavailable")
		creds = nil
	}
	key, err := credential.APIKey(creds)
	if err != nil {
		log.Warn().Err(err).Msg("reading api key")
		return ""
	}
	return key
}

func runSetKey(stdin io.Reader, stdout, stderr io.Writer) int {
	_, _ = fmt.Fprint(stdout, "Anthropic API key: ")

	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		_, _ = fmt.Fprintf(stderr, "reading key: %v\n", err)
		return 1
	}
	key := strings.TrimSpace(line)
	if key == "" {
		_, _ = fmt.Fprintln(stderr, "no key given")
		return 2
	}

	creds, err := openCredentials()
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}
	if err := creds.Set(credential.APIKeyName, key); err != nil {
		_, _ = fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}

	_, _ = fmt.Fprintln(stdout, "\nKey stored.")
	return 0
}

func runClearKey(stdout, stderr io.Writer) int {
	creds, err := openCredentials()
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}
	err = creds.Delete(credential.APIKeyName)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		_, _ = fmt.Fprintln(stdout, "No key stored.")
		return 0
	}
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}

	_, _ = fmt.Fprintln(stdout, "Key removed.")
	return 0
}

func runInitConfig(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("init-config", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", model.DefaultConfigPath(), "configuration file")
	force := fs.Bool("force", false, "overwrite an existing file")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if _, err := os.Stat(*configPath); err == nil && !*force {
		_, _ = fmt.Fprintf(stderr, "%s already exists (use -force to overwrite)\n", *configPath)
		return 1
	}

	if err := model.SaveConfig(*configPath, model.DefaultAppConfig()); err != nil {
		_, _ = fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}

	_, _ = fmt.Fprintf(stdout, "Wrote %s\n", *configPath)
	return 0
}
