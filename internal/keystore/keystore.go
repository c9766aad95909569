// Package keystore resolves the process-wide symmetric key used by the
// encrypted secret policy. The key is taken from an environment variable
// when set, otherwise from a key file which is created on first use.
package keystore

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"

	"github.com/dmitrijs2005/docqa/internal/common"
	"github.com/dmitrijs2005/docqa/internal/cryptox"
	"github.com/dmitrijs2005/docqa/internal/filex"
	"github.com/dmitrijs2005/docqa/internal/logging"
)

var (
	lookupEnv = os.LookupEnv
	readFile  = os.ReadFile
)

// Source describes where the key lives.
type Source struct {
	// EnvVar is checked first; an empty name disables the lookup.
	EnvVar string
	// File is read when the variable is absent and written if missing.
	File string
}

// Load returns the key described by src. Keys are encoded as base64
// (standard or URL alphabet) of exactly cryptox.KeySize bytes.
func Load(ctx context.Context, src Source, log logging.Logger) ([]byte, error) {
	if src.EnvVar != "" {
		if v, ok := lookupEnv(src.EnvVar); ok && v != "" {
			key, err := Decode([]byte(v))
			if err != nil {
				return nil, fmt.Errorf("%w: env %s: %v", common.ErrorKeyMissing, src.EnvVar, err)
			}
			log.Debug(ctx, "encryption key loaded from environment", "var", src.EnvVar)
			return key, nil
		}
	}

	if src.File == "" {
		return nil, fmt.Errorf("%w: no key source configured", common.ErrorKeyMissing)
	}

	key, err := loadFile(src.File)
	if err == nil {
		log.Debug(ctx, "encryption key loaded from file", "path", src.File)
		return key, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	key = cryptox.GenerateKey()
	err = filex.WriteFileExclusive(src.File, Encode(key), 0o600)
	switch {
	case err == nil:
		log.Info(ctx, "generated new encryption key", "path", src.File)
		return key, nil
	case errors.Is(err, os.ErrExist):
		// another process won the race; use its key
		return loadFile(src.File)
	default:
		return nil, fmt.Errorf("write key file: %w", err)
	}
}

func loadFile(path string) ([]byte, error) {
	b, err := readFile(path)
	if err != nil {
		return nil, err
	}
	key, err := Decode(b)
	if err != nil {
		return nil, fmt.Errorf("%w: key file %s: %v", common.ErrorKeyMissing, path, err)
	}
	return key, nil
}

// Encode renders key in the on-disk format.
func Encode(key []byte) []byte {
	out := make([]byte, base64.URLEncoding.EncodedLen(len(key)))
	base64.URLEncoding.Encode(out, key)
	return out
}

// Decode parses a base64 key, accepting either alphabet with or without padding.
func Decode(b []byte) ([]byte, error) {
	s := string(bytes.TrimSpace(b))

	for _, enc := range []*base64.Encoding{
		base64.URLEncoding, base64.StdEncoding,
		base64.RawURLEncoding, base64.RawStdEncoding,
	} {
		key, err := enc.DecodeString(s)
		if err != nil {
			continue
		}
		if len(key) != cryptox.KeySize {
			return nil, fmt.Errorf("key must be %d bytes, got %d", cryptox.KeySize, len(key))
		}
		return key, nil
	}
	return nil, errors.New("key is not valid base64")
}
