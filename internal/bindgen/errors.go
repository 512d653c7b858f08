package bindgen

import "errors"

var (
	// ErrPattern indicates an allowlist pattern that does not compile.
	ErrPattern = errors.New("bindgen: invalid allowlist pattern")

	// ErrTranslator indicates the external translator failed or could not start.
	ErrTranslator = errors.New("bindgen: translator failed")

	// ErrNoHeader indicates no header was given to translate.
	ErrNoHeader = errors.New("bindgen: no header configured")
)
