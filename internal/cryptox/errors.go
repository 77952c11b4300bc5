package cryptox

import "errors"

var (
	// ErrInvalidCiphertextPayload means the decoded envelope is too short to
	// hold a nonce and a tag. It never wraps a cause.
	ErrInvalidCiphertextPayload = errors.New("invalid ciphertext payload")

	// ErrEncryptionFailure matches any *EncryptionError via errors.Is.
	ErrEncryptionFailure = errors.New("failed to encrypt content")

	// ErrDecryptionFailure matches any *DecryptionError via errors.Is.
	ErrDecryptionFailure = errors.New("failed to decrypt content")
)

// EncryptionError wraps the cause of a failed Encrypt.
type EncryptionError struct {
	Err error
}

func (e *EncryptionError) Error() string {
	return ErrEncryptionFailure.Error() + ": " + e.Err.Error()
}

func (e *EncryptionError) Unwrap() error { return e.Err }

func (e *EncryptionError) Is(target error) bool { return target == ErrEncryptionFailure }

// DecryptionError wraps the cause of a failed Decrypt.
type DecryptionError struct {
	Err error
}

func (e *DecryptionError) Error() string {
	return ErrDecryptionFailure.Error() + ": " + e.Err.Error()
}

func (e *DecryptionError) Unwrap() error { return e.Err }

func (e *DecryptionError) Is(target error) bool { return target == ErrDecryptionFailure }

// IsCodecError reports whether err came out of the codec. Such errors point
// at key or data corruption and are never the caller's fault.
func IsCodecError(err error) bool {
	return errors.Is(err, ErrInvalidCiphertextPayload) ||
		errors.Is(err, ErrEncryptionFailure) ||
		errors.Is(err, ErrDecryptionFailure)
}
