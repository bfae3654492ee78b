package secure

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrDecrypt is returned when a cipher text cannot be decoded, decrypted,
// unpadded, or parsed as JSON.
var ErrDecrypt = errors.New("payload decryption failed")

const (
	ivSize   = aes.BlockSize
	saltSize = 16
)

// Codec defines the payload encryption and request-signing surface of the
// portal protocol.
//
// Codec instances are intended to be configured during initialization and then
// treated as immutable. All methods are safe for concurrent use.
type Codec struct {
	key          [sha256.Size]byte
	iv           [ivSize]byte
	hmacSecret   []byte
	clientSecret string
}

// NewCodec derives the cipher key and IV from the encryption secret and
// retains the HMAC and client secrets for request signing.
//
// NewCodec returns an error when any secret is empty or the encryption secret
// is shorter than the 16 bytes the IV derivation consumes.
func NewCodec(encryptionKey, hmacSecret, clientSecret string) (*Codec, error) {
	if len(encryptionKey) < ivSize {
		return nil, fmt.Errorf("encryption key must be at least %d bytes", ivSize)
	}
	if hmacSecret == "" {
		return nil, errors.New("hmac secret required")
	}
	if clientSecret == "" {
		return nil, errors.New("client secret required")
	}

	c := &Codec{
		key:          sha256.Sum256([]byte(encryptionKey)),
		hmacSecret:   []byte(hmacSecret),
		clientSecret: clientSecret,
	}
	copy(c.iv[:], encryptionKey[:ivSize])
	return c, nil
}

// Encrypt serializes v to JSON and encrypts it with AES-256-CBC + PKCS#7,
// returning standard-base64 cipher text. Callers must treat the output as
// opaque transport text.
func (c *Codec) Encrypt(v any) (string, error) {
	plain, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encrypt: marshal payload: %w", err)
	}

	block, err := aes.NewCipher(c.key[:])
	if err != nil {
		return "", fmt.Errorf("encrypt: %w", err)
	}

	padded := pkcs7Pad(plain, aes.BlockSize)
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, c.iv[:]).CryptBlocks(out, padded)

	return base64.StdEncoding.EncodeToString(out), nil
}

// Decrypt reverses [Codec.Encrypt] and returns the plaintext JSON document.
// Any failure — base64 decoding, block alignment, padding, or the plaintext
// not being JSON — reports [ErrDecrypt].
func (c *Codec) Decrypt(cipherText string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(cipherText)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecrypt, err)
	}
	if len(raw) == 0 || len(raw)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: cipher text not block aligned", ErrDecrypt)
	}

	block, err := aes.NewCipher(c.key[:])
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecrypt, err)
	}

	plain := make([]byte, len(raw))
	cipher.NewCBCDecrypter(block, c.iv[:]).CryptBlocks(plain, raw)

	plain, err = pkcs7Unpad(plain, aes.BlockSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecrypt, err)
	}
	if !json.Valid(plain) {
		return nil, fmt.Errorf("%w: plaintext is not valid JSON", ErrDecrypt)
	}

	return plain, nil
}

// DecryptInto decrypts cipherText and unmarshals the plaintext into v.
func (c *Codec) DecryptInto(cipherText string, v any) error {
	plain, err := c.Decrypt(cipherText)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(plain, v); err != nil {
		return fmt.Errorf("%w: %v", ErrDecrypt, err)
	}
	return nil
}

// Sign computes the request signature: hex-encoded HMAC-SHA256 over the
// canonical string nonce:origin:method:salt:clientSecret, keyed with the
// HMAC secret. Identical inputs always yield an identical signature.
func (c *Codec) Sign(nonce, origin, method, salt string) string {
	mac := hmac.New(sha256.New, c.hmacSecret)
	mac.Write([]byte(nonce + ":" + origin + ":" + method + ":" + salt + ":" + c.clientSecret))
	return hex.EncodeToString(mac.Sum(nil))
}

// NewSalt returns 16 cryptographically random bytes, standard-base64 encoded,
// for use as a per-request signature salt.
func NewSalt() (string, error) {
	var b [saltSize]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b[:]), nil
}
