package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/json"
	"errors"

	"github.com/dmitrijs2005/dailykeep/internal/common"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// NonceSize is the AES-GCM nonce length used for every envelope.
	NonceSize = 12
	KeySize   = 32

	userKeySuffix   = ":productivity-finance-key"
	userKeySalt     = "tm_local_finance_salt_v1"
	userKeyRounds   = 100_000
	verifierSaltLen = 16
)

var ErrMalformedEnvelope = errors.New("malformed envelope")

// Envelope is the stored form of an encrypted value. Both fields are
// standard base64.
type Envelope struct {
	IV   string `json:"iv"`
	Data string `json:"data"`
}

func MakeVerifier(masterKey []byte) []byte {
	hash := sha256.Sum256(masterKey)
	return hash[:]
}

func DeriveMasterKey(password []byte, salt []byte) []byte {
	x := argon2.IDKey(password, salt, 1, 64*1024, 4, 32)
	return x
}

// NewPasswordVerifier returns a fresh random salt and the verifier derived
// from password with it.
func NewPasswordVerifier(password []byte) (salt, verifier []byte) {
	salt = common.GenerateRandByteArray(verifierSaltLen)
	key := DeriveMasterKey(password, salt)
	defer common.WipeByteArray(key)
	return salt, MakeVerifier(key)
}

// CheckPassword reports whether password matches a verifier produced by
// NewPasswordVerifier with the same salt.
func CheckPassword(password, salt, verifier []byte) bool {
	key := DeriveMasterKey(password, salt)
	defer common.WipeByteArray(key)
	return subtle.ConstantTimeCompare(MakeVerifier(key), verifier) == 1
}

// DeriveUserKey derives the per-user AES-256 key. The derivation is
// deterministic, so the same user id always yields the same key.
func DeriveUserKey(userID string) []byte {
	return pbkdf2.Key([]byte(userID+userKeySuffix), []byte(userKeySalt), userKeyRounds, KeySize, sha256.New)
}

// EncryptEntry serializes the given entry to JSON and encrypts it using AES-GCM.
//
// The key must be a valid AES key length (16, 24, or 32 bytes for AES-128,
// AES-192, or AES-256 respectively). A new random 12-byte nonce is generated
// for each encryption. The ciphertext and nonce are returned separately.
//
// Parameters:
//   - entry: any Go value that can be marshaled to JSON.
//   - key: the AES encryption key.
//
// Returns:
//   - ciphertext: the encrypted JSON data, with the GCM tag appended.
//   - nonce: the randomly generated 12-byte nonce.
//   - err: non-nil if serialization or encryption fails.
func EncryptEntry(entry any, key []byte) (ciphertext, nonce []byte, err error) {

	// serializing JSON
	plaintext, err := json.Marshal(entry)
	if err != nil {
		return nil, nil, err
	}

	nonce = make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, nil, err
	}

	aesgcm, err := newGCM(key)
	if err != nil {
		return nil, nil, err
	}

	ciphertext = aesgcm.Seal(nil, nonce, plaintext, nil)

	return ciphertext, nonce, nil
}

// DecryptEntry decrypts the given ciphertext using AES-GCM and unmarshals
// the resulting JSON into the provided value v.
//
// The key must be the same AES key that was used to encrypt the data,
// and the nonce must be the same 12-byte nonce generated during encryption.
// A nonce of any other length is rejected rather than passed to GCM.
func DecryptEntry(ciphertext, nonce, key []byte, v any) error {
	if len(nonce) != NonceSize {
		return ErrMalformedEnvelope
	}
	aesgcm, err := newGCM(key)
	if err != nil {
		return err
	}

	plaintext, err := aesgcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return err
	}

	return json.Unmarshal(plaintext, v)
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// EncryptJSON encrypts value under the key derived from userID.
func EncryptJSON(userID string, value any) (*Envelope, error) {
	key := DeriveUserKey(userID)
	defer common.WipeByteArray(key)

	ciphertext, nonce, err := EncryptEntry(value, key)
	if err != nil {
		return nil, err
	}
	return &Envelope{
		IV:   base64.StdEncoding.EncodeToString(nonce),
		Data: base64.StdEncoding.EncodeToString(ciphertext),
	}, nil
}

// DecryptInto opens env with the key derived from userID and decodes the
// plaintext into v.
func DecryptInto(userID string, env *Envelope, v any) error {
	if env == nil || env.IV == "" || env.Data == "" {
		return ErrMalformedEnvelope
	}
	nonce, err := base64.StdEncoding.DecodeString(env.IV)
	if err != nil {
		return errors.Join(ErrMalformedEnvelope, err)
	}
	ciphertext, err := base64.StdEncoding.DecodeString(env.Data)
	if err != nil {
		return errors.Join(ErrMalformedEnvelope, err)
	}

	key := DeriveUserKey(userID)
	defer common.WipeByteArray(key)

	return DecryptEntry(ciphertext, nonce, key, v)
}

// DecryptJSON is DecryptInto that never fails: any problem with the
// envelope, the key, or the plaintext yields fallback.
func DecryptJSON[T any](userID string, env *Envelope, fallback T) T {
	var v T
	if err := DecryptInto(userID, env, &v); err != nil {
		return fallback
	}
	return v
}
