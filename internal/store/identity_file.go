package store

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"

	"geoseal/internal/domain"
	"geoseal/internal/util/memzero"
)

const (
	identityFile = "identity.enc"

	// Current version of the encrypted blob format on disk.
	identityFormatVersion = 1

	saltBytes = 16
)

// ErrWrongPassphrase is returned when the passphrase is incorrect or the
// stored identity has been modified or corrupted.
var ErrWrongPassphrase = errors.New("wrong passphrase or corrupted identity")

// identityBlob is the on-disk JSON structure holding the ciphertext and KDF
// parameters.
type identityBlob struct {
	Version int    `json:"version"`
	N       int    `json:"n"`
	R       int    `json:"r"`
	P       int    `json:"p"`
	Salt    []byte `json:"salt"`
	Nonce   []byte `json:"nonce"`
	CT      []byte `json:"ct"`
}

// IdentityFileStore keeps the long-term identity encrypted on disk under a
// passphrase-derived key (scrypt, then ChaCha20-Poly1305).
type IdentityFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewIdentityFileStore returns a store rooted at dir.
func NewIdentityFileStore(dir string) *IdentityFileStore {
	return &IdentityFileStore{dir: dir}
}

// SaveIdentity encrypts id under the passphrase and writes it to disk.
func (s *IdentityFileStore) SaveIdentity(passphrase string, id domain.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(id)
	if err != nil {
		return err
	}
	defer memzero.Zero(raw)

	blob, err := sealIdentity(passphrase, raw)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.dir, identityFile), blob, 0o600)
}

// LoadIdentity reads and decrypts the stored identity.
func (s *IdentityFileStore) LoadIdentity(passphrase string) (domain.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	blob, err := os.ReadFile(filepath.Join(s.dir, identityFile))
	if err != nil {
		return domain.Identity{}, err
	}
	raw, err := openIdentity(passphrase, blob)
	if err != nil {
		return domain.Identity{}, err
	}
	defer memzero.Zero(raw)

	var id domain.Identity
	if err := json.Unmarshal(raw, &id); err != nil {
		return domain.Identity{}, ErrWrongPassphrase
	}
	return id, nil
}

func scryptParamsDefault() (N, r, p int) { return 1 << 15, 8, 1 }

func sealIdentity(passphrase string, plaintext []byte) ([]byte, error) {
	salt := make([]byte, saltBytes)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	N, r, p := scryptParamsDefault()
	key, err := scrypt.Key([]byte(passphrase), salt, N, r, p, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	ct := aead.Seal(nil, nonce, plaintext, salt)
	return json.Marshal(identityBlob{
		Version: identityFormatVersion,
		N:       N, R: r, P: p,
		Salt:  salt,
		Nonce: nonce,
		CT:    ct,
	})
}

func openIdentity(passphrase string, data []byte) ([]byte, error) {
	var blob identityBlob
	if err := json.Unmarshal(data, &blob); err != nil {
		return nil, ErrWrongPassphrase
	}
	if blob.Version != identityFormatVersion {
		return nil, errors.New("unsupported identity format version")
	}
	key, err := scrypt.Key([]byte(passphrase), blob.Salt, blob.N, blob.R, blob.P, chacha20poly1305.KeySize)
	if err != nil {
		return nil, err
	}
	defer memzero.Zero(key)

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, err
	}
	raw, err := aead.Open(nil, blob.Nonce, blob.CT, blob.Salt)
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	return raw, nil
}

// Compile-time assertion that IdentityFileStore implements domain.IdentityStore.
var _ domain.IdentityStore = (*IdentityFileStore)(nil)
