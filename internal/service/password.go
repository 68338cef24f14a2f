package service

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	SchemeSHA256 = "sha256"
	SchemeBcrypt = "bcrypt"
)

// PasswordService hashes new passwords with the configured scheme and verifies
// stored values of either scheme. The sha256 form is "salt:hex(sha256(password+salt))";
// the bcrypt form hashes hex(sha256(password)).
type PasswordService struct {
	scheme string
	cost   int
}

func NewPasswordService(scheme string) (*PasswordService, error) {
	switch scheme {
	case "", SchemeSHA256:
		return &PasswordService{scheme: SchemeSHA256}, nil
	case SchemeBcrypt:
		return &PasswordService{scheme: SchemeBcrypt, cost: bcrypt.DefaultCost}, nil
	default:
		return nil, fmt.Errorf("unknown password scheme %q", scheme)
	}
}

func (s *PasswordService) Hash(password string) (string, error) {
	if s.scheme == SchemeBcrypt {
		hashed, err := bcrypt.GenerateFromPassword(bcryptInput(password), s.cost)
		if err != nil {
			return "", err
		}
		return string(hashed), nil
	}

	salt := strings.ReplaceAll(uuid.NewString(), "-", "")
	return salt + ":" + saltedDigest(password, salt), nil
}

func (s *PasswordService) Verify(stored, password string) bool {
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), bcryptInput(password)) == nil
	}

	salt, digest, ok := strings.Cut(stored, ":")
	if !ok || salt == "" || digest == "" {
		return false
	}
	computed := saltedDigest(password, salt)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(digest)) == 1
}

// bcryptInput digests the password first; bcrypt refuses input longer than 72 bytes.
func bcryptInput(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(hex.EncodeToString(sum[:]))
}

func saltedDigest(password, salt string) string {
	sum := sha256.Sum256([]byte(password + salt))
	return hex.EncodeToString(sum[:])
}
