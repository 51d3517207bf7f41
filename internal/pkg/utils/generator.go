package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"cybersentry-service/internal/pkg/constvars"
	"encoding/hex"
	"math/big"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// GenerateOperationCode mints a one-time operation code from crypto/rand. With
// the 32-character alphabet a 12-character code carries 60 bits of entropy,
// which keeps online guessing infeasible within the validity window.
func GenerateOperationCode(codeLength int) (string, error) {
	max := big.NewInt(int64(len(constvars.OperationCodeAlphabet)))

	code := make([]byte, codeLength)
	for i := range code {
		num, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code[i] = constvars.OperationCodeAlphabet[num.Int64()]
	}

	return string(code), nil
}

// HashOperationCode is the only form in which a code is ever persisted or used
// as a store key. The raw code exists only in the notification email.
func HashOperationCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}

// GenerateResultAccessJWT signs a short-lived token the chat client presents
// when fetching the artifact produced by a redeemed operation.
func GenerateResultAccessJWT(codeHash, kind, secret string, expiryTimeInMinutes int) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"code_hash": codeHash,
		"kind":      kind,
		"exp":       time.Now().Add(time.Duration(expiryTimeInMinutes) * time.Minute).Unix(),
	})

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func GenerateRequestID() string {
	return uuid.NewString()
}
