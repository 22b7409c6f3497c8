package crypto

import (
	"strconv"

	"golang.org/x/crypto/sha3"
)

// MessagePrefix is prepended to every signed message before hashing.
const MessagePrefix = "\x17Elrond Signed Message:\n"

// Keccak256 returns the legacy Keccak-256 digest of data.
func Keccak256(data ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		h.Write(d)
	}
	return h.Sum(nil)
}

// MessageHash returns keccak256(prefix | decimal length | message).
func MessageHash(message []byte) []byte {
	return Keccak256([]byte(MessagePrefix), []byte(strconv.Itoa(len(message))), message)
}

// SignMessage signs the prefixed hash of an arbitrary message.
func SignMessage(signer Signer, message []byte) ([]byte, error) {
	return signer.Sign(MessageHash(message))
}

// VerifyMessage checks a signature produced by SignMessage.
func VerifyMessage(message, signature, publicKey []byte) bool {
	return VerifySignature(MessageHash(message), signature, publicKey)
}
