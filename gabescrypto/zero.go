//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package gabescrypto

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"
)

// zeroKeyInfo and zeroNonceInfo domain-separate the two HKDF outputs
// derived from the same (keyA, keyB) input so that the key and the
// nonce are never the same bytes.
var (
	zeroKeyInfo   = []byte("gabes/grr3/key")
	zeroNonceInfo = []byte("gabes/grr3/nonce")
)

// GenerateZeroCiphertext returns the AEAD encryption of a string of
// length zero bytes, keyed and nonced deterministically from (keyA,
// keyB). GRR3 uses this to let both garbler and evaluator
// reconstruct the omitted (0,0) garbled-table row without
// transmitting it (§4.1, §4.6(c)).
//
// Both the key and the nonce must be derived from (keyA, keyB) alone
// — a random nonce would make the construction impossible for the
// evaluator to reproduce (§9).
func GenerateZeroCiphertext(keyA, keyB SymmetricKey, length int) ([]byte, error) {
	secret := append(append([]byte{}, keyA[:]...), keyB[:]...)

	keyReader := hkdf.New(sha256.New, secret, nil, zeroKeyInfo)
	var derivedKey SymmetricKey
	if _, err := io.ReadFull(keyReader, derivedKey[:]); err != nil {
		return nil, err
	}

	nonceReader := hkdf.New(sha256.New, secret, nil, zeroNonceInfo)
	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(nonceReader, nonce); err != nil {
		return nil, err
	}

	zero := make([]byte, length)
	return EncryptDeterministic(derivedKey, nonce, zero)
}
