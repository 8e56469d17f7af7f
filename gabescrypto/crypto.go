//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

// Package gabescrypto implements the symmetric cryptography used to
// mask garbled-table rows: AES-GCM AEAD encryption of wire labels,
// and the deterministic zero-ciphertext construction GRR3 needs to
// reconstruct its omitted (0,0) row (§4.1).
package gabescrypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
	"io"
)

// NonceSize is the AES-GCM nonce size in bytes (96 bits, §4.1).
const NonceSize = 12

// SymmetricKey is a 128-bit AEAD key, the size of a wire label's
// value (§4.1).
type SymmetricKey [16]byte

// Encrypt encrypts plaintext under key using AES-GCM with a fresh
// random nonce. The returned ciphertext is nonce ‖ body ‖ auth-tag:
// the tag stays where AES-GCM's Seal puts it, after the body, and is
// not moved ahead of it.
func Encrypt(rnd io.Reader, key SymmetricKey, plaintext []byte) ([]byte, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(rnd, nonce); err != nil {
		return nil, err
	}

	sealed := aead.Seal(nil, nonce, plaintext, nil)
	return append(nonce, sealed...), nil
}

// Decrypt decrypts a ciphertext produced by Encrypt or
// EncryptDeterministic. It returns a *DecryptionError, not a bare
// error, on AEAD authentication failure (§4.1, §7).
func Decrypt(key SymmetricKey, ciphertext []byte) ([]byte, error) {
	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < NonceSize {
		return nil, &DecryptionError{Reason: "ciphertext shorter than nonce"}
	}
	nonce, sealed := ciphertext[:NonceSize], ciphertext[NonceSize:]

	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, &DecryptionError{Reason: "tag mismatch"}
	}
	return plaintext, nil
}

// EncryptDeterministic encrypts plaintext under key with an
// explicitly supplied nonce rather than a random one. Used by
// GenerateZeroCiphertext (§4.1, §9), where both garbler and
// evaluator must reconstruct byte-identical output.
func EncryptDeterministic(key SymmetricKey, nonce, plaintext []byte) ([]byte, error) {
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("gabescrypto: nonce must be %d bytes, got %d",
			NonceSize, len(nonce))
	}
	aead, err := newAEAD(key)
	if err != nil {
		return nil, err
	}
	sealed := aead.Seal(nil, nonce, plaintext, nil)
	return append(append([]byte{}, nonce...), sealed...), nil
}

func newAEAD(key SymmetricKey) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// RandomKey draws a fresh random symmetric key.
func RandomKey(rnd io.Reader) (SymmetricKey, error) {
	var key SymmetricKey
	_, err := io.ReadFull(rnd, key[:])
	return key, err
}
