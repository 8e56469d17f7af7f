//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package gabescrypto

import (
	"bytes"
	"crypto/rand"
	"testing"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	key, err := RandomKey(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	plaintext := []byte("0123456789abcdef")

	ciphertext, err := Encrypt(rand.Reader, key, plaintext)
	if err != nil {
		t.Fatal(err)
	}

	got, err := Decrypt(key, ciphertext)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, plaintext) {
		t.Fatalf("round trip mismatch: got %x, want %x", got, plaintext)
	}
}

func TestDecryptWrongKeyFails(t *testing.T) {
	key, _ := RandomKey(rand.Reader)
	other, _ := RandomKey(rand.Reader)

	ciphertext, err := Encrypt(rand.Reader, key, []byte("secret label bytes"))
	if err != nil {
		t.Fatal(err)
	}

	_, err = Decrypt(other, ciphertext)
	if err == nil {
		t.Fatal("expected decryption failure with wrong key")
	}
	if _, ok := err.(*DecryptionError); !ok {
		t.Fatalf("expected *DecryptionError, got %T", err)
	}
}

func TestGenerateZeroCiphertextDeterministic(t *testing.T) {
	keyA, _ := RandomKey(rand.Reader)
	keyB, _ := RandomKey(rand.Reader)

	c1, err := GenerateZeroCiphertext(keyA, keyB, 16)
	if err != nil {
		t.Fatal(err)
	}
	c2, err := GenerateZeroCiphertext(keyA, keyB, 16)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(c1, c2) {
		t.Fatalf("zero-ciphertext is not deterministic: %x != %x", c1, c2)
	}

	c3, err := GenerateZeroCiphertext(keyB, keyA, 16)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(c1, c3) {
		t.Fatal("zero-ciphertext should depend on key order")
	}
}
