//
// rsa.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package ot

import (
	cryptorand "crypto/rand"
	"crypto/rsa"
	"fmt"
	"io"
	"math/big"

	"github.com/gabes-mpc/gabes/ot/mpint"
	"github.com/gabes-mpc/gabes/pkcs1"
)

// MinKeyBits is the minimum RSA modulus size accepted for a transfer,
// per §4.8.
const MinKeyBits = 2048

func randomData(rand io.Reader, size int) ([]byte, error) {
	m := make([]byte, size)
	_, err := io.ReadFull(rand, m)
	if err != nil {
		return nil, err
	}
	return m, nil
}

// Sender is the OT sender (garbler) side of a single 1-out-of-2
// transfer. A fresh Sender, and therefore a fresh RSA keypair, must
// be created for every wire (§4.8): reusing keypairs across wires
// leaks correlations between the transferred labels.
type Sender struct {
	key  *rsa.PrivateKey
	rand io.Reader
}

// NewSender generates a fresh RSA keypair and returns the sender side
// of the transfer. keyBits must be at least MinKeyBits.
func NewSender(rand io.Reader, keyBits int) (*Sender, error) {
	if keyBits < MinKeyBits {
		return nil, fmt.Errorf("ot: RSA modulus too small: %d < %d",
			keyBits, MinKeyBits)
	}
	key, err := rsa.GenerateKey(rand, keyBits)
	if err != nil {
		return nil, err
	}

	return &Sender{
		key:  key,
		rand: rand,
	}, nil
}

// MessageSize returns the size, in bytes, of the RSA modulus.
func (s *Sender) MessageSize() int {
	return s.key.PublicKey.Size()
}

// PublicKey returns the sender's RSA public key, sent to the
// receiver as step 1 of §4.8.
func (s *Sender) PublicKey() *rsa.PublicKey {
	return &s.key.PublicKey
}

// NewTransfer starts a new 1-out-of-2 transfer of (m0, m1).
func (s *Sender) NewTransfer(m0, m1 []byte) (*SenderXfer, error) {
	x0, err := randomData(s.rand, s.MessageSize())
	if err != nil {
		return nil, err
	}
	x1, err := randomData(s.rand, s.MessageSize())
	if err != nil {
		return nil, err
	}

	return &SenderXfer{
		sender: s,
		m0:     m0,
		m1:     m1,
		x0:     x0,
		x1:     x1,
	}, nil
}

// SenderXfer holds the per-transfer sender state of §4.8 steps 1, 3,
// and 4.
type SenderXfer struct {
	sender *Sender
	m0     []byte
	m1     []byte
	x0     []byte
	x1     []byte
	k0     *big.Int
	k1     *big.Int
}

// RandomMessages returns the two random pads x0, x1 sent in §4.8
// step 1.
func (s *SenderXfer) RandomMessages() ([]byte, []byte) {
	return s.x0, s.x1
}

// ReceiveV processes the receiver's v value (§4.8 step 2) and
// derives both candidate blinding factors k0', k1' (§4.8 step 3).
// Only the one matching the receiver's chosen bit will turn out to
// equal the receiver's k.
func (s *SenderXfer) ReceiveV(data []byte) {
	v := mpint.FromBytes(data)
	x0 := mpint.FromBytes(s.x0)
	x1 := mpint.FromBytes(s.x1)

	n := s.sender.key.PublicKey.N
	d := s.sender.key.D
	s.k0 = mpint.Exp(mpint.Mod(mpint.Sub(v, x0), n), d, n)
	s.k1 = mpint.Exp(mpint.Mod(mpint.Sub(v, x1), n), d, n)
}

// Messages returns (m0 + k0', m1 + k1') as blinded values (§4.8 step
// 4): each message is PKCS#1-padded and k0' or k1' is added to it as
// an integer; the blinding is addition, not XOR. The receiver can
// only unblind the value at its chosen index.
func (s *SenderXfer) Messages() ([]byte, []byte, error) {
	m0, err := pkcs1.NewEncryptionBlock(pkcs1.BT1, s.sender.MessageSize(), s.m0)
	if err != nil {
		return nil, nil, err
	}
	m0p := mpint.Add(mpint.FromBytes(m0), s.k0)

	m1, err := pkcs1.NewEncryptionBlock(pkcs1.BT1, s.sender.MessageSize(), s.m1)
	if err != nil {
		return nil, nil, err
	}
	m1p := mpint.Add(mpint.FromBytes(m1), s.k1)

	return m0p.Bytes(), m1p.Bytes(), nil
}

// Receiver is the OT receiver (evaluator) side of a transfer.
type Receiver struct {
	pub  *rsa.PublicKey
	rand io.Reader
}

// NewReceiver creates a receiver bound to the sender's public key.
func NewReceiver(rand io.Reader, pub *rsa.PublicKey) (*Receiver, error) {
	if pub.Size()*8 < MinKeyBits {
		return nil, fmt.Errorf("ot: RSA modulus too small: %d < %d",
			pub.Size()*8, MinKeyBits)
	}
	return &Receiver{
		pub:  pub,
		rand: rand,
	}, nil
}

// MessageSize returns the size, in bytes, of the RSA modulus.
func (r *Receiver) MessageSize() int {
	return r.pub.Size()
}

// NewTransfer starts a new transfer for the receiver's chosen bit.
func (r *Receiver) NewTransfer(bit uint) (*ReceiverXfer, error) {
	return &ReceiverXfer{
		receiver: r,
		bit:      bit,
	}, nil
}

// ReceiverXfer holds the per-transfer receiver state of §4.8 steps
// 2 and 5.
type ReceiverXfer struct {
	receiver *Receiver
	bit      uint
	k        *big.Int
	v        *big.Int
	mb       []byte
}

// ReceiveRandomMessages consumes the sender's (x0, x1) and computes
// v = (x_b + k^e) mod N (§4.8 step 2).
func (r *ReceiverXfer) ReceiveRandomMessages(x0, x1 []byte) error {
	k, err := cryptorand.Int(r.receiver.rand, r.receiver.pub.N)
	if err != nil {
		return err
	}
	r.k = k

	var xb *big.Int
	if r.bit == 0 {
		xb = mpint.FromBytes(x0)
	} else {
		xb = mpint.FromBytes(x1)
	}

	e := big.NewInt(int64(r.receiver.pub.E))
	r.v = mpint.Mod(
		mpint.Add(xb, mpint.Exp(r.k, e, r.receiver.pub.N)), r.receiver.pub.N)

	return nil
}

// V returns the blinded choice value sent to the sender.
func (r *ReceiverXfer) V() []byte {
	return r.v.Bytes()
}

// ReceiveMessages consumes (m0', m1') and recovers the chosen
// plaintext message by unblinding with k (§4.8 step 5).
func (r *ReceiverXfer) ReceiveMessages(m0p, m1p []byte) error {
	var mbp *big.Int
	if r.bit == 0 {
		mbp = mpint.FromBytes(m0p)
	} else {
		mbp = mpint.FromBytes(m1p)
	}
	mbBytes := make([]byte, r.receiver.MessageSize())
	mbIntBytes := mpint.Sub(mbp, r.k).Bytes()
	ofs := len(mbBytes) - len(mbIntBytes)
	if ofs < 0 {
		return fmt.Errorf("ot: corrupted transfer: message too long")
	}
	copy(mbBytes[ofs:], mbIntBytes)

	mb, err := pkcs1.ParseEncryptionBlock(mbBytes)
	if err != nil {
		return err
	}
	r.mb = mb

	return nil
}

// Message returns the recovered message and the bit that selected
// it.
func (r *ReceiverXfer) Message() (m []byte, bit uint) {
	return r.mb, r.bit
}
