//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package p2p

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// Conn wraps a transport (a net.Conn, or any io.ReadWriter — tests use
// an in-memory Pipe) with buffered length-framed I/O, adapted directly
// from the teacher's p2p.Conn (§4.7).
type Conn struct {
	closer io.Closer
	io     *bufio.ReadWriter
	Stats  IOStats
}

// IOStats tracks bytes moved over a Conn, as the teacher's Conn.Stats
// does.
type IOStats struct {
	Sent  uint64
	Recvd uint64
}

func (stats IOStats) Sub(o IOStats) IOStats {
	return IOStats{
		Sent:  stats.Sent - o.Sent,
		Recvd: stats.Recvd - o.Recvd,
	}
}

func (stats IOStats) Sum() uint64 {
	return stats.Sent + stats.Recvd
}

// NewConn wraps rw in a Conn. If rw also implements io.Closer, Close
// closes it too.
func NewConn(rw io.ReadWriter) *Conn {
	closer, _ := rw.(io.Closer)
	return &Conn{
		closer: closer,
		io: bufio.NewReadWriter(bufio.NewReader(rw),
			bufio.NewWriter(rw)),
	}
}

func (c *Conn) Flush() error {
	return c.io.Flush()
}

func (c *Conn) Close() error {
	if err := c.Flush(); err != nil {
		return err
	}
	if c.closer != nil {
		return c.closer.Close()
	}
	return nil
}

func (c *Conn) SendByte(val byte) error {
	if err := c.io.WriteByte(val); err != nil {
		return err
	}
	c.Stats.Sent++
	return nil
}

func (c *Conn) ReceiveByte() (byte, error) {
	val, err := c.io.ReadByte()
	if err != nil {
		return 0, err
	}
	c.Stats.Recvd++
	return val, nil
}

func (c *Conn) SendUint16(val int) error {
	if err := binary.Write(c.io, binary.BigEndian, uint16(val)); err != nil {
		return err
	}
	c.Stats.Sent += 2
	return nil
}

func (c *Conn) ReceiveUint16() (int, error) {
	var buf [2]byte
	if _, err := io.ReadFull(c.io, buf[:]); err != nil {
		return 0, err
	}
	c.Stats.Recvd += 2
	return int(binary.BigEndian.Uint16(buf[:])), nil
}

func (c *Conn) SendUint32(val int) error {
	if err := binary.Write(c.io, binary.BigEndian, uint32(val)); err != nil {
		return err
	}
	c.Stats.Sent += 4
	return nil
}

func (c *Conn) ReceiveUint32() (int, error) {
	var buf [4]byte
	if _, err := io.ReadFull(c.io, buf[:]); err != nil {
		return 0, err
	}
	c.Stats.Recvd += 4
	return int(binary.BigEndian.Uint32(buf[:])), nil
}

// Send writes val length-framed: a uint32 length prefix followed by
// the bytes themselves (§4.7's "generic length-framed value" — the
// transport for garbled tables, labels, and circuit structure alike).
func (c *Conn) Send(val []byte) error {
	if err := c.SendUint32(len(val)); err != nil {
		return err
	}
	if _, err := c.io.Write(val); err != nil {
		return err
	}
	c.Stats.Sent += uint64(len(val))
	return nil
}

// Receive reads back a value written by Send.
func (c *Conn) Receive() ([]byte, error) {
	n, err := c.ReceiveUint32()
	if err != nil {
		return nil, err
	}
	result := make([]byte, n)
	if _, err := io.ReadFull(c.io, result); err != nil {
		return nil, err
	}
	c.Stats.Recvd += uint64(n)
	return result, nil
}

func (c *Conn) SendString(val string) error {
	return c.Send([]byte(val))
}

func (c *Conn) ReceiveString() (string, error) {
	data, err := c.Receive()
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ackByte is the single byte exchanged by SendAck/WaitForAck. Its
// value carries no meaning beyond "present" — it exists only to make
// the barrier a single recognizable read rather than a zero-length
// one (§4.9's phase barriers between garbling, OT, and evaluation).
const ackByte = 0x01

// SendAck sends a one-byte barrier, used between protocol phases to
// make sure both parties have finished the previous phase before
// either starts the next (§4.7, §4.9). The teacher's Conn has no
// equivalent — OP_OT/OP_RESULT are its only message tags — this is
// new, built in the same buffered-length-framed style.
func (c *Conn) SendAck() error {
	if err := c.SendByte(ackByte); err != nil {
		return err
	}
	return c.Flush()
}

// WaitForAck blocks for the peer's SendAck and reports a NetworkError
// if anything else arrives.
func (c *Conn) WaitForAck() error {
	b, err := c.ReceiveByte()
	if err != nil {
		return &NetworkError{Op: "wait-for-ack", Err: err}
	}
	if b != ackByte {
		return &NetworkError{Op: "wait-for-ack", Err: fmt.Errorf("unexpected byte 0x%02x", b)}
	}
	return nil
}
