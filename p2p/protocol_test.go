//
// protocol_test.go
//
// Copyright (c) 2019-2026 Markku Rossi
//
// All rights reserved.
//

package p2p

import (
	"testing"
)

var tests = []interface{}{
	byte(42),
	uint16(43),
	uint32(44),
	"Hello, world!",
}

func writer(t *testing.T, c *Conn, done chan<- error) {
	for _, test := range tests {
		var err error
		switch d := test.(type) {
		case byte:
			err = c.SendByte(d)
		case uint16:
			err = c.SendUint16(int(d))
		case uint32:
			err = c.SendUint32(int(d))
		case string:
			err = c.SendString(d)
		}
		if err != nil {
			done <- err
			return
		}
	}
	done <- c.Flush()
}

func TestProtocol(t *testing.T) {
	p0, p1 := Pipe()

	done := make(chan error, 1)
	go writer(t, p0, done)

	for _, test := range tests {
		switch d := test.(type) {
		case byte:
			v, err := p1.ReceiveByte()
			if err != nil {
				t.Fatalf("ReceiveByte: %v", err)
			}
			if v != d {
				t.Errorf("ReceiveByte: got %v, expected %v", v, d)
			}

		case uint16:
			v, err := p1.ReceiveUint16()
			if err != nil {
				t.Fatalf("ReceiveUint16: %v", err)
			}
			if v != int(d) {
				t.Errorf("ReceiveUint16: got %v, expected %v", v, d)
			}

		case uint32:
			v, err := p1.ReceiveUint32()
			if err != nil {
				t.Fatalf("ReceiveUint32: %v", err)
			}
			if v != int(d) {
				t.Errorf("ReceiveUint32: got %v, expected %v", v, d)
			}

		case string:
			v, err := p1.ReceiveString()
			if err != nil {
				t.Fatalf("ReceiveString: %v", err)
			}
			if v != d {
				t.Errorf("ReceiveString: got %v, expected %v", v, d)
			}
		}
	}

	if err := <-done; err != nil {
		t.Errorf("writer: %v", err)
	}
	if err := p1.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestAck(t *testing.T) {
	p0, p1 := Pipe()

	go func() {
		if err := p0.SendAck(); err != nil {
			t.Errorf("SendAck: %v", err)
		}
	}()

	if err := p1.WaitForAck(); err != nil {
		t.Errorf("WaitForAck: %v", err)
	}
}

func TestSendReceive(t *testing.T) {
	p0, p1 := Pipe()

	payload := []byte("garbled table row")
	go func() {
		if err := p0.Send(payload); err != nil {
			t.Errorf("Send: %v", err)
		}
		if err := p0.Flush(); err != nil {
			t.Errorf("Flush: %v", err)
		}
	}()

	got, err := p1.Receive()
	if err != nil {
		t.Fatalf("Receive: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("Receive: got %q, expected %q", got, payload)
	}
}
