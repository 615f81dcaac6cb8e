package sender

import "sync"

// sentPacket records one call to fakeSocket.Send.
type sentPacket struct {
	etherType uint16
	payload   []byte
}

// fakeSocket is a [RawSocket] that records every packet instead of
// writing to the wire. Send is called from the Sender's goroutine while
// tests inspect sent from the caller's, so access is mutex-guarded.
type fakeSocket struct {
	mu   sync.Mutex
	sent []sentPacket
}

func (f *fakeSocket) Send(etherType uint16, payload []byte) (int, error) {
	cp := append([]byte{}, payload...)
	f.mu.Lock()
	f.sent = append(f.sent, sentPacket{etherType: etherType, payload: cp})
	f.mu.Unlock()
	return len(payload), nil
}

func (f *fakeSocket) Close() error {
	return nil
}

// snapshot returns a copy of the packets sent so far, safe to read
// without racing Send.
func (f *fakeSocket) snapshot() []sentPacket {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]sentPacket, len(f.sent))
	copy(out, f.sent)
	return out
}
