package sender

import (
	"net"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"golang.org/x/sys/unix"
)

// RawSocket sends a single Ethernet-framed payload with the given
// EtherType. Implementations must be safe to call from one goroutine
// only: the sender never calls this concurrently with itself.
type RawSocket interface {
	// Send serializes an Ethernet header around payload and writes it.
	// It returns the number of bytes written, or an error.
	Send(etherType uint16, payload []byte) (int, error)

	// Close releases the underlying file descriptor.
	Close() error
}

// afpacketSocket is a [RawSocket] backed by an AF_PACKET/SOCK_RAW
// socket bound to one network interface.
type afpacketSocket struct {
	fd      int
	ifindex int
	srcMAC  net.HardwareAddr
	buf     gopacket.SerializeBuffer
	opts    gopacket.SerializeOptions
	addr    unix.SockaddrLinklayer
}

// OpenRawSocket opens an AF_PACKET/SOCK_RAW socket on the named
// interface, resolving its index and hardware address. Spec.md §4.1
// requires this at Transport startup; failure here is a configuration
// error, fatal to the process.
func OpenRawSocket(ifaceName string) (RawSocket, error) {
	iface, err := net.InterfaceByName(ifaceName)
	if err != nil {
		return nil, err
	}

	fd, err := unix.Socket(unix.AF_PACKET, unix.SOCK_RAW, hostToNetworkShort(unix.ETH_P_ALL))
	if err != nil {
		return nil, err
	}

	addr := unix.SockaddrLinklayer{
		Protocol: hostToNetworkShort(unix.ETH_P_ALL),
		Ifindex:  iface.Index,
	}
	if err := unix.Bind(fd, &addr); err != nil {
		unix.Close(fd)
		return nil, err
	}

	return &afpacketSocket{
		fd:      fd,
		ifindex: iface.Index,
		srcMAC:  iface.HardwareAddr,
		buf:     gopacket.NewSerializeBuffer(),
		opts:    gopacket.SerializeOptions{FixLengths: true},
		addr:    addr,
	}, nil
}

// hostToNetworkShort converts a 16-bit value to network byte order, as
// required by AF_PACKET's protocol field.
func hostToNetworkShort(v int) int {
	return int(uint16(v)<<8 | uint16(v)>>8)
}

func (s *afpacketSocket) Send(etherType uint16, payload []byte) (int, error) {
	s.buf.Clear()
	eth := &layers.Ethernet{
		SrcMAC:       s.srcMAC,
		DstMAC:       DestMAC,
		EthernetType: layers.EthernetType(etherType),
	}
	if err := gopacket.SerializeLayers(s.buf, s.opts, eth, gopacket.Payload(payload)); err != nil {
		return -1, err
	}

	b := s.buf.Bytes()
	if err := unix.Sendto(s.fd, b, 0, &s.addr); err != nil {
		return -1, err
	}
	return len(b), nil
}

func (s *afpacketSocket) Close() error {
	return unix.Close(s.fd)
}
