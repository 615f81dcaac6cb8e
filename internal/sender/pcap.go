package sender

//
// Diagnostic PCAP capture of emitted row/commit packets, adapted from
// the teacher's PCAPDumper/pcapDumperNIC link-wrapper.
//

import (
	"os"
	"time"

	"github.com/basso-labs/ledsign"
	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
)

// PCAPDumper wraps a [RawSocket] and additionally writes every packet it
// sends to a PCAP trace file, for offline inspection of the FPGA link.
// Unlike the teacher's version, which wraps a bidirectional NIC, this
// one is write-only: the sender never reads from the wire.
type PCAPDumper struct {
	socket RawSocket
	writer *pcapgo.Writer
	file   *os.File
	logger ledsign.Logger
}

var _ RawSocket = &PCAPDumper{}

// NewPCAPDumper opens filename and wraps socket so every sent packet is
// also captured there.
func NewPCAPDumper(filename string, socket RawSocket, logger ledsign.Logger) (*PCAPDumper, error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, err
	}

	w := pcapgo.NewWriter(f)
	const snapLen = 262144
	if err := w.WriteFileHeader(snapLen, layers.LinkTypeEthernet); err != nil {
		f.Close()
		return nil, err
	}

	return &PCAPDumper{
		socket: socket,
		writer: w,
		file:   f,
		logger: logger,
	}, nil
}

// Send implements RawSocket: it forwards to the wrapped socket and, on
// success, appends the Ethernet-framed packet to the capture.
func (d *PCAPDumper) Send(etherType uint16, payload []byte) (int, error) {
	n, err := d.socket.Send(etherType, payload)
	if err != nil {
		return n, err
	}

	eth := &layers.Ethernet{
		SrcMAC:       make([]byte, 6),
		DstMAC:       DestMAC,
		EthernetType: layers.EthernetType(etherType),
	}
	buf := gopacket.NewSerializeBuffer()
	if err := gopacket.SerializeLayers(buf, gopacket.SerializeOptions{FixLengths: true}, eth, gopacket.Payload(payload)); err != nil {
		d.logger.Warnf("ledsign: sender: pcap: serialize failed: %s", err.Error())
		return n, nil
	}

	ci := gopacket.CaptureInfo{
		Timestamp:     time.Now(),
		CaptureLength: len(buf.Bytes()),
		Length:        len(buf.Bytes()),
	}
	if err := d.writer.WritePacket(ci, buf.Bytes()); err != nil {
		d.logger.Warnf("ledsign: sender: pcap: write failed: %s", err.Error())
	}
	return n, nil
}

// Close closes both the wrapped socket and the trace file.
func (d *PCAPDumper) Close() error {
	err := d.socket.Close()
	if cerr := d.file.Close(); err == nil {
		err = cerr
	}
	return err
}
