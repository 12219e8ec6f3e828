package prover

import (
	"encoding/binary"
	"fmt"

	"github.com/agencyenterprise/zkgraph/field"
	"github.com/agencyenterprise/zkgraph/transcript"
)

// MarshalBinary packs a Proof into a single binary blob, laid out as:
//
//	[32]byte  output
//	uint32    number of transcript records
//	for each record:
//	  uint16  label length
//	  []byte  label
//	  uint16  number of data chunks
//	  for each chunk:
//	    uint32  chunk length
//	    []byte  chunk
//
// every integer is big-endian. This is the wire format a verifier reads
// back with UnmarshalProof before calling verifier.Verify.
func (p *Proof) MarshalBinary() []byte {
	out := make([]byte, 0, 1024)
	outputBytes := p.Output.Bytes()
	out = append(out, outputBytes[:]...)

	var u32 [4]byte
	binary.BigEndian.PutUint32(u32[:], uint32(len(p.Log)))
	out = append(out, u32[:]...)

	var u16 [2]byte
	for _, rec := range p.Log {
		binary.BigEndian.PutUint16(u16[:], uint16(len(rec.Label)))
		out = append(out, u16[:]...)
		out = append(out, rec.Label...)

		binary.BigEndian.PutUint16(u16[:], uint16(len(rec.Data)))
		out = append(out, u16[:]...)
		for _, chunk := range rec.Data {
			binary.BigEndian.PutUint32(u32[:], uint32(len(chunk)))
			out = append(out, u32[:]...)
			out = append(out, chunk...)
		}
	}
	return out
}

// UnmarshalProof reverses MarshalBinary, failing if data is truncated or
// internally inconsistent (a length prefix pointing past the end of data).
func UnmarshalProof(data []byte) (*Proof, error) {
	if len(data) < 32+4 {
		return nil, fmt.Errorf("prover: proof blob too short: %d bytes", len(data))
	}
	output := field.FromBytes(data[:32])
	data = data[32:]

	numRecords := binary.BigEndian.Uint32(data[:4])
	data = data[4:]

	log := make([]transcript.Record, 0, numRecords)
	for i := uint32(0); i < numRecords; i++ {
		if len(data) < 2 {
			return nil, fmt.Errorf("prover: proof blob truncated reading record %d's label length", i)
		}
		labelLen := binary.BigEndian.Uint16(data[:2])
		data = data[2:]
		if len(data) < int(labelLen) {
			return nil, fmt.Errorf("prover: proof blob truncated reading record %d's label", i)
		}
		label := string(data[:labelLen])
		data = data[labelLen:]

		if len(data) < 2 {
			return nil, fmt.Errorf("prover: proof blob truncated reading record %d's chunk count", i)
		}
		numChunks := binary.BigEndian.Uint16(data[:2])
		data = data[2:]

		chunks := make([][]byte, 0, numChunks)
		for j := uint16(0); j < numChunks; j++ {
			if len(data) < 4 {
				return nil, fmt.Errorf("prover: proof blob truncated reading record %d chunk %d's length", i, j)
			}
			chunkLen := binary.BigEndian.Uint32(data[:4])
			data = data[4:]
			if uint64(len(data)) < uint64(chunkLen) {
				return nil, fmt.Errorf("prover: proof blob truncated reading record %d chunk %d's data", i, j)
			}
			chunks = append(chunks, append([]byte(nil), data[:chunkLen]...))
			data = data[chunkLen:]
		}
		log = append(log, transcript.Record{Label: label, Data: chunks})
	}

	return &Proof{Output: output, Log: log}, nil
}
