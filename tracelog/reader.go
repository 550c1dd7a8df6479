package tracelog

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/sarchlab/symtrace/addr"
)

// recordSize is the fixed width of every trace record, per the
// specification's wire format.
const recordSize = 40

// ParseError reports a malformed trace record: an unrecognized entry_type,
// addr_op, addr_kind or addr_flag, or a final record shorter than 40
// bytes. It is fatal — the specification classifies this as
// category 2 of the error model, on par with an alignment fault.
type ParseError struct {
	Offset int64
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("tracelog: malformed record at offset %d: %s", e.Offset, e.Reason)
}

// ReadAll decodes every record in r into an ordered slice of Op, the same
// way core/core.go's Tick decodes a DataReadyRsp payload with
// binary.LittleEndian — here applied to a whole file rather than one
// in-flight message.
func ReadAll(r io.Reader) ([]Op, error) {
	var ops []Op
	var buf [recordSize]byte
	var offset int64

	for {
		_, err := io.ReadFull(r, buf[:])
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Offset: offset, Reason: err.Error()}
		}

		op, err := decodeRecord(buf[:], offset)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
		offset += recordSize
	}

	return ops, nil
}

func decodeRecord(b []byte, offset int64) (Op, error) {
	entryType := EntryType(binary.LittleEndian.Uint64(b[0:8]))

	switch entryType {
	case EntryAddr:
		return decodeAddrRecord(b, offset)
	case EntryBranch:
		return Op{Type: EntryBranch, BranchTaken: binary.LittleEndian.Uint32(b[8:12])}, nil
	case EntrySelect:
		return Op{Type: EntrySelect, SelectValue: binary.LittleEndian.Uint32(b[8:12])}, nil
	default:
		return Op{}, &ParseError{Offset: offset, Reason: fmt.Sprintf("unknown entry_type %d", entryType)}
	}
}

func decodeAddrRecord(b []byte, offset int64) (Op, error) {
	addrOpVal := binary.LittleEndian.Uint64(b[8:16])
	if addrOpVal > uint64(SelectAddr) {
		return Op{}, &ParseError{Offset: offset, Reason: fmt.Sprintf("unknown addr_op %d", addrOpVal)}
	}

	kindVal := binary.LittleEndian.Uint64(b[16:24])
	if kindVal > uint64(addr.Ret) {
		return Op{}, &ParseError{Offset: offset, Reason: fmt.Sprintf("unknown addr_kind %d", kindVal)}
	}

	value := binary.LittleEndian.Uint64(b[24:32])
	off := binary.LittleEndian.Uint32(b[32:36])

	// addr_flag is recorded as a signed 32-bit quantity embedded in a
	// record whose other fields are unsigned; read it explicitly as int32
	// rather than bit-comparing against an unsigned pattern, resolving the
	// sign-extension open question from the specification.
	flagVal := int32(binary.LittleEndian.Uint32(b[36:40]))
	flag := addr.Flag(flagVal)
	if !validFlag(flag) {
		return Op{}, &ParseError{Offset: offset, Reason: fmt.Sprintf("unknown addr_flag %d", flagVal)}
	}

	return Op{
		Type:   EntryAddr,
		AddrOp: AddrOp(addrOpVal),
		AddrEntry: addr.Entry{
			Kind:   addr.Kind(kindVal),
			Value:  value,
			Offset: off,
			Flag:   flag,
		},
	}, nil
}

func validFlag(f addr.Flag) bool {
	switch f {
	case addr.FlagIrrelevant, addr.FlagNone, addr.FlagException, addr.FlagReadlog, addr.FlagFuncarg:
		return true
	default:
		return false
	}
}
