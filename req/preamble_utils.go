package req

import "encoding/binary"

const (
	_PREAMBLE_INTS_BYTE_ADR = 0
	_SER_VER_BYTE_ADR       = 1
	_FAMILY_BYTE_ADR        = 2
	_FLAGS_BYTE_ADR         = 3
	_NUM_LEVELS_BYTE_ADR    = 4
	// bytes 5..7 reserved
	_K_LONG_ADR = 8  // to 15
	_N_LONG_ADR = 16 // to 23

	_DATA_START_ADR = 24

	// Each level block is a schedule counter long plus an item count int,
	// followed by the serde bytes of the buffer.
	_LEVEL_HEADER_BYTES = 12

	// xxhash64 digest of everything before it, last 8 bytes of the slice.
	_CHECKSUM_BYTES = 8

	_PREAMBLE_INTS  = 6
	_SERIAL_VERSION = 1

	// Flag bit masks
	_EMPTY_BIT_MASK = 1
)

func getPreInts(mem []byte) int {
	return int(mem[_PREAMBLE_INTS_BYTE_ADR] & 0xFF)
}

func getSerVer(mem []byte) int {
	return int(mem[_SER_VER_BYTE_ADR] & 0xFF)
}

func getFamilyID(mem []byte) int {
	return int(mem[_FAMILY_BYTE_ADR] & 0xFF)
}

func getFlags(mem []byte) int {
	return int(mem[_FLAGS_BYTE_ADR] & 0xFF)
}

func getEmptyFlag(mem []byte) bool {
	return (getFlags(mem) & _EMPTY_BIT_MASK) != 0
}

func getNumLevels(mem []byte) uint8 {
	return mem[_NUM_LEVELS_BYTE_ADR] & 0xFF
}

func getK(mem []byte) uint64 {
	return binary.LittleEndian.Uint64(mem[_K_LONG_ADR : _K_LONG_ADR+8])
}

func getN(mem []byte) uint64 {
	return binary.LittleEndian.Uint64(mem[_N_LONG_ADR : _N_LONG_ADR+8])
}
