// Package section defines the binary header of serialized feature blobs.
//
// A feature blob is a fixed 40-byte header followed by two payloads:
//
//	┌──────────────────────────────────────────────┐
//	│ Header (40 bytes, fixed)                     │
//	├──────────────────────────────────────────────┤
//	│ Index payload (IndexPayloadSize bytes)       │
//	│  - uvarint deltas of the cell indices        │
//	│  - compressed with the index compression     │
//	├──────────────────────────────────────────────┤
//	│ Value payload (ValuePayloadSize bytes)       │
//	│  - raw float64 cell values                   │
//	│  - compressed with the value compression     │
//	└──────────────────────────────────────────────┘
//
// Header layout:
//
//	Bytes  | Field            | Type   | Description
//	-------|------------------|--------|--------------------------------------
//	0-1    | Options          | uint16 | magic (bits 4-15), endianness (bit 0)
//	2      | CompressionType  | uint8  | index (bits 0-3), value (bits 4-7)
//	3      | Channels         | uint8  | polarity channels, 1 or 2
//	4-7    | PooledRows       | uint32 |
//	8-11   | PooledCols       | uint32 |
//	12-15  | WordCount        | uint32 | dictionary atoms
//	16-19  | Count            | uint32 | realized cells
//	20-23  | IndexPayloadSize | uint32 | stored index payload bytes
//	24-27  | ValuePayloadSize | uint32 | stored value payload bytes
//	28-31  | Checksum         | uint32 | xxHash64 low bits of both payloads
//	32-39  | Fingerprint      | uint64 | dictionary fingerprint
//
// Options is always little-endian so the endianness bit can be read before the
// rest of the header; every other multi-byte field uses the recorded order.
package section
