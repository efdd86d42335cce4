// Package wire converts between bencode value trees and their byte forms.
//
// # Bencode
//
// The encoder always produces the canonical form:
//
//	Integer     i<decimal>e       no leading zeros, no negative zero
//	String      <length>:<bytes>
//	List        l<items>e
//	Dictionary  d<key><value>...e keys as strings, ascending byte order
//
// The decoder accepts the same grammar. By default it is lenient in the
// ways real-world files require: dictionary keys out of order are
// accepted (iteration order is restored by the model), duplicate keys keep
// the last value and non-canonical integers are parsed. Each such case is
// reported as a warning event to the configured log.Logger. With
// DecodeOptions.Strict set, these cases are errors instead.
//
// Decoding errors are *SyntaxError values carrying the byte offset and
// wrapping one of the Err* sentinels.
//
// # CBOR
//
// ToCBOR and FromCBOR transcode value trees to and from deterministic
// CBOR (RFC 8949 core deterministic encoding). Byte strings map to CBOR
// byte strings; dictionary keys become text strings when they are valid
// UTF-8 and byte strings otherwise.
package wire
