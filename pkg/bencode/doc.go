// Package bencode implements the in-memory data model for bencoded values.
//
// Bencoding (the encoding used by BitTorrent metainfo files and tracker
// responses) has exactly four value kinds:
//
//	Integer     i42e
//	String      4:spam   (arbitrary bytes, not necessarily UTF-8)
//	List        l4:spami42ee
//	Dictionary  d3:bar4:spam3:fooi42ee
//
// # Handles and Aliasing
//
// Every value is used through a pointer handle (*Integer, *String, *List,
// *Dictionary). Containers store handles, so the same value may appear in
// several containers at once and a mutation through one of them is visible
// through all. Dictionary.Values returns a new list that aliases the
// dictionary's values rather than copying them.
//
// # Key Ordering
//
// Dictionary keys are byte strings compared by content. Iteration always
// yields entries in ascending byte order, which is the canonical order the
// wire format requires. Use (*String).Key to use a String value as a key.
//
// # Visitors
//
// The value set is closed. Traversals implement Visitor (one handler per
// kind) and call Value.Accept, or switch on the concrete type.
//
// # Contract Violations
//
// Misuse that indicates a bug in the caller (nil list items, access to an
// empty list, out-of-range indices, malformed slice bounds) panics with a
// *ContractError. Expected misses, such as a missing dictionary key, are
// reported through return values instead.
//
// None of the types in this package are safe for concurrent mutation.
package bencode
