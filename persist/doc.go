// Package persist implements snapshot serialization for the episodic and
// semantic stores.
//
// Two encodings are supported: a structured format (indented JSON, readable
// and diffable) and a binary format (CBOR, compact). A snapshot directory
// holds one file per store, named episodic.json/semantic.json or
// episodic.cbor/semantic.cbor depending on the format.
//
// Absence and corruption are distinct: a missing file resolves to an absent
// snapshot with no error, while an unreadable or undecodable file is always
// surfaced to the caller. Writes go through a temp file then rename, so a
// crash mid-save cannot leave a half-written snapshot at the target path.
package persist
