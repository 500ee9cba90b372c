// Package identifier resolves YouTube URLs to canonical video IDs.
//
// Resolve accepts the common URL shapes (watch, youtu.be, embed, shorts,
// live) plus bare 11-character IDs and extracts exactly the identifier
// substring. It performs no network access; malformed input fails with the
// services.ErrInvalidURL sentinel.
package identifier
