// Package identity derives the stable identifiers used in exported bundles.
//
// Clients track learner progress by these ids, so the derivations must stay
// bit-for-bit compatible with bundles that have already been published.
package identity

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// Entity kinds used as the first component of opaque ids.
const (
	KindLearnWord     = "learnword"
	KindLearnSentence = "learnsentence"
)

// opaqueIDLength is the number of hex characters kept from the digest.
const opaqueIDLength = 10

// OpaqueID returns the first 10 hex characters of
// SHA-256(kind + decimal(pk) + salt).
func OpaqueID(kind string, pk int64, salt string) string {
	sum := sha256.Sum256([]byte(kind + strconv.FormatInt(pk, 10) + salt))
	return hex.EncodeToString(sum[:])[:opaqueIDLength]
}

// AudioID returns the full hex SHA-256 of languageID + "|" + text.
func AudioID(languageID, text string) string {
	sum := sha256.Sum256([]byte(languageID + "|" + text))
	return hex.EncodeToString(sum[:])
}
