package badger

import (
	"encoding/binary"

	"github.com/poiesic/rightsdesk/core"
)

// Key prefixes for different data types
const (
	rightsPrefix    = "rights:"
	templatePrefix  = "tmpl:"
	savedItemPrefix = "saved:"
	savedIndexPref  = "savedx:"
	savedItemSeq    = "savedseq"
	unlockPrefix    = "unlock:"
	progressPrefix  = "chkprog:"
)

// makeIDKey generates a key of the form prefix + 8-byte big-endian ID.
// BigEndian keeps lexicographic key order equal to numeric ID order.
func makeIDKey(prefix string, id core.ID) []byte {
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], uint64(id))
	return buf
}

func makeRightsKey(id core.ID) []byte {
	return makeIDKey(rightsPrefix, id)
}

func makeTemplateKey(id core.ID) []byte {
	return makeIDKey(templatePrefix, id)
}

func makeUnlockKey(templateID core.ID) []byte {
	return makeIDKey(unlockPrefix, templateID)
}

// makePartialSavedKey generates the scan prefix for saved items of one kind.
// Format: prefix:kind:
func makePartialSavedKey(kind core.Kind) []byte {
	return []byte(savedItemPrefix + string(kind) + ":")
}

// makeSavedKey generates a key for a saved item.
// Format: prefix:kind:seq so scans return items in save order.
func makeSavedKey(kind core.Kind, seq uint64) []byte {
	partial := makePartialSavedKey(kind)
	buf := make([]byte, len(partial)+8)
	offset := copy(buf, partial)
	binary.BigEndian.PutUint64(buf[offset:], seq)
	return buf
}

// makeSavedIndexKey maps (kind, entry ID) to the saved item's sequence number.
// Format: prefix:kind:id
func makeSavedIndexKey(kind core.Kind, id core.ID) []byte {
	return makeIDKey(savedIndexPref+string(kind)+":", id)
}

func makeProgressKey(scenario string) []byte {
	return []byte(progressPrefix + scenario)
}
