// Package audit produces the tamper-evidence trail for a benchmark
// run: a SHA-256 hash per evaluated item and a Merkle root over the
// whole result set. The root is printed in reports so a run archive
// can be verified after the fact.
package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/cbergoon/merkletree"
)

// HashData returns the hex-encoded SHA-256 digest of data.
func HashData(data string) string {
	sum := sha256.Sum256([]byte(data))
	return hex.EncodeToString(sum[:])
}

// HashItems hashes the items joined with a '|' separator.
func HashItems(items ...string) string {
	return HashData(strings.Join(items, "|"))
}

// ContextHash binds one test execution to its inputs and moment in
// time.
func ContextHash(testID, prompt, response, timestamp string) string {
	return HashItems(testID, prompt, response, timestamp)
}

// leaf adapts a string to merkletree's content interface.
type leaf string

func (l leaf) CalculateHash() ([]byte, error) {
	sum := sha256.Sum256([]byte(l))
	return sum[:], nil
}

func (l leaf) Equals(other merkletree.Content) (bool, error) {
	o, ok := other.(leaf)
	return ok && l == o, nil
}

// Root builds a Merkle tree over the items and returns its
// hex-encoded root. An empty input hashes the literal "empty" so the
// root is always a stable, comparable value.
func Root(items []string) (string, error) {
	if len(items) == 0 {
		return HashData("empty"), nil
	}

	contents := make([]merkletree.Content, len(items))
	for i, item := range items {
		contents[i] = leaf(item)
	}

	tree, err := merkletree.NewTree(contents)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(tree.MerkleRoot()), nil
}
