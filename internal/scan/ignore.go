package scan

import (
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	bwsio "bsc-wallet-scanner/internal/io"
)

// IgnoreList holds transaction hashes that should be excluded from scan
// results, e.g. known spam airdrops, each with a human-readable reason.
type IgnoreList struct {
	reasons map[string]string
}

// IsIgnored reports whether the given transaction hash is on the list,
// returning the recorded reason when it is.
func (l *IgnoreList) IsIgnored(hash string) (string, bool) {
	if l == nil {
		return "", false
	}

	reason, found := l.reasons[strings.ToLower(hash)]

	return reason, found
}

// Len returns the number of ignored hashes.
func (l *IgnoreList) Len() int {
	if l == nil {
		return 0
	}

	return len(l.reasons)
}

// IgnoreListFromYAML reads an IgnoreList from its YAML representation:
//
//	ignored_hashes:
//	  - hash: "0x..."
//	    reason: "spam airdrop"
func IgnoreListFromYAML(reader io.Reader) (*IgnoreList, error) {
	var ymlList yamlIgnoreList
	decoder := yaml.NewDecoder(bwsio.StripUTF8BOM(reader))
	if err := decoder.Decode(&ymlList); err != nil {
		return nil, fmt.Errorf("failed to decode ignore list from YAML: %w", err)
	}

	ignoreList := &IgnoreList{reasons: make(map[string]string, len(ymlList.IgnoredHashes))}
	for _, ymlHash := range ymlList.IgnoredHashes {
		ignoreList.reasons[strings.ToLower(ymlHash.Hash)] = ymlHash.Reason
	}

	return ignoreList, nil
}

type yamlIgnoredHash struct {
	Hash   string `yaml:"hash"`
	Reason string `yaml:"reason"`
}

type yamlIgnoreList struct {
	IgnoredHashes []yamlIgnoredHash `yaml:"ignored_hashes"`
}
