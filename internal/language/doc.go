// Package language normalizes the language values found in tags and
// manifests. ID3 TLAN frames carry ISO 639-2 codes while manifests often
// spell the language out, so both are folded to the three-letter code.
package language
