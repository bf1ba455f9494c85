package goverrors

import (
	"errors"
	"strings"
)

// Block (B) Errors
var (
	ErrBlockNotFound = errors.New("B1|BlockNotFound: The provider returned no block for the requested hash.")
)

// Proof (P) Errors
var (
	ErrProofUnavailable   = errors.New("P1|ProofUnavailable: The provider has no storage proof for the key at the requested block.")
	ErrMalformedProofNode = errors.New("P2|MalformedProofNode: A proof node is not a valid hex-encoded RLP item.")
)

// Quantity (Q) Errors
var (
	ErrInvalidQuantity = errors.New("Q1|InvalidQuantity: Value is neither a decimal nor a hex quantity.")
	ErrInvalidAddress  = errors.New("Q2|InvalidAddress: Value is not a 20-byte hex address.")
)

// Configuration (C) Errors
var (
	ErrUnknownNetwork = errors.New("C1|UnknownNetwork: No slot spec is registered under this name.")
	ErrUnknownAsset   = errors.New("C2|UnknownAsset: Asset name is not part of the governance asset set.")
)

// Header (H) Errors
var (
	ErrUnsupportedHeaderLayout = errors.New("H1|UnsupportedHeaderLayout: Header layout is not one of the pinned encoder variants.")
	ErrMissingHeaderField      = errors.New("H2|MissingHeaderField: Header lacks a field required by the selected layout.")
)

var proofErrors = []error{ErrBlockNotFound, ErrProofUnavailable, ErrMalformedProofNode}

var allErrors = []error{
	ErrBlockNotFound,
	ErrProofUnavailable,
	ErrMalformedProofNode,
	ErrInvalidQuantity,
	ErrInvalidAddress,
	ErrUnknownNetwork,
	ErrUnknownAsset,
	ErrUnsupportedHeaderLayout,
	ErrMissingHeaderField,
}

// IsProofError reports whether err belongs to the proof taxonomy: an
// unresolvable block, a missing proof, or an undecodable proof node.
func IsProofError(err error) bool {
	for _, target := range proofErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// Cause returns the first sentinel of this package wrapped by err, or nil.
func Cause(err error) error {
	if err == nil {
		return nil
	}
	for _, target := range allErrors {
		if errors.Is(err, target) {
			return target
		}
	}
	return nil
}

// GetErrorName extracts the error name from the sentinel wrapped by err.
func GetErrorName(err error) string {
	if err == nil {
		return "No Error"
	}
	cause := Cause(err)
	if cause == nil {
		return err.Error()
	}
	parts := strings.SplitN(cause.Error(), "|", 2)
	nameParts := strings.SplitN(parts[1], ":", 2)
	return strings.TrimSpace(nameParts[0])
}

// GetErrorCode extracts the error code from the sentinel wrapped by err.
func GetErrorCode(err error) string {
	cause := Cause(err)
	if cause == nil {
		return ""
	}
	parts := strings.SplitN(cause.Error(), "|", 2)
	return strings.TrimSpace(parts[0])
}

// GetErrorCodeWithName returns the error code and name in the format "Code_ErrorName".
func GetErrorCodeWithName(err error) string {
	code := GetErrorCode(err)
	name := GetErrorName(err)
	if code == "" || name == "" {
		return ""
	}
	return code + "_" + name
}
