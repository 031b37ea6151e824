package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Build variant, passed to the build tool as its configuration name.
type Variant string

const (
	VariantDebug          Variant = "Debug"
	VariantRelease        Variant = "Release"
	VariantRelWithDebInfo Variant = "RelWithDebInfo"
	VariantMinSizeRel     Variant = "MinSizeRel"
)

var variants = []Variant{VariantDebug, VariantRelease, VariantRelWithDebInfo, VariantMinSizeRel}

// Parses a variant name case-insensitively.
func ParseVariant(raw string) (Variant, error) {
	cleaned := strings.TrimSpace(raw)
	for _, v := range variants {
		if strings.EqualFold(cleaned, string(v)) {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidVariant, raw)
}

// Whether the variant produces a debug-symbol companion.
func (v Variant) IsDebug() bool {
	return v == VariantDebug
}

func (v Variant) String() string {
	return string(v)
}

// Decodes a variant from YAML, rejecting unknown names.
func (v *Variant) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseVariant(raw)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
