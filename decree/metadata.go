package decree

import (
	"encoding/json"
	"fmt"
)

// Capability はホストに申告する機能です。
type Capability int

const (
	CapabilityLint Capability = iota
	CapabilityAutoFix
	CapabilityStreaming
	CapabilityRuntimeConfig
	CapabilityRichDiagnostics
)

var capabilityNames = map[Capability]string{
	CapabilityLint:            "lint",
	CapabilityAutoFix:         "auto-fix",
	CapabilityStreaming:       "streaming",
	CapabilityRuntimeConfig:   "runtime-config",
	CapabilityRichDiagnostics: "rich-diagnostics",
}

func (c Capability) String() string {
	if s, ok := capabilityNames[c]; ok {
		return s
	}
	return fmt.Sprintf("capability(%d)", int(c))
}

func (c Capability) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// Metadata はホストが読み込み時に参照する静的な記述子です。
type Metadata struct {
	ABIVersion          string       `json:"abi_version"`
	DecreeVersion       string       `json:"decree_version"`
	Description         string       `json:"description"`
	Authors             string       `json:"authors,omitempty"`
	SupportedExtensions []string     `json:"supported_extensions"`
	SupportedFilenames  []string     `json:"supported_filenames"`
	SkipFilenames       []string     `json:"skip_filenames"`
	Capabilities        []Capability `json:"capabilities"`
}

// Metadata は設定に関係なく同じ記述子を返します。
func (d *Decree) Metadata() Metadata {
	return Metadata{
		ABIVersion:          ABIVersion,
		DecreeVersion:       Version,
		Description:         description,
		Authors:             authors,
		SupportedExtensions: []string{"html", "htm"},
		SupportedFilenames:  []string{},
		SkipFilenames:       []string{},
		Capabilities:        []Capability{CapabilityLint},
	}
}

// Supports は m が拡張子 ext (先頭の '.' は任意) を扱うかどうかを返します。
func (m Metadata) Supports(ext string) bool {
	if len(ext) > 0 && ext[0] == '.' {
		ext = ext[1:]
	}
	for _, e := range m.SupportedExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Severity はホストでの重大度です。
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
	SeverityHint    Severity = "hint"
)

// SeverityOf は診断の重大度を返します。enforced な診断は error、助言にとどまる診断は warning です。
func SeverityOf(d Diagnostic) Severity {
	if d.Enforced {
		return SeverityError
	}
	return SeverityWarning
}
