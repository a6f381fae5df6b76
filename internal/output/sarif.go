package output

import (
	"encoding/json"
	"io"
	"path/filepath"

	"github.com/phyten/dslint/decree"
	"github.com/phyten/dslint/internal/engine"
	"github.com/phyten/dslint/internal/rules"
)

const (
	sarifSchema  = "https://json.schemastore.org/sarif-2.1.0.json"
	sarifVersion = "2.1.0"
)

// SarifRunMeta は SARIF の run に載せるツール情報です。
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InformationURI string
	InvocationArgs []string
	// Repository と Revision があれば versionControlProvenance に載せます。
	Repository string
	Revision   string
}

type sarifLog struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool           sarifTool         `json:"tool"`
	Invocations    []sarifInvocation `json:"invocations,omitempty"`
	VersionControl []sarifVCS        `json:"versionControlProvenance,omitempty"`
	Results        []sarifResult     `json:"results"`
}

type sarifVCS struct {
	RepositoryURI string `json:"repositoryUri"`
	RevisionID    string `json:"revisionId,omitempty"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri,omitempty"`
	Rules          []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID                   string            `json:"id"`
	Name                 string            `json:"name"`
	ShortDescription     sarifText         `json:"shortDescription"`
	DefaultConfiguration sarifRuleDefaults `json:"defaultConfiguration"`
}

type sarifRuleDefaults struct {
	Level string `json:"level"`
}

type sarifText struct {
	Text string `json:"text"`
}

type sarifInvocation struct {
	ExecutionSuccessful bool                `json:"executionSuccessful"`
	Arguments           []string            `json:"arguments,omitempty"`
	Notifications       []sarifNotification `json:"toolExecutionNotifications,omitempty"`
}

type sarifNotification struct {
	Level      string           `json:"level"`
	Message    sarifText        `json:"message"`
	Locations  []sarifLocation  `json:"locations,omitempty"`
	Descriptor *sarifDescriptor `json:"descriptor,omitempty"`
}

type sarifDescriptor struct {
	ID string `json:"id"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	RuleIndex int             `json:"ruleIndex"`
	Level     string          `json:"level"`
	Message   sarifText       `json:"message"`
	Locations []sarifLocation `json:"locations"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifact `json:"artifactLocation"`
	Region           *sarifRegion  `json:"region,omitempty"`
}

type sarifArtifact struct {
	URI string `json:"uri"`
}

type sarifRegion struct {
	StartLine   int        `json:"startLine"`
	StartColumn int        `json:"startColumn"`
	EndLine     int        `json:"endLine"`
	EndColumn   int        `json:"endColumn"`
	ByteOffset  int        `json:"byteOffset"`
	ByteLength  int        `json:"byteLength"`
	Snippet     *sarifText `json:"snippet,omitempty"`
}

// sarifLevel maps a severity to a SARIF result level.
func sarifLevel(severity string) string {
	switch decree.Severity(severity) {
	case decree.SeverityError:
		return "error"
	case decree.SeverityWarning:
		return "warning"
	default:
		return "note"
	}
}

// WriteSARIF writes a single-run SARIF 2.1.0 log.
// Rule IDs are the qualified datastar/<id> names.
func WriteSARIF(w io.Writer, res *engine.Result, meta SarifRunMeta) error {
	if meta.ToolName == "" {
		meta.ToolName = "dslint"
	}
	all := rules.All()
	index := make(map[string]int, len(all))
	descriptors := make([]sarifRule, 0, len(all))
	for i, r := range all {
		index[r.ID] = i
		descriptors = append(descriptors, sarifRule{
			ID:                   decree.QualifiedRule(r.ID),
			Name:                 r.ID,
			ShortDescription:     sarifText{Text: r.Description},
			DefaultConfiguration: sarifRuleDefaults{Level: "error"},
		})
	}

	run := sarifRun{
		Tool: sarifTool{Driver: sarifDriver{
			Name:           meta.ToolName,
			Version:        meta.ToolVersion,
			InformationURI: meta.InformationURI,
			Rules:          descriptors,
		}},
		Results: []sarifResult{},
	}
	if meta.Repository != "" {
		run.VersionControl = []sarifVCS{{RepositoryURI: meta.Repository, RevisionID: meta.Revision}}
	}
	inv := sarifInvocation{ExecutionSuccessful: true, Arguments: meta.InvocationArgs}

	if res != nil {
		for _, it := range res.Items {
			region := &sarifRegion{
				StartLine:   it.Line,
				StartColumn: it.Col,
				EndLine:     it.EndLine,
				EndColumn:   it.EndCol,
				ByteOffset:  it.Span.Start,
				ByteLength:  it.Span.Len(),
			}
			if it.Text != "" {
				region.Snippet = &sarifText{Text: it.Text}
			}
			run.Results = append(run.Results, sarifResult{
				RuleID:    decree.QualifiedRule(it.Rule),
				RuleIndex: ruleIndex(index, it.Rule),
				Level:     sarifLevel(it.Severity),
				Message:   sarifText{Text: it.Message},
				Locations: []sarifLocation{{PhysicalLocation: sarifPhysicalLocation{
					ArtifactLocation: sarifArtifact{URI: filepath.ToSlash(it.File)},
					Region:           region,
				}}},
			})
		}
		for _, e := range res.Errors {
			inv.Notifications = append(inv.Notifications, sarifNotification{
				Level:   "warning",
				Message: sarifText{Text: e.Message},
				Locations: []sarifLocation{{PhysicalLocation: sarifPhysicalLocation{
					ArtifactLocation: sarifArtifact{URI: filepath.ToSlash(e.File)},
				}}},
				Descriptor: &sarifDescriptor{ID: e.Stage},
			})
		}
	}
	run.Invocations = []sarifInvocation{inv}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(sarifLog{Schema: sarifSchema, Version: sarifVersion, Runs: []sarifRun{run}})
}

func ruleIndex(index map[string]int, id string) int {
	if i, ok := index[id]; ok {
		return i
	}
	return -1
}
