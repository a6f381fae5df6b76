package output

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/phyten/dslint/decree"
	"github.com/phyten/dslint/internal/engine"
	"github.com/phyten/dslint/internal/model"
	"github.com/phyten/dslint/internal/termcolor"
)

var sampleItems = []engine.Item{
	{
		File:     "web/index.html",
		Lang:     "html",
		Line:     3,
		Col:      8,
		EndLine:  3,
		EndCol:   22,
		Rule:     "typo",
		RuleID:   "datastar/typo",
		Severity: "error",
		Message:  "Did you mean 'data-on:click'?",
		Span:     model.Span{Start: 40, End: 54},
		Text:     "data-onclick",
	},
	{
		File:     "web/list.html",
		Lang:     "html",
		Line:     10,
		Col:      2,
		EndLine:  11,
		EndCol:   5,
		Rule:     "action-syntax",
		RuleID:   "datastar/action-syntax",
		Severity: "error",
		Message:  "Unbalanced | parentheses\nin <action>",
		Span:     model.Span{Start: 200, End: 230},
		Text:     "@get('/a'",
	},
}

func TestResolveFields(t *testing.T) {
	sel, err := ResolveFields("")
	if err != nil {
		t.Fatalf("ResolveFields default: %v", err)
	}
	if diff := cmp.Diff([]string{"LOCATION", "SEVERITY", "RULE", "MESSAGE"}, Headers(sel.Fields)); diff != "" {
		t.Fatalf("default headers (-want +got):\n%s", diff)
	}

	sel, err = ResolveFields(" File , LINE,column,msg,rule_id,span,end ")
	if err != nil {
		t.Fatalf("ResolveFields: %v", err)
	}
	got := RowValues(sampleItems[0], sel.Fields)
	want := []string{"web/index.html", "3", "8", "Did you mean 'data-on:click'?", "datastar/typo", "40-54", "3:22"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("row (-want +got):\n%s", diff)
	}

	sel, err = ResolveFields("link")
	if err != nil {
		t.Fatalf("ResolveFields link: %v", err)
	}
	withURL := sampleItems[0]
	withURL.URL = "https://github.com/o/r/blob/abc/web/index.html#L3"
	if got := RowValues(withURL, sel.Fields); got[0] != withURL.URL || sel.Fields[0].Header != "URL" {
		t.Fatalf("url field mismatch: %v %+v", got, sel.Fields)
	}

	for _, bad := range []string{"file,,line", "author"} {
		if _, err := ResolveFields(bad); err == nil {
			t.Errorf("ResolveFields(%q) should fail", bad)
		}
	}
}

func TestWriteCSV(t *testing.T) {
	sel, err := ResolveFields("file,line,rule,message")
	if err != nil {
		t.Fatalf("ResolveFields failed: %v", err)
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleItems, sel); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	want := "FILE,LINE,RULE,MESSAGE\r\n" +
		"web/index.html,3,typo,Did you mean 'data-on:click'?\r\n" +
		"web/list.html,10,action-syntax,\"Unbalanced | parentheses\r\nin <action>\"\r\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("csv (-want +got):\n%s", diff)
	}
}

func TestWriteTSVFlattensCells(t *testing.T) {
	sel, _ := ResolveFields("location,message")
	var buf bytes.Buffer
	if err := WriteTSV(&buf, sampleItems, sel); err != nil {
		t.Fatalf("WriteTSV failed: %v", err)
	}
	want := "LOCATION\tMESSAGE\n" +
		"web/index.html:3:8\tDid you mean 'data-on:click'?\n" +
		"web/list.html:10:2\tUnbalanced | parentheses in <action>\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("tsv (-want +got):\n%s", diff)
	}
}

func TestWriteNDJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteNDJSON(&buf, sampleItems); err != nil {
		t.Fatalf("WriteNDJSON failed: %v", err)
	}
	output := buf.String()
	lines := strings.Split(strings.TrimSuffix(output, "\n"), "\n")
	if len(lines) != len(sampleItems) {
		t.Fatalf("expected %d lines, got %d", len(sampleItems), len(lines))
	}
	for i, line := range lines {
		var item engine.Item
		if err := json.Unmarshal([]byte(line), &item); err != nil {
			t.Fatalf("failed to decode line %d: %v", i, err)
		}
		if diff := cmp.Diff(sampleItems[i], item); diff != "" {
			t.Fatalf("line %d (-want +got):\n%s", i, diff)
		}
	}
	if strings.Contains(output, "\\u003c") {
		t.Fatal("HTML characters should not be escaped in NDJSON output")
	}
}

func TestWriteMarkdownTable(t *testing.T) {
	sel, err := ResolveFields("rule,message")
	if err != nil {
		t.Fatalf("ResolveFields failed: %v", err)
	}
	var buf bytes.Buffer
	if err := WriteMarkdownTable(&buf, sampleItems, sel); err != nil {
		t.Fatalf("WriteMarkdownTable failed: %v", err)
	}
	want := "| RULE | MESSAGE |\n" +
		"| --- | --- |\n" +
		"| typo | Did you mean 'data-on:click'? |\n" +
		"| action-syntax | Unbalanced \\| parentheses<br>in &lt;action&gt; |\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("markdown (-want +got):\n%s", diff)
	}
}

func TestWriteTableAlignsColumns(t *testing.T) {
	sel, _ := ResolveFields("location,rule")
	var buf bytes.Buffer
	if err := WriteTable(&buf, sampleItems, sel, TableOptions{}); err != nil {
		t.Fatalf("WriteTable failed: %v", err)
	}
	want := "LOCATION            RULE\n" +
		"web/index.html:3:8  typo\n" +
		"web/list.html:10:2  action-syntax\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("table (-want +got):\n%s", diff)
	}
}

func TestWriteTableColorDoesNotShiftColumns(t *testing.T) {
	sel, _ := ResolveFields("severity,rule,message")
	color := termcolor.Settings{Enabled: true, Profile: termcolor.ProfileBasic8}
	var plain, colored bytes.Buffer
	if err := WriteTable(&plain, sampleItems, sel, TableOptions{MaxCellWidth: 20}); err != nil {
		t.Fatal(err)
	}
	if err := WriteTable(&colored, sampleItems, sel, TableOptions{Color: color, MaxCellWidth: 20}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(colored.String(), "\x1b[1;31merror\x1b[0m") {
		t.Fatalf("expected bold red severity, got %q", colored.String())
	}
	stripped := ansiPattern.ReplaceAllString(colored.String(), "")
	if diff := cmp.Diff(plain.String(), stripped); diff != "" {
		t.Fatalf("colour changed layout (-plain +stripped):\n%s", diff)
	}
	if strings.Contains(plain.String(), "Did you mean 'data-on:click'?") {
		t.Fatal("message should be truncated to 20 columns")
	}
}

func TestWriteTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTable(&buf, nil, FieldSelection{}, TableOptions{}); err != nil {
		t.Fatal(err)
	}
	if buf.Len() != 0 {
		t.Fatalf("empty result should print nothing, got %q", buf.String())
	}
}

func TestWritePlainTable(t *testing.T) {
	var buf bytes.Buffer
	rows := [][]string{{"datastar/typo", "typos"}, {"datastar/for-template", "for\ttemplate"}}
	if err := WritePlainTable(&buf, []string{"RULE", "GROUP"}, rows, TableOptions{}); err != nil {
		t.Fatal(err)
	}
	want := "RULE                   GROUP\n" +
		"datastar/typo          typos\n" +
		"datastar/for-template  for template\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Fatalf("WritePlainTable (-want +got):\n%s", diff)
	}
}

func TestWriteSummary(t *testing.T) {
	cases := []struct {
		res  engine.Result
		want string
	}{
		{engine.Result{Files: 1}, "no problems found in 1 file\n"},
		{engine.Result{Total: 1, Files: 3, FilesWithIssues: 1}, "1 problem in 1 of 3 files\n"},
		{engine.Result{Total: 4, Files: 2, FilesWithIssues: 2, ErrorCount: 1}, "4 problems in 2 of 2 files (1 file skipped)\n"},
	}
	for _, tc := range cases {
		var buf bytes.Buffer
		if err := WriteSummary(&buf, &tc.res, termcolor.Settings{}); err != nil {
			t.Fatal(err)
		}
		if buf.String() != tc.want {
			t.Errorf("WriteSummary = %q, want %q", buf.String(), tc.want)
		}
	}
}

func TestWriteSARIF(t *testing.T) {
	res := &engine.Result{
		Items:  sampleItems,
		Total:  2,
		Errors: []engine.ItemError{{File: "big.html", Stage: "size", Message: "file too large"}},
	}
	var buf bytes.Buffer
	if err := WriteSARIF(&buf, res, SarifRunMeta{ToolVersion: "1.2.3", InvocationArgs: []string{"web"}}); err != nil {
		t.Fatalf("WriteSARIF: %v", err)
	}
	var doc struct {
		Version string `json:"version"`
		Runs    []struct {
			Tool struct {
				Driver struct {
					Name    string `json:"name"`
					Version string `json:"version"`
					Rules   []struct {
						ID string `json:"id"`
					} `json:"rules"`
				} `json:"driver"`
			} `json:"tool"`
			Invocations []struct {
				Notifications []struct {
					Message struct {
						Text string `json:"text"`
					} `json:"message"`
				} `json:"toolExecutionNotifications"`
			} `json:"invocations"`
			Results []struct {
				RuleID    string `json:"ruleId"`
				RuleIndex int    `json:"ruleIndex"`
				Level     string `json:"level"`
				Locations []struct {
					PhysicalLocation struct {
						ArtifactLocation struct {
							URI string `json:"uri"`
						} `json:"artifactLocation"`
						Region struct {
							StartLine   int `json:"startLine"`
							StartColumn int `json:"startColumn"`
							ByteOffset  int `json:"byteOffset"`
							ByteLength  int `json:"byteLength"`
						} `json:"region"`
					} `json:"physicalLocation"`
				} `json:"locations"`
			} `json:"results"`
		} `json:"runs"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid SARIF JSON: %v", err)
	}
	if doc.Version != "2.1.0" || len(doc.Runs) != 1 {
		t.Fatalf("unexpected envelope: %+v", doc)
	}
	run := doc.Runs[0]
	if run.Tool.Driver.Name != "dslint" || run.Tool.Driver.Version != "1.2.3" {
		t.Fatalf("unexpected driver: %+v", run.Tool.Driver)
	}
	if len(run.Tool.Driver.Rules) != 6 {
		t.Fatalf("expected 6 rule descriptors, got %d", len(run.Tool.Driver.Rules))
	}
	if len(run.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(run.Results))
	}
	first := run.Results[0]
	if first.RuleID != "datastar/typo" || first.Level != "error" {
		t.Fatalf("unexpected result: %+v", first)
	}
	if run.Tool.Driver.Rules[first.RuleIndex].ID != "datastar/typo" {
		t.Fatalf("ruleIndex %d does not point at datastar/typo", first.RuleIndex)
	}
	region := first.Locations[0].PhysicalLocation.Region
	if region.StartLine != 3 || region.StartColumn != 8 || region.ByteOffset != 40 || region.ByteLength != 14 {
		t.Fatalf("unexpected region: %+v", region)
	}
	if uri := first.Locations[0].PhysicalLocation.ArtifactLocation.URI; uri != "web/index.html" {
		t.Fatalf("unexpected uri: %s", uri)
	}
	if n := run.Invocations[0].Notifications; len(n) != 1 || n[0].Message.Text != "file too large" {
		t.Fatalf("unexpected notifications: %+v", n)
	}
}

func TestWriteSARIFVersionControl(t *testing.T) {
	var buf bytes.Buffer
	meta := SarifRunMeta{Repository: "https://github.com/o/site", Revision: "abc123"}
	if err := WriteSARIF(&buf, &engine.Result{}, meta); err != nil {
		t.Fatalf("WriteSARIF: %v", err)
	}
	var doc struct {
		Runs []struct {
			VersionControl []struct {
				RepositoryURI string `json:"repositoryUri"`
				RevisionID    string `json:"revisionId"`
			} `json:"versionControlProvenance"`
		} `json:"runs"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid SARIF JSON: %v", err)
	}
	vcs := doc.Runs[0].VersionControl
	if len(vcs) != 1 || vcs[0].RepositoryURI != meta.Repository || vcs[0].RevisionID != "abc123" {
		t.Fatalf("unexpected versionControlProvenance: %+v", vcs)
	}

	buf.Reset()
	if err := WriteSARIF(&buf, &engine.Result{}, SarifRunMeta{}); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "versionControlProvenance") {
		t.Fatalf("provenance should be omitted without a repository: %s", buf.String())
	}
}

func TestWriteSARIFは助言をwarningで出す(t *testing.T) {
	items := engine.LintSource(decree.Default(), "a.html", "html", `<div data-intersects="@get('/foo')">`)
	if len(items) == 0 {
		t.Fatal("expected a typo diagnostic")
	}
	var buf bytes.Buffer
	if err := WriteSARIF(&buf, &engine.Result{Items: items, Total: len(items)}, SarifRunMeta{}); err != nil {
		t.Fatalf("WriteSARIF: %v", err)
	}
	var doc struct {
		Runs []struct {
			Results []struct {
				RuleID string `json:"ruleId"`
				Level  string `json:"level"`
			} `json:"results"`
		} `json:"runs"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid SARIF JSON: %v", err)
	}
	for _, r := range doc.Runs[0].Results {
		if r.Level != "warning" {
			t.Fatalf("%s level = %q, want warning", r.RuleID, r.Level)
		}
	}
	if sarifLevel(string(decree.SeverityError)) != "error" {
		t.Fatal("enforced findings should stay error")
	}
}

func TestWriteDispatch(t *testing.T) {
	res := &engine.Result{Items: sampleItems, Total: 2, Files: 2, FilesWithIssues: 2}
	for _, format := range []string{"table", "tsv", "csv", "markdown", "json", "ndjson", "sarif"} {
		var buf bytes.Buffer
		if err := Write(&buf, res, Options{Format: format, Summary: true}); err != nil {
			t.Fatalf("Write(%s): %v", format, err)
		}
		if buf.Len() == 0 {
			t.Fatalf("Write(%s) produced nothing", format)
		}
	}
	if err := Write(&bytes.Buffer{}, res, Options{Format: "xml"}); err == nil {
		t.Fatal("unknown format should fail")
	}
}

func TestSortSpec(t *testing.T) {
	items := []engine.Item{
		{File: "b.html", Line: 1, Col: 1, Rule: "typo", Severity: "error"},
		{File: "a.html", Line: 9, Col: 1, Rule: "require-value", Severity: "info"},
		{File: "a.html", Line: 2, Col: 5, Rule: "typo", Severity: "error"},
		{File: "a.html", Line: 2, Col: 1, Rule: "action-syntax", Severity: "error"},
	}
	locations := func() []string {
		out := make([]string, len(items))
		for i, it := range items {
			out[i] = FieldValue(it, "location")
		}
		return out
	}

	spec, err := ParseSortSpec("")
	if err != nil {
		t.Fatal(err)
	}
	ApplySort(items, spec)
	if diff := cmp.Diff([]string{"a.html:2:1", "a.html:2:5", "a.html:9:1", "b.html:1:1"}, locations()); diff != "" {
		t.Fatalf("default order (-want +got):\n%s", diff)
	}

	spec, err = ParseSortSpec("-severity, rule")
	if err != nil {
		t.Fatal(err)
	}
	ApplySort(items, spec)
	if diff := cmp.Diff([]string{"a.html:9:1", "a.html:2:1", "a.html:2:5", "b.html:1:1"}, locations()); diff != "" {
		t.Fatalf("-severity,rule order (-want +got):\n%s", diff)
	}

	spec, err = ParseSortSpec("-location")
	if err != nil {
		t.Fatal(err)
	}
	if len(spec.Keys) != 3 || !spec.Keys[0].Desc {
		t.Fatalf("location should expand to file,line,col: %+v", spec.Keys)
	}

	for _, bad := range []string{"age", "file,,line", "-"} {
		if _, err := ParseSortSpec(bad); err == nil {
			t.Errorf("ParseSortSpec(%q) should fail", bad)
		}
	}
}

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)
