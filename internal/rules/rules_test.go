package rules

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/phyten/dslint/internal/markup"
	"github.com/phyten/dslint/internal/model"
)

// run は src の最初のタグに check を適用した結果を返す。
func run(t *testing.T, check Checker, src string) []model.Diagnostic {
	t.Helper()
	tags := markup.Tokenize(src)
	if len(tags) == 0 {
		t.Fatalf("no tag in %q", src)
	}
	var sink model.Sink
	check(tags[0], &sink)
	return sink.Diagnostics()
}

func messages(ds []model.Diagnostic) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.Message)
	}
	return out
}

func TestCheckAlpineVue(t *testing.T) {
	src := `<div x-show="visible" v-if="test" @click="handle" :class="foo" x:bind="a" data-show="$a" class="c">`
	got := run(t, CheckAlpineVue, src)
	want := []string{
		"Disallowed Alpine/Vue-style attribute: x-show",
		"Disallowed Alpine/Vue-style attribute: v-if",
		"Disallowed Alpine/Vue-style attribute: @click",
		"Disallowed Alpine/Vue-style attribute: :class",
		"Disallowed Alpine/Vue-style attribute: x:bind",
	}
	if diff := cmp.Diff(want, messages(got)); diff != "" {
		t.Fatalf("messages (-want +got):\n%s", diff)
	}
	for _, d := range got {
		if d.Rule != RuleAlpineVue || d.Enforced {
			t.Fatalf("unexpected diagnostic %+v", d)
		}
	}
	if s := got[0].Span; src[s.Start:s.End] != "x-show" {
		t.Fatalf("span should cover the name, got %q", src[s.Start:s.End])
	}
}

func TestCheckRequiredValues(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want int
	}{
		{"missing", `<div data-show>`, 1},
		{"empty", `<div data-text="">`, 1},
		{"present", `<div data-show="$x">`, 0},
		{"event prefix", `<button data-on:click>`, 1},
		{"event with modifier", `<button data-on:click__once="">`, 1},
		{"computed namespaced", `<div data-computed:total>`, 1},
		{"replace url", `<div data-replace-url=''>`, 1},
		{"not required", `<div data-ignore data-signals>`, 0},
		{"plain html", `<input disabled>`, 0},
		{"class bare", `<div data-class>`, 1},
		{"style namespaced", `<div data-style:color="$c">`, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := run(t, CheckRequiredValues, tc.src)
			if len(got) != tc.want {
				t.Fatalf("got %d diagnostics (%v), want %d", len(got), messages(got), tc.want)
			}
			for _, d := range got {
				if d.Rule != RuleRequireValue || !strings.Contains(d.Message, "requires a value") {
					t.Fatalf("unexpected diagnostic %+v", d)
				}
			}
		})
	}
}

func TestCheckForTemplate(t *testing.T) {
	cases := []struct {
		src  string
		want []string
	}{
		{`<div data-for="item in $items">`, []string{"data-for must be on a <template> element, found on <div>"}},
		{`<template data-for="item in $items">`, nil},
		{`<TEMPLATE data-for="item in $items">`, nil},
		{`<li data-for__key.id="item in $items">`, []string{"data-for must be on a <template> element, found on <li>"}},
		{`<div data-foreach="x">`, nil},
	}
	for _, tc := range cases {
		got := run(t, CheckForTemplate, tc.src)
		if diff := cmp.Diff(tc.want, messagesOrNil(got)); diff != "" {
			t.Errorf("%s (-want +got):\n%s", tc.src, diff)
		}
	}
}

func messagesOrNil(ds []model.Diagnostic) []string {
	if len(ds) == 0 {
		return nil
	}
	return messages(ds)
}

func TestCheckTypos(t *testing.T) {
	cases := []struct {
		src  string
		want []string
	}{
		{`<div data-intersects="@get('/foo')">`, []string{"Possible typo: 'data-intersects' - did you mean 'data-on-intersect'?"}},
		{`<div data-on-click="x">`, []string{"Possible typo: 'data-on-click' - did you mean 'data-on:click'?"}},
		{`<div data-bind-value="x">`, []string{"Possible typo: 'data-bind-value' - did you mean 'data-bind:value'?"}},
		{`<div data-onload__delay.1s="x">`, []string{"Possible typo: 'data-onload' - did you mean 'data-on:load or data-init'?"}},
		{`<div data-on-dblclick="x">`, []string{"Use colon for events: 'data-on:dblclick' instead of 'data-on-dblclick'"}},
		{`<div data-on-intersect="x" data-on-signal-patch="y" data-on-load="z">`, nil},
		{`<div data-bind-email="x">`, []string{"Use colon separator: 'data-bind:email' instead of 'data-bind-email'"}},
		{`<div data-indicator-fetching>`, []string{"Use colon separator: 'data-indicator:fetching' instead of 'data-indicator-fetching'"}},
		{`<div data-on:click="x" data-show="y" data-signals:foo="1">`, nil},
		{`<div v-show="x" x-if="y">`, nil},
	}
	for _, tc := range cases {
		got := run(t, CheckTypos, tc.src)
		if diff := cmp.Diff(tc.want, messagesOrNil(got)); diff != "" {
			t.Errorf("%s (-want +got):\n%s", tc.src, diff)
		}
		for _, d := range got {
			if d.Rule != RuleTypo {
				t.Errorf("rule = %q", d.Rule)
			}
		}
	}
}

func TestCheckTyposTableHitSuppressesSeparatorChecks(t *testing.T) {
	// data-class-active is both a table entry and matches the data-class- prefix.
	got := run(t, CheckTypos, `<div data-class-active="$a">`)
	if len(got) != 1 || !strings.HasPrefix(got[0].Message, "Possible typo") {
		t.Fatalf("got %v", messages(got))
	}
}

func TestCheckModifiers(t *testing.T) {
	cases := []struct {
		src  string
		want []string
	}{
		{`<div data-on:click__debounce.500ms__once="handle()">`, nil},
		{`<div data-on:click__window__prevent__stop="x">`, nil},
		{`<div data-on:click__invalid="handle()">`, []string{
			"Invalid modifier 'invalid' for 'data-on:click'. Valid modifiers: once, passive, capture, case, delay, debounce, throttle, viewtransition, window, outside, prevent, stop",
		}},
		{`<div data-signals__case.kebab="{}">`, nil},
		{`<div data-signals__case.upper="{}">`, []string{"Invalid case modifier 'upper'. Valid options: camel, kebab, snake, pascal"}},
		{`<div data-persist__session>`, nil},
		{`<div data-persist__local>`, []string{"Invalid modifier 'local' for 'data-persist'. Valid modifiers: session"}},
		{`<div data-text__once="$x">`, []string{"Invalid modifier 'once' for 'data-text'. Valid modifiers: "}},
		{`<div data-on-intersect__half__exit="x">`, nil},
		{`<div data-on-raf__throttle.16ms="x">`, nil},
		{`<div data-init__delay.1s__viewtransition="x">`, nil},
		{`<div data-effect__leading__2.5="x">`, nil},
		{`<div data-bind__case="x">`, nil},
		{`<div data-on:input__trailing__noleading="x">`, nil},
		{`<input x-on__foo="x" data-show="$x">`, nil},
	}
	for _, tc := range cases {
		got := run(t, CheckModifiers, tc.src)
		if diff := cmp.Diff(tc.want, messagesOrNil(got)); diff != "" {
			t.Errorf("%s (-want +got):\n%s", tc.src, diff)
		}
	}
}

func TestAllowedModifiersFamilies(t *testing.T) {
	cases := map[string][]string{
		"data-on:keydown":      eventModifiers,
		"data-on-intersect":    intersectModifiers,
		"data-on-interval":     intervalModifiers,
		"data-on-signal-patch": intervalModifiers,
		"data-on-resize":       frameModifiers,
		"data-ref":             {"case"},
		"data-computed:total":  {"case"},
		"data-show":            nil,
	}
	for base, want := range cases {
		if diff := cmp.Diff(want, AllowedModifiers(base)); diff != "" {
			t.Errorf("%s (-want +got):\n%s", base, diff)
		}
	}
}

func TestCheckActions(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []string
	}{
		{"valid", `<button data-on:click="@get('/api/data')">`, nil},
		{"missing parens", `<button data-on:click="@get">`, []string{"Action '@get' requires parentheses, e.g., @get('/path')"}},
		{"space before parens", `<button data-on:click="@post ('/x')">`, nil},
		{"empty url", `<button data-on:click="@get()">`, []string{"SSE action '@get' requires a URL argument, e.g., @get('/api/endpoint')"}},
		{"expression url", `<button data-on:click="@get('/api/' + $endpoint)">`, nil},
		{"signal url", `<button data-on:click="@delete($url)">`, nil},
		{"template literal", "<button data-on:click=\"@put(`/items/${$id}`)\">", nil},
		{"bad url", `<button data-on:click="@get('api/data')">`, []string{"SSE action '@get' URL should start with '/' or be a string/expression, got: 'api/data'"}},
		{"options arg", `<button data-on:click="@post('/save', {contentType: 'form'})">`, nil},
		{"multiple actions", `<div data-init="@get('/init'); @post('/submit')">`, nil},
		{"unclosed", `<button data-on:click="@get('/x'">`, []string{"Unclosed parentheses in '@get' call"}},
		{"paren inside quotes", `<button data-on:click="@get('/x)')">`, nil},
		{"escaped quote", `<button data-on:click="@post('/it\'s(')">`, nil},
		{"unterminated quote", `<button data-on:click="@get('/x)">`, []string{"Unclosed parentheses in '@get' call"}},
		{"nested parens", `<button data-on:click="@get('/x' + fn(a, (b)))">`, nil},
		{"pro action", `<button data-on:click="@clipboard($text)">`, nil},
		{"pro action bare", `<button data-on:click="@fit">`, []string{"Action '@fit' requires parentheses, e.g., @fit('/path')"}},
		{"unknown case", `<button data-on:click="@GET('/x')">`, []string{"Unknown action '@GET'. Did you mean '@get'?"}},
		{"unknown substring", `<button data-on:click="@getData('/x')">`, []string{"Unknown action '@getData'. Did you mean '@get'?"}},
		{"unknown unrelated", `<button data-on:click="@foo()">`, nil},
		{"bare at", `<button data-text="mail @ example">`, nil},
		{"non datastar", `<a href="@get">`, nil},
		{"single quote arg", `<button data-on:click="@get(')">`, []string{"Unclosed parentheses in '@get' call"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := run(t, CheckActions, tc.src)
			if diff := cmp.Diff(tc.want, messagesOrNil(got)); diff != "" {
				t.Fatalf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestCheckActionsSpanIsValue(t *testing.T) {
	src := `<button data-on:click="@get">`
	got := run(t, CheckActions, src)
	if len(got) != 1 {
		t.Fatalf("got %d diagnostics", len(got))
	}
	if s := got[0].Span; src[s.Start:s.End] != "@get" {
		t.Fatalf("span text = %q", src[s.Start:s.End])
	}
}

func TestMatchParenBalance(t *testing.T) {
	balanced := []string{
		"()",
		"(a(b)c)",
		"('(')",
		`("))")`,
		"(`)`)",
		`('\'(')`,
		"(a, 'b', \"c\", `d`)",
	}
	for _, s := range balanced {
		end, ok := matchParen(s, 0)
		if !ok || end != len(s)-1 {
			t.Errorf("%q: end=%d ok=%v", s, end, ok)
		}
	}
	unbalanced := []string{
		"(",
		"((a)",
		"(')",
		`("abc)`,
		"(`)",
		`('\')`,
	}
	for _, s := range unbalanced {
		if _, ok := matchParen(s, 0); ok {
			t.Errorf("%q: reported balanced", s)
		}
	}
}

func TestLooksLikeURL(t *testing.T) {
	for arg, want := range map[string]bool{
		"/api":      true,
		"'/api'":    true,
		`"/api"`:    true,
		"`/api`":    true,
		"'api'":     false,
		"'/api\"":   false,
		"'":         false,
		"`":         false,
		"api":       false,
		"  /spaced": true,
	} {
		if got := looksLikeURL(arg); got != want {
			t.Errorf("looksLikeURL(%q)=%v", arg, got)
		}
	}
}

func TestSuggestAction(t *testing.T) {
	cases := map[string]string{
		"@Post":    "@post",
		"@target":  "@get",
		"@fetchit": "",
		"@putting": "@put",
	}
	for in, want := range cases {
		got, ok := SuggestAction(in)
		if want == "" {
			if ok {
				t.Errorf("SuggestAction(%q)=%q, want none", in, got)
			}
			continue
		}
		if got != want {
			t.Errorf("SuggestAction(%q)=%q want %q", in, got, want)
		}
	}
}

func TestCheckersAreIdempotent(t *testing.T) {
	src := `<div x-show="a" data-show data-on-click__bogus="@gett" data-for="x" data-on:submit="@post('oops'">`
	tag := markup.Tokenize(src)[0]
	for _, r := range All() {
		var a, b model.Sink
		r.Check(tag, &a)
		r.Check(tag, &b)
		if diff := cmp.Diff(a.Diagnostics(), b.Diagnostics()); diff != "" {
			t.Errorf("%s not idempotent:\n%s", r.ID, diff)
		}
	}
}

func TestCheckersFollowConfig(t *testing.T) {
	cfg := DefaultConfig()
	if got := len(Checkers(cfg)); got != 6 {
		t.Fatalf("default checkers = %d", got)
	}
	cfg.CheckActions = false
	cfg.CheckTypos = false
	if got := len(Checkers(cfg)); got != 4 {
		t.Fatalf("checkers = %d", got)
	}
	if got := len(Checkers(Config{})); got != 0 {
		t.Fatalf("zero config checkers = %d", got)
	}
}

func TestConfigSetAndLookup(t *testing.T) {
	var cfg Config
	for _, g := range Groups() {
		if !cfg.Set(g, true) {
			t.Fatalf("unknown group %q", g)
		}
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
	if cfg.Set("nope", false) {
		t.Fatal("Set should reject unknown group")
	}
	r, ok := Lookup("typo")
	if !ok || r.Group != "typos" {
		t.Fatalf("Lookup(typo) = %+v %v", r, ok)
	}
	r, ok = Lookup("actions")
	if !ok || r.ID != RuleActionSyntax {
		t.Fatalf("Lookup(actions) = %+v %v", r, ok)
	}
}
