package termcolor

import "testing"

func TestDetectScheme(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want Scheme
	}{
		{"nil env", nil, SchemeDark},
		{"dark bg", map[string]string{"COLORFGBG": "7;0"}, SchemeDark},
		{"light bg", map[string]string{"COLORFGBG": "15;7"}, SchemeLight},
		{"trailing semicolon", map[string]string{"COLORFGBG": "0;15;"}, SchemeLight},
		{"non-numeric bg falls through", map[string]string{"COLORFGBG": "15;default", "TERM": "xterm-light"}, SchemeLight},
		{"term name", map[string]string{"TERM": "xterm-light"}, SchemeLight},
		{"explicit light beats colorfgbg", map[string]string{SchemeEnv: "Light", "COLORFGBG": "15;0"}, SchemeLight},
		{"explicit dark beats term", map[string]string{SchemeEnv: "dark", "TERM": "xterm-light"}, SchemeDark},
		{"unknown override ignored", map[string]string{SchemeEnv: "sepia", "COLORFGBG": "0;15"}, SchemeLight},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DetectScheme(tc.env); got != tc.want {
				t.Fatalf("DetectScheme = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSeverityStyleはスキームで色を変える(t *testing.T) {
	dark := Apply(SeverityStyle("warning", SchemeDark, ProfileTrueColor), "warning", true)
	light := Apply(SeverityStyle("warning", SchemeLight, ProfileTrueColor), "warning", true)
	if dark == light {
		t.Fatalf("warning should differ between dark and light: %q", dark)
	}
}
