package model

// Diagnostic は 1 件の検出結果です。生成後は変更しません。
type Diagnostic struct {
	Rule     string `json:"rule"`
	Message  string `json:"message"`
	Enforced bool   `json:"enforced"`
	Span     Span   `json:"span"`
}

// Sink は検出結果を発見順に蓄積します。追記のみで、削除や並べ替えは行いません。
type Sink struct {
	items []Diagnostic
}

// Report は助言扱いの診断を追加します。
func (s *Sink) Report(rule, message string, span Span) {
	s.items = append(s.items, Diagnostic{Rule: rule, Message: message, Span: span})
}

// Add は診断をそのまま追加します。
func (s *Sink) Add(d Diagnostic) {
	s.items = append(s.items, d)
}

func (s *Sink) Len() int { return len(s.items) }

// Diagnostics は蓄積済みの診断のコピーを返します。
func (s *Sink) Diagnostics() []Diagnostic {
	if len(s.items) == 0 {
		return nil
	}
	out := make([]Diagnostic, len(s.items))
	copy(out, s.items)
	return out
}
