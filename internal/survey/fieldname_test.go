package survey

import "testing"

func TestFieldName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"numbered age question", "Q3. What is your age?", "age"},
		{"gender key term", "What is your gender?", "gender"},
		{"internet frequency key term", "How often do you use the internet?", "internet_frequency"},
		{"hair type key term", "Which hair type best matches yours?", "hair_type"},
		{"fallback joins meaningful words", "Rate your overall experience today", "rate_your_overall_experience"},
		{"no meaningful words", "???", "field_unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FieldName(tt.text); got != tt.want {
				t.Errorf("FieldName(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestStatementFieldName(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"drops single letter words", "I feel valued at work", "feel_valued_work"},
		{"strips imperative prefix", "Please indicate your job title", "indicate_your_job_title"},
		{"drops auxiliary verbs", "The workload is manageable", "workload_manageable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StatementFieldName(tt.text); got != tt.want {
				t.Errorf("StatementFieldName(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestFieldNameLengthCap(t *testing.T) {
	got := FieldName("internationalization considerations regarding implementation strategies everywhere")
	if len(got) > 40 {
		t.Errorf("field name %q exceeds 40 characters", got)
	}
}
