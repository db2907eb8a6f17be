package complexity

import "testing"

func TestCountSyllables(t *testing.T) {
	cases := map[string]int{
		"cat":         1,
		"audit":       2,
		"requirement": 4,
		"a":           1,
		"make":        1,
	}
	for word, want := range cases {
		if got := countSyllables(word); got != want {
			t.Errorf("countSyllables(%q) = %d, want %d", word, got, want)
		}
	}
}

func TestCountSentencesNeverZero(t *testing.T) {
	if got := countSentences("no terminal punctuation"); got != 1 {
		t.Errorf("countSentences = %d, want 1", got)
	}
	if got := countSentences("One. Two! Three?"); got != 3 {
		t.Errorf("countSentences = %d, want 3", got)
	}
}

func TestGradeLevelOrdering(t *testing.T) {
	simple := "The pump runs. The pump stops. The light is on."
	dense := "The chromatographic instrumentation shall automatically accommodate multidimensional separations incorporating orthogonal methodologies notwithstanding environmental perturbations."

	simpleGrade := gradeLevel(simple)
	denseGrade := gradeLevel(dense)
	if simpleGrade < 0 || denseGrade < 0 {
		t.Fatalf("grade levels must be non-negative: %g, %g", simpleGrade, denseGrade)
	}
	if denseGrade <= simpleGrade {
		t.Errorf("dense text grade %g not above simple text grade %g", denseGrade, simpleGrade)
	}
}
