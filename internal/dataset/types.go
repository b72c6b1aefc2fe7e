package dataset

// TestCase is one labeled adversarial or ambiguous prompt together with a
// free-text description of the behavior a well-behaved model should show.
// Cases come from the dataset file and are never mutated.
type TestCase struct {
	ID               string `json:"id"`
	Category         string `json:"category"`
	Input            string `json:"input"`
	ExpectedBehavior string `json:"expected_behavior"`
}

// Dataset is the top-level dataset document.
type Dataset struct {
	Name        string     `json:"name,omitempty"`
	Description string     `json:"description,omitempty"`
	TestCases   []TestCase `json:"test_cases"`
}
