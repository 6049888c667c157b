package job

// Output names of the formulas example.
const (
	FormulasUpdatedName = "FormulasUpdated.xlsx"
	FormulasCopiedName  = "FormulasCopied.xlsx"
)

// FormulasExample is the built-in demonstration job: references to
// the Source sheet are pointed at 'Source 2', and A1:E7 of the
// References sheet is copied to H4. Each edit starts from input and is
// saved separately.
func FormulasExample(input string) *Job {
	return &Job{
		Inputs: []string{input},
		Steps: []Step{
			{
				Name:            "updated",
				Output:          FormulasUpdatedName,
				RenameSheetRefs: &RenameSheetRefs{From: "Source", To: "'Source 2'"},
			},
			{
				Name:      "copied",
				Output:    FormulasCopiedName,
				CopyRange: &CopyRange{Sheet: "References", From: "A1:E7", To: "H4"},
			},
		},
	}
}
