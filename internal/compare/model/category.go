package model

// Category explains why two cell values differ.
type Category uint8

const (
	NoExplanation Category = iota
	CaseOnly
	WhitespaceOnly
	NumericOrFormat
	DateFormat
	SimilarName
	SubstantiveChange
)

var categoryCodes = [...]string{
	NoExplanation:     "no_explanation",
	CaseOnly:          "case_only",
	WhitespaceOnly:    "whitespace_only",
	NumericOrFormat:   "numeric_or_format",
	DateFormat:        "date_format",
	SimilarName:       "similar_name",
	SubstantiveChange: "substantive_change",
}

var categoryLabels = [...]string{
	NoExplanation:     "No explanation",
	CaseOnly:          "Case-only difference",
	WhitespaceOnly:    "Whitespace difference",
	NumericOrFormat:   "Numeric or format difference",
	DateFormat:        "Possible date format difference",
	SimilarName:       "Similar name with prefix/suffix",
	SubstantiveChange: "Significant content change",
}

// Code is the stable machine name.
func (c Category) Code() string {
	if int(c) < len(categoryCodes) {
		return categoryCodes[c]
	}
	return categoryCodes[NoExplanation]
}

// String is the human readable label written into reports.
func (c Category) String() string {
	if int(c) < len(categoryLabels) {
		return categoryLabels[c]
	}
	return categoryLabels[NoExplanation]
}

func (c Category) MarshalText() ([]byte, error) { return []byte(c.Code()), nil }
