package vocab

// DublinCore returns the generic discovery vocabulary: the mandatory Dublin
// Core elements used by the richness-of-description indicators.
func DublinCore() Vocabulary {
	return Vocabulary{
		{Element: "contributor"},
		{Element: "date"},
		{Element: "description"},
		{Element: "identifier"},
		{Element: "publisher"},
		{Element: "rights"},
		{Element: "title"},
		{Element: "subject"},
	}
}

// AccessTerms returns the vocabulary used to detect access information in a
// record for the retrievability indicators.
func AccessTerms() Vocabulary {
	return Vocabulary{
		{Element: "access"},
		{Element: "rights"},
	}
}

// IdentifierTerms returns the elements expected to carry the record's own
// identifier(s).
func IdentifierTerms() Vocabulary {
	return Vocabulary{
		{Element: "identifier"},
	}
}
