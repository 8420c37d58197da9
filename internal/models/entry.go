package models

// Entry is the canonical transaction record handed from extraction to
// categorization and serialization.
//
// Optional fields are pointers: nil means absent, which is not the same as a
// pointer to "". The empty-payee filter depends on that difference.
type Entry struct {
	Account string
	Date    string
	Payee   *string
	Memo    *string
	Inflow  *string
	Outflow *string

	// Remittance is the memo source text before the payee split, with whitespace
	// compacted. Payee rules are matched against it; it is never written out.
	Remittance string
}

// HasPayee reports whether a payee is present. A present empty payee counts.
func (e Entry) HasPayee() bool {
	return e.Payee != nil
}

// StringPtr returns a pointer to a copy of s.
func StringPtr(s string) *string {
	return &s
}

// Deref returns *s, or "" for nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
