package types

// FormulaSpan delimits the argument text of one formula call: Start is the
// byte just after the opening parenthesis, End is the byte offset of the
// parenthesis that balances it. The parentheses themselves are excluded.
type FormulaSpan = OffsetSpan
