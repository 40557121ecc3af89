package ast

// Transaction flags. The synthetic flags mark the transactions inserted by
// the summarization passes so downstream consumers can tell them apart from
// user entries.
const (
	FlagOkay        = "*"
	FlagWarning     = "!"
	FlagPadding     = "P"
	FlagSummarize   = "S"
	FlagTransfer    = "T"
	FlagConversions = "C"
)

// IsSynthetic reports whether flag is one of the flags reserved for
// generated transactions.
func IsSynthetic(flag string) bool {
	switch flag {
	case FlagPadding, FlagSummarize, FlagTransfer, FlagConversions:
		return true
	}
	return false
}
