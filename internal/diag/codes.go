package diag

import "fmt"

// Code is a stable numeric diagnostic identifier, grouped by the pass that
// emits it (spec.md §7). Codes are never renumbered once shipped.
type Code uint16

const (
	UnknownCode Code = 0

	// Input / config (1000s).
	InputReadFile              Code = 1000
	InputCanonicalize          Code = 1001
	InputNotInRoot             Code = 1002
	InputNoRoot                Code = 1003
	InputMultipleRoots         Code = 1004
	InputNotGroup              Code = 1005
	InputCouldNotParseConfig   Code = 1006
	InputInvalidConfigVersion  Code = 1007
	InputGlobPattern           Code = 1008
	InputEmptyGlob             Code = 1009
	InputCm                    Code = 1010
	InputCycle                 Code = 1011
	InputUnsupportedClass      Code = 1012
	InputMembersUnimplemented  Code = 1013

	// Lex (1100s).
	LexUnclosedString    Code = 1100
	LexUnknownEscape     Code = 1101
	LexUnclosedComment   Code = 1102
	LexInvalidNumeric    Code = 1103
	LexIncompleteTyVar   Code = 1104
	LexUnknownChar       Code = 1105

	// Parse (1200s).
	ParseExpected         Code = 1200
	ParseExpectedExport   Code = 1201
	ParseExpectedDesc     Code = 1202
	ParseEmptyExportList  Code = 1203

	// Lower (1300s).
	LowerInvalidAsPatName  Code = 1300
	LowerDuplicateLab      Code = 1301
	LowerFunArityMismatch  Code = 1302

	// Statics (1400s).
	StaticsUnsupported        Code = 1400
	StaticsUndefined          Code = 1401
	StaticsRedefined          Code = 1402
	StaticsCircularity        Code = 1403
	StaticsMismatchedTypes    Code = 1404
	StaticsMissingField       Code = 1405
	StaticsExtraFields        Code = 1406
	StaticsDuplicateLab       Code = 1407
	StaticsRealPat            Code = 1408
	StaticsUnreachablePattern Code = 1409
	StaticsNonExhaustiveMatch Code = 1410
	StaticsNonExhaustiveBind  Code = 1411
	StaticsPatValIdStatus     Code = 1412
	StaticsPatMustNotHaveArg  Code = 1413
	StaticsPatMustHaveArg     Code = 1414
	StaticsOverloadMismatch   Code = 1415
	StaticsTyNameEscape       Code = 1416
	StaticsValRecExpNotFn     Code = 1417
	StaticsNotEquality        Code = 1418

	// Dynamics (1500s); not surfaced to users as diagnostics, kept for
	// parity with the taxonomy and for the demo step evaluator's own
	// reporting.
	DynamicsUncaughtException Code = 1500
	DynamicsMatchException    Code = 1501
)

func (c Code) String() string { return fmt.Sprintf("M%04d", uint16(c)) }

// DocURL returns a stable documentation anchor for c, if one is known.
func (c Code) DocURL() (string, bool) {
	if c == UnknownCode {
		return "", false
	}
	return fmt.Sprintf("https://example.invalid/millet/diagnostics/%s", c.String()), true
}
