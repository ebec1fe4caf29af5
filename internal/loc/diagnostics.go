package loc

import "strconv"

type DiagnosticCode int

const (
	ERROR_UNEXPECTED_END_OF_FILE    DiagnosticCode = 1001
	ERROR_INVALID_TAG_NAME          DiagnosticCode = 1002
	ERROR_UNTERMINATED_START_TAG    DiagnosticCode = 1003
	ERROR_INVALID_ATTRIBUTE_NAME    DiagnosticCode = 1004
	ERROR_UNEXPECTED_TOKEN          DiagnosticCode = 1005
	ERROR_UNEXPECTED_KEYWORD        DiagnosticCode = 1006
	ERROR_NO_ELEMENT_TO_CLOSE       DiagnosticCode = 1007
	ERROR_UNCLOSED_NODE             DiagnosticCode = 1008
	ERROR_INVALID_EXPRESSION        DiagnosticCode = 1009
	ERROR_NO_IF_BLOCK_TO_CLOSE      DiagnosticCode = 1010
	ERROR_NO_IF_BLOCK_FOR_ELSE      DiagnosticCode = 1011
	ERROR_ONLY_ONE_TOP_LEVEL_SCRIPT DiagnosticCode = 1012
	ERROR_UNKNOWN_DIRECTIVE         DiagnosticCode = 1013
)

// String returns the public name of the code.
func (c DiagnosticCode) String() string {
	switch c {
	case ERROR_UNEXPECTED_END_OF_FILE:
		return "UnexpectedEndOfFile"
	case ERROR_INVALID_TAG_NAME:
		return "InvalidTagName"
	case ERROR_UNTERMINATED_START_TAG:
		return "UnterminatedStartTag"
	case ERROR_INVALID_ATTRIBUTE_NAME:
		return "InvalidAttributeName"
	case ERROR_UNEXPECTED_TOKEN:
		return "UnexpectedToken"
	case ERROR_UNEXPECTED_KEYWORD:
		return "UnexpectedKeyword"
	case ERROR_NO_ELEMENT_TO_CLOSE:
		return "NoElementToClose"
	case ERROR_UNCLOSED_NODE:
		return "UnclosedNode"
	case ERROR_INVALID_EXPRESSION:
		return "InvalidExpression"
	case ERROR_NO_IF_BLOCK_TO_CLOSE:
		return "NoIfBlockToClose"
	case ERROR_NO_IF_BLOCK_FOR_ELSE:
		return "NoIfBlockForElse"
	case ERROR_ONLY_ONE_TOP_LEVEL_SCRIPT:
		return "OnlyOneTopLevelScript"
	case ERROR_UNKNOWN_DIRECTIVE:
		return "UnknownDirective"
	}
	return "Invalid(" + strconv.Itoa(int(c)) + ")"
}

// A Diagnostic is the first failure a stage encountered. It terminates the
// compilation and bubbles unchanged up to the caller.
type Diagnostic struct {
	Code DiagnosticCode
	Span Span
}

func (d *Diagnostic) Error() string {
	return d.Code.String() + " at " + strconv.Itoa(d.Span.Start) + ".." + strconv.Itoa(d.Span.End)
}

func NewDiagnostic(code DiagnosticCode, span Span) *Diagnostic {
	return &Diagnostic{Code: code, Span: span}
}

func UnexpectedEndOfFile(span Span) *Diagnostic {
	return NewDiagnostic(ERROR_UNEXPECTED_END_OF_FILE, span)
}

func InvalidTagName(span Span) *Diagnostic {
	return NewDiagnostic(ERROR_INVALID_TAG_NAME, span)
}

func UnterminatedStartTag(span Span) *Diagnostic {
	return NewDiagnostic(ERROR_UNTERMINATED_START_TAG, span)
}

func InvalidAttributeName(span Span) *Diagnostic {
	return NewDiagnostic(ERROR_INVALID_ATTRIBUTE_NAME, span)
}

func UnexpectedToken(span Span) *Diagnostic {
	return NewDiagnostic(ERROR_UNEXPECTED_TOKEN, span)
}

func UnexpectedKeyword(span Span) *Diagnostic {
	return NewDiagnostic(ERROR_UNEXPECTED_KEYWORD, span)
}

func NoElementToClose(span Span) *Diagnostic {
	return NewDiagnostic(ERROR_NO_ELEMENT_TO_CLOSE, span)
}

func UnclosedNode(span Span) *Diagnostic {
	return NewDiagnostic(ERROR_UNCLOSED_NODE, span)
}

func InvalidExpression(span Span) *Diagnostic {
	return NewDiagnostic(ERROR_INVALID_EXPRESSION, span)
}

func NoIfBlockToClose(span Span) *Diagnostic {
	return NewDiagnostic(ERROR_NO_IF_BLOCK_TO_CLOSE, span)
}

func NoIfBlockForElse(span Span) *Diagnostic {
	return NewDiagnostic(ERROR_NO_IF_BLOCK_FOR_ELSE, span)
}

func OnlyOneTopLevelScript(span Span) *Diagnostic {
	return NewDiagnostic(ERROR_ONLY_ONE_TOP_LEVEL_SCRIPT, span)
}

func UnknownDirective(span Span) *Diagnostic {
	return NewDiagnostic(ERROR_UNKNOWN_DIRECTIVE, span)
}
