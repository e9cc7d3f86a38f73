package builderr

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/compresr/optiflow/internal/model"
)

func TestTSCTwoErrorsSameSignature(t *testing.T) {
	output := `src/a.ts(10,5): error TS2345: Argument of type 'string' is not assignable to parameter of type 'number'.
src/b.ts(22,9): error TS2345: Argument of type 'boolean' is not assignable to parameter of type 'number'.
`
	groups := ParseAndGroup(output, ToolchainTSC)
	require.Len(t, groups, 1)

	g := groups[0]
	require.Equal(t, 2, g.Count)
	require.Equal(t, "TS2345", g.Code)
	require.ElementsMatch(t, []string{"src/a.ts", "src/b.ts"}, g.AffectedFiles)
	require.Equal(t, 0, g.ExtraFileCount)
	require.Equal(t, "src/a.ts", g.First.File)
	require.Equal(t, 10, g.First.Line)
}

func TestGenericNeverFails(t *testing.T) {
	groups := ParseAndGroup("total nonsense with no location info\nerror: something broke\n", ToolchainGeneric)
	require.NotEmpty(t, groups)
	require.Equal(t, "unknown", groups[0].First.File)
	require.Equal(t, 0, groups[0].First.Line)
}

func TestGroupsSortedByCountDescending(t *testing.T) {
	errs := []ParsedError{
		{Code: "E1", Message: "one", File: "a.go", Severity: model.SeverityError},
		{Code: "E2", Message: "two", File: "a.go", Severity: model.SeverityError},
		{Code: "E2", Message: "two", File: "b.go", Severity: model.SeverityError},
		{Code: "E2", Message: "two", File: "c.go", Severity: model.SeverityError},
	}
	groups := Group(errs)
	require.Len(t, groups, 2)
	require.Equal(t, 3, groups[0].Count)
	require.Equal(t, "E2", groups[0].Code)
}

func TestAffectedFilesCapAtThreeWithExtraCount(t *testing.T) {
	var errs []ParsedError
	for _, f := range []string{"a.go", "b.go", "c.go", "d.go", "e.go"} {
		errs = append(errs, ParsedError{Code: "E1", Message: "same issue", File: f, Severity: model.SeverityError})
	}
	groups := Group(errs)
	require.Len(t, groups, 1)
	require.Len(t, groups[0].AffectedFiles, 3)
	require.Equal(t, 2, groups[0].ExtraFileCount)
}

func TestSamplesCapAtThree(t *testing.T) {
	var errs []ParsedError
	for i := 0; i < 6; i++ {
		errs = append(errs, ParsedError{Code: "E1", Message: "same issue", File: "a.go", Raw: "raw line"})
	}
	groups := Group(errs)
	require.Len(t, groups[0].Samples, 3)
}

func TestNormalizeCollapsesQuotedAndNumericDifferences(t *testing.T) {
	a := signatureOf("TS2345", "Argument of type 'string' is not assignable to parameter of type 'number' at line 10")
	b := signatureOf("TS2345", "Argument of type 'boolean' is not assignable to parameter of type 'number' at line 22")
	require.Equal(t, a, b)
}
