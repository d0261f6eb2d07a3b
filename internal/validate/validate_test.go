package validate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTitle(t *testing.T) {
	require.True(t, Title("Finish lab report").Valid)
	require.True(t, Title("a").Valid)

	for _, raw := range []string{"", "   ", " leading", "trailing ", "\tboth\t"} {
		res := Title(raw)
		require.False(t, res.Valid, "title %q should be rejected", raw)
		require.NotEmpty(t, res.Message)
	}
}

func TestDate(t *testing.T) {
	require.True(t, Date("2024-01-31").Valid)
	require.True(t, Date("2024-02-29").Valid) // leap year

	cases := []string{
		"2024-13-01", // month out of range
		"2024-02-30", // day out of range
		"2023-02-29", // not a leap year
		"24-01-01",
		"2024/01/01",
		"2024-1-1",
		"",
		"tomorrow",
	}
	for _, raw := range cases {
		require.False(t, Date(raw).Valid, "date %q should be rejected", raw)
	}
}

func TestDuration(t *testing.T) {
	for _, raw := range []string{"0", "2", "2.5", "0.25", "10"} {
		require.True(t, Duration(raw).Valid, "duration %q should pass", raw)
	}
	for _, raw := range []string{"-1", "-0.5", "", "2,5", "abc", "1.", ".5", "2.5h"} {
		require.False(t, Duration(raw).Valid, "duration %q should be rejected", raw)
	}
}

func TestTag(t *testing.T) {
	for _, raw := range []string{"Math", "Math-Homework", "Linear Algebra", "a-b-c"} {
		require.True(t, Tag(raw).Valid, "tag %q should pass", raw)
	}
	for _, raw := range []string{"", "Math_Homework", "Math  Homework", "Math--Homework", "CS101", "-Math", "Math-"} {
		require.False(t, Tag(raw).Valid, "tag %q should be rejected", raw)
	}
}

func TestEmail(t *testing.T) {
	valid := []string{
		"alice@example.com",
		"a@x.co",
		"first.last@sub.example.org",
		"user+tag@example.io",
		"u2@example.com",
	}
	for _, raw := range valid {
		require.True(t, Email(raw).Valid, "email %q should pass", raw)
	}

	invalid := []string{
		"12@gmail.com",  // local part has no letter
		"a..b@x.com",    // doubled dot in local part
		"@example.com",  // empty local part
		"alice@",        // empty domain
		"alice@example", // domain has no dot
		"alice@example.c", // final label too short
		"alice@@example.com",
		"aliceexample.com",
		"alice@exa mple.com",
		"alice@example.c0m", // final label not alphabetic
	}
	for _, raw := range invalid {
		require.False(t, Email(raw).Valid, "email %q should be rejected", raw)
	}
}

func TestDescription(t *testing.T) {
	require.True(t, Description("").Valid)
	require.True(t, Description("short note").Valid)

	long := make([]byte, MaxDescriptionLen+1)
	for i := range long {
		long[i] = 'x'
	}
	require.False(t, Description(string(long)).Valid)
}

func TestFieldDispatch(t *testing.T) {
	require.False(t, Field("date", "2024-13-01").Valid)
	require.True(t, Field("duration", "2.5").Valid)
	require.False(t, Field("tag", "Math_Homework").Valid)

	// Unknown fields pass through.
	require.True(t, Field("unknown", "anything").Valid)
}
